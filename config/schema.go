package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the JSON Schema of a kebabify project file. Keys
// other than the known fields are allowed since they hold extension
// sections such as "logging".
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "kebabify configuration"
	schema.Description = "Project settings for kebabify (.kebabify.yml or kebabify.toml)."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
