package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "mode": {"type": "string", "enum": ["auto", "never"]},
    "items": {"type": "array", "items": {"type": "string"}}
  }
}`

func TestValidator(t *testing.T) {
	v, err := NewValidator("test.json", []byte(testSchema))
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, v.Validate(map[string]interface{}{
			"mode":  "auto",
			"items": []string{"a", "b"},
			"other": 1,
		}))
	})

	t.Run("struct input", func(t *testing.T) {
		doc := struct {
			Mode string `json:"mode"`
		}{Mode: "never"}
		assert.NoError(t, v.Validate(doc))
	})

	t.Run("integer types from toml", func(t *testing.T) {
		assert.NoError(t, v.Validate(map[string]interface{}{"count": int64(3)}))
	})

	t.Run("invalid enum", func(t *testing.T) {
		err := v.Validate(map[string]interface{}{"mode": "sometimes"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/mode")
	})

	t.Run("wrong item type", func(t *testing.T) {
		err := v.Validate(map[string]interface{}{"items": []interface{}{"a", 2}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/items/1")
	})
}

func TestNewValidatorRejectsBadSchema(t *testing.T) {
	_, err := NewValidator("bad.json", []byte(`{"type": 12}`))
	assert.Error(t, err)
}
