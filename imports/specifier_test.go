package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteSpecifier(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"./BazQux.js", "./baz-qux.js"},
		{"../fooBar/BazQux", "../foo-bar/baz-qux"},
		{"./fooBar/index.ts", "./foo-bar/index.ts"},
		{"/abs/SomeDir/MyFile.vue", "/abs/some-dir/my-file.vue"},
		{"./already-kebab", "./already-kebab"},
		{"../../XMLHttpRequest", "../../xml-http-request"},
		{".//Double", ".//double"},
		{"./Button.test.tsx", "./button.test.tsx"},
		{"react", "react"},
		{"@scope/SomePackage", "@scope/SomePackage"},
		{"some-package/SubPath", "some-package/SubPath"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteSpecifier(tt.spec))
		})
	}
}

func TestRewriteSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		changed bool
	}{
		{
			name:    "es module double quotes",
			src:     `import { qux } from "./BazQux.js";`,
			want:    `import { qux } from "./baz-qux.js";`,
			changed: true,
		},
		{
			name:    "es module single quotes no space",
			src:     `export * from'../fooBar/Thing'`,
			want:    `export * from'../foo-bar/thing'`,
			changed: true,
		},
		{
			name:    "commonjs require",
			src:     `const x = require( './myModule' );`,
			want:    `const x = require( './my-module' );`,
			changed: true,
		},
		{
			name:    "dynamic import",
			src:     `const Page = () => import("./pages/UserProfile.vue")`,
			want:    `const Page = () => import("./pages/user-profile.vue")`,
			changed: true,
		},
		{
			name:    "package reference untouched",
			src:     `import { x } from 'some-package'`,
			want:    `import { x } from 'some-package'`,
			changed: false,
		},
		{
			name:    "mismatched quotes untouched",
			src:     `import a from "./FooBar'`,
			want:    `import a from "./FooBar'`,
			changed: false,
		},
		{
			name: "mixed file",
			src: "import React from 'react'\n" +
				"import { a } from './compA/WidgetA'\n" +
				"import b from './already-fine'\n" +
				"const c = require(\"../libX/HelperFn.cjs\")\n",
			want: "import React from 'react'\n" +
				"import { a } from './comp-a/widget-a'\n" +
				"import b from './already-fine'\n" +
				"const c = require(\"../lib-x/helper-fn.cjs\")\n",
			changed: true,
		},
		{
			name:    "identifier containing from is not a specifier",
			src:     `const datefrom = "./NotAnImport"`,
			want:    `const datefrom = "./NotAnImport"`,
			changed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := RewriteSource(tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestRewriteSourceIsIdempotent(t *testing.T) {
	src := `import { a } from './compA/WidgetA'; const b = import('./LazyPage')`
	once, changed := RewriteSource(src)
	assert.True(t, changed)

	twice, changed := RewriteSource(once)
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}
