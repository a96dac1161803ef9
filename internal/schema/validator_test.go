package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSchema(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"empty book", `{}`, true},
		{"full record", `{"1":{"nombre":"Ann","telefono":"123456789","email":"a@x.com","direccion":{"calle":"Main","numero":"4","municipio":"Madrid","cp":"28001"}}}`, true},
		{"missing address", `{"3":{"nombre":"Ann","telefono":"123456789"}}`, true},
		{"partial address", `{"3":{"nombre":"Ann","telefono":"123456789","direccion":{"calle":"Main"}}}`, true},
		{"array document", `[]`, false},
		{"non numeric key", `{"abc":{"nombre":"Ann","telefono":"123456789"}}`, false},
		{"zero key", `{"0":{"nombre":"Ann","telefono":"123456789"}}`, false},
		{"leading zero key", `{"01":{"nombre":"Ann","telefono":"123456789"}}`, false},
		{"record not object", `{"1":"Ann"}`, false},
		{"missing phone", `{"1":{"nombre":"Ann"}}`, false},
		{"numeric phone", `{"1":{"nombre":"Ann","telefono":123456789}}`, false},
		{"address not object", `{"1":{"nombre":"Ann","telefono":"123456789","direccion":"Main"}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(BookSchema, []byte(tt.doc))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidator_CachesCompiledSchema(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Validate(BookSchema, []byte(`{}`)))
	require.NoError(t, v.Validate(BookSchema, []byte(`{}`)))

	count := 0
	v.cache.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestValidator_InvalidSchema(t *testing.T) {
	v := NewValidator()
	err := v.Validate(map[string]any{"type": "nonsense"}, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema definition")
}

func TestDumpErrors_Truncates(t *testing.T) {
	out := dumpErrors([]string{"a", "b", "c", "d", "e"})
	assert.True(t, strings.HasPrefix(out, "a\n- b\n- c"))
	assert.Contains(t, out, "... and 2 more")
	assert.Equal(t, "only", dumpErrors([]string{"only"}))
}
