package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailscale/hujson"
)

func parseValue(t *testing.T, s string) hujson.Value {
	t.Helper()
	v, err := hujson.Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func TestClassifyResource_Variants(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		legacy bool
	}{
		{"string", `"wood"`, true},
		{"number", `42`, true},
		{"boolean", `true`, true},
		{"object", `{"name": "iron", "weight": 7}`, false},
		{"empty object", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ClassifyResource(parseValue(t, tt.input))
			require.NoError(t, err)

			switch r := res.(type) {
			case LegacyResource:
				assert.True(t, tt.legacy, "expected migrated resource")
				assert.Equal(t, tt.input, string(r.Name))
			case MigratedResource:
				assert.False(t, tt.legacy, "expected legacy resource")
			default:
				t.Fatalf("unexpected resource type %T", res)
			}
		})
	}
}

func TestClassifyResource_Rejected(t *testing.T) {
	tests := []struct {
		input string
		kind  string
	}{
		{`null`, "null"},
		{`["wood"]`, "array"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			_, err := ClassifyResource(parseValue(t, tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unsupported resource of kind "+tt.kind)
		})
	}
}

func TestLegacyResource_Migrate(t *testing.T) {
	res := LegacyResource{Name: hujson.Literal(`"wood"`)}

	v := res.Migrate(4)
	assert.Equal(t, `{"name":"wood","weight":4}`, string(v.Pack()))
}

func TestLegacyResource_MigrateKeepsEscapes(t *testing.T) {
	res := LegacyResource{Name: hujson.Literal(`"café"`)}

	v := res.Migrate(10)
	assert.Equal(t, `{"name":"café","weight":10}`, string(v.Pack()))
}

func TestProfile_Resources(t *testing.T) {
	doc, err := Parse([]byte(`[
		{"name": "Alice"},
		{"expertise_data": {}},
		{"expertise_data": {"resources": []}},
		{"expertise_data": {"resources": ["wood"]}}
	]`), ParseOptions{})
	require.NoError(t, err)

	profiles := doc.Profiles()
	require.Len(t, profiles, 4)

	arr, err := profiles[0].Resources()
	require.NoError(t, err)
	assert.Nil(t, arr)

	arr, err = profiles[1].Resources()
	require.NoError(t, err)
	assert.Nil(t, arr)

	arr, err = profiles[2].Resources()
	require.NoError(t, err)
	require.NotNil(t, arr)
	assert.Len(t, arr.Elements, 0)

	arr, err = profiles[3].Resources()
	require.NoError(t, err)
	require.NotNil(t, arr)
	assert.Len(t, arr.Elements, 1)
}

func TestStructuralError_Messages(t *testing.T) {
	tests := []struct {
		err      *StructuralError
		expected string
	}{
		{
			err:      &StructuralError{Profile: -1, Resource: -1, Message: "top-level value must be an array, got object"},
			expected: "structural error: top-level value must be an array, got object",
		},
		{
			err:      &StructuralError{Profile: 2, Resource: -1, Path: "expertise_data", Message: "expected object, got string"},
			expected: "structural error: profile 2: expertise_data: expected object, got string",
		},
		{
			err:      &StructuralError{Profile: 0, Resource: 3, Path: "expertise_data.resources", Message: "unsupported resource of kind null"},
			expected: "structural error: profile 0: expertise_data.resources[3]: unsupported resource of kind null",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.err.Error())
	}
}
