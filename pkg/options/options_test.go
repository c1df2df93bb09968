package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverride(t *testing.T) {
	base := DefaultConfig()
	tests := []struct {
		name    string
		values  map[string]string
		check   func(t *testing.T, c Config)
		wantErr string
	}{
		{
			name:   "booleans and names",
			values: map[string]string{"supplier": "false", "suffix": " Maker ", "method_access": "package"},
			check: func(t *testing.T, c Config) {
				assert.False(t, c.Supplier)
				assert.Equal(t, "Maker", c.Suffix)
				assert.Equal(t, AccessPackage, c.MethodAccess)
			},
		},
		{
			name:   "lists",
			values: map[string]string{"non_null_markers": "Required, NotBlank"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, []string{"Required", "NotBlank"}, c.NonNullMarkers)
			},
		},
		{name: "unknown key", values: map[string]string{"colour": "red"}, wantErr: `unknown builder option "colour"`},
		{name: "bad boolean", values: map[string]string{"consumer": "maybe"}, wantErr: "expected boolean"},
		{name: "bad access", values: map[string]string{"builder_access": "friends"}, wantErr: "expected access level"},
		{name: "empty required", values: map[string]string{"build_method": ""}, wantErr: "invalid builder configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.Override(tt.values)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Equal(t, base, got)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
	assert.True(t, base.Supplier, "base must not change")
}

func TestDefaults(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	for _, k := range Schema {
		v, ok := c.Get(k.Name)
		require.True(t, ok, k.Name)
		assert.Equal(t, k.Default, v, k.Name)
	}
	m := DefaultMap()
	assert.Equal(t, true, m["supplier"])
	assert.Equal(t, "Builder", m["suffix"])
	assert.Equal(t, []string{"NotNull", "NonNull", "Nonnull"}, m["non_null_markers"])
}

func TestMethodExcluded(t *testing.T) {
	c := DefaultConfig()
	c.ExcludeMethods = []string{"setInternal*", "Project#setId", "com.acme.Task#setDone"}
	assert.True(t, c.MethodExcluded("com.acme.Person", "setInternalState"))
	assert.True(t, c.MethodExcluded("com.acme.Project", "setId"))
	assert.False(t, c.MethodExcluded("com.acme.Person", "setId"))
	assert.True(t, c.MethodExcluded("com.acme.Task", "setDone"))
	assert.False(t, c.MethodExcluded("com.acme.Task", "setTitle"))
	assert.True(t, c.IsNonNullMarker("NonNull"))
	assert.False(t, c.IsNonNullMarker(""))
}

func TestNormalize(t *testing.T) {
	o := &Options{}
	require.NoError(t, o.Normalize())
	assert.Equal(t, FormatYAML, o.Format)
	assert.Equal(t, 1, o.Workers)
	assert.Equal(t, "module", o.ModuleFile)
	assert.Equal(t, "Builder", o.Builder.Suffix)

	o = NewOptions()
	WithFormat("toml")(o)
	assert.Error(t, o.Normalize())
	assert.Equal(t, ".yaml", FormatYAML.Ext())
	assert.Equal(t, ".msgpack", FormatMsgpack.Ext())
}
