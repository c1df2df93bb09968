package cmd

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/buildergen/pkg/options"
)

func TestLoadOptions(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
in_dir: model
format: json
builder:
  suffix: Maker
  supplier: false
  non_null_markers: [Required]
`)))

	o, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, "model", o.InDir)
	assert.Equal(t, "builders", o.OutDir)
	assert.Equal(t, options.FormatJSON, o.Format)
	assert.Equal(t, "Maker", o.Builder.Suffix)
	assert.False(t, o.Builder.Supplier)
	assert.True(t, o.Builder.Consumer)
	assert.Equal(t, []string{"Required"}, o.Builder.NonNullMarkers)
	assert.Equal(t, options.AccessPublic, o.Builder.MethodAccess)
	require.NoError(t, o.Normalize())
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"trace":   LevelTrace,
		"TRACE":   LevelTrace,
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"debug+1": slog.LevelDebug + 1,
	} {
		got, err := parseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseLevel("loud")
	assert.Error(t, err)
}

func TestGeneratorsCommand(t *testing.T) {
	c := NewGeneratorsCommand()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, []string{"NAME", "PRIORITY", "BAND"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"string-helpers", "50", "text"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"setter", "10", "setter"}, strings.Fields(lines[8]))
}
