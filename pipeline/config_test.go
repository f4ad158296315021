package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/fluxkit/errors"
)

const demoYAML = `
name: demo
source:
  items: [a, b, c]
stages:
  - kind: map
    op: uppercase
  - kind: filter
    op: not_equals
    arg: B
  - kind: context_write
    key: traceId
    value: abc-123
sink:
  context:
    userId: user-42
`

func TestParseConfig_Demo(t *testing.T) {
	cfg, err := ParseConfig([]byte(demoYAML))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, []any{"a", "b", "c"}, cfg.Source.Items)
	require.Len(t, cfg.Stages, 3)

	assert.Equal(t, KindMap, cfg.Stages[0].Kind)
	assert.Equal(t, "uppercase", cfg.Stages[0].Op)

	assert.Equal(t, KindFilter, cfg.Stages[1].Kind)
	assert.Equal(t, "B", cfg.Stages[1].Arg)

	assert.Equal(t, KindContextWrite, cfg.Stages[2].Kind)
	assert.Equal(t, "traceId", cfg.Stages[2].Key)
	assert.Equal(t, "abc-123", cfg.Stages[2].Value)

	assert.Equal(t, "user-42", cfg.Sink.Context["userId"])
	assert.Equal(t, int64(0), cfg.Sink.Demand)
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	_, err := ParseConfig([]byte("{not yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Name)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Name:   "p",
		Source: SourceConfig{Items: []any{"a"}},
		Stages: []StageConfig{
			{Kind: KindMap, Op: "uppercase"},
			{Kind: KindContextWrite, Key: "k", Value: "v"},
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
	}{
		{"missing name", func(c *Config) { c.Name = "" }, errors.ErrMissingConfig},
		{"negative demand", func(c *Config) { c.Sink.Demand = -1 }, errors.ErrInvalidConfig},
		{"map without op", func(c *Config) { c.Stages[0].Op = "" }, errors.ErrMissingConfig},
		{"context_write without key", func(c *Config) { c.Stages[1].Key = "" }, errors.ErrMissingConfig},
		{"unknown kind", func(c *Config) { c.Stages[0].Kind = "reduce" }, errors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Stages = append([]StageConfig(nil), valid.Stages...)
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestConfig_EmptySourceIsValid(t *testing.T) {
	cfg := Config{Name: "empty"}
	assert.NoError(t, cfg.Validate())
}
