package manifest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoaderWithFs(afero.NewMemMapFs())

	cfg, err := loader.Load("/nonexistent/path/manifest.yaml")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	yamlContent := `
jobs:
  - repository: platform
    path: /deploy/templates
    local: ./templates
    ref: v2.3.0
  - path: docs/readme.md
    local: ./docs/
options:
  project: Infrastructure
  dry_run: true
`
	require.NoError(t, afero.WriteFile(fs, "/work/mirror.yaml", []byte(yamlContent), 0644))

	cfg, err := NewLoaderWithFs(fs).Load("/work/mirror.yaml")
	require.NoError(t, err)

	require.Len(t, cfg.Jobs, 2)
	assert.Equal(t, Job{Repository: "platform", Path: "/deploy/templates", Local: "./templates", Ref: "v2.3.0"}, cfg.Jobs[0])
	assert.Equal(t, Job{Path: "docs/readme.md", Local: "./docs/"}, cfg.Jobs[1])
	assert.Equal(t, "Infrastructure", cfg.Options.Project)
	assert.True(t, cfg.Options.DryRun)
}

func TestLoader_Load_ValidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	jsonContent := `{
		"jobs": [
			{"repository": "platform", "path": "/src", "local": "out", "ref": "main"}
		],
		"options": {"project": "Infrastructure"}
	}`
	require.NoError(t, afero.WriteFile(fs, "/work/mirror.JSON", []byte(jsonContent), 0644))

	cfg, err := NewLoaderWithFs(fs).Load("/work/mirror.JSON")
	require.NoError(t, err)

	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, "main", cfg.Jobs[0].Ref)
	assert.False(t, cfg.Options.DryRun)
}

func TestLoader_LoadFromBytes_Errors(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		data    string
		ext     string
		wantErr error
	}{
		{"unsupported extension", "jobs: []", ".toml", ErrUnsupportedExt},
		{"invalid yaml", "jobs: [", ".yaml", ErrInvalidFormat},
		{"invalid json", "{", ".json", ErrInvalidFormat},
		{"no jobs", "options:\n  project: p\n", ".yml", ErrNoJobs},
		{"empty path", "jobs:\n  - repository: r\n    path: \"  \"\n", ".yaml", ErrEmptyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loader.LoadFromBytes([]byte(tt.data), tt.ext)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJob_String(t *testing.T) {
	assert.Equal(t, "platform:/src@main", Job{Repository: "platform", Path: "/src", Ref: "main"}.String())
	assert.Equal(t, ":/src", Job{Path: "/src"}.String())
}
