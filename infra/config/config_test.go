package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Labels  []string  `mapstructure:"labels"`
	Values  []float64 `mapstructure:"values"`
	MaxIter int       `mapstructure:"maxIter"`
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	type test struct {
		file    string
		content string
	}

	tests := map[string]test{
		"json": {
			file:    "settings.json",
			content: `{"labels":["Low","High"],"values":[0.1,0.9],"maxIter":50}`,
		},
		"yaml": {
			file:    "settings.yaml",
			content: "labels: [Low, High]\nvalues: [0.1, 0.9]\nmaxIter: 50\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(p, []byte(tt.content), 0644))

			var s settings
			require.NoError(t, LoadFile(p, &s))
			assert.Equal(t, settings{
				Labels:  []string{"Low", "High"},
				Values:  []float64{0.1, 0.9},
				MaxIter: 50,
			}, s)
		})
	}
}

func TestLoadFile_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"maxIter":50}`), 0644))
	t.Setenv("GRANULO_MAXITER", "7")

	var s settings
	require.NoError(t, LoadFile(p, &s))
	assert.Equal(t, 7, s.MaxIter)
}

func TestLoadFile_Missing(t *testing.T) {
	var s settings
	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "none.json"), &s))
}

func TestLoad_NotFound(t *testing.T) {
	var s settings
	err := Load("none", &s)
	require.Error(t, err)
	assert.True(t, NotFound(err))

	err = LoadFile(filepath.Join(t.TempDir(), "none.json"), &s)
	require.Error(t, err)
	assert.False(t, NotFound(err))
}
