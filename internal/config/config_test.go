package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_MissingFileReturnsDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if !assert.NoError(err) {
		return
	}
	assert.Equal(Defaults(), cfg)
}

func Test_Load_ParsesFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), ".grammatica.toml")
	content := "default_output = \"latex\"\ndefault_mode = \"lr1\"\neliminate_left_recursion = true\n"
	if !assert.NoError(os.WriteFile(path, []byte(content), 0o644)) {
		return
	}

	cfg, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("latex", cfg.DefaultOutput)
	assert.Equal("lr1", cfg.DefaultMode)
	assert.True(cfg.EliminateLeftRecursion)
}
