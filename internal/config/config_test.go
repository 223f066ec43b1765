package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HEALTHDASH_INPUT", "HEALTHDASH_OUTPUT", "HEALTHDASH_WEB_DIR", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, DefaultInput, cfg.Input)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, "", cfg.WebDir)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.False(t, cfg.IsDatabase())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HEALTHDASH_INPUT", "postgres://health@localhost/brfss")
	t.Setenv("HEALTHDASH_OUTPUT", "/tmp/out.json")
	t.Setenv("PORT", "9090")

	cfg := FromEnv()
	assert.Equal(t, "/tmp/out.json", cfg.Output)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsDatabase())
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("HEALTHDASH_WEB_DIR", "")
	os.Unsetenv("HEALTHDASH_WEB_DIR")

	path := filepath.Join(t.TempDir(), ".env")
	assert.NoError(t, os.WriteFile(path, []byte("HEALTHDASH_WEB_DIR=web/dist\n"), 0o644))

	cfg := Load(path)
	assert.Equal(t, "web/dist", cfg.WebDir)
}
