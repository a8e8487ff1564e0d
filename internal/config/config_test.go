package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/strata/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"strata.yaml": `
log_level: debug
scenes_dir: ./docs/scenes
build:
  binding_target: stressmod
  version: "2.0"
server:
  port: "9090"
cache:
  backend: redis
  ttl: 10m
plot:
  levels: 20
tools:
  - name: cmake
    command: /usr/bin/cmake
  - name: python3
    args: ["-I"]
`})

	cfg, err := Load(filepath.Join(dir, "strata.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "./docs/scenes", cfg.ScenesDir)
	assert.Equal(t, "stressmod", cfg.Build.BindingTarget)
	assert.Equal(t, "2.0", cfg.Build.Version)
	assert.Equal(t, Default().Build.LibraryTarget, cfg.Build.LibraryTarget, "unset build keys keep defaults")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8081, cfg.Server.MCPPort)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Second, cfg.Cache.LockTTL)
	assert.Equal(t, 20, cfg.Plot.Levels)
	assert.Equal(t, "figures", cfg.Plot.OutputDir)

	tools := cfg.ToolMap()
	require.Len(t, tools, 2)
	assert.Equal(t, "/usr/bin/cmake", tools["cmake"].Command)
	assert.Equal(t, []string{"-I"}, tools["python3"].Args)
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"strata.json": `{"cache": {"backend": "memory", "lock_ttl": "5s"}}`})

	cfg, err := Load(filepath.Join(dir, "strata.json"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Cache.LockTTL)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "plots:\n  levels: 3\n",
		"unknown backend": "cache:\n  backend: memcached\n",
		"bad port":        "server:\n  port: 70000\n",
		"bad yaml":        "cache: [\n",
		"bad duration":    "cache:\n  ttl: soon\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			testutils.WriteFiles(t, dir, map[string]string{"strata.yaml": content})
			_, err := Load(filepath.Join(dir, "strata.yaml"))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strata.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load("../../strata.yaml")
	require.NoError(t, err)

	assert.Equal(t, "examples/scenes", cfg.ScenesDir)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Second, cfg.Cache.LockTTL)
	assert.Equal(t, "pyalgo", cfg.Build.BindingTarget)
	assert.Contains(t, cfg.ToolMap(), "ninja")
}
