package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finplan/internal/config"
	"finplan/internal/manager"
	"finplan/internal/registry"
	"finplan/internal/training"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, splitCSV(c.in), c.in)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "finplan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("models_dir: from-file\ndata_dir: data-file\naddr: \":7000\"\n"), 0o644))
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("FINPLAN_DATA_DIR=data-env\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(config.EnvDataDir) })

	cfg, err := loadConfig(&globalOpts{configPath: cfgPath, envFile: envPath, modelsDir: "from-flag"})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.ModelsDir)
	assert.Equal(t, "data-env", cfg.DataDir)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "degraded", cfg.StartupPolicy)
}

func TestLoadConfigMissingExplicitEnvFile(t *testing.T) {
	_, err := loadConfig(&globalOpts{envFile: filepath.Join(t.TempDir(), "missing.env")})
	assert.Error(t, err)
}

func TestNewLoggerLevels(t *testing.T) {
	log, closer := newLogger(config.LogConfig{Level: "debug", Format: "console"})
	defer closer.Close()
	assert.Equal(t, "debug", log.GetLevel().String())

	log, closer2 := newLogger(config.LogConfig{Level: "nonsense"})
	defer closer2.Close()
	assert.Equal(t, "info", log.GetLevel().String())
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finplan.log")
	log, closer := newLogger(config.LogConfig{Level: "info", File: path})
	log.Info().Msg("hello")
	require.NoError(t, closer.Close())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}

func TestRootHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "train", "check"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestCheckFailsOnEmptyModelsDir(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"check", "--models-dir", t.TempDir(), "--log-level", "error", "--env-file", writeEmptyEnv(t)})
	assert.Error(t, root.Execute())
}

func TestCheckReportListsStrayArtifacts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{registry.DefaultForecasterFile, "old_gold_model.pkl", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	rep := manager.LoadReport{Dir: dir, State: manager.StateError, LastError: "2 model(s) failed to load"}

	r := buildCheckReport(rep, dir, registry.Names{})
	assert.Empty(t, r.ScanError)
	require.Len(t, r.Files, 2)
	assert.Equal(t, registry.DefaultForecasterFile, r.Files[0].Name)
	assert.Equal(t, "old_gold_model.pkl", r.Files[1].Name)
	assert.Equal(t, []string{"old_gold_model.pkl"}, r.Unexpected)
	assert.Equal(t, "error", r.Models.State)

	// a renamed forecaster makes the default file the stray one
	r = buildCheckReport(rep, dir, registry.Names{Forecaster: "old_gold_model.pkl"})
	assert.Equal(t, []string{registry.DefaultForecasterFile}, r.Unexpected)

	var buf bytes.Buffer
	require.NoError(t, writeCheckReport(&buf, r))
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Contains(t, out, "models")
	assert.Contains(t, out, "files")
	assert.Contains(t, out, "unexpected")
}

func TestCheckReportMissingDir(t *testing.T) {
	r := buildCheckReport(manager.LoadReport{}, filepath.Join(t.TempDir(), "nope"), registry.Names{})
	assert.NotEmpty(t, r.ScanError)
	assert.Empty(t, r.Files)
	assert.Nil(t, r.Unexpected)
}

func TestTrainSummary(t *testing.T) {
	s := summary(training.Result{RowsUsed: 3})
	assert.Equal(t, 3, s.RowsUsed)
	assert.NotNil(t, s.Artifacts)
}

func writeEmptyEnv(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	return p
}
