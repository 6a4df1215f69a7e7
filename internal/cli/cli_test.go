package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/contactsim/internal/logging"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{"CONTACTSIM_PAGE_SIZE", "CONTACTSIM_BATCH_SIZE", "CONTACTSIM_DATA_DIR", "CONTACTSIM_LOG_LEVEL", "CONTACTSIM_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	return testEnv{configDir: filepath.Join(dir, "config"), dataDir: filepath.Join(dir, "data")}
}

func (e testEnv) writeConfig(t *testing.T, cfg configFile) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, configFileExt), data, 0o644))
}

// execute runs the CLI with the environment's directories and returns
// stdout.
func (e testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&app{now: func() time.Time { return testNow }})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "contactsim v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.execute(t, "init")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, env.dataDir, cfg.DataDir)
	assert.FileExists(t, filepath.Join(env.dataDir, "transcripts.db"))

	t.Run("keeps an existing config", func(t *testing.T) {
		env.writeConfig(t, configFile{PageSize: 7, BatchSize: 3})
		_, err := env.execute(t, "init")
		require.NoError(t, err)
		s, err := loadSettings(env.configDir)
		require.NoError(t, err)
		assert.Equal(t, 7, s.PageSize)
	})
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *configFile
		env     map[string]string
		want    settings
		wantErr bool
	}{
		{
			name: "defaults without a file",
			want: defaultSettings(),
		},
		{
			name: "file values",
			cfg:  &configFile{PageSize: 2, BatchSize: 5, LogLevel: "debug", LogFormat: "json"},
			want: settings{PageSize: 2, BatchSize: 5, Logging: loggingConfig("debug", "json")},
		},
		{
			name: "environment overrides file",
			cfg:  &configFile{PageSize: 2, BatchSize: 5, LogLevel: "info", LogFormat: "text"},
			env:  map[string]string{"CONTACTSIM_PAGE_SIZE": "9"},
			want: settings{PageSize: 9, BatchSize: 5, Logging: loggingConfig("info", "text")},
		},
		{
			name:    "non-positive page size",
			cfg:     &configFile{PageSize: -1, BatchSize: 5},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.cfg != nil {
				env.writeConfig(t, *tt.cfg)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := loadSettings(env.configDir)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimulateJSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, configFile{PageSize: 2, BatchSize: 2, LogLevel: "error", LogFormat: "text"})

	out, err := env.execute(t, "--json", "simulate", "contacts", "--count", "3", "--property", "email")
	require.NoError(t, err)

	var calls []callView
	require.NoError(t, json.Unmarshal([]byte(out), &calls))
	require.Len(t, calls, 3)
	assert.Equal(t, "/contacts/v1/properties", calls[0].Path)
	assert.Equal(t, "count=2&property=email", calls[1].Query)
	assert.Equal(t, "count=2&property=email&vidOffset=2", calls[2].Query)
}

func TestSimulateFailure(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, configFile{PageSize: 1, BatchSize: 1, LogLevel: "error", LogFormat: "text"})

	out, err := env.execute(t, "--json", "simulate", "save", "--count", "3", "--fail-at", "1", "--fail-kind", "client")
	require.NoError(t, err)

	var calls []callView
	require.NoError(t, json.Unmarshal([]byte(out), &calls))
	require.Len(t, calls, 3)
	require.NotNil(t, calls[2].Error)
	assert.Equal(t, "client", calls[2].Error.Kind)
}

func TestSimulateInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scenario", []string{"simulate", "nope"}},
		{"unknown failure kind", []string{"simulate", "save", "--fail-at", "0", "--fail-kind", "bogus"}},
		{"failure index past last batch", []string{"simulate", "save", "--fail-at", "5"}},
		{"negative count", []string{"simulate", "contacts", "--count", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		scenario string
		args     []string
		check    func(t *testing.T, view map[string]any)
	}{
		{
			scenario: "contacts",
			args:     []string{"--property", "firstname"},
			check: func(t *testing.T, view map[string]any) {
				contacts := view["result"].([]any)
				require.Len(t, contacts, 3)
				first := contacts[0].(map[string]any)
				assert.Equal(t, float64(1), first["vid"])
				assert.Equal(t, "contact1@example.com", first["email"])
				assert.Equal(t, map[string]any{"firstname": "Contact 1"}, first["properties"])
			},
		},
		{
			scenario: "recent",
			args:     []string{"--cutoff", "1ms"},
			check: func(t *testing.T, view map[string]any) {
				assert.Len(t, view["result"].([]any), 2)
			},
		},
		{
			scenario: "list-contacts",
			check: func(t *testing.T, view map[string]any) {
				assert.Len(t, view["result"].([]any), 3)
			},
		},
		{
			scenario: "list-recent",
			check: func(t *testing.T, view map[string]any) {
				assert.Len(t, view["result"].([]any), 3)
			},
		},
		{
			scenario: "save",
			check: func(t *testing.T, view map[string]any) {
				assert.Equal(t, map[string]any{"saved": float64(3)}, view["result"])
				assert.Equal(t, float64(3), view["calls"])
			},
		},
		{
			scenario: "add",
			check: func(t *testing.T, view map[string]any) {
				assert.Equal(t, map[string]any{"updated": []any{float64(1), float64(3)}}, view["result"])
			},
		},
		{
			scenario: "remove",
			check: func(t *testing.T, view map[string]any) {
				assert.Equal(t, map[string]any{"updated": []any{float64(1), float64(3)}}, view["result"])
			},
		},
		{
			scenario: "lists",
			check: func(t *testing.T, view map[string]any) {
				assert.Len(t, view["result"].([]any), 3)
			},
		},
		{
			scenario: "properties",
			check: func(t *testing.T, view map[string]any) {
				assert.Len(t, view["result"].([]any), len(catalogue))
			},
		},
		{
			scenario: "groups",
			check: func(t *testing.T, view map[string]any) {
				groups := view["result"].([]any)
				require.Len(t, groups, 1)
				assert.Equal(t, "contactinformation", groups[0].(map[string]any)["name"])
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			env := newTestEnv(t)
			env.writeConfig(t, configFile{PageSize: 2, BatchSize: 2, LogLevel: "error", LogFormat: "text"})

			out, err := env.execute(t, append([]string{"--json", "run", tt.scenario}, tt.args...)...)
			require.NoError(t, err)

			var view map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &view))
			assert.Equal(t, tt.scenario, view["scenario"])
			assert.Nil(t, view["error"])
			tt.check(t, view)
		})
	}
}

func TestRunReportsPortalFailure(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, configFile{PageSize: 1, BatchSize: 1, LogLevel: "error", LogFormat: "text"})

	out, err := env.execute(t, "--json", "run", "contacts", "--count", "3", "--fail-at", "2")
	require.NoError(t, err)

	var view runView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 4, view.Calls)
	assert.Contains(t, view.Error, "simulated server error")
}

func TestRecordExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, configFile{PageSize: 2, BatchSize: 2, LogLevel: "error", LogFormat: "text"})

	out, err := env.execute(t, "--json", "run", "save", "--record")
	require.NoError(t, err)
	var view runView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.NotEmpty(t, view.Session)

	_, err = env.execute(t, "simulate", "lists", "--record")
	require.NoError(t, err)

	out, err = env.execute(t, "--json", "sessions")
	require.NoError(t, err)
	var sessions []sessionView
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 2)

	var saved sessionView
	for _, s := range sessions {
		if s.ID == view.Session {
			saved = s
		}
	}
	assert.Equal(t, "save", saved.Scenario)
	assert.Equal(t, 3, saved.Calls)

	path := filepath.Join(t.TempDir(), "save.jsonl")
	_, err = env.execute(t, "export", view.Session, path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	out, err = env.execute(t, "import", path)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	out, err = env.execute(t, "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "SESSION")
	assert.Contains(t, out, "save")
}

func TestExportUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.execute(t, "export", "missing", filepath.Join(t.TempDir(), "out.jsonl"))
	assert.Error(t, err)
}

func loggingConfig(level, format string) logging.Config {
	return logging.Config{Level: level, Format: format}
}
