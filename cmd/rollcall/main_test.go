package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/platform/database"
)

const houseDoc = `{"rollcall-vote": {
  "vote-metadata": {"vote-question": "On Passage", "vote-result": "Passed", "action-date": "16-Jan-2020"},
  "vote-data": {"recorded-vote": [
    {"legislator": {"name-id": "A000370", "unaccented-name": "Adams", "party": "D", "state": "NC"}, "vote": "Yea"}
  ]}
}}`

func dataRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "116", "house", "2", "2020_1.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(houseDoc), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.json"), []byte(`{}`), 0o600))
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestProcessJSON(t *testing.T) {
	root := dataRoot(t)
	output := filepath.Join(t.TempDir(), "out", "votes.json")
	metricsFile := filepath.Join(t.TempDir(), "rollcall.prom")

	out, err := execute(t, "process", "json",
		"--data-root", root,
		"--output", output,
		"--metrics-file", metricsFile,
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "1 rollcalls, 1 votes from 1 files (1 skipped)")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc struct {
		Chambers map[string]json.RawMessage `json:"chambers"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc.Chambers, "house")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `rollcall_files_skipped_total{reason="invalid_path"} 1`)
}

func TestProcessSQLSingleFile(t *testing.T) {
	root := dataRoot(t)
	dsn := filepath.Join(t.TempDir(), "votes.db")

	out, err := execute(t, "process", "sql", filepath.Join(root, "116", "house", "2", "2020_1.json"),
		"--data-root", root,
		"--db-driver", "sqlite",
		"--db-dsn", dsn,
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "1 rollcalls, 1 members from 1 files (0 skipped)")

	db, err := database.Open(context.Background(), database.DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM vote_members`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestInvalidConfigurationFails(t *testing.T) {
	_, err := execute(t, "process", "json", "--workers", "-1", "--data-root", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must be positive")
}
