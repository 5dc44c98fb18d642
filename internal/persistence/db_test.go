package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/euro-diffusion/internal/report"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleResults() []CaseResult {
	return []CaseResult{
		{Number: 1, Results: report.Sort(map[string]int{"France": 1325, "Spain": 382, "Portugal": 416})},
		{Number: 2, Error: "city has no neighbors"},
		{Number: 3, Results: report.Sort(map[string]int{"Luxembourg": 0})},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTemp(t)
	started := time.Unix(1_700_000_000, 0)

	run, err := db.SaveRun("input.txt", started, sampleResults())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 3, run.Cases)

	loaded, cases, err := db.LoadRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, loaded)
	assert.True(t, loaded.Started().Equal(started))
	assert.Equal(t, sampleResults(), cases)
}

func TestLoadRunUnknownID(t *testing.T) {
	db := openTemp(t)
	_, _, err := db.LoadRun("missing")
	assert.Error(t, err)
}

func TestRecentRunsNewestFirst(t *testing.T) {
	db := openTemp(t)
	base := time.Unix(1_700_000_000, 0)

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := db.SaveRun("stdin", base.Add(time.Duration(i)*time.Minute), sampleResults()[:1])
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := db.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(path)
	require.NoError(t, err)
	run, err := db.SaveRun("stdin", time.Now(), sampleResults())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}
