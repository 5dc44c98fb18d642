package persistence

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporterWritesCompressedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.jsonl.zst")
	exp, err := NewExporter(path)
	require.NoError(t, err)

	for _, c := range sampleResults() {
		require.NoError(t, exp.Write(ExportRecord{RunID: "run-1", CaseResult: c}))
	}
	require.NoError(t, exp.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var got []ExportRecord
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var rec ExportRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		got = append(got, rec)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, got, 3)
	assert.Equal(t, "run-1", got[0].RunID)
	assert.Equal(t, sampleResults()[0], got[0].CaseResult)
	assert.Equal(t, "city has no neighbors", got[1].Error)
	assert.Empty(t, got[1].Results)
}
