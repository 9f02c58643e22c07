package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobdigest-engine/internal/digest"
	"jobdigest-engine/internal/feed"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func sampleRecord(id string, isJob, isFit bool) digest.Record {
	return digest.Record{
		ID:                      id,
		Subject:                 "PhD Position, Institut für Policy",
		From:                    "a@b.org",
		Date:                    "2024-01-01",
		Organization:            "Institut für Policy",
		Deadline:                "March 1",
		PositionType:            "PhD",
		Links:                   []string{"https://example.org/job"},
		Snippet:                 "We use Python and statistics for policy evaluation.",
		IsJob:                   isJob,
		IsDsPolicyFit:           isFit,
		DsPolicyScore:           4,
		DsPolicyMatchedKeywords: []string{"statistics", "python", "policy", "evaluation"},
	}
}

func TestInsertRecordIgnoreDedupesByFingerprint(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	added, err := InsertRecordIgnore(ctx, db.Pool, sampleRecord("abc123", true, true))
	require.NoError(t, err)
	require.True(t, added)

	added, err = InsertRecordIgnore(ctx, db.Pool, sampleRecord("abc123", true, true))
	require.NoError(t, err)
	require.False(t, added)

	added, err = InsertRecordIgnore(ctx, db.Pool, sampleRecord("def456", true, false))
	require.NoError(t, err)
	require.True(t, added)
}

func TestListRecordsFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := InsertRecordIgnore(ctx, db.Pool, sampleRecord("r1", true, true))
	require.NoError(t, err)
	_, err = InsertRecordIgnore(ctx, db.Pool, sampleRecord("r2", true, false))
	require.NoError(t, err)
	_, err = InsertRecordIgnore(ctx, db.Pool, sampleRecord("r3", false, false))
	require.NoError(t, err)

	all, err := ListRecords(ctx, db.Pool, ListRecordsOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	jobs, err := ListRecords(ctx, db.Pool, ListRecordsOpts{OnlyJobs: true})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	fits, err := ListRecords(ctx, db.Pool, ListRecordsOpts{OnlyFit: true})
	require.NoError(t, err)
	require.Len(t, fits, 1)
	require.Equal(t, "r1", fits[0].ID)

	// list round-trips the JSON columns
	require.Equal(t, []string{"https://example.org/job"}, fits[0].Links)
	require.Equal(t, []string{"statistics", "python", "policy", "evaluation"}, fits[0].DsPolicyMatchedKeywords)
}

func TestListRecordsAssignsSequentialIndexes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := InsertRecordIgnore(ctx, db.Pool, sampleRecord(id, true, true))
		require.NoError(t, err)
	}

	out, err := ListRecords(ctx, db.Pool, ListRecordsOpts{})
	require.NoError(t, err)
	for i, r := range out {
		require.Equal(t, i+1, r.Index)
	}
}

func TestExportSnapshot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := InsertRecordIgnore(ctx, db.Pool, sampleRecord("snap1", true, true))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, ExportSnapshot(ctx, db.Pool, path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var p feed.Payload
	require.NoError(t, json.Unmarshal(b, &p))
	require.NotEmpty(t, p.GeneratedAt)
	require.Equal(t, "engine", p.Source)
	require.Equal(t, 1, p.Stats.TotalItems)

	items := p.DecodeItems()
	require.Len(t, items, 1)
	require.Equal(t, "snap1", items[0].ID)
	require.NotNil(t, items[0].IsJob)
	require.True(t, *items[0].IsJob)
}
