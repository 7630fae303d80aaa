package file_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	file "github.com/PabloGalante/modelfix-agent/internal/adapters/storage/file"
	"github.com/PabloGalante/modelfix-agent/internal/domain"
)

func newStore(t *testing.T) *file.Store {
	t.Helper()
	dir := t.TempDir()
	return file.NewStore(filepath.Join(dir, "record.json"), filepath.Join(dir, "log.jsonl"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	history := domain.History{
		{Role: domain.RoleSystem, Content: "You are a checker"},
		{Role: domain.RoleUser, Content: "fix this"},
		{Role: domain.RoleAssistant, Content: "done"},
	}

	require.NoError(t, store.Save(ctx, history))
	assert.Equal(t, history, store.Load(ctx))
}

func TestLoadMissingSnapshotReturnsEmpty(t *testing.T) {
	store := newStore(t)
	assert.Empty(t, store.Load(context.Background()))
}

func TestLoadCorruptSnapshotReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "record.json")
	require.NoError(t, os.WriteFile(snapshot, []byte("{not json"), 0o644))

	store := file.NewStore(snapshot, filepath.Join(dir, "log.jsonl"))
	assert.Empty(t, store.Load(context.Background()))
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Save(ctx, domain.History{{Role: domain.RoleUser, Content: "old"}}))

	next := domain.History{{Role: domain.RoleUser, Content: "new"}}
	require.NoError(t, store.Save(ctx, next))
	assert.Equal(t, next, store.Load(ctx))
}

func TestAppendLogAccumulatesEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.jsonl")
	store := file.NewStore(filepath.Join(dir, "record.json"), logPath)

	require.NoError(t, store.AppendLog(ctx, domain.Message{Role: domain.RoleUser, Content: "first"}))
	require.NoError(t, store.AppendLog(ctx, domain.Message{Role: domain.RoleAssistant, Content: "second"}))

	f, err := os.Open(logPath)
	require.NoError(t, err)
	defer f.Close()

	var entries []domain.LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry domain.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	assert.Equal(t, domain.RoleUser, entries[0].Role)
	assert.Equal(t, "first", entries[0].Content)
	assert.Equal(t, domain.RoleAssistant, entries[1].Role)
	assert.Equal(t, "second", entries[1].Content)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestResetWithSeed(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	seed := domain.History{{Role: domain.RoleSystem, Content: "seed"}}
	require.NoError(t, store.Reset(ctx, seed))
	assert.Equal(t, seed, store.Load(ctx))
}

func TestResetDefaultsToEmpty(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Save(ctx, domain.History{{Role: domain.RoleUser, Content: "old"}}))
	require.NoError(t, store.Reset(ctx, nil))
	assert.Empty(t, store.Load(ctx))
}

func TestResetMalformedSeedLeavesStorageUntouched(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	before := domain.History{{Role: domain.RoleUser, Content: "keep me"}}
	require.NoError(t, store.Save(ctx, before))

	err := store.Reset(ctx, domain.History{{Role: "robot", Content: "nope"}})
	require.ErrorIs(t, err, domain.ErrMalformedSeed)
	assert.Equal(t, before, store.Load(ctx))
}
