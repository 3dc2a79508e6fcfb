package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

func setupTestSaves(t *testing.T) *Saves {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := New(db, "testsaves")
	require.NoError(t, err)
	return s
}

func sampleSnapshot() session.Snapshot {
	return session.Snapshot{
		ID: "0b7c3f1e-6a0f-4d53-9a4b-2f8c2d9b1e11",
		Board: mines.Snapshot{
			Params:    mines.Params{Rows: 2, Cols: 2, MineCount: 1},
			Mines:     []bool{true, false, false, false},
			Revealed:  []bool{false, true, false, false},
			Flagged:   []bool{true, false, false, false},
			Outcome:   mines.Running,
			Remaining: 2,
		},
		Started: true,
		Elapsed: 12 * time.Second,
	}
}

func TestNewRejectsBadTable(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"", "saves; DROP TABLE x", "saves1", "my_saves"} {
		_, err := New(db, name)
		assert.ErrorIs(t, err, ErrBadTable, name)
	}
}

func TestGetMissing(t *testing.T) {
	s := setupTestSaves(t)
	_, err := s.Get("nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutAndGet(t *testing.T) {
	s := setupTestSaves(t)
	want := sampleSnapshot()
	require.NoError(t, s.Put("slot", want))

	got, err := s.Get("slot")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = mines.RestoreBoard(got.Board, nil)
	require.NoError(t, err)
}

func TestPutOverwrites(t *testing.T) {
	s := setupTestSaves(t)
	first := sampleSnapshot()
	require.NoError(t, s.Put("slot", first))

	second := sampleSnapshot()
	second.Elapsed = time.Minute
	require.NoError(t, s.Put("slot", second))

	got, err := s.Get("slot")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, got.Elapsed)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPutRejectsBadSlot(t *testing.T) {
	s := setupTestSaves(t)
	for _, slot := range []string{"", "two words", strings.Repeat("x", MaxSlotLen+1), "tab\there"} {
		assert.ErrorIs(t, s.Put(slot, sampleSnapshot()), ErrBadSlot, slot)
	}
}

func TestDelete(t *testing.T) {
	s := setupTestSaves(t)
	require.NoError(t, s.Delete("missing"))

	require.NoError(t, s.Put("slot", sampleSnapshot()))
	require.NoError(t, s.Delete("slot"))
	_, err := s.Get("slot")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSlotsAndCount(t *testing.T) {
	s := setupTestSaves(t)
	for _, slot := range []string{"c", "a", "d", "b"} {
		require.NoError(t, s.Put(slot, sampleSnapshot()))
	}

	slots, err := s.Slots()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, slots)

	require.NoError(t, s.Delete("a"))
	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSlotsEmpty(t *testing.T) {
	s := setupTestSaves(t)
	slots, err := s.Slots()
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSavesShareDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer db.Close()

	a, err := New(db, "alpha")
	require.NoError(t, err)
	b, err := New(db, "beta")
	require.NoError(t, err)

	require.NoError(t, a.Put("slot", sampleSnapshot()))
	_, err = b.Get("slot")
	assert.ErrorIs(t, err, ErrNotFound)
}
