package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ratewatch/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestStore_Load_MissingFile_ReturnsEmptyHistory(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "rates.json"))

	h, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Empty(t, h)
}

func TestStore_SaveAndLoad_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "rates.json"))

	h := domain.History{
		"USD": {"2026-08-20": 2.97, "2026-08-21": 2.98},
		"EUR": {"2026-08-21": 3.45},
	}
	require.NoError(t, s.Save(context.Background(), h))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, h, loaded)
}

func TestStore_Save_CreatesParentDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "rates.json"))

	require.NoError(t, s.Save(context.Background(), domain.History{"USD": {"2026-08-21": 2.97}}))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 2.97, loaded["USD"]["2026-08-21"], 1e-9)
}

func TestStore_Load_CorruptFile_RecoversWithEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	s := NewStore(path)

	h, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, h)
}

func TestStore_Save_LeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.json")
	s := NewStore(path)

	require.NoError(t, s.Save(context.Background(), domain.History{"USD": {"2026-08-21": 2.97}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "rates.json", entries[0].Name())
}

func TestStore_Save_OverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	s := NewStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, domain.History{"USD": {"2026-08-20": 2.90}}))
	require.NoError(t, s.Save(ctx, domain.History{"USD": {"2026-08-20": 2.90, "2026-08-21": 2.97}}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded["USD"], 2)
}
