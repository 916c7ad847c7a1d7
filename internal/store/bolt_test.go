package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckydeck/lobby/internal/domain"
	"github.com/luckydeck/lobby/internal/log"
)

func TestBoltSource_SeedAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	snap := Snapshot{
		Games: testGames(),
		Providers: []domain.Provider{
			{ID: "p1", Name: "Nova Play"},
			{ID: "p2", Name: "Spinwright"},
		},
	}
	require.NoError(t, Seed(path, snap))

	loaded, err := NewBoltSource(path).Load()
	require.NoError(t, err)

	assert.Equal(t, snap.Games, loaded.Games, "games round-trip in source order")
	assert.Equal(t, snap.Providers, loaded.Providers)
}

func TestBoltSource_SeedOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	require.NoError(t, Seed(path, Snapshot{Games: testGames()}))
	require.NoError(t, Seed(path, Snapshot{Games: testGames()[:1]}))

	loaded, err := NewBoltSource(path).Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Games, 1)
}

func TestBoltSource_MissingFile(t *testing.T) {
	src := NewBoltSource(filepath.Join(t.TempDir(), "absent.db"))

	_, err := src.Load()
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestStore_FromBoltSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, Seed(path, Snapshot{Games: testGames()}))

	s := New(NewBoltSource(path), log.NullLogger())
	require.NoError(t, s.Initialize())

	assert.Equal(t, []string{"g1", "g2", "g3"}, idsOf(s.Games()))
}
