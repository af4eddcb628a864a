package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/senryoku/pkg/draft"
	"tableflip.dev/senryoku/pkg/fleet"
	"tableflip.dev/senryoku/pkg/roster"
)

func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := Open(t.TempDir())

	s := roster.NewState()
	s.EnsureUser("alice")
	s.ToggleOwned("alice", roster.Item{Name: "kirov", Type: "cruiser"})
	s.SetSeriesPoint("alice", "kirov", roster.PointOf(5))
	s.SetUnusedPoint("alice", fleet.Cruiser, roster.PointOf(2))
	require.NoError(t, p.SaveState(ctx, s))

	back := p.LoadState(ctx)
	assert.True(t, back.IsOwned("alice", "kirov"))
	assert.Equal(t, 5, back.SeriesPoint("alice", "kirov").Value())
	assert.Equal(t, 2, back.UnusedPoint("alice", fleet.Cruiser).Value())
	assert.False(t, back.SeriesPoint("alice", "reliat").Set(),
		"absent entries must stay absent across the round trip")
}

func TestLoadStateEmptyCache(t *testing.T) {
	p := Open(t.TempDir())

	s := p.LoadState(context.Background())
	require.NotNil(t, s)
	assert.Empty(t, s.UserNames(""))
	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.SeriesPoints)
	assert.NotNil(t, s.UnusedPoints)
}

func TestLoadStateMalformedDocFallsBackToEmpty(t *testing.T) {
	base := t.TempDir()
	p := Open(base)

	s := roster.NewState()
	s.EnsureUser("alice")
	require.NoError(t, p.SaveState(context.Background(), s))

	// Corrupt one sub-document on disk. The key's first dash segment is
	// its directory.
	path := filepath.Join(base, "roster", "users")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	back := p.LoadState(context.Background())
	assert.Empty(t, back.UserNames(""), "a malformed document reads as absent")
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := Open(t.TempDir())

	in := &Session{
		SelectedUser: "alice",
		Group:        fleet.GroupLargeHull,
		ShipQuery:    "kirov",
		Scroll:       map[string]int{"catalog": 7},
		Drafts: []draft.Entry{
			{Key: draft.Key{User: "alice", Field: draft.SeriesField("kirov")}, Raw: "12"},
		},
	}
	require.NoError(t, p.SaveSession(ctx, in))

	out := p.LoadSession(ctx)
	assert.Equal(t, "alice", out.SelectedUser)
	assert.Equal(t, fleet.GroupLargeHull, out.Group)
	assert.Equal(t, 7, out.Scroll["catalog"])
	require.Len(t, out.Drafts, 1)
	assert.Equal(t, "12", out.Drafts[0].Raw)
}

func TestLoadSessionEmptyCache(t *testing.T) {
	p := Open(t.TempDir())
	out := p.LoadSession(context.Background())
	require.NotNil(t, out)
	assert.Empty(t, out.SelectedUser)
}

func TestKeyTransformsInverse(t *testing.T) {
	for _, key := range []string{"roster-users", "roster-seriespoints", "ui-session"} {
		pk := keyToPathTransform(key)
		assert.Equal(t, key, pathToKeyTransform(pk))
	}
}
