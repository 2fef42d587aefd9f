package logs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer repo.Close()

	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	g := &Game{
		Timestamp: when,
		PlayerX:   "human",
		PlayerO:   "capture:1",
		Rule:      "follow-up",
		Winner:    "O",
		Plies:     31,
		Record:    "1. 6b-5a 3a-4b\n0-1\n",
	}
	require.NoError(t, repo.InsertGame(g))
	assert.NotZero(t, g.ID)

	require.NoError(t, repo.InsertGames([]*Game{
		{Timestamp: when.Add(time.Minute), PlayerX: "rand", PlayerO: "human", Winner: "X", Plies: 20},
		{Timestamp: when.Add(2 * time.Minute), PlayerX: "human", PlayerO: "rand", Winner: "X", Plies: 25},
	}))

	games, err := repo.Games(10)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, 25, games[0].Plies)
	last := games[2]
	assert.Equal(t, g.ID, last.ID)
	assert.Equal(t, g.Record, last.Record)
	assert.Equal(t, "capture:1", last.PlayerO)
	assert.True(t, when.Equal(last.Timestamp), "time=%v", last.Timestamp)

	games, err = repo.Games(1)
	require.NoError(t, err)
	assert.Len(t, games, 1)

	standings, err := repo.Standings()
	require.NoError(t, err)
	wins := make(map[string]int)
	for _, s := range standings {
		if s.Result == "win" {
			wins[s.Player] += s.Games
		}
	}
	assert.Equal(t, map[string]int{"human": 1, "rand": 1, "capture:1": 1}, wins)
}
