package play

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/cli"
	"github.com/nelhage/checkers/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlayer(t *testing.T) {
	ctx := context.Background()
	in := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer

	p, err := parsePlayer(ctx, in, &out, "human", time.Second)
	require.NoError(t, err)
	_, ok := p.GetMove(checkers.New(checkers.Config{}))
	assert.False(t, ok, "human resigns at EOF")
	assert.Equal(t, "X> ", out.String())

	p, err = parsePlayer(ctx, in, &out, "capture:4", time.Second)
	require.NoError(t, err)
	m, ok := p.GetMove(checkers.New(checkers.Config{}))
	require.True(t, ok)
	assert.True(t, checkers.New(checkers.Config{}).IsValidMove(m.StartRow, m.StartCol, m.EndRow, m.EndCol))

	_, err = parsePlayer(ctx, in, &out, "deep-blue", time.Second)
	assert.Error(t, err)
}

func TestAIPlayerHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := parsePlayer(ctx, nil, nil, "rand:1", time.Second)
	require.NoError(t, err)
	_, ok := p.GetMove(checkers.New(checkers.Config{}))
	assert.False(t, ok)
}

func TestSelfPlayedGameIsLogged(t *testing.T) {
	var out bytes.Buffer
	st := &cli.CLI{
		Config: checkers.Config{Captures: checkers.SingleCapture},
		Out:    &out,
		Glyphs: &cli.DefaultGlyphs,
	}
	ctx := context.Background()
	var err error
	st.X, err = parsePlayer(ctx, nil, &out, "capture:1", time.Second)
	require.NoError(t, err)
	st.O, err = parsePlayer(ctx, nil, &out, "rand:2", time.Second)
	require.NoError(t, err)
	_, winner := st.Play()

	c := &Command{x: "capture:1", o: "rand:2"}
	start := time.Now()
	rec := c.record(st.Config, start)
	rec.AddMoves(st.Moves())
	rec.Winner = winner
	assert.Equal(t, "single", rec.FindTag("Rule"))

	db := filepath.Join(t.TempDir(), "games.db")
	require.NoError(t, logGame(db, rec, start))

	repo, err := logs.Open(db)
	require.NoError(t, err)
	defer repo.Close()
	games, err := repo.Games(1)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "capture:1", games[0].PlayerX)
	assert.Equal(t, winner.String(), games[0].Winner)
	assert.Equal(t, len(st.Moves()), games[0].Plies)
}
