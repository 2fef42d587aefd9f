package session

import (
	"testing"

	"github.com/nelhage/checkers/ai"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/checkerstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickSelectAndMove(t *testing.T) {
	s := New(checkers.Config{}, nil)

	assert.Equal(t, Ignored, s.Click(3, 0), "empty square")
	assert.Equal(t, Ignored, s.Click(5, 0), "opponent piece")
	assert.Equal(t, Selected, s.Click(2, 1))
	r, c, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, [2]int{2, 1}, [2]int{r, c})

	assert.Equal(t, Moved, s.Click(3, 0))
	_, _, ok = s.Selected()
	assert.False(t, ok)
	assert.Equal(t, checkers.O, s.Position().ToMove())
	assert.Equal(t, "6b-5a", checkerstest.FormatMoves(s.Moves()))
}

func TestClickIllegalTargetDeselects(t *testing.T) {
	s := New(checkers.Config{}, nil)
	before := s.Position()

	require.Equal(t, Selected, s.Click(2, 1))
	assert.Equal(t, Deselected, s.Click(4, 1))
	_, _, ok := s.Selected()
	assert.False(t, ok)

	after := s.Position()
	assert.Equal(t, before.Rows(), after.Rows())
	assert.Equal(t, before.ToMove(), after.ToMove())
	assert.Empty(t, s.Moves())
}

func TestComputerReplies(t *testing.T) {
	s := New(checkers.Config{}, ai.NewCaptureFirst(5))
	require.True(t, s.HasComputer())
	require.Equal(t, Selected, s.Click(2, 1))
	require.Equal(t, Moved, s.Click(3, 0))

	assert.Equal(t, checkers.X, s.Position().ToMove())
	moves := s.Moves()
	require.Len(t, moves, 2)

	p := checkers.New(checkers.Config{})
	for _, m := range moves {
		require.NoError(t, p.Apply(m))
	}
	assert.Equal(t, p.Rows(), s.Position().Rows())
}

func TestPlayToTheEnd(t *testing.T) {
	s := New(checkers.Config{}, ai.NewCaptureFirst(9))
	for {
		if _, over := s.Winner(); over {
			break
		}
		moves := s.Position().ValidMoves()
		require.NotEmpty(t, moves)
		require.NoError(t, s.Move(moves[0]))
	}

	assert.Equal(t, Ignored, s.Click(2, 1))
	assert.ErrorIs(t, s.Move(checkers.Move{StartRow: 2, StartCol: 1, EndRow: 3, EndCol: 0}), ErrGameOver)

	w, _ := s.Winner()
	rec := s.Record()
	assert.Equal(t, w, rec.Winner)
	assert.Equal(t, s.Moves(), rec.Moves)
}

func TestMoveRejectsIllegal(t *testing.T) {
	s := New(checkers.Config{}, nil)
	err := s.Move(checkers.Move{StartRow: 2, StartCol: 1, EndRow: 4, EndCol: 3})
	assert.ErrorIs(t, err, checkers.ErrNoCapture)
	assert.Empty(t, s.Moves())
}
