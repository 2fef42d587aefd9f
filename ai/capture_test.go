package ai

import (
	"math/rand"
	"testing"

	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/checkerstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

const (
	// X on (2,1) can step to (3,0) or jump (3,2) and then (5,4).
	stepOrCapture = "________/________/_x______/__o_____/________/____o___/________/o_______ x"
	// O on (6,5) can step, or jump X on (5,4) and then (3,2).
	oStepOrCapture = "________/________/________/__x_____/________/____x___/_____o__/________ o"
)

func TestCaptureFirstPrefersCapture(t *testing.T) {
	for _, d := range []string{stepOrCapture, oStepOrCapture} {
		for seed := int64(0); seed < 20; seed++ {
			p := checkerstest.Diagram(checkers.Config{}, d)
			a := NewCaptureFirst(seed)
			m, ok := a.GetMove(context.Background(), p)
			require.True(t, ok)
			assert.True(t, m.IsCapture(), "seed=%d move=%v", seed, m)
			assert.True(t, p.MakeMove(m.StartRow, m.StartCol, m.EndRow, m.EndCol))
		}
	}
}

func TestCaptureFirstTakesFirstCapture(t *testing.T) {
	// X on (0,1) and (2,5) can both capture; (0,1) is found first.
	d := "_x______/__o_____/_____x__/____o_o_/________/__o_____/_______o/________ x"
	p := checkerstest.Diagram(checkers.Config{Captures: checkers.SingleCapture}, d)
	m, ok := NewCaptureFirst(1).SelectMove(p)
	require.True(t, ok)
	assert.Equal(t, checkers.Move{StartRow: 0, StartCol: 1, EndRow: 2, EndCol: 3}, m)
}

func TestCaptureFirstNoMove(t *testing.T) {
	p := checkerstest.Diagram(checkers.Config{},
		"________/________/________/________/________/________/________/x_o_____ x")
	_, ok := NewCaptureFirst(0).GetMove(context.Background(), p)
	assert.False(t, ok)

	p = checkerstest.Diagram(checkers.Config{},
		"________/________/_x______/________/________/________/________/________ o")
	_, ok = NewCaptureFirst(0).GetMove(context.Background(), p)
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok = NewCaptureFirst(0).GetMove(ctx, checkers.New(checkers.Config{}))
	assert.False(t, ok)
}

func TestCandidatesMatchValidMoves(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, rule := range []checkers.CaptureRule{checkers.RequireFollowUp, checkers.SingleCapture} {
		p := checkers.New(checkers.Config{Captures: rule})
		for {
			want := p.ValidMoves()
			got := Candidates(p)
			require.Equal(t, want, got)
			if len(want) == 0 {
				break
			}
			require.NoError(t, p.Apply(want[r.Intn(len(want))]))
		}
	}
}

func TestSelfPlayRoundTrip(t *testing.T) {
	players := []Player{NewCaptureFirst(11), NewRandom(12)}
	for g := 0; g < 20; g++ {
		p := checkers.New(checkers.Config{})
		x, o := players[g%2], players[(g+1)%2]
		for {
			pl := x
			if p.ToMove() == checkers.O {
				pl = o
			}
			m, ok := pl.GetMove(context.Background(), p)
			_, over := p.Decided()
			require.Equal(t, !over, ok, "player and Decided disagree")
			if !ok {
				break
			}
			require.NoError(t, p.Apply(m), "proposed %v", m)
		}
	}
}
