package ai

import (
	"math/rand"

	"github.com/nelhage/checkers/checkers"
	"golang.org/x/net/context"
)

type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(ctx context.Context, p *checkers.Position) (checkers.Move, bool) {
	moves := p.ValidMoves()
	if len(moves) == 0 || ctx.Err() != nil {
		return checkers.Move{}, false
	}
	return moves[r.r.Intn(len(moves))], true
}

func NewRandom(seed int64) Player {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
