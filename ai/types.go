package ai

import (
	"github.com/nelhage/checkers/checkers"
	"golang.org/x/net/context"
)

// Player chooses a move for the side to move in p. ok is false when
// the player has nothing to play.
type Player interface {
	GetMove(ctx context.Context, p *checkers.Position) (m checkers.Move, ok bool)
}

// Board is the read-only view of a game a move selector needs.
type Board interface {
	At(r, c int) checkers.Cell
	ToMove() checkers.Side
	IsValidMove(sr, sc, er, ec int) bool
}
