package checkers

import "fmt"

type Side byte
type Cell byte

const (
	NoSide Side = 0
	X      Side = 1
	O      Side = 2

	Empty Cell = 0
)

// PieceOf returns the cell value holding one of s's pieces.
func PieceOf(s Side) Cell {
	switch s {
	case X, O:
		return Cell(s)
	default:
		panic(fmt.Sprintf("bad side: %x", int(s)))
	}
}

func (c Cell) Side() Side {
	return Side(c)
}

func (c Cell) IsEmpty() bool {
	return c == Empty
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "_"
	case Cell(X):
		return "x"
	case Cell(O):
		return "o"
	default:
		panic(fmt.Sprintf("bad cell: %x", int(c)))
	}
}

func (s Side) String() string {
	switch s {
	case X:
		return "X"
	case O:
		return "O"
	case NoSide:
		return "no side"
	default:
		panic(fmt.Sprintf("bad side: %x", int(s)))
	}
}

func (s Side) Flip() Side {
	switch s {
	case X:
		return O
	case O:
		return X
	case NoSide:
		return NoSide
	default:
		panic(fmt.Sprintf("bad side: %x", int(s)))
	}
}

// Forward is the row delta s's pieces advance by. X starts on rows
// 0-2 and moves down the board; O starts on rows 5-7 and moves up.
func (s Side) Forward() int {
	switch s {
	case X:
		return 1
	case O:
		return -1
	default:
		panic(fmt.Sprintf("bad side: %x", int(s)))
	}
}
