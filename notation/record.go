package notation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nelhage/checkers/checkers"
)

type Tag struct {
	Name  string
	Value string
}

// Record is a game transcript: header tags, the moves in order, and
// the result if the game finished.
type Record struct {
	Tags   []Tag
	Moves  []checkers.Move
	Winner checkers.Side
}

const (
	xWins      = "1-0"
	oWins      = "0-1"
	unfinished = "*"
)

func (r *Record) FindTag(name string) string {
	for _, t := range r.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

func (r *Record) AddMoves(ms []checkers.Move) {
	r.Moves = append(r.Moves, ms...)
}

// InitialPosition returns the position the moves start from: the
// "Setup" tag's diagram if present, the standard layout otherwise.
func (r *Record) InitialPosition(cfg checkers.Config) (*checkers.Position, error) {
	if rule := r.FindTag("Rule"); rule != "" {
		c, err := checkers.ParseCaptureRule(rule)
		if err != nil {
			return nil, err
		}
		cfg.Captures = c
	}
	setup := r.FindTag("Setup")
	if setup == "" {
		return checkers.New(cfg), nil
	}
	p, err := ParseDiagram(cfg, setup)
	if err != nil {
		return nil, fmt.Errorf("bad Setup: %v", err)
	}
	return p, nil
}

func (r *Record) Render() string {
	var buf bytes.Buffer
	for _, t := range r.Tags {
		fmt.Fprintf(&buf, "[%s %q]\n", t.Name, t.Value)
	}
	if len(r.Tags) > 0 {
		buf.WriteString("\n")
	}
	for i, m := range r.Moves {
		if i%2 == 0 {
			if i > 0 {
				buf.WriteString("\n")
			}
			fmt.Fprintf(&buf, "%d. ", i/2+1)
		} else {
			buf.WriteString(" ")
		}
		buf.WriteString(FormatMove(m))
	}
	if len(r.Moves) > 0 {
		buf.WriteString("\n")
	}
	switch r.Winner {
	case checkers.X:
		buf.WriteString(xWins)
	case checkers.O:
		buf.WriteString(oWins)
	default:
		buf.WriteString(unfinished)
	}
	buf.WriteString("\n")
	return buf.String()
}

func ParseRecord(in io.Reader) (*Record, error) {
	var rec Record
	s := bufio.NewScanner(in)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		if text[0] == '[' {
			tag, err := parseTag(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			rec.Tags = append(rec.Tags, tag)
			continue
		}
		for _, tok := range strings.Fields(text) {
			switch {
			case tok == xWins:
				rec.Winner = checkers.X
			case tok == oWins:
				rec.Winner = checkers.O
			case tok == unfinished:
			case strings.HasSuffix(tok, "."):
				if _, err := strconv.Atoi(tok[:len(tok)-1]); err != nil {
					return nil, fmt.Errorf("line %d: bad move number %q", line, tok)
				}
			default:
				m, err := ParseMove(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				rec.Moves = append(rec.Moves, m)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func parseTag(line string) (Tag, error) {
	if !strings.HasSuffix(line, "]") {
		return Tag{}, errors.New("unterminated tag")
	}
	bits := strings.SplitN(line[1:len(line)-1], " ", 2)
	if len(bits) != 2 {
		return Tag{}, errors.New("bad tag")
	}
	value, err := strconv.Unquote(bits[1])
	if err != nil {
		value = strings.Trim(bits[1], "\"")
	}
	return Tag{Name: bits[0], Value: value}, nil
}
