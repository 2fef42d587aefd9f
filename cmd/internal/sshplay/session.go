package sshplay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/cli"
	"github.com/nelhage/checkers/cmd/internal/opt"
	"github.com/nelhage/checkers/logs"
	"github.com/nelhage/checkers/notation"
	"golang.org/x/term"
)

type handler struct {
	cfg      checkers.Config
	opponent string
	limit    time.Duration
	glyphs   *cli.Glyphs
	repo     *logs.Repository
	seed     func() int64
}

func (h *handler) handle(s ssh.Session) {
	if _, _, isPty := s.Pty(); !isPty {
		io.WriteString(s, "non-interactive terminals are not supported\n")
		s.Exit(1)
		return
	}
	name := petname.Generate(2, "-")
	log.Printf("ssh game start name=%s user=%s remote=%s", name, s.User(), s.RemoteAddr())
	rec, err := h.play(s.Context(), s, s.User(), name)
	if err != nil {
		log.Printf("ssh game failed: name=%s err=%v", name, err)
		s.Exit(1)
		return
	}
	log.Printf("ssh game over name=%s winner=%s plies=%d", name, rec.Winner, len(rec.Moves))
	s.Exit(0)
}

// play runs one game on rw with user playing X against the computer.
func (h *handler) play(ctx context.Context, rw io.ReadWriter, user, name string) (*notation.Record, error) {
	seed := h.seed()
	opp, err := opt.NewAI(h.opponent, seed)
	if err != nil {
		return nil, err
	}
	t := term.NewTerminal(rw, "")
	fmt.Fprintf(t, "Game %s: you play X against %s. Enter moves like 6b-5a.\n", name, h.opponent)

	start := time.Now()
	st := &cli.CLI{
		Config: h.cfg,
		Out:    t,
		Glyphs: h.glyphs,
		X:      cli.NewCLIPlayer(t, bufio.NewReader(&lineReader{t: t})),
		O:      cli.NewAIPlayer(ctx, opp, h.limit),
	}
	_, winner := st.Play()

	computer := fmt.Sprintf("%s:%d", h.opponent, seed)
	rec := &notation.Record{
		Tags: []notation.Tag{
			{Name: "Game", Value: name},
			{Name: "Date", Value: start.Format("2006.01.02")},
			{Name: "PlayerX", Value: user},
			{Name: "PlayerO", Value: computer},
			{Name: "Rule", Value: h.cfg.Captures.String()},
		},
		Winner: winner,
	}
	rec.AddMoves(st.Moves())
	if h.repo == nil {
		return rec, nil
	}
	err = h.repo.InsertGame(&logs.Game{
		Timestamp: start,
		PlayerX:   user,
		PlayerO:   computer,
		Rule:      h.cfg.Captures.String(),
		Winner:    winner.String(),
		Plies:     len(rec.Moves),
		Record:    rec.Render(),
	})
	if err != nil {
		return rec, fmt.Errorf("log game: %w", err)
	}
	return rec, nil
}

// lineReader turns a terminal's edited lines back into a stream.
type lineReader struct {
	t   *term.Terminal
	buf []byte
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		line, err := r.t.ReadLine()
		if err != nil {
			return 0, err
		}
		r.buf = append([]byte(line), '\n')
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
