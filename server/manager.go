package server

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/nelhage/checkers/ai"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/logs"
	"github.com/nelhage/checkers/notation"
	"github.com/nelhage/checkers/session"
)

var (
	ErrNotFound    = errors.New("game not found")
	ErrBadOpponent = errors.New("opponent must be human or computer")
)

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// State is the client view of one game.
type State struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Opponent string   `json:"opponent"`
	Board    []string `json:"board"`
	Diagram  string   `json:"diagram"`
	ToMove   string   `json:"to_move"`
	Selected *Square  `json:"selected,omitempty"`
	Moves    []string `json:"moves"`
	Over     bool     `json:"over"`
	Winner   string   `json:"winner,omitempty"`
	Outcome  string   `json:"outcome,omitempty"`
}

type game struct {
	mu       sync.Mutex
	s        *session.Session
	name     string
	opponent string
	started  time.Time
	logged   bool
	finished time.Time
}

const DefaultRetain = 10 * time.Minute

// Manager owns the live sessions. Each session is only touched with
// its game's lock held.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*game

	cfg  checkers.Config
	repo *logs.Repository

	// Retain is how long a finished game stays readable before it
	// is dropped.
	Retain time.Duration

	now  func() time.Time
	seed func() int64
}

// NewManager returns a Manager. repo may be nil, in which case
// finished games are not recorded.
func NewManager(cfg checkers.Config, repo *logs.Repository) *Manager {
	return &Manager{
		games:  make(map[string]*game),
		cfg:    cfg,
		repo:   repo,
		Retain: DefaultRetain,
		now:    time.Now,
		seed:   func() int64 { return time.Now().UnixNano() },
	}
}

// Create starts a game. A nil seed gives the computer a fresh one.
func (m *Manager) Create(opponent string, seed *int64) (State, error) {
	var computer *ai.CaptureFirst
	switch strings.ToLower(opponent) {
	case "", "human":
		opponent = "human"
	case "computer":
		var s int64
		if seed != nil {
			s = *seed
		} else {
			s = m.seed()
		}
		computer = ai.NewCaptureFirst(s)
		opponent = fmt.Sprintf("capture:%d", s)
	default:
		return State{}, ErrBadOpponent
	}
	id := uuid.New().String()
	g := &game{
		s:        session.New(m.cfg, computer),
		name:     petname.Generate(2, "-"),
		opponent: opponent,
		started:  m.now(),
	}

	m.mu.Lock()
	m.reap()
	m.games[id] = g
	m.mu.Unlock()

	log.Printf("new game id=%s name=%s opponent=%s rule=%s", id, g.name, opponent, m.cfg.Captures)
	g.mu.Lock()
	defer g.mu.Unlock()
	return m.state(id, g, ""), nil
}

// reap drops games that finished more than Retain ago. m.mu must be
// held for writing.
func (m *Manager) reap() {
	cutoff := m.now().Add(-m.Retain)
	for id, g := range m.games {
		g.mu.Lock()
		expired := g.logged && g.finished.Before(cutoff)
		g.mu.Unlock()
		if expired {
			delete(m.games, id)
			log.Printf("dropped game id=%s name=%s", id, g.name)
		}
	}
}

func (m *Manager) get(id string) (*game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

func (m *Manager) State(id string) (State, error) {
	g, err := m.get(id)
	if err != nil {
		return State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return m.state(id, g, ""), nil
}

func (m *Manager) Click(id string, row, col int) (State, error) {
	g, err := m.get(id)
	if err != nil {
		return State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.s.Click(row, col)
	m.finish(id, g)
	return m.state(id, g, out.String()), nil
}

func (m *Manager) Move(id string, move string) (State, error) {
	g, err := m.get(id)
	if err != nil {
		return State{}, err
	}
	mv, err := notation.ParseMove(move)
	if err != nil {
		return State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.s.Move(mv); err != nil {
		return State{}, err
	}
	m.finish(id, g)
	return m.state(id, g, session.Moved.String()), nil
}

// finish records g the first time it is seen over.
func (m *Manager) finish(id string, g *game) {
	winner, over := g.s.Winner()
	if !over || g.logged {
		return
	}
	g.logged = true
	g.finished = m.now()
	moves := g.s.Moves()
	log.Printf("game over id=%s name=%s winner=%s plies=%d", id, g.name, winner, len(moves))
	if m.repo == nil {
		return
	}
	rec := g.s.Record(
		notation.Tag{Name: "Game", Value: g.name},
		notation.Tag{Name: "ID", Value: id},
		notation.Tag{Name: "Date", Value: g.started.Format("2006.01.02")},
		notation.Tag{Name: "PlayerX", Value: "human"},
		notation.Tag{Name: "PlayerO", Value: g.opponent},
		notation.Tag{Name: "Rule", Value: m.cfg.Captures.String()},
	)
	err := m.repo.InsertGame(&logs.Game{
		Timestamp: g.finished,
		PlayerX:   "human",
		PlayerO:   g.opponent,
		Rule:      m.cfg.Captures.String(),
		Winner:    winner.String(),
		Plies:     len(moves),
		Record:    rec.Render(),
	})
	if err != nil {
		log.Printf("could not log game: id=%s err=%v", id, err)
	}
}

func (m *Manager) state(id string, g *game, outcome string) State {
	p := g.s.Position()
	st := State{
		ID:       id,
		Name:     g.name,
		Opponent: g.opponent,
		Diagram:  notation.FormatDiagram(p),
		ToMove:   p.ToMove().String(),
		Moves:    []string{},
		Outcome:  outcome,
	}
	for r := 0; r < checkers.Size; r++ {
		var row strings.Builder
		for c := 0; c < checkers.Size; c++ {
			row.WriteString(p.At(r, c).String())
		}
		st.Board = append(st.Board, row.String())
	}
	if r, c, ok := g.s.Selected(); ok {
		st.Selected = &Square{Row: r, Col: c}
	}
	for _, mv := range g.s.Moves() {
		st.Moves = append(st.Moves, notation.FormatMove(mv))
	}
	if w, over := g.s.Winner(); over {
		st.Over = true
		st.Winner = w.String()
	}
	return st
}
