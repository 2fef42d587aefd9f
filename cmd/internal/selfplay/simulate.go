package selfplay

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/cmd/internal/opt"
	"github.com/nelhage/checkers/notation"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Games int

	Verbose bool

	Rules  checkers.Config
	P1, P2 string

	Swap    bool
	Threads int
	Seed    int64
	Cutoff  int
	Limit   time.Duration
}

type Stats struct {
	Players [2]struct {
		Wins  int
		XWins int
		OWins int
	}
	X, O   int
	Cutoff int

	Games []Result
}

func (s *Stats) Count() int {
	return s.X + s.O + s.Cutoff
}

func (s *Stats) add(r Result) {
	s.Games = append(s.Games, r)
	switch r.Winner {
	case checkers.X:
		s.X++
	case checkers.O:
		s.O++
	default:
		s.Cutoff++
		return
	}
	pst := &s.Players[0]
	if r.Winner != r.spec.p1side {
		pst = &s.Players[1]
	}
	pst.Wins++
	if r.Winner == checkers.X {
		pst.XWins++
	} else {
		pst.OWins++
	}
}

type gameSpec struct {
	i      int
	seed   int64
	p1side checkers.Side
}

type Result struct {
	spec     gameSpec
	Position *checkers.Position
	Moves    []checkers.Move
	Winner   checkers.Side
}

// Record transcribes r, tagged with the players that played each side.
func (r *Result) Record(c *Config) *notation.Record {
	px, po := c.P1, c.P2
	if r.spec.p1side == checkers.O {
		px, po = po, px
	}
	rec := &notation.Record{
		Tags: []notation.Tag{
			{Name: "Game", Value: strconv.Itoa(r.spec.i)},
			{Name: "Seed", Value: strconv.FormatInt(r.spec.seed, 10)},
			{Name: "PlayerX", Value: px},
			{Name: "PlayerO", Value: po},
			{Name: "Rule", Value: c.Rules.Captures.String()},
		},
		Winner: r.Winner,
	}
	rec.AddMoves(r.Moves)
	return rec
}

// Simulate plays c.Games games on c.Threads workers. Games are
// returned in the order they were scheduled.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	threads := c.Threads
	if threads < 1 {
		threads = 1
	}
	eg, ctx := errgroup.WithContext(ctx)
	specs := make(chan gameSpec)
	results := make(chan Result)

	eg.Go(func() error {
		defer close(specs)
		r := rand.New(rand.NewSource(c.Seed))
		for i := 0; i < c.Games; i++ {
			spec := gameSpec{i: i, seed: r.Int63(), p1side: checkers.X}
			if c.Swap && i%2 == 1 {
				spec.p1side = checkers.O
			}
			select {
			case specs <- spec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		eg.Go(func() error {
			defer wg.Done()
			return worker(ctx, c, specs, results)
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var st Stats
	for r := range results {
		if c.Verbose {
			log.Printf("game n=%d plies=%d p1=%s winner=%s x=%d o=%d",
				r.spec.i, len(r.Moves), r.spec.p1side, r.Winner,
				r.Position.Count(checkers.X), r.Position.Count(checkers.O))
		}
		st.add(r)
	}
	sort.Slice(st.Games, func(i, j int) bool {
		return st.Games[i].spec.i < st.Games[j].spec.i
	})
	return st, eg.Wait()
}

func worker(ctx context.Context, c *Config, specs <-chan gameSpec, out chan<- Result) error {
	for g := range specs {
		r, err := playGame(ctx, c, g)
		if err != nil {
			return err
		}
		select {
		case out <- r:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func playGame(ctx context.Context, c *Config, g gameSpec) (Result, error) {
	r := rand.New(rand.NewSource(g.seed))
	p1, err := opt.NewAI(c.P1, r.Int63())
	if err != nil {
		return Result{}, err
	}
	p2, err := opt.NewAI(c.P2, r.Int63())
	if err != nil {
		return Result{}, err
	}
	x, o := p1, p2
	if g.p1side == checkers.O {
		x, o = p2, p1
	}

	res := Result{spec: g, Position: checkers.New(c.Rules)}
	p := res.Position
	for i := 0; c.Cutoff == 0 || i < c.Cutoff; i++ {
		if winner, over := p.Decided(); over {
			res.Winner = winner
			return res, nil
		}
		player := x
		if p.ToMove() == checkers.O {
			player = o
		}
		mctx, cancel := ctx, context.CancelFunc(func() {})
		if c.Limit != 0 {
			mctx, cancel = context.WithTimeout(ctx, c.Limit)
		}
		m, ok := player.GetMove(mctx, p)
		cancel()
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !ok {
			res.Winner = p.ToMove().Flip()
			return res, nil
		}
		if err := p.Apply(m); err != nil {
			return res, fmt.Errorf("game %d: %s played %s: %w",
				g.i, p.ToMove(), notation.FormatMove(m), err)
		}
		res.Moves = append(res.Moves, m)
	}
	if winner, over := p.Decided(); over {
		res.Winner = winner
	}
	return res, nil
}
