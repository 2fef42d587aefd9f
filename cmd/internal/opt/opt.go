// Package opt holds the flags and player specs shared by the
// checkers subcommands.
package opt

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nelhage/checkers/ai"
	"github.com/nelhage/checkers/checkers"
)

var ErrUnknownPlayer = errors.New("unknown player")

type Rules struct {
	Rule string
}

func (o *Rules) AddFlags(flags *flag.FlagSet) {
	flags.StringVar(&o.Rule, "rule", checkers.RequireFollowUp.String(),
		"capture rule: follow-up (a capture must be followed by another) or single")
}

func (o *Rules) BuildConfig() (checkers.Config, error) {
	rule, err := checkers.ParseCaptureRule(o.Rule)
	if err != nil {
		return checkers.Config{}, fmt.Errorf("-rule: %w", err)
	}
	return checkers.Config{Captures: rule}, nil
}

// ParseAI builds a computer player from a spec of the form NAME or
// NAME:SEED, where NAME is "rand" or "capture".
func ParseAI(spec string) (ai.Player, error) {
	name, arg, hasArg := strings.Cut(spec, ":")
	var seed int64
	if hasArg {
		var err error
		seed, err = strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad seed %q", spec, arg)
		}
	}
	return NewAI(name, seed)
}

// NewAI builds the computer player called name, seeded with seed.
func NewAI(name string, seed int64) (ai.Player, error) {
	switch name {
	case "rand":
		return ai.NewRandom(seed), nil
	case "capture":
		return ai.NewCaptureFirst(seed), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
}
