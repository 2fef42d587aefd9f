package standings

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nelhage/checkers/logs"
	"github.com/stretchr/testify/assert"
)

func TestWriteStandings(t *testing.T) {
	var buf bytes.Buffer
	writeStandings(&buf, []logs.Standing{
		{Player: "capture", Result: "lose", Games: 1},
		{Player: "capture", Result: "win", Games: 3},
		{Player: "rand", Result: "lose", Games: 3},
		{Player: "rand", Result: "none", Games: 2},
		{Player: "rand", Result: "win", Games: 1},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"player   won  lost  unfinished",
		"capture  3    1     0",
		"rand     1    3     2",
	}, lines)
}

func TestWriteGames(t *testing.T) {
	var buf bytes.Buffer
	writeGames(&buf, []logs.Game{{
		ID:        4,
		Timestamp: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		PlayerX:   "human",
		PlayerO:   "capture:1",
		Rule:      "single",
		Winner:    "X",
		Plies:     17,
	}})
	assert.Contains(t, buf.String(), "2024-03-01 12:30")
	assert.Contains(t, buf.String(), "capture:1")
}
