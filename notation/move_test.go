package notation

import (
	"errors"
	"testing"

	"github.com/nelhage/checkers/checkers"
)

func TestParseMove(t *testing.T) {
	cases := []struct {
		in  string
		out checkers.Move
	}{
		{"3a-4b", checkers.Move{StartRow: 5, StartCol: 0, EndRow: 4, EndCol: 1}},
		{"6b-5a", checkers.Move{StartRow: 2, StartCol: 1, EndRow: 3, EndCol: 0}},
		{"8h-1a", checkers.Move{StartRow: 0, StartCol: 7, EndRow: 7, EndCol: 0}},
		{" 6d-4f\n", checkers.Move{StartRow: 2, StartCol: 3, EndRow: 4, EndCol: 5}},
	}
	for _, tc := range cases {
		got, err := ParseMove(tc.in)
		if err != nil {
			t.Errorf("ParseMove(%q): err=%v", tc.in, err)
			continue
		}
		if got != tc.out {
			t.Errorf("ParseMove(%q)=%v not %v", tc.in, got, tc.out)
		}
		if s := FormatMove(got); s != FormatMove(tc.out) {
			t.Errorf("FormatMove(%v)=%s", got, s)
		}
	}
}

func TestParseMoveMalformed(t *testing.T) {
	for _, in := range []string{
		"", "3a", "3a4b", "3a-4b-5c", "9a-4b", "0a-4b", "3i-4b", "a3-b4", "3A-4B", "33-4b", "3a-4",
	} {
		if m, err := ParseMove(in); err == nil {
			t.Errorf("ParseMove(%q)=%v, want error", in, m)
		} else if !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseMove(%q): err=%v is not ErrMalformed", in, err)
		}
	}
}

func TestFormatMove(t *testing.T) {
	for r := 0; r < checkers.Size; r++ {
		for c := 0; c < checkers.Size; c++ {
			m := checkers.Move{StartRow: r, StartCol: c, EndRow: 7 - r, EndCol: 7 - c}
			got, err := ParseMove(FormatMove(m))
			if err != nil || got != m {
				t.Errorf("round trip %v: got %v err=%v", m, got, err)
			}
		}
	}
}
