package joy_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-joy/pkg/joy"
)

// TestProgramSnapshots runs a handful of representative Joy programs and
// snapshots their final stack and output, the same go-snaps golden-file
// discipline the teacher's internal/interp/fixture_test.go uses for whole
// DWScript fixtures.
func TestProgramSnapshots(t *testing.T) {
	programs := map[string]string{
		"factorial_5":       "5 [0 =] [pop 1] [dup 1 -] [*] linrec",
		"fibonacci_10":      "10 [small] [] [pred dup pred] [+] binrec",
		"gcd_48_18":         "48 18 [dup 0 =] [pop] [dup rollup rem] tailrec",
		"filter_even_sum":   "[1 2 3 4 5 6] [2 rem 0 =] filter 0 [+] fold",
		"string_reverse":    `"hello world" reverse`,
		"quicksort_small":   "[3 1 4 1 5 9 2 6] [small] [] [uncons [<=] split] [[cons] dip cons] binrec",
		"map_over_list":     "[1 2 3 4] [dup *] map",
		"nested_quotation":  "[[1 2 +] [3 4 +]] [i] map",
		"cond_dispatch":     `[[[dup 1 =] "one"] [[dup 2 =] "two"] ["other"]] 5 swap cond`,
		"stack_unstack":     "1 2 3 stack unstack",
		"set_intersection":  "{1 2 3 4} {2 3 5} and",
		"primrec_factorial": "6 [1] [*] primrec",
	}

	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			res, err := joy.Run(src)
			snapshot := fmt.Sprintf("source: %s\nstack: %v\noutput: %q\nerr: %v", src, res.Stack, res.Output, err)
			snaps.MatchSnapshot(t, snapshot)
		})
	}
}
