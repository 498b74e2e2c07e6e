package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/faststring/mstring"
)

const lorem = "Neque porro quisquam est qui dolorem ipsum quia dolor sit amet, consectetur, adipisci velit..."

// benchSink keeps results alive so the compiler cannot drop the work.
var benchSink int

// benchCase is one measured function. Run performs n operations.
type benchCase struct {
	Name string
	Run  func(n int) error
}

func (a *app) benchAction(ctx context.Context, cmd *cli.Command) error {
	iterations := cmd.Int("iterations")
	if iterations < 1 {
		return fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	filter := cmd.String("filter")

	var selected []benchCase
	for _, c := range benchCases(a.options()) {
		if filter == "" || strings.Contains(c.Name, filter) {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		return fmt.Errorf("no benchmarks match %q", filter)
	}
	return runBenchmarks(ctx, a.stderr, selected, iterations, cmd.Duration("duration"), a.color)
}

// runBenchmarks executes each case with auto-calibration and reports the
// time per run of n operations.
func runBenchmarks(ctx context.Context, w io.Writer, cases []benchCase, n int, target time.Duration, color bool) error {
	colorName, colorTime, colorRuns, colorReset := "\033[1m", "\033[36m", "\033[33m", "\033[0m"
	if !color {
		colorName, colorTime, colorRuns, colorReset = "", "", "", ""
	}

	for _, b := range cases {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Warm up: run once to avoid cold-start effects
		if err := b.Run(n); err != nil {
			return fmt.Errorf("%s: %w", b.Name, err)
		}

		// Calibrate: find the run count whose total time reaches target
		runs := 1
		var elapsed time.Duration
		for {
			start := time.Now()
			for range runs {
				if err := b.Run(n); err != nil {
					return fmt.Errorf("%s: %w", b.Name, err)
				}
			}
			elapsed = time.Since(start)
			if elapsed >= target {
				break
			}
			if elapsed > 0 {
				next := int(float64(runs) * float64(target) / float64(elapsed))
				if next <= runs {
					next = runs * 2
				}
				runs = next
			} else {
				runs *= 10
			}
		}

		nsPerRun := float64(elapsed.Nanoseconds()) / float64(runs)
		fmt.Fprintf(w, "  %s%-32s%s %s%10s/op%s %s(%d runs)%s\n",
			colorName, b.Name, colorReset,
			colorTime, formatDuration(nsPerRun), colorReset,
			colorRuns, runs, colorReset)
	}
	return nil
}

// formatDuration formats nanoseconds per operation in a human-readable way.
func formatDuration(ns float64) string {
	switch {
	case ns < 1000:
		return fmt.Sprintf("%.1f ns", ns)
	case ns < 1000000:
		return fmt.Sprintf("%.1f µs", ns/1000)
	case ns < 1000000000:
		return fmt.Sprintf("%.1f ms", ns/1000000)
	default:
		return fmt.Sprintf("%.2f s", ns/1000000000)
	}
}

// benchCases pairs every MString operation with its native string
// equivalent. Buffers are built with opts.
func benchCases(opts []mstring.Option) []benchCase {
	withBuffer := func(initial string, body func(ms *mstring.MString, n int) error) func(int) error {
		return func(n int) error {
			ms, err := mstring.NewString(initial, opts...)
			if err != nil {
				return err
			}
			defer ms.Release()
			return body(ms, n)
		}
	}

	return []benchCase{
		{"concatenate/mstring", withBuffer("", func(ms *mstring.MString, n int) error {
			for range n {
				if err := ms.AppendString(lorem); err != nil {
					return err
				}
			}
			benchSink = ms.Len()
			return nil
		})},
		{"concatenate/native", func(n int) error {
			s := ""
			for range n {
				s += lorem
			}
			benchSink = len(s)
			return nil
		}},
		{"concatenate/builder", func(n int) error {
			var sb strings.Builder
			for range n {
				sb.WriteString(lorem)
			}
			benchSink = sb.Len()
			return nil
		}},

		{"modify-index/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			for range n {
				if err := ms.SetByte(10, 'a'); err != nil {
					return err
				}
			}
			return nil
		})},
		{"modify-index/native", func(n int) error {
			s := lorem
			for range n {
				s = s[:10] + "a" + s[11:]
			}
			benchSink = len(s)
			return nil
		}},
		{"modify-index/bytes", func(n int) error {
			s := lorem
			for range n {
				b := []byte(s)
				b[10] = 'a'
				s = string(b)
			}
			benchSink = len(s)
			return nil
		}},

		{"slicing/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			for range n {
				p, err := ms.Slice(mstring.At(10), mstring.At(20), 1)
				if err != nil {
					return err
				}
				benchSink = len(p)
			}
			return nil
		})},
		{"slicing/native", func(n int) error {
			for range n {
				benchSink = len(lorem[10:20])
			}
			return nil
		}},

		{"slicing-modify/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			for range n {
				mid, err := ms.Slice(mstring.At(10), mstring.At(20), 1)
				if err != nil {
					return err
				}
				head, _ := ms.Slice(mstring.Open, mstring.At(10), 1)
				tail, _ := ms.Slice(mstring.At(21), mstring.Open, 1)
				if err := ms.SetSlice(mstring.Open, mstring.Open, 1, append(append(head, mid...), tail...)); err != nil {
					return err
				}
			}
			benchSink = ms.Len()
			return nil
		})},
		{"slicing-modify/native", func(n int) error {
			s := lorem
			for range n {
				lo, hi := min(10, len(s)), min(20, len(s))
				from := min(21, len(s))
				s = s[:lo] + s[lo:hi] + s[from:]
			}
			benchSink = len(s)
			return nil
		}},

		{"contains/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			needle := []byte("dolorem")
			for range n {
				if ms.Contains(needle) {
					benchSink++
				}
			}
			return nil
		})},
		{"contains/native", func(n int) error {
			for range n {
				if strings.Contains(lorem, "dolorem") {
					benchSink++
				}
			}
			return nil
		}},

		{"find/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			needle := []byte("dolorem")
			for range n {
				benchSink = ms.Find(needle)
			}
			return nil
		})},
		{"find/native", func(n int) error {
			for range n {
				benchSink = strings.Index(lorem, "dolorem")
			}
			return nil
		}},

		{"clear/mstring", func(n int) error {
			for range n {
				ms, err := mstring.NewString(lorem, opts...)
				if err != nil {
					return err
				}
				if err := ms.Clear(); err != nil {
					return err
				}
				ms.Release()
			}
			return nil
		}},
		{"clear/native", func(n int) error {
			for range n {
				s := strings.Clone(lorem)
				benchSink = len(s)
				s = ""
				benchSink += len(s)
			}
			return nil
		}},

		{"replace/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			for i := range n {
				old, repl := "dolor", "DOLOR"
				if i%2 == 1 {
					old, repl = repl, old
				}
				if err := ms.ReplaceString(old, repl); err != nil {
					return err
				}
			}
			benchSink = ms.Len()
			return nil
		})},
		{"replace/native", func(n int) error {
			s := lorem
			for i := range n {
				old, repl := "dolor", "DOLOR"
				if i%2 == 1 {
					old, repl = repl, old
				}
				s = strings.ReplaceAll(s, old, repl)
			}
			benchSink = len(s)
			return nil
		}},

		{"insert/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			unit := []byte("a")
			for range n {
				if err := ms.Insert(10, unit); err != nil {
					return err
				}
			}
			benchSink = ms.Len()
			return nil
		})},
		{"insert/native", func(n int) error {
			s := lorem
			for range n {
				s = s[:10] + "a" + s[10:]
			}
			benchSink = len(s)
			return nil
		}},

		// Doubling is exponential, so these scale with the number of
		// doublings rather than n.
		{"multiply/mstring", withBuffer(lorem, func(ms *mstring.MString, n int) error {
			for range multiplyRounds(n) {
				if err := ms.RepeatInPlace(2); err != nil {
					return err
				}
			}
			benchSink = ms.Len()
			return nil
		})},
		{"multiply/native", func(n int) error {
			s := lorem
			for range multiplyRounds(n) {
				s = strings.Repeat(s, 2)
			}
			benchSink = len(s)
			return nil
		}},
	}
}

// multiplyRounds maps an iteration count to a bounded number of doublings.
func multiplyRounds(n int) int {
	return min(max(n/100, 1), 10)
}
