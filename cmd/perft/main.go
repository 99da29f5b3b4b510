package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/slices"

	"mailbox-chess/mailboxmg"
	"mailbox-chess/perftsuite"
)

func main() {
	fen := flag.String("fen", mailboxmg.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required unless -suite or -config is given)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	suite := flag.String("suite", "", "Run every position in a `FEN; D1; D2; ...` suite file")
	config := flag.String("config", "", "TOML config file describing a suite run")
	validate := flag.Bool("validate", false, "Run full invariant checks after every mutation")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *config != "" {
		cfg, err := perftsuite.LoadConfig(*config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(2)
		}
		mailboxmg.DebugValidate = cfg.Validate
		os.Exit(runSuite(cfg.Suite, cfg.MaxDepth, cfg.Divide))
	}

	mailboxmg.DebugValidate = *validate

	if *suite != "" {
		os.Exit(runSuite(*suite, *depth, *divide))
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := mailboxmg.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		printDivide(board, *depth)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += mailboxmg.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// runSuite verifies every case in the suite file up to maxDepth (0 = every
// pinned depth) and returns a process exit code.
func runSuite(path string, maxDepth int, divide bool) int {
	cases, err := perftsuite.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "suite: %v\n", err)
		return 2
	}
	failures := 0
	for _, c := range cases {
		board, err := mailboxmg.ParseFEN(c.FEN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "suite: %q: %v\n", c.FEN, err)
			failures++
			continue
		}
		limit := c.MaxDepth()
		if maxDepth > 0 && maxDepth < limit {
			limit = maxDepth
		}
		for d := 1; d <= limit; d++ {
			got := mailboxmg.Perft(board, d)
			want := c.Expected[d]
			if got == want {
				fmt.Printf("PASS %s d%d=%d\n", c.FEN, d, got)
				continue
			}
			failures++
			fmt.Printf("FAIL %s d%d: got %d want %d\n", c.FEN, d, got, want)
			if divide {
				printDivide(board, d)
			}
		}
	}
	if failures > 0 {
		fmt.Printf("%d failure(s)\n", failures)
		return 1
	}
	return 0
}

func printDivide(board *mailboxmg.Board, depth int) {
	div := mailboxmg.PerftDivide(board, depth)
	names := make([]string, 0, len(div))
	counts := make(map[string]uint64, len(div))
	var sum uint64
	for m, n := range div {
		s := m.String()
		names = append(names, s)
		counts[s] = n
		sum += n
	}
	slices.Sort(names)
	for _, s := range names {
		fmt.Printf("%s: %d\n", s, counts[s])
	}
	fmt.Printf("Total: %d\n", sum)
}
