// Command explore is an interactive position explorer: load a FEN, list
// legal moves, make and unmake moves, and run perft counts from the current
// position.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"mailbox-chess/mailboxmg"
)

func main() {
	board := mailboxmg.MustParseFEN(mailboxmg.FENStartPos)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "explore> ",
		HistoryFile:     os.TempDir() + "/mailbox-chess-explore_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Print(board)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "board":
			fmt.Print(board)
		case "fen":
			fmt.Println(board.ToFEN())
		case "moves":
			moves := board.GenerateMoves()
			fmt.Printf("Legal moves (%d): [\n", len(moves))
			for _, m := range moves {
				fmt.Printf("  %s\n", m.Describe())
			}
			fmt.Println("]")
		case "make":
			if len(fields) != 2 {
				fmt.Println("usage: make <move> (e.g. make e2e4)")
				continue
			}
			m, err := board.ParseMove(fields[1])
			if err != nil {
				fmt.Printf("make: %v\n", err)
				continue
			}
			board.MakeMove(m)
			fmt.Print(board)
		case "undo":
			if board.HistoryDepth() == 0 {
				fmt.Println("undo: no moves made")
				continue
			}
			board.UnmakeMove()
			fmt.Print(board)
		case "perft":
			if len(fields) != 2 {
				fmt.Println("usage: perft <depth>")
				continue
			}
			depth, err := strconv.Atoi(fields[1])
			if err != nil || depth <= 0 {
				fmt.Println("perft: depth must be a positive integer")
				continue
			}
			start := time.Now()
			nodes := mailboxmg.Perft(board, depth)
			fmt.Printf("perft(%d) = %d (%s)\n", depth, nodes, time.Since(start))
		case "new":
			fen := mailboxmg.FENStartPos
			if len(fields) > 1 {
				fen = strings.Join(fields[1:], " ")
			}
			next, err := mailboxmg.ParseFEN(fen)
			if err != nil {
				fmt.Printf("new: %v\n", err)
				continue
			}
			board = next
			fmt.Print(board)
		case "debug":
			if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
				fmt.Println("usage: debug on|off")
				continue
			}
			mailboxmg.DebugValidate = fields[1] == "on"
			fmt.Printf("debug validation %s\n", fields[1])
		default:
			fmt.Printf("unknown command %q (try help)\n", fields[0])
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  board           print the current position
  fen             print the position as FEN
  moves           list legal moves
  make <move>     play a move in coordinate form (e2e4, e7e8q)
  undo            take back the last move
  perft <depth>   count leaf nodes of the legal move tree
  new [fen]       load a position (default: starting position)
  debug on|off    toggle invariant checks after every mutation
  quit            exit
`)
}
