// Command uci runs the search core as a UCI engine over stdin/stdout.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goosecorp/laserchess/engine"
	gm "github.com/goosecorp/laserchess/goosemg"
	"github.com/goosecorp/laserchess/position"
)

const ttSizeMB = 64

func main() {
	reader := bufio.NewReader(os.Stdin)
	searcher := engine.NewSearcher(ttSizeMB)
	board := position.New()

	fmt.Println("id name laserchess")
	fmt.Println("id author goosecorp")
	fmt.Println("uciok")

	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			handleCommand(line, &board, searcher)
		}
		if err != nil {
			return
		}
		if line == "quit" {
			return
		}
	}
}

func handleCommand(line string, board **position.Board, searcher *engine.Searcher) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "uci":
		fmt.Println("id name laserchess")
		fmt.Println("id author goosecorp")
		fmt.Println("uciok")
	case "isready":
		fmt.Println("readyok")
	case "ucinewgame":
		searcher.TT.Clear()
		*board = position.New()
	case "position":
		handlePosition(fields[1:], board)
	case "go":
		handleGo(fields[1:], *board, searcher)
	case "stop":
		// Cooperative cancellation is scoped to the in-flight search call;
		// a synchronous engine has nothing to signal between commands.
	}
}

func handlePosition(args []string, board **position.Board) {
	if len(args) == 0 {
		return
	}

	var b *position.Board
	rest := args[1:]

	switch args[0] {
	case "startpos":
		b = position.New()
	case "fen":
		fenFields := []string{}
		i := 0
		for i < len(rest) && rest[i] != "moves" {
			fenFields = append(fenFields, rest[i])
			i++
		}
		rest = rest[i:]
		parsed, err := position.FromFEN(strings.Join(fenFields, " "))
		if err != nil {
			return
		}
		b = parsed
	default:
		return
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, mv := range rest[1:] {
			m, err := gm.ParseMove(mv)
			if err != nil {
				continue
			}
			var resolved gm.Move
			for _, legal := range b.LegalMoves() {
				if legal.String() == m.String() {
					resolved = legal
					break
				}
			}
			if resolved == 0 {
				continue
			}
			child, ok := b.ApplyMove(resolved)
			if !ok {
				continue
			}
			b = child.(*position.Board)
		}
	}

	*board = b
}

func handleGo(args []string, board *position.Board, searcher *engine.Searcher) {
	mode := engine.ModeTime
	value := 1000

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				mode = engine.ModeDepth
				value = atoi(args[i+1])
			}
		case "movetime":
			if i+1 < len(args) {
				mode = engine.ModeTime
				value = atoi(args[i+1])
			}
		case "wtime", "btime", "winc", "binc":
			// Full UCI clock-based time management is outside the search
			// core's scope; movetime/depth cover the core's contract.
		}
	}

	searcher.StartSearch(board, mode, value)
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
