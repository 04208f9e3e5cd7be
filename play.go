package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wricardo/mazegame/game/engine"
	"github.com/wricardo/mazegame/logger"
)

const consoleHelp = "Move with w/a/s/d or up/down/left/right. Type 'solution' to watch the solver, 'replay' to clear your trail, 'reset' to start over, 'q' to quit."

// Console plays one maze on a text terminal
type Console struct {
	Engine *engine.GameEngine
	In     io.Reader
	Out    io.Writer
	Delay  time.Duration
}

// loadEngine parses a maze file into a fresh engine
func loadEngine(path string) (*engine.GameEngine, error) {
	if path == "" {
		return nil, errors.New("a maze file is required")
	}

	raw, err := engine.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("file", path).Debugf("Loaded %dx%d maze", raw.Rows(), raw.Cols())
	return engine.NewEngine(path, raw)
}

// Run reads commands until the player quits, declines to play again or the
// input ends
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.In)

	c.printBoard()
	fmt.Fprintln(c.Out, consoleHelp)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(c.Out, "Bye!")
			return nil
		case "reset":
			c.Engine.Reset()
			c.printBoard()
			continue
		case "replay":
			c.Engine.ResetHistory()
			c.printBoard()
			continue
		case "solution", "solve":
			if err := c.animateSolution(ctx); err != nil {
				return err
			}
		default:
			dir, err := engine.ParseDirection(input)
			if err != nil {
				fmt.Fprintln(c.Out, "Illegitimate move")
				continue
			}
			if _, err := c.Engine.Move(dir); err != nil {
				return err
			}
			c.printBoard()
		}

		if c.Engine.IsCompleted() {
			again, err := c.askPlayAgain(scanner)
			if err != nil || !again {
				return err
			}
			c.Engine.Reset()
			c.printBoard()
		}
	}
}

// animateSolution marks the solved path and walks it one frame per move
func (c *Console) animateSolution(ctx context.Context) error {
	solution := c.Engine.Solve()
	c.Engine.ShowSolution(solution)
	if !solution.Solvable {
		fmt.Fprintln(c.Out, c.Engine.GetState().Message)
		return nil
	}

	for _, line := range engine.RenderSolution(c.Engine.Grid(), solution) {
		fmt.Fprintln(c.Out, line)
	}
	fmt.Fprintf(c.Out, "Solution found: %d moves\n", len(solution.Moves))

	for _, dir := range solution.Moves {
		if c.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.Delay):
			}
		}
		if _, err := c.Engine.Move(dir); err != nil {
			return err
		}
		c.printBoard()
	}
	return nil
}

func (c *Console) askPlayAgain(scanner *bufio.Scanner) (bool, error) {
	fmt.Fprint(c.Out, "Play again? (y/n) ")
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func (c *Console) printBoard() {
	state := c.Engine.GetState()
	fmt.Fprintln(c.Out)
	for _, line := range state.Lines {
		fmt.Fprintln(c.Out, line)
	}
	if state.Message != "" {
		fmt.Fprintln(c.Out, state.Message)
	}
}

// printSolution writes the maze with its solution path, or a notice when
// there is none
func printSolution(out io.Writer, eng *engine.GameEngine) {
	solution := eng.Solve()
	if !solution.Solvable {
		fmt.Fprintln(out, "There is no solution")
		return
	}

	for _, line := range engine.RenderSolution(eng.Grid(), solution) {
		fmt.Fprintln(out, line)
	}

	moves := make([]string, len(solution.Moves))
	for i, d := range solution.Moves {
		moves[i] = string(d)
	}
	fmt.Fprintf(out, "Solution found: %d moves\n%s\n", len(solution.Moves), strings.Join(moves, " "))
}
