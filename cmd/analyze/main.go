// Command analyze prints quick, human-readable statistics about the maze
// files in a directory: dimensions, open cells, dead ends, the straight-line
// distance from start to exit versus the solver's path, and how much of the
// maze the solver had to explore.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mazegame/game/engine"
)

// Analysis holds the statistics for one maze file
type Analysis struct {
	File           string          `json:"file"`
	Rows           int             `json:"rows"`
	Cols           int             `json:"cols"`
	OpenCells      int             `json:"open_cells"`
	DeadEnds       int             `json:"dead_ends"`
	Start          engine.Position `json:"start"`
	Exit           engine.Position `json:"exit"`
	Manhattan      int             `json:"manhattan"`
	Solvable       bool            `json:"solvable"`
	SolutionLength int             `json:"solution_length"`
	Explored       int             `json:"explored"`
	Verified       bool            `json:"verified"`
	Error          string          `json:"error,omitempty"`
}

// analyzeMaze loads a maze file and gathers its statistics. Load failures are
// reported in Error.
func analyzeMaze(path string) Analysis {
	a := Analysis{File: filepath.Base(path)}

	raw, err := engine.LoadFile(path)
	if err != nil {
		a.Error = err.Error()
		return a
	}

	grid, player, err := engine.FromRaw(raw)
	if err != nil {
		a.Error = err.Error()
		return a
	}

	a.Rows, a.Cols = grid.Rows(), grid.Cols()
	a.OpenCells = grid.OpenCells()
	a.DeadEnds = countDeadEnds(grid)
	a.Start = player.Position
	a.Exit = grid.ExitPosition()
	a.Manhattan = engine.ManhattanDistance(a.Start, a.Exit)

	solution := engine.Solve(grid, player.Position)
	a.Solvable = solution.Solvable
	a.SolutionLength = len(solution.Moves)
	a.Explored = solution.Explored

	if solution.Solvable {
		a.Verified = verifySolution(raw, solution)
	}

	return a
}

// countDeadEnds counts passable cells with exactly one passable neighbour
func countDeadEnds(grid *engine.Grid) int {
	deadEnds := 0
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			p := engine.Position{Row: r, Col: c}
			if grid.IsPassable(p) && len(grid.PossibleMoves(p)) == 1 {
				deadEnds++
			}
		}
	}
	return deadEnds
}

// verifySolution walks the solution on a fresh copy of the maze and checks
// every move lands and the walk ends on the exit
func verifySolution(raw engine.RawGrid, solution engine.Solution) bool {
	grid, player, err := engine.FromRaw(raw)
	if err != nil {
		return false
	}

	allMoved := true
	err = solution.Replay(grid, player, func(i int, result engine.MoveResult) {
		if !result.Moved {
			allMoved = false
		}
	})
	return err == nil && allMoved && player.Position == grid.ExitPosition()
}

func printAnalysis(out io.Writer, a Analysis) {
	fmt.Fprintf(out, "\n=== Analyzing %s ===\n", a.File)
	if a.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", a.Error)
		return
	}

	fmt.Fprintf(out, "Grid Size: %d x %d\n", a.Rows, a.Cols)
	fmt.Fprintf(out, "Open Cells: %d\n", a.OpenCells)
	fmt.Fprintf(out, "Dead Ends: %d\n", a.DeadEnds)
	fmt.Fprintf(out, "Start: (%d, %d)  Exit: (%d, %d)\n", a.Start.Row, a.Start.Col, a.Exit.Row, a.Exit.Col)
	fmt.Fprintf(out, "Manhattan Distance: %d\n", a.Manhattan)

	if !a.Solvable {
		fmt.Fprintf(out, "⚠️  No path from start to exit (explored %d cells)\n", a.Explored)
		return
	}

	fmt.Fprintf(out, "Solution Length: %d moves\n", a.SolutionLength)
	if a.Manhattan > 0 {
		fmt.Fprintf(out, "Detour Ratio: %.2f\n", float64(a.SolutionLength)/float64(a.Manhattan))
	}
	fmt.Fprintf(out, "Explored: %d of %d open cells\n", a.Explored, a.OpenCells)
	if a.Verified {
		fmt.Fprintf(out, "✅ Solution replays to the exit\n")
	} else {
		fmt.Fprintf(out, "⚠️  Solution did not replay to the exit\n")
	}
}

func run(out io.Writer, dir string, asJSON bool) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no maze files found in %s", dir)
	}

	results := make([]Analysis, 0, len(files))
	for _, file := range files {
		results = append(results, analyzeMaze(file))
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, a := range results {
		printAnalysis(out, a)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "Print statistics about maze files",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the statistics as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "mazes"
			}
			return run(os.Stdout, dir, cmd.Bool("json"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
