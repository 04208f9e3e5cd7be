// Command validate checks every maze file (*.txt) in a directory. For each
// file it reports:
//   - Format problems (header, row lengths, characters) with their location
//   - Marker problems (exactly one S and one E)
//   - Grid size, open cells and whether the exit is reachable from the start
//
// Unsolvable mazes are valid maze files; --strict treats them as failures.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mazegame/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Solvable bool
	Kind     string
	Errors   []string
}

// validateMaze loads and validates a single maze file
func validateMaze(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	raw, err := engine.LoadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Kind = engine.KindName(err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	grid, player, err := engine.FromRaw(raw)
	if err != nil {
		result.Valid = false
		result.Kind = engine.KindName(err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	solution := engine.Solve(grid, player.Position)
	result.Solvable = solution.Solvable

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", raw.Rows(), raw.Cols()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Open cells: %d", grid.OpenCells()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Start: (%d,%d) Exit: (%d,%d)",
		player.Position.Row, player.Position.Col, grid.ExitPosition().Row, grid.ExitPosition().Col))
	if solution.Solvable {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Solvable in %d moves", len(solution.Moves)))
	} else {
		result.Errors = append(result.Errors, "⚠ No path from S to E")
	}

	return result
}

// run validates every maze in dir and reports to out. It returns false when
// any maze is invalid, or unsolvable in strict mode.
func run(out io.Writer, dir string, strict bool) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return false, fmt.Errorf("error finding maze files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no maze files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateMaze(file)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		failed := !result.Valid || (strict && !result.Solvable)
		if failed {
			allValid = false
		}

		switch {
		case !result.Valid:
			fmt.Fprintf(out, "❌ INVALID (%s)\n", result.Kind)
			for _, msg := range result.Errors {
				fmt.Fprintln(out, "  ❌ "+msg)
			}
		case failed:
			fmt.Fprintln(out, "❌ UNSOLVABLE")
			for _, info := range result.Errors {
				fmt.Fprintln(out, "  "+info)
			}
		default:
			fmt.Fprintln(out, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(out, "  "+info)
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(out, "✅ All mazes are valid!")
	} else {
		fmt.Fprintln(out, "❌ Some mazes have errors")
	}
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "Validate maze files",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on mazes without a solution",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = os.Getenv("MAZE_DIR")
			}
			if dir == "" {
				dir = "../mazes"
			}

			ok, err := run(os.Stdout, dir, cmd.Bool("strict"))
			if err != nil {
				return err
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
