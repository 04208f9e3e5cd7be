package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mazegame/game/engine"
)

const loopMaze = `7 7
#######
#S    #
# ### #
#     #
# ### #
#    E#
#######
`

const deadEndMaze = `5 7
#######
#S #  #
## # ##
#    E#
#######
`

func writeMaze(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write maze: %v", err)
	}
	return path
}

func TestAnalyzeMaze(t *testing.T) {
	dir := t.TempDir()

	t.Run("loop maze", func(t *testing.T) {
		a := analyzeMaze(writeMaze(t, dir, "loop.txt", loopMaze))

		if a.Error != "" {
			t.Fatalf("Unexpected error: %s", a.Error)
		}
		if a.Rows != 7 || a.Cols != 7 {
			t.Errorf("Expected 7x7, got %dx%d", a.Rows, a.Cols)
		}
		if a.Manhattan != 8 {
			t.Errorf("Expected Manhattan distance 8, got %d", a.Manhattan)
		}
		if !a.Solvable || a.SolutionLength != 8 {
			t.Errorf("Expected a shortest 8 move solution, got solvable=%v length=%d", a.Solvable, a.SolutionLength)
		}
		if !a.Verified {
			t.Error("Expected the solution to replay to the exit")
		}
		if a.DeadEnds != 0 {
			t.Errorf("Expected no dead ends in a loop, got %d", a.DeadEnds)
		}
	})

	t.Run("dead ends", func(t *testing.T) {
		a := analyzeMaze(writeMaze(t, dir, "dead.txt", deadEndMaze))
		if a.Error != "" {
			t.Fatalf("Unexpected error: %s", a.Error)
		}
		// (1,1), (1,5), (3,1) and the exit each have one open neighbour
		if a.DeadEnds != 4 {
			t.Errorf("Expected 4 dead ends, got %d", a.DeadEnds)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		a := analyzeMaze(writeMaze(t, dir, "bad.txt", "3 3\n#X#\n"))
		if a.Error == "" {
			t.Error("Expected an error for an invalid maze")
		}
	})
}

func TestVerifySolution(t *testing.T) {
	raw, err := engine.ParseString(loopMaze)
	if err != nil {
		t.Fatal(err)
	}

	bogus := engine.Solution{Solvable: true, Moves: []engine.Direction{engine.Up}}
	if verifySolution(raw, bogus) {
		t.Error("Expected a wall bump to fail verification")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeMaze(t, dir, "loop.txt", loopMaze)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		if err := run(&out, dir, false); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		for _, want := range []string{"=== Analyzing loop.txt ===", "Solution Length: 8 moves", "Detour Ratio: 1.00"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("Expected %q in output:\n%s", want, out.String())
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		if err := run(&out, dir, true); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		var results []Analysis
		if err := json.Unmarshal(out.Bytes(), &results); err != nil {
			t.Fatalf("Invalid JSON output: %v", err)
		}
		if len(results) != 1 || results[0].File != "loop.txt" {
			t.Errorf("Unexpected results: %+v", results)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		if err := run(&bytes.Buffer{}, t.TempDir(), false); err == nil {
			t.Error("Expected error for empty directory")
		}
	})
}
