package service

import (
	"github.com/wricardo/mazegame/game/engine"
)

// DescribeMaze summarises a maze, solving it from its start cell
func DescribeMaze(name string, raw engine.RawGrid) *MazeInfo {
	info := &MazeInfo{
		Filename: name + ".txt",
		MazeID:   name,
		Rows:     raw.Rows(),
		Cols:     raw.Cols(),
	}

	grid, player, err := engine.FromRaw(raw)
	if err != nil {
		return info
	}

	solution := engine.Solve(grid, player.Position)
	info.OpenCells = grid.OpenCells()
	info.Solvable = solution.Solvable
	info.SolutionLength = len(solution.Moves)
	return info
}

func describeDetail(name string, raw engine.RawGrid) *MazeDetail {
	detail := &MazeDetail{
		MazeInfo: *DescribeMaze(name, raw),
		Content:  raw.String(),
	}
	if grid, _, err := engine.FromRaw(raw); err == nil {
		detail.Lines = engine.Render(grid)
	}
	return detail
}
