package engine

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// corridorMaze has a single winding corridor from S at (1,1) to E at (5,5)
const corridorMaze = `7 7
#######
#S    #
##### #
#     #
# #####
#    E#
#######
`

// loopMaze has two routes around a central block
const loopMaze = `7 7
#######
#S    #
# ### #
#     #
# ### #
#    E#
#######
`

// walledMaze keeps S and E in regions separated by a full wall row
const walledMaze = `7 7
#######
#S    #
#     #
#######
#    E#
#     #
#######
`

// edgeMaze puts the start on the grid border
const edgeMaze = `3 3
S E
# #
###
`

func mustParse(t *testing.T, text string) RawGrid {
	t.Helper()
	raw, err := ParseString(text)
	require.NoError(t, err)
	return raw
}

func mustGrid(t *testing.T, text string) (*Grid, *PlayerState) {
	t.Helper()
	grid, player, err := FromRaw(mustParse(t, text))
	require.NoError(t, err)
	return grid, player
}

func mustEngine(t *testing.T, text string) *GameEngine {
	t.Helper()
	e, err := NewEngine("test", mustParse(t, text))
	require.NoError(t, err)
	return e
}

// blankMaze builds a header plus rows of walls with the given shape
func blankMaze(rows, cols int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(rows) + " " + strconv.Itoa(cols))
	b.WriteByte('\n')
	for i := 0; i < rows; i++ {
		b.WriteString(strings.Repeat("#", cols))
		b.WriteByte('\n')
	}
	return b.String()
}
