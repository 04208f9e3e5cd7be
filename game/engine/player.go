package engine

// PlayerState is the player's current position plus the ordered history of
// cells stepped on once (Visited) and stepped on again (Revisited).
type PlayerState struct {
	Position  Position   `json:"position"`
	Visited   []Position `json:"visited"`
	Revisited []Position `json:"revisited"`
}

// NewPlayerState creates a player at start with empty history
func NewPlayerState(start Position) *PlayerState {
	return &PlayerState{
		Position:  start,
		Visited:   []Position{},
		Revisited: []Position{},
	}
}

// HasVisited reports whether p is already in the visited history
func (p *PlayerState) HasVisited(pos Position) bool {
	for _, v := range p.Visited {
		if v == pos {
			return true
		}
	}
	return false
}

// Record appends pos to Revisited when it was visited before and to Visited
// otherwise. It returns true for a revisit.
func (p *PlayerState) Record(pos Position) bool {
	if p.HasVisited(pos) {
		p.Revisited = append(p.Revisited, pos)
		return true
	}
	p.Visited = append(p.Visited, pos)
	return false
}

// ResetHistory clears both histories and seeds Visited with the current position
func (p *PlayerState) ResetHistory() {
	p.Visited = []Position{p.Position}
	p.Revisited = []Position{}
}

// Clone returns a deep copy
func (p *PlayerState) Clone() *PlayerState {
	c := &PlayerState{
		Position:  p.Position,
		Visited:   make([]Position, len(p.Visited)),
		Revisited: make([]Position, len(p.Revisited)),
	}
	copy(c.Visited, p.Visited)
	copy(c.Revisited, p.Revisited)
	return c
}
