package game

import "errors"

var (
	ErrGameOver      = errors.New("game is over")
	ErrAllocating    = errors.New("stat points must be spent first")
	ErrNotAllocating = errors.New("no stat allocation in progress")
)

// Viewer presents the game. Every call happens on the game's goroutine.
type Viewer interface {
	// Refresh redraws the current state, including queued messages.
	Refresh(g *Game)
	// GameOver shows that the player died.
	GameOver(g *Game)
	// Victory shows that the boss was defeated.
	Victory(g *Game)
	// StatAllocation asks the player to spend stat points.
	StatAllocation(g *Game)
}

// NopViewer ignores every call.
type NopViewer struct{}

func (NopViewer) Refresh(*Game)        {}
func (NopViewer) GameOver(*Game)       {}
func (NopViewer) Victory(*Game)        {}
func (NopViewer) StatAllocation(*Game) {}
