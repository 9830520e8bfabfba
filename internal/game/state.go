// Package game builds a dungeon, wires the turn scheduler and translates
// player actions into turns.
package game

// Outcome represents how the game currently stands.
type Outcome int

const (
	// Playing is the state until the player dies or the boss does.
	Playing Outcome = iota
	// Won means the boss was defeated.
	Won
	// Lost means the player died.
	Lost
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}
