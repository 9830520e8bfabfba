package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepcavern/internal/game"
)

// itemPrompt is an item command waiting for a slot letter.
type itemPrompt struct {
	kind  game.ActionKind
	title string
}

var itemPrompts = map[rune]itemPrompt{
	'd': {game.ActDrop, "Drop which item?"},
	'E': {game.ActEat, "Eat which item?"},
	'w': {game.ActWield, "Wield which item?"},
	'W': {game.ActWear, "Wear which item?"},
}

var moveKeys = map[tcell.Key][2]int{
	tcell.KeyUp:    {0, -1},
	tcell.KeyDown:  {0, 1},
	tcell.KeyLeft:  {-1, 0},
	tcell.KeyRight: {1, 0},
}

var moveRunes = map[rune][2]int{
	'k': {0, -1},
	'j': {0, 1},
	'h': {-1, 0},
	'l': {1, 0},
}

// KeyAction maps a key to an action that needs no further input.
func KeyAction(ev *tcell.EventKey) (game.Action, bool) {
	if d, ok := moveKeys[ev.Key()]; ok {
		return game.Move(d[0], d[1]), true
	}
	if ev.Key() != tcell.KeyRune {
		return game.Action{}, false
	}
	if d, ok := moveRunes[ev.Rune()]; ok {
		return game.Move(d[0], d[1]), true
	}
	switch ev.Rune() {
	case '.':
		return game.Action{Kind: game.ActWait}, true
	case '>':
		return game.Action{Kind: game.ActDescend}, true
	case '<':
		return game.Action{Kind: game.ActAscend}, true
	case ',':
		return game.Action{Kind: game.ActPickup}, true
	case 'u':
		return game.Action{Kind: game.ActUnwield}, true
	case 'T':
		return game.Action{Kind: game.ActTakeOff}, true
	}
	return game.Action{}, false
}

func slotRune(i int) rune {
	return 'a' + rune(i)
}

// slotIndex returns the inventory slot named by a letter key.
func slotIndex(ch rune) (int, bool) {
	if ch < 'a' || ch > 'z' {
		return 0, false
	}
	return int(ch - 'a'), true
}

// statIndex returns the zero-based stat choice named by a digit key.
func statIndex(ch rune) (int, bool) {
	if ch < '1' || ch > '9' {
		return 0, false
	}
	return int(ch - '1'), true
}
