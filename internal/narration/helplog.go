package narration

import (
	"context"
	"strings"

	"github.com/samdwyer/deepcavern/internal/entity"
)

// Help categories raised by the inventory.
const (
	HelpEdible    = "edible"
	HelpWearable  = "wearable"
	HelpWieldable = "wieldable"
	HelpDrop      = "drop"
)

// DefaultHelp maps help categories to hint text. "%s" is replaced by the
// subject's name when there is one.
var DefaultHelp = map[string]string{
	HelpEdible:    "The %s looks edible. Press [E] to eat it.",
	HelpWearable:  "You could wear the %s. Press [W] to put it on.",
	HelpWieldable: "The %s would make a fine weapon. Press [w] to wield it.",
	HelpDrop:      "Your pack is full. Press [d] to drop something.",
}

// DefaultStory holds the lines shown on particular player turns.
var DefaultStory = map[int]string{
	1:   "The air is damp and smells of rot. Something stirs far below.",
	50:  "Faint chanting echoes up from the depths.",
	200: "You feel watched.",
}

// HelpLog is a Narrator that shows each hint once and tells a short story
// as the player's turns go by. Hints are delivered on the next player turn.
type HelpLog struct {
	help    map[string]string
	story   map[int]string
	shown   map[string]bool
	pending []string
	turn    int
}

// NewHelpLog creates a HelpLog. Nil maps select the defaults.
func NewHelpLog(help map[string]string, story map[int]string) *HelpLog {
	if help == nil {
		help = DefaultHelp
	}
	if story == nil {
		story = DefaultStory
	}
	return &HelpLog{
		help:  help,
		story: story,
		shown: make(map[string]bool),
	}
}

// Pending reports whether the category's hint has yet to be shown.
func (h *HelpLog) Pending(category string) bool {
	_, known := h.help[category]
	return known && !h.shown[category]
}

// HelpText queues the category's hint unless it was already shown.
func (h *HelpLog) HelpText(category string, subject *entity.Entity) {
	if !h.Pending(category) {
		return
	}
	h.shown[category] = true
	text := h.help[category]
	if strings.Contains(text, "%s") {
		name := "item"
		if subject != nil {
			name = subject.Name
		}
		text = strings.Replace(text, "%s", name, 1)
	}
	h.pending = append(h.pending, text)
}

// ProcessTurn advances the turn counter and flushes hints and story lines.
func (h *HelpLog) ProcessTurn(ctx context.Context, player *entity.Entity) {
	h.turn++
	if line, ok := h.story[h.turn]; ok {
		Send(player, "%s", line)
	}
	for _, text := range h.pending {
		Send(player, "%s", text)
	}
	h.pending = h.pending[:0]
}

// Turn returns how many player turns have been processed.
func (h *HelpLog) Turn() int {
	return h.turn
}
