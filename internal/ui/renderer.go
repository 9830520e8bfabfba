package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepcavern/internal/ai"
	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/game"
	"github.com/samdwyer/deepcavern/internal/gamedata"
	"github.com/samdwyer/deepcavern/internal/inventory"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/progression"
	"github.com/samdwyer/deepcavern/internal/survival"
	"github.com/samdwyer/deepcavern/internal/world"
)

// Rows reserved above the map for messages.
const messageRows = 3

type overlay int

const (
	overlayNone overlay = iota
	overlayGameOver
	overlayVictory
	overlayStats
	overlayInventory
)

// Renderer draws the game. It implements game.Viewer.
type Renderer struct {
	screen   *Screen
	overlay  overlay
	messages []string
	title    string // inventory overlay heading
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Refresh copies the player's pending messages and redraws.
func (r *Renderer) Refresh(g *game.Game) {
	r.takeMessages(g)
	if r.overlay == overlayStats && !g.Allocating() {
		r.overlay = overlayNone
	}
	r.Render(g)
}

// GameOver shows the death screen.
func (r *Renderer) GameOver(g *game.Game) {
	r.takeMessages(g)
	r.overlay = overlayGameOver
	r.Render(g)
}

// Victory shows the victory screen.
func (r *Renderer) Victory(g *game.Game) {
	r.takeMessages(g)
	r.overlay = overlayVictory
	r.Render(g)
}

// StatAllocation shows the stat choice menu. End screens stay up.
func (r *Renderer) StatAllocation(g *game.Game) {
	if r.overlay == overlayGameOver || r.overlay == overlayVictory {
		return
	}
	r.overlay = overlayStats
	r.Render(g)
}

// ShowInventory lists the player's items under title until HideInventory.
func (r *Renderer) ShowInventory(g *game.Game, title string) {
	r.overlay = overlayInventory
	r.title = title
	r.Render(g)
}

// HideInventory closes the item list.
func (r *Renderer) HideInventory(g *game.Game) {
	if r.overlay == overlayInventory {
		r.overlay = overlayNone
	}
	r.Render(g)
}

func (r *Renderer) takeMessages(g *game.Game) {
	msgs, err := narration.Messages(g.Player())
	if err != nil {
		return
	}
	r.messages = append(r.messages[:0], msgs...)
}

// Render draws messages, the visible map, the status line and any overlay.
func (r *Renderer) Render(g *game.Game) {
	r.screen.Clear()
	w, h := r.screen.Size()

	for i, msg := range lastN(r.messages, messageRows) {
		r.screen.DrawText(0, i, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	r.renderMap(g, 0, messageRows, w, h-messageRows-1)
	r.screen.DrawText(0, h-1, StatusLine(g), tcell.StyleDefault.Foreground(tcell.ColorYellow))

	switch r.overlay {
	case overlayGameOver:
		lines := []string{"You have died.", "Cause: " + g.Player().DeathCause()}
		r.renderBox(append(lines, r.messages...))
	case overlayVictory:
		r.renderBox(append([]string{"You are victorious!"}, r.messages...))
	case overlayStats:
		r.renderBox(statLines(g))
	case overlayInventory:
		r.renderBox(inventoryLines(g, r.title))
	}

	r.screen.Show()
}

// renderMap draws level z around the player. Cells in view are lit and
// explored; remembered cells are drawn dim without their contents.
func (r *Renderer) renderMap(g *game.Game, left, top, width, height int) {
	p := g.Player()
	m := g.World()
	lvl := m.Level(p.Z)
	if lvl == nil || width <= 0 || height <= 0 {
		return
	}

	radius, err := ai.SightRadius(p)
	if err != nil {
		radius = 0
	}
	visible := m.FOV(p.X, p.Y, p.Z, radius)
	m.Explore(p.Z, visible)

	ox := clamp(p.X-width/2, 0, max(0, lvl.Width-width))
	oy := clamp(p.Y-height/2, 0, max(0, lvl.Height-height))

	for sy := 0; sy < height; sy++ {
		for sx := 0; sx < width; sx++ {
			x, y := ox+sx, oy+sy
			if x >= lvl.Width || y >= lvl.Height {
				continue
			}
			tile := lvl.GetTile(x, y)
			switch {
			case visible.Has(entity.Point{X: x, Y: y}):
				ch, style := tile.Rune(), tileStyle(tile)
				if items := m.ItemsAt(x, y, p.Z); len(items) > 0 {
					last := items[len(items)-1]
					ch, style = last.Glyph, tcell.StyleDefault.Foreground(gamedata.ColorOf(last))
				}
				if e := m.EntityAt(x, y, p.Z); e != nil {
					ch, style = e.Glyph, tcell.StyleDefault.Foreground(gamedata.ColorOf(e))
				}
				r.screen.SetContent(left+sx, top+sy, ch, style)
			case m.IsExplored(x, y, p.Z):
				r.screen.SetContent(left+sx, top+sy, tile.Rune(), tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray))
			}
		}
	}
}

func (r *Renderer) renderBox(lines []string) {
	w, h := r.screen.Size()
	inner := 0
	for _, l := range lines {
		inner = max(inner, len(l))
	}
	bw, bh := inner+4, len(lines)+2
	x0, y0 := max(0, (w-bw)/2), max(0, (h-bh)/2)
	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			ch := ' '
			switch {
			case (y == 0 || y == bh-1) && (x == 0 || x == bw-1):
				ch = '+'
			case y == 0 || y == bh-1:
				ch = '-'
			case x == 0 || x == bw-1:
				ch = '|'
			}
			r.screen.SetContent(x0+x, y0+y, ch, border)
		}
	}
	for i, l := range lines {
		r.screen.DrawText(x0+2, y0+1+i, l, text)
	}
}

// StatusLine summarizes the player's health, level, hunger and depth.
func StatusLine(g *game.Game) string {
	p := g.Player()
	var parts []string
	if hp, err := combat.HP(p); err == nil {
		maxHP, _ := combat.MaxHP(p)
		parts = append(parts, fmt.Sprintf("HP: %d/%d", hp, maxHP))
	}
	if lvl, err := progression.Level(p); err == nil {
		exp, _ := progression.Experience(p)
		next, _ := progression.NextLevelExperience(p)
		parts = append(parts, fmt.Sprintf("Lvl: %d", lvl), fmt.Sprintf("XP: %d/%d", exp, next))
	}
	if state, err := survival.HungerState(p); err == nil {
		parts = append(parts, state)
	}
	if poisoned, turns, err := combat.PoisonState(p); err == nil && poisoned {
		parts = append(parts, fmt.Sprintf("Poisoned (%d)", turns))
	}
	parts = append(parts, fmt.Sprintf("Depth: %d", p.Z+1), fmt.Sprintf("Turn: %d", g.Turn()))
	return strings.Join(parts, "  ")
}

func statLines(g *game.Game) []string {
	points, _ := progression.StatPoints(g.Player())
	lines := []string{fmt.Sprintf("Choose a stat to increase (%d left):", points)}
	for i, s := range progression.StatOptions(g.Player()) {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, s))
	}
	return lines
}

func inventoryLines(g *game.Game, title string) []string {
	lines := []string{title}
	items, err := inventory.Items(g.Player())
	if err != nil {
		return lines
	}
	for i, item := range items {
		if item == nil {
			continue
		}
		line := fmt.Sprintf("%c) %s", slotRune(i), inventory.Describe(item))
		if inventory.IsEquipped(g.Player(), item) {
			line += " (equipped)"
		}
		lines = append(lines, line)
	}
	if len(lines) == 1 {
		lines = append(lines, "You are carrying nothing.")
	}
	return append(lines, "[Esc] to cancel")
}

func tileStyle(t world.Tile) tcell.Style {
	switch t {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileWater:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case world.TileStairsDown, world.TileStairsUp:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

func lastN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
