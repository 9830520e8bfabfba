package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepcavern/internal/combat"
	"github.com/samdwyer/deepcavern/internal/game"
	"github.com/samdwyer/deepcavern/internal/progression"
)

func newTestApp(t *testing.T) (*App, *Screen) {
	t.Helper()
	screen, _, err := NewSimulationScreen(100, 30)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Close)

	cfg := game.DefaultConfig()
	cfg.Seed = 3
	cfg.Depth = 1
	cfg.CavernSize = 30
	cfg.MonstersPerLevel = 0
	cfg.ItemsPerLevel = 0

	r := NewRenderer(screen)
	g, err := game.New(context.Background(), cfg, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return NewApp(screen, r, g), screen
}

func row(s *Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func screenText(s *Screen) string {
	_, h := s.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = row(s, y)
	}
	return strings.Join(lines, "\n")
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestStatusLine(t *testing.T) {
	_, screen := newTestApp(t)

	_, h := screen.Size()
	status := row(screen, h-1)
	for _, want := range []string{"HP: 40/40", "Lvl: 1", "XP: 0/10", "Depth: 1", "Turn: 1"} {
		if !strings.Contains(status, want) {
			t.Errorf("Expected %q in status line %q", want, status)
		}
	}
}

func TestPlayerDrawn(t *testing.T) {
	app, screen := newTestApp(t)
	p := app.game.Player()

	found := false
	_, h := screen.Size()
	for y := messageRows; y < h-1; y++ {
		if strings.ContainsRune(row(screen, y), p.Glyph) {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected the player glyph %q on the map:\n%s", p.Glyph, screenText(screen))
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Action
		ok   bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Move(0, -1), true},
		{"vi left", key('h'), game.Move(-1, 0), true},
		{"wait", key('.'), game.Action{Kind: game.ActWait}, true},
		{"descend", key('>'), game.Action{Kind: game.ActDescend}, true},
		{"pickup", key(','), game.Action{Kind: game.ActPickup}, true},
		{"unwield", key('u'), game.Action{Kind: game.ActUnwield}, true},
		{"take off", key('T'), game.Action{Kind: game.ActTakeOff}, true},
		{"unbound", key('z'), game.Action{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyAction(tt.ev)
			if ok != tt.ok || got.Kind != tt.want.Kind || got.DX != tt.want.DX || got.DY != tt.want.DY {
				t.Errorf("Expected %+v %v, got %+v %v", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestWaitKeyPassesTurn(t *testing.T) {
	app, _ := newTestApp(t)

	app.HandleKey(context.Background(), key('.'))
	if app.game.Turn() != 2 {
		t.Errorf("Expected turn 2, got %d", app.game.Turn())
	}
}

func TestItemPrompt(t *testing.T) {
	app, screen := newTestApp(t)
	ctx := context.Background()

	app.HandleKey(ctx, key('E'))
	if app.prompt == nil {
		t.Fatal("Expected an open item prompt")
	}
	if text := screenText(screen); !strings.Contains(text, "Eat which item?") {
		t.Errorf("Expected the prompt on screen:\n%s", text)
	}

	app.HandleKey(ctx, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if app.prompt != nil || !app.Running() {
		t.Error("Expected escape to close only the prompt")
	}
	if app.game.Turn() != 1 {
		t.Errorf("Expected no turn used, got turn %d", app.game.Turn())
	}
}

func TestStatAllocationKeys(t *testing.T) {
	app, screen := newTestApp(t)
	ctx := context.Background()
	p := app.game.Player()

	if err := progression.GiveExperience(ctx, p, 10); err != nil {
		t.Fatal(err)
	}
	if text := screenText(screen); !strings.Contains(text, "Choose a stat") {
		t.Fatalf("Expected the stat menu:\n%s", text)
	}

	// Movement is ignored until a stat is chosen.
	app.HandleKey(ctx, key('.'))
	if app.game.Turn() != 1 {
		t.Errorf("Expected no turn during allocation, got %d", app.game.Turn())
	}

	// Options are attack, defense, max HP, sight.
	app.HandleKey(ctx, key('1'))
	if app.game.Allocating() {
		t.Fatal("Expected allocation to close")
	}
	if atk, _ := combat.AttackValue(p); atk != 12 {
		t.Errorf("Expected attack 12, got %d", atk)
	}
}

func TestQuitAndEndScreen(t *testing.T) {
	app, _ := newTestApp(t)
	app.HandleKey(context.Background(), key('q'))
	if app.Running() {
		t.Error("Expected q to quit")
	}

	app, screen := newTestApp(t)
	ctx := context.Background()
	if err := combat.TakeDamage(ctx, app.game.Player(), app.game.Boss(), 1000); err != nil {
		t.Fatal(err)
	}
	if text := screenText(screen); !strings.Contains(text, "You are victorious!") {
		t.Errorf("Expected the victory screen:\n%s", text)
	}
	app.HandleKey(ctx, key('.'))
	if !app.Running() {
		t.Error("Expected other keys to be ignored after the game ends")
	}
	app.HandleKey(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if app.Running() {
		t.Error("Expected enter to leave the end screen")
	}
}

func TestEndScreenKeptOverStatMenu(t *testing.T) {
	app, screen := newTestApp(t)
	ctx := context.Background()
	if err := combat.TakeDamage(ctx, app.game.Player(), app.game.Boss(), 1000); err != nil {
		t.Fatal(err)
	}

	app.renderer.StatAllocation(app.game)

	text := screenText(screen)
	if !strings.Contains(text, "You are victorious!") {
		t.Errorf("Expected the victory screen to stay:\n%s", text)
	}
	if strings.Contains(text, "Choose a stat") {
		t.Errorf("Expected no stat menu over the victory screen:\n%s", text)
	}
}
