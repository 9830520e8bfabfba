package ui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/deepcavern/internal/game"
	"github.com/samdwyer/deepcavern/internal/logging"
	"github.com/samdwyer/deepcavern/internal/progression"
)

// App runs the input loop for one game.
type App struct {
	screen   *Screen
	renderer *Renderer
	game     *game.Game
	prompt   *itemPrompt
	running  bool
}

// NewApp creates an App drawing through renderer.
func NewApp(screen *Screen, renderer *Renderer, g *game.Game) *App {
	return &App{
		screen:   screen,
		renderer: renderer,
		game:     g,
		running:  true,
	}
}

// Run starts the game and processes key presses until the player quits or
// confirms the end screen.
func (a *App) Run(ctx context.Context) error {
	if err := a.game.Start(ctx); err != nil {
		return err
	}
	for a.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			a.HandleKey(ctx, ev)
		case *tcell.EventResize:
			a.screen.Sync()
			a.renderer.Render(a.game)
		case nil:
			// Screen finalized.
			return nil
		}
	}
	return nil
}

// Running reports whether the loop should keep going.
func (a *App) Running() bool {
	return a.running
}

// HandleKey processes one key press.
func (a *App) HandleKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		a.running = false
		return
	}

	g := a.game
	switch {
	case g.Outcome() != game.Playing:
		if ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyEscape {
			a.running = false
		}
	case g.Allocating():
		a.allocate(ctx, ev)
	case a.prompt != nil:
		a.answerPrompt(ctx, ev)
	case ev.Key() == tcell.KeyEscape || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q'):
		a.running = false
	default:
		if ev.Key() == tcell.KeyRune {
			if p, ok := itemPrompts[ev.Rune()]; ok {
				a.prompt = &p
				a.renderer.ShowInventory(g, p.title)
				return
			}
		}
		if act, ok := KeyAction(ev); ok {
			a.handle(ctx, act)
		}
	}
}

func (a *App) allocate(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	i, ok := statIndex(ev.Rune())
	options := progression.StatOptions(a.game.Player())
	if !ok || i >= len(options) {
		return
	}
	if err := a.game.AllocateStat(ctx, options[i]); err != nil {
		logger().WithError(err).WithField("stat", options[i]).Warn("stat allocation failed")
	}
}

func (a *App) answerPrompt(ctx context.Context, ev *tcell.EventKey) {
	p := a.prompt
	if ev.Key() == tcell.KeyEscape {
		a.prompt = nil
		a.renderer.HideInventory(a.game)
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	slot, ok := slotIndex(ev.Rune())
	if !ok {
		return
	}
	a.prompt = nil
	a.renderer.overlay = overlayNone
	a.handle(ctx, game.Action{Kind: p.kind, Slot: slot})
}

func (a *App) handle(ctx context.Context, act game.Action) {
	err := a.game.Handle(ctx, act)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrAllocating):
	default:
		logger().WithError(err).WithFields(logrus.Fields{
			"action": act.Kind,
		}).Error("action failed")
		a.renderer.Render(a.game)
	}
}

func logger() *logrus.Entry {
	return logging.For("ui")
}
