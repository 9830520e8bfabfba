package game

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepcavern/internal/entity"
	"github.com/samdwyer/deepcavern/internal/gamedata"
	"github.com/samdwyer/deepcavern/internal/logging"
	"github.com/samdwyer/deepcavern/internal/narration"
	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/telemetry"
	"github.com/samdwyer/deepcavern/internal/turn"
	"github.com/samdwyer/deepcavern/internal/world"
)

// Boss cavern inhabitants.
const (
	bossName  = "shub-niggurath"
	artifacts = 8
)

var bossMinions = []string{
	"elder", "elder", "elder",
	"cultist", "cultist", "cultist",
	"deep one", "deep one", "deep one",
}

// Game holds the entire game state.
type Game struct {
	cfg       Config
	viewer    Viewer
	src       rng.Source
	narrator  *narration.HelpLog
	catalog   *gamedata.Catalog
	world     *world.Map
	scheduler *turn.Scheduler
	player    *entity.Entity
	boss      *entity.Entity

	outcome    Outcome
	allocating bool
}

// New creates a game: Depth dungeon levels above the boss cavern, stocked
// with random creatures and items, and the player on the top level.
func New(ctx context.Context, cfg Config, viewer Viewer) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if viewer == nil {
		viewer = NopViewer{}
	}

	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	g := &Game{
		cfg:       cfg,
		viewer:    viewer,
		src:       rng.New(cfg.Seed),
		narrator:  narration.NewHelpLog(nil, nil),
		scheduler: turn.NewScheduler(),
	}

	catalog, err := gamedata.Load(gamedata.Deps{
		Src:      g.src,
		Narrator: g.narrator,
		Prompter: g,
		OnDefeat: g.bossDefeated,
	}, g.playerActor())
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	g.catalog = catalog

	levels := make([]*world.Dungeon, 0, cfg.Depth+1)
	for z := 0; z < cfg.Depth; z++ {
		d := world.NewDungeon(cfg.Width, cfg.Height, g.src)
		d.Generate(ctx, world.LayoutFor(z, cfg.Depth))
		levels = append(levels, d)
	}
	levels = append(levels, world.NewCavern(ctx, cfg.CavernSize, g.src))

	g.world = world.NewMap(levels...)
	g.world.SetScheduler(g.scheduler)
	if err := g.world.ConnectLevels(); err != nil {
		return nil, err
	}

	g.player, err = g.catalog.CreateCreature("player")
	if err != nil {
		return nil, err
	}
	if err := g.world.AddEntityAtRandomPosition(g.player, 0); err != nil {
		return nil, err
	}

	for z := 0; z < cfg.Depth; z++ {
		if err := g.populate(z); err != nil {
			return nil, err
		}
	}
	if err := g.populateCavern(cfg.Depth); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("game.seed", cfg.Seed),
		attribute.Int("game.levels", g.world.Depth()),
		attribute.Int("game.actors", g.scheduler.Len()),
		attribute.Int("player.start_x", g.player.X),
		attribute.Int("player.start_y", g.player.Y),
	)
	logger().WithFields(logrus.Fields{
		"seed":   cfg.Seed,
		"levels": g.world.Depth(),
		"actors": g.scheduler.Len(),
	}).Info("game created")

	return g, nil
}

func (g *Game) populate(z int) error {
	for i := 0; i < g.cfg.MonstersPerLevel; i++ {
		e, err := g.catalog.Creatures.CreateRandom(g.src)
		if err != nil {
			return err
		}
		if err := g.world.AddEntityAtRandomPosition(e, z); err != nil {
			return err
		}
	}
	for i := 0; i < g.cfg.ItemsPerLevel; i++ {
		item, err := g.catalog.Items.CreateRandom(g.src)
		if err != nil {
			return err
		}
		g.world.AddItemAtRandomPosition(item, z)
	}
	return nil
}

func (g *Game) populateCavern(z int) error {
	var err error
	g.boss, err = g.catalog.CreateCreature(bossName)
	if err != nil {
		return err
	}
	if err := g.world.AddEntityAtRandomPosition(g.boss, z); err != nil {
		return err
	}

	for _, name := range bossMinions {
		e, err := g.catalog.CreateCreature(name)
		if err != nil {
			return err
		}
		if err := g.world.AddEntityAtRandomPosition(e, z); err != nil {
			return err
		}
	}
	for i := 0; i < artifacts; i++ {
		bone, err := g.catalog.CreateItem("bone", nil)
		if err != nil {
			return err
		}
		g.world.AddItemAtRandomPosition(bone, z)
	}
	return nil
}

// Start runs the scheduler until the player's first turn.
func (g *Game) Start(ctx context.Context) error {
	return g.scheduler.Run(ctx)
}

// Player returns the player entity.
func (g *Game) Player() *entity.Entity { return g.player }

// Boss returns the boss entity.
func (g *Game) Boss() *entity.Entity { return g.boss }

// World returns the map.
func (g *Game) World() *world.Map { return g.world }

// Scheduler returns the turn scheduler.
func (g *Game) Scheduler() *turn.Scheduler { return g.scheduler }

// Catalog returns the creature and item templates.
func (g *Game) Catalog() *gamedata.Catalog { return g.catalog }

// Outcome returns whether the game is still going.
func (g *Game) Outcome() Outcome { return g.outcome }

// Allocating reports whether the player must spend stat points before acting.
func (g *Game) Allocating() bool { return g.allocating }

// Turn returns how many turns the player has taken.
func (g *Game) Turn() int { return g.narrator.Turn() }

func logger() *logrus.Entry {
	return logging.For("game")
}
