package world

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepcavern/internal/rng"
	"github.com/samdwyer/deepcavern/internal/telemetry"
)

const maxLakeRadius = 2

// NewCavern creates the boss level: one round cave with a few lakes.
func NewCavern(ctx context.Context, size int, src rng.Source) *Dungeon {
	_, span := telemetry.Tracer("world").Start(ctx, "cavern.generate")
	defer span.End()
	startTime := time.Now()

	d := NewDungeon(size, size, src)
	radius := (size - 2) / 2
	d.fillCircle(size/2, size/2, radius, TileFloor)

	lakes := int(math.Round(src.Uniform()*3)) + 3
	for i := 0; i < lakes; i++ {
		cx := rng.Intn(src, size-maxLakeRadius*2) + maxLakeRadius
		cy := rng.Intn(src, size-maxLakeRadius*2) + maxLakeRadius
		r := rng.Intn(src, maxLakeRadius) + 1
		d.fillCircle(cx, cy, r, TileWater)
	}

	span.SetAttributes(
		attribute.Int("cavern.size", size),
		attribute.Int("cavern.lakes", lakes),
		attribute.Int64("cavern.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return d
}

// fillCircle draws a filled midpoint circle. Cells outside the level are skipped.
func (d *Dungeon) fillCircle(cx, cy, radius int, t Tile) {
	x := radius
	y := 0
	xChange := 1 - (radius << 1)
	yChange := 0
	radiusError := 0

	for x >= y {
		for i := cx - x; i <= cx+x; i++ {
			d.SetTile(i, cy+y, t)
			d.SetTile(i, cy-y, t)
		}
		for i := cx - y; i <= cx+y; i++ {
			d.SetTile(i, cy+x, t)
			d.SetTile(i, cy-x, t)
		}

		y++
		radiusError += yChange
		yChange += 2
		if (radiusError<<1)+xChange > 0 {
			x--
			radiusError += xChange
			xChange += 2
		}
	}
}
