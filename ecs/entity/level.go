package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/levels"
	"github.com/milk9111/glaze2d/physics/collision"
	"go.uber.org/zap"
)

var tileColor = color.NRGBA{R: 0x55, G: 0x6b, B: 0x2f, A: 0xff}

// LevelInfo describes what LoadLevel created.
type LevelInfo struct {
	Name      string
	Bounds    cp.BB
	Colliders []ecs.Entity
	Entities  []ecs.Entity
}

// LoadLevel adds merged static colliders for the level's solid tiles and
// builds every placed prefab. Prefabs that fail to build are logged and
// skipped.
func LoadLevel(eng *ecs.Engine, lvl *levels.Level, logger *zap.Logger) (*LevelInfo, error) {
	if eng == nil || lvl == nil {
		return nil, fmt.Errorf("load level: engine and level are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}
	tileSize := lvl.TileSize
	if tileSize <= 0 {
		tileSize = levels.DefaultTileSize
	}

	info := &LevelInfo{
		Name:   lvl.Name,
		Bounds: cp.BB{L: 0, B: 0, R: float64(lvl.Width) * tileSize, T: float64(lvl.Height) * tileSize},
	}

	rects := lvl.SolidRects()
	eng.Reserve(len(rects) + len(lvl.Entities))
	for _, r := range rects {
		center, extents := r.Bounds(tileSize)
		e := eng.CreateEntity()
		eng.AddComponents(e,
			&component.Position{X: center.X, Y: center.Y, Direction: 1},
			&component.Extents{HalfWidth: extents.X, HalfHeight: extents.Y},
			&component.PhysicsCollision{Filter: collision.NewFilter()},
			&component.DebugColor{Color: tileColor},
			&component.Fixed{},
			&component.Active{},
		)
		info.Colliders = append(info.Colliders, e)
	}

	for _, placed := range lvl.Entities {
		pos := cp.Vector{X: placed.X * tileSize, Y: placed.Y * tileSize}
		e, err := BuildEntityAt(eng, placed.Type, pos, cp.Vector{})
		if err != nil {
			logger.Warn("level entity skipped",
				zap.String("level", lvl.Name),
				zap.String("type", placed.Type),
				zap.Error(err),
			)
			continue
		}
		applyProps(eng, e, placed.Props)
		info.Entities = append(info.Entities, e)
	}

	logger.Debug("level built",
		zap.String("level", lvl.Name),
		zap.Int("colliders", len(info.Colliders)),
		zap.Int("entities", len(info.Entities)),
	)
	return info, nil
}

func applyProps(eng *ecs.Engine, e ecs.Entity, props map[string]interface{}) {
	if dir, ok := props["direction"].(float64); ok && dir != 0 {
		if pos, ok := ecs.Get(eng, e, component.PositionComponent); ok {
			pos.Direction = dir
		}
	}
}
