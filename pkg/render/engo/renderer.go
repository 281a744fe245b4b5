// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/entity"
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// spriteSystem is the part of common.RenderSystem the renderer drives.
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// Draw order, back to front
const (
	zPlanet float32 = iota
	zGoal
	zLauncher
	zBand
	zPlayer
)

type spritePart int

const (
	partBody spritePart = iota
	partBarrel
	partBand
)

type spriteID struct {
	id   entity.ID
	part spritePart
}

// sprite is one drawn entity. The render system keeps pointers to its
// components, so updating them in place moves the sprite.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

var planetColors = []color.RGBA{
	{100, 150, 255, 255},
	{200, 120, 80, 255},
	{170, 200, 120, 255},
	{220, 200, 120, 255},
}

var (
	colorGoal     = color.RGBA{50, 255, 50, 255}
	colorLauncher = color.RGBA{255, 220, 0, 255}
	colorPlayer   = color.RGBA{255, 255, 255, 255}
	colorCrashed  = color.RGBA{255, 80, 80, 255}
	colorBand     = color.RGBA{180, 180, 180, 255}
)

// EngoRenderer implements engine.Renderer on top of an engo render system.
// Each body keeps its sprite between frames; sprites of bodies that stop
// being drawn are removed in Present.
type EngoRenderer struct {
	system  spriteSystem
	assets  *AssetManager
	camera  Camera
	hud     *HUD
	sprites map[spriteID]*sprite
}

// NewEngoRenderer creates a new Engo-based renderer. hud may be nil.
func NewEngoRenderer(system spriteSystem, assets *AssetManager, camera Camera, hud *HUD) *EngoRenderer {
	return &EngoRenderer{
		system:  system,
		assets:  assets,
		camera:  camera,
		hud:     hud,
		sprites: make(map[spriteID]*sprite),
	}
}

// Len returns how many sprites are live
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// Clear implements engine.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements engine.Renderer
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// RenderPlanet implements engine.Renderer
func (r *EngoRenderer) RenderPlanet(planet engine.BodyState) {
	s := r.sprite(spriteID{id: planet.ID}, zPlanet)
	s.Drawable = r.assets.Sprite(SpritePlanet, planet.Radius)
	s.Color = planetColors[int(planet.ID)%len(planetColors)]
	s.SpaceComponent = r.camera.CircleSpace(planet.Position, planet.Radius)
	r.fit(s)
}

// RenderGoal implements engine.Renderer
func (r *EngoRenderer) RenderGoal(goal engine.BodyState) {
	s := r.sprite(spriteID{id: goal.ID}, zGoal)
	s.Drawable = r.assets.Sprite(SpriteGoal, goal.Radius)
	s.Color = colorGoal
	s.SpaceComponent = r.camera.CircleSpace(goal.Position, goal.Radius)
	r.fit(s)
}

// RenderLauncher implements engine.Renderer. The launcher fades through
// its color's alpha and points its barrel at the player.
func (r *EngoRenderer) RenderLauncher(launcher engine.LauncherState) {
	c := withAlpha(colorLauncher, launcher.Opacity)

	body := r.sprite(spriteID{id: launcher.ID}, zLauncher)
	body.Drawable = r.assets.Sprite(SpriteLauncher, launcher.Radius)
	body.Color = c
	body.SpaceComponent = r.camera.CircleSpace(launcher.Position, launcher.Radius)
	r.fit(body)

	barrel := r.sprite(spriteID{id: launcher.ID, part: partBarrel}, zLauncher)
	barrel.Drawable = common.Rectangle{}
	barrel.Color = c
	aim := physics.Vector2D{X: 1.5 * launcher.Radius}
	barrel.SpaceComponent = r.camera.SegmentSpace(launcher.Position, rotate(aim, launcher.Angle), 4)
}

// RenderPlayer implements engine.Renderer. While dragging, a band is drawn
// from the player back to the launcher.
func (r *EngoRenderer) RenderPlayer(player engine.PlayerView) {
	s := r.sprite(spriteID{id: player.ID}, zPlayer)
	s.Drawable = r.assets.Sprite(SpritePlayer, player.Radius)
	s.SpaceComponent = r.camera.CircleSpace(player.Position, player.Radius)
	r.fit(s)
	switch player.State {
	case engine.Crashed:
		s.Color = colorCrashed
	case engine.Finish:
		s.Color = colorGoal
	default:
		s.Color = colorPlayer
	}

	if player.State == engine.Dragging && !player.DragVector.IsZero() {
		band := r.sprite(spriteID{id: player.ID, part: partBand}, zBand)
		band.Drawable = common.Rectangle{}
		band.Color = colorBand
		band.SpaceComponent = r.camera.SegmentSpace(player.Position, player.DragVector, 2)
	}
}

// RenderStatus implements engine.StatusRenderer.
func (r *EngoRenderer) RenderStatus(state *engine.GameState) {
	if r.hud != nil {
		r.hud.RenderStatus(state)
	}
}

// sprite returns the sprite for id, creating and registering it on first use.
func (r *EngoRenderer) sprite(id spriteID, z float32) *sprite {
	s, exists := r.sprites[id]
	if !exists {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.SetZIndex(z)
		r.sprites[id] = s
		r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s.seen = true
	return s
}

// fit scales a capped texture up to its space component.
func (r *EngoRenderer) fit(s *sprite) {
	if s.Drawable == nil || s.Drawable.Width() == 0 {
		return
	}
	scale := s.SpaceComponent.Width / s.Drawable.Width()
	s.Scale.X, s.Scale.Y = scale, scale
}

func withAlpha(c color.RGBA, opacity float64) color.RGBA {
	opacity = min(max(opacity, 0), 1)
	c.A = uint8(opacity * 255)
	return c
}

func rotate(v physics.Vector2D, angle float64) physics.Vector2D {
	sin, cos := math.Sincos(angle)
	return physics.Vector2D{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
