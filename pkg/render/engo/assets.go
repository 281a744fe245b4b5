// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/EngoEngine/engo/common"
)

// SpriteKind selects the shape of a generated sprite
type SpriteKind int

const (
	SpritePlanet SpriteKind = iota
	SpriteGoal
	SpriteLauncher
	SpritePlayer
)

// ring thickness in pixels for the hollow sprites; zero means filled
var spriteRing = map[SpriteKind]int{
	SpriteGoal:     3,
	SpriteLauncher: 4,
}

// maxSpriteDiameter bounds generated textures; larger bodies are scaled up
// by their space component.
const maxSpriteDiameter = 256

type spriteKey struct {
	kind     SpriteKind
	diameter int
}

// AssetManager generates and caches the circle textures bodies are drawn
// with. Textures are white and tinted by the render component's color.
type AssetManager struct {
	sprites map[spriteKey]common.Drawable

	// newTexture uploads an image. It needs a GL context.
	newTexture func(img *image.NRGBA) common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites:    make(map[spriteKey]common.Drawable),
		newTexture: uploadTexture,
	}
}

// Sprite returns the texture for a body of the given kind and radius,
// generating it on first use.
func (am *AssetManager) Sprite(kind SpriteKind, radius float64) common.Drawable {
	key := spriteKey{kind: kind, diameter: spriteDiameter(radius)}
	if sprite, exists := am.sprites[key]; exists {
		return sprite
	}

	pattern := circlePattern(key.diameter, spriteRing[kind])
	img := am.createBaseImage(key.diameter, key.diameter)
	am.drawPatternOnImage(img, pattern, key.diameter, key.diameter)
	sprite := am.newTexture(am.convertToNRGBA(img))
	am.sprites[key] = sprite
	return sprite
}

// Len returns how many textures have been generated
func (am *AssetManager) Len() int {
	return len(am.sprites)
}

func spriteDiameter(radius float64) int {
	d := int(math.Ceil(2 * radius))
	return min(max(d, 2), maxSpriteDiameter)
}

// circlePattern returns a diameter x diameter mask of a disc. A positive
// ring keeps only the outer ring pixels.
func circlePattern(diameter, ring int) [][]int {
	r := float64(diameter) / 2
	pattern := make([][]int, diameter)
	for y := range pattern {
		pattern[y] = make([]int, diameter)
		for x := range pattern[y] {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			if d > r {
				continue
			}
			if ring > 0 && d < r-float64(ring) {
				continue
			}
			pattern[y][x] = 1
		}
	}
	return pattern
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func (am *AssetManager) createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage draws a 2D pixel pattern onto the provided RGBA image.
func (am *AssetManager) drawPatternOnImage(img *image.RGBA, pattern [][]int, width, height int) {
	for y, row := range pattern {
		if y >= height {
			break
		}
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
}

func (am *AssetManager) convertToNRGBA(img *image.RGBA) *image.NRGBA {
	nrgba := image.NewNRGBA(img.Bounds())
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return nrgba
}

// uploadTexture converts an image to an Engo texture.
func uploadTexture(img *image.NRGBA) common.Drawable {
	texture := common.NewImageObject(img)
	return common.NewTextureSingle(texture)
}
