// Package citymap provides the city tile grid: terrain from layered
// simplex noise, a buildable mask, and the radius geometry that gates
// the city footprint.
package citymap

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mkello/civitas/internal/entropy"
)

// Coord is a tile position on the square grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tile is one cell of the city grid.
type Tile struct {
	Water     bool    `json:"water"`
	Buildable bool    `json:"buildable"`
	Occupied  bool    `json:"occupied"`
	Density   float64 `json:"density"` // decorative density 0..1
	Elevation float64 `json:"elevation"`
}

// Map is the full city grid.
type Map struct {
	Size  int
	Tiles [][]Tile
}

// GenConfig holds map generation parameters.
type GenConfig struct {
	Size     int
	Seed     int64
	SeaLevel float64
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{Size: 36, Seed: 0, SeaLevel: 0.30}
}

// Generate creates a city map from layered noise. Water hugs the low
// elevations near the edges; everything else is buildable land with a
// decorative density layer.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = entropy.CryptoSeed()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	densNoise := opensimplex.NewNormalized(seed + 1)

	m := &Map{Size: cfg.Size, Tiles: make([][]Tile, cfg.Size)}
	half := float64(cfg.Size) / 2

	for y := 0; y < cfg.Size; y++ {
		m.Tiles[y] = make([]Tile, cfg.Size)
		for x := 0; x < cfg.Size; x++ {
			fx, fy := float64(x), float64(y)

			elev := octaveNoise(elevNoise, fx, fy, 4, 0.09, 0.5)
			dens := octaveNoise(densNoise, fx, fy, 3, 0.12, 0.5)

			// Lower elevation toward the edges so water frames the city.
			dx, dy := (fx-half)/half, (fy-half)/half
			dist := math.Sqrt(dx*dx + dy*dy)
			falloff := 1.0 - math.Pow(dist, 3)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			water := elev < cfg.SeaLevel
			m.Tiles[y][x] = Tile{
				Water:     water,
				Buildable: !water,
				Density:   dens,
				Elevation: elev,
			}
		}
	}

	return m
}

// octaveNoise sums multiple noise octaves for natural variation.
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total, amplitude, maxValue := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

// Center returns the grid center tile coordinate.
func (m *Map) Center() Coord {
	return Coord{X: m.Size / 2, Y: m.Size / 2}
}

// MaxRadius is the largest city radius the geometry supports.
func (m *Map) MaxRadius() int {
	return m.Size/2 - 1
}

// InBounds reports whether c is on the grid.
func (m *Map) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < m.Size && c.Y >= 0 && c.Y < m.Size
}

// At returns the tile at c, or nil if out of bounds.
func (m *Map) At(c Coord) *Tile {
	if !m.InBounds(c) {
		return nil
	}
	return &m.Tiles[c.Y][c.X]
}

// WithinRadius reports whether c lies inside the given city radius
// around the map center.
func (m *Map) WithinRadius(c Coord, radius int) bool {
	ctr := m.Center()
	dx, dy := float64(c.X-ctr.X), float64(c.Y-ctr.Y)
	return math.Sqrt(dx*dx+dy*dy) <= float64(radius)
}

// CanBuild reports whether a structure may be placed at c inside the
// current city radius.
func (m *Map) CanBuild(c Coord, radius int) bool {
	t := m.At(c)
	return t != nil && t.Buildable && !t.Occupied && m.WithinRadius(c, radius)
}

// Occupy marks the tile at c as occupied. Returns false if the tile
// cannot hold a structure.
func (m *Map) Occupy(c Coord, radius int) bool {
	if !m.CanBuild(c, radius) {
		return false
	}
	m.Tiles[c.Y][c.X].Occupied = true
	return true
}

// SiteScore rates a tile for department placement: denser surroundings
// and a waterfront adjacency score higher. Range roughly [0, 3].
func (m *Map) SiteScore(c Coord) float64 {
	t := m.At(c)
	if t == nil {
		return 0
	}
	score := t.Density * 2
	for _, n := range m.neighbors(c) {
		if n.Water {
			score += 0.25
			break
		}
	}
	return score
}

// JitterNear picks a buildable tile near anchor, within spread tiles.
// Falls back to the anchor itself when no candidate lands on land.
func (m *Map) JitterNear(anchor Coord, spread int, rng entropy.Source) Coord {
	for i := 0; i < 8; i++ {
		c := Coord{
			X: anchor.X + rng.Intn(2*spread+1) - spread,
			Y: anchor.Y + rng.Intn(2*spread+1) - spread,
		}
		if t := m.At(c); t != nil && t.Buildable {
			return c
		}
	}
	return anchor
}

// RandomBuildable returns any buildable tile within the given radius.
func (m *Map) RandomBuildable(radius int, rng entropy.Source) Coord {
	ctr := m.Center()
	for i := 0; i < 32; i++ {
		c := Coord{
			X: ctr.X + rng.Intn(2*radius+1) - radius,
			Y: ctr.Y + rng.Intn(2*radius+1) - radius,
		}
		if t := m.At(c); t != nil && t.Buildable && m.WithinRadius(c, radius) {
			return c
		}
	}
	return ctr
}

func (m *Map) neighbors(c Coord) []*Tile {
	var out []*Tile
	for _, d := range [...]Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if t := m.At(Coord{X: c.X + d.X, Y: c.Y + d.Y}); t != nil {
			out = append(out, t)
		}
	}
	return out
}
