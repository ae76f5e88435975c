package sim

import (
	"github.com/aquilax/go-perlin"
)

// Perlin parameters for the skyline: smooth, low-frequency hills.
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseScale  = 0.004
)

// layerSpec describes one parallax layer of decorations.
type layerSpec struct {
	layer     DecorationLayer
	parallax  float64
	width     float64
	gap       float64
	minHeight float64
	maxHeight float64
}

// Height is the hill height above the ground for the far layer and the
// cloud altitude below the top edge for the near layer.
var layers = []layerSpec{
	{layer: LayerFar, parallax: 0.25, width: 70, gap: 0, minHeight: 20, maxHeight: 110},
	{layer: LayerNear, parallax: 0.5, width: 46, gap: 60, minHeight: 20, maxHeight: 160},
}

// Skyline produces decoration heights from Perlin noise over world distance.
type Skyline struct {
	noise *perlin.Perlin
}

// NewSkyline seeds a skyline generator.
func NewSkyline(seed int64) *Skyline {
	return &Skyline{noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)}
}

// heightAt maps noise at distance d on a layer into [lo, hi].
func (s *Skyline) heightAt(layer DecorationLayer, d, lo, hi float64) float64 {
	n := s.noise.Noise2D(d*noiseScale, float64(layer)*10)
	// Noise2D is roughly within [-1, 1]
	t := (n + 1) / 2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return lo + t*(hi-lo)
}

// SpawnDecorations fills each layer out to the right edge of the world.
func SpawnDecorations(st *State, sky *Skyline, max int) {
	for _, spec := range layers {
		for len(st.Decorations) < max {
			right := rightEdge(st.Decorations, spec.layer)
			if right > st.World.Width {
				break
			}
			x := right + spec.gap
			d := st.Distance*spec.parallax + x
			st.Decorations = append(st.Decorations, Decoration{
				ID:       st.newID(),
				X:        x,
				Width:    spec.width,
				Height:   sky.heightAt(spec.layer, d, spec.minHeight, spec.maxHeight),
				Layer:    spec.layer,
				Parallax: spec.parallax,
			})
		}
	}
}

// rightEdge returns the right edge of the last decoration on a layer, or a
// point just left of the screen when the layer is empty.
func rightEdge(decos []Decoration, layer DecorationLayer) float64 {
	edge := 0.0
	found := false
	for _, d := range decos {
		if d.Layer != layer {
			continue
		}
		if r := d.X + d.Width; !found || r > edge {
			edge = r
			found = true
		}
	}
	if !found {
		return -1
	}
	return edge
}

// AdvanceDecorations scrolls decorations by their parallax and culls those off screen.
func AdvanceDecorations(st *State, dx float64) {
	kept := st.Decorations[:0]
	for _, d := range st.Decorations {
		d.X -= dx * d.Parallax
		if d.X+d.Width >= 0 {
			kept = append(kept, d)
		}
	}
	st.Decorations = kept
}
