package flappy

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/sim"
)

// Visual characters for rendering
const (
	GroundTopChar  = '▀'
	GroundChar     = '░'
	FarHillChar    = '░'
	NearHillChar   = '▒'
	PlayerChar     = '●'
	ShieldChar     = '○'
	PipeCapTop     = '▄'
	PipeCapBottom  = '▀'
	RareCoinChar   = '◎'
	CrashMarkChar  = '✕'
	obstacleColumn = '█'
)

var coinFrames = []rune{'o', 'O', '0', 'O'}

var rainbowColors = []core.Color{
	core.ColorBrightRed, core.ColorOrange, core.ColorBrightYellow,
	core.ColorBrightGreen, core.ColorBrightCyan, core.ColorBrightBlue, core.ColorBrightMagenta,
}

// DrawOptions control the overlays drawn on top of a snapshot.
type DrawOptions struct {
	Debug    bool
	DT       time.Duration // last step, shown in the debug overlay
	TickRate int           // for converting effect ticks to seconds
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	Draw(dst, g.session.Snapshot(), DrawOptions{
		Debug:    g.debug,
		DT:       g.lastDT,
		TickRate: g.runtime.TickRate,
	})
}

// Draw paints a snapshot. It only reads the snapshot.
func Draw(dst *core.Screen, snap sim.Snapshot, opts DrawOptions) {
	w := snap.World
	v := NewViewport(w.Width, w.Height, dst.Width(), dst.Height(), CellAspect)
	if v.Scale == 0 {
		return
	}
	biome := snap.BiomeInfo()
	r := renderer{dst: dst, v: v, w: w}

	r.decorations(snap.Decorations, biome)
	r.ground(biome)
	r.obstacles(snap.Obstacles, biome)
	r.pickups(snap.PowerUps, snap.Coins, snap.Ticks)
	r.particles(snap.Particles, snap.Weather)
	r.player(snap)

	drawHUD(dst, snap, opts.TickRate)
	if snap.ComboFlash > 0 && snap.LastCombo != sim.ComboNone {
		banner := fmt.Sprintf("★ %s MODE ★", snap.LastCombo)
		dst.DrawTextCentered(3, banner, rainbowColors[int(snap.ComboFlash/6)%len(rainbowColors)])
	}

	switch snap.Phase {
	case sim.PhaseReady:
		drawCenteredMessage(dst, "FLAPPY", "SPACE / W / ↑ to flap", "P pause · Q quit")
	case sim.PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "P to resume", "R to restart")
	case sim.PhaseGameOver:
		lines := []string{fmt.Sprintf("Score: %d  Coins: %d", snap.Score, snap.RunCoins)}
		if snap.NewBest {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "R to restart · Q quit")
		drawCenteredMessage(dst, "GAME OVER", lines...)
	}

	if opts.Debug {
		drawDebug(dst, snap, opts)
	}
}

// renderer holds the transform for one frame.
type renderer struct {
	dst *core.Screen
	v   Viewport
	w   sim.World
}

// fill paints the world rectangle [x0,x1)x[y0,y1), clipped to the world.
func (r renderer) fill(x0, y0, x1, y1 float64, ch rune, c core.Color) {
	x0, x1 = math.Max(x0, 0), math.Min(x1, r.w.Width)
	y0, y1 = math.Max(y0, 0), math.Min(y1, r.w.Height)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	c0, r0 := r.v.ToScreen(x0, y0)
	c1, r1 := r.v.ToScreen(x1, y1)
	c1 = max(c1, c0+1)
	r1 = max(r1, r0+1)
	r.dst.DrawRectColored(core.NewRect(c0, r0, c1-c0, r1-r0), ch, c)
}

// set paints the cell under a world point when it lies inside the world.
func (r renderer) set(x, y float64, ch rune, c core.Color) {
	if x < 0 || x >= r.w.Width || y < 0 || y >= r.w.Height {
		return
	}
	col, row := r.v.ToScreen(x, y)
	r.dst.SetColored(col, row, ch, c)
}

func (r renderer) decorations(decos []sim.Decoration, biome sim.Biome) {
	groundY := r.w.GroundY()
	// Far layer first so the near layer covers it.
	for _, layer := range []sim.DecorationLayer{sim.LayerFar, sim.LayerNear} {
		ch, c := FarHillChar, core.ColorGray
		if layer == sim.LayerNear {
			ch, c = NearHillChar, biome.Hills
		}
		for _, d := range decos {
			if d.Layer == layer {
				r.fill(d.X, groundY-d.Height, d.X+d.Width, groundY, ch, c)
			}
		}
	}
}

func (r renderer) ground(biome sim.Biome) {
	groundY := r.w.GroundY()
	r.fill(0, groundY, r.w.Width, r.w.Height, GroundChar, biome.Ground)
	c0, row := r.v.ToScreen(0, groundY)
	c1, _ := r.v.ToScreen(r.w.Width, groundY)
	for col := c0; col < c1; col++ {
		r.dst.SetColored(col, row, GroundTopChar, biome.Ground)
	}
}

func obstacleGlyph(k sim.ObstacleKind) rune {
	switch k {
	case sim.ObstacleCactus:
		return '▓'
	case sim.ObstacleIcicle:
		return '▒'
	case sim.ObstacleTower:
		return '▆'
	case sim.ObstacleCrystal:
		return '◆'
	default:
		return obstacleColumn
	}
}

func (r renderer) obstacles(obs []sim.Obstacle, biome sim.Biome) {
	for _, o := range obs {
		ch := obstacleGlyph(o.Kind)
		right := o.X + r.w.ObstacleWidth
		bottom := o.GapTop + r.w.GapSize
		r.fill(o.X, 0, right, o.GapTop, ch, biome.Obstacle)
		r.fill(o.X, bottom, right, r.w.GroundY(), ch, biome.Obstacle)

		if o.Kind != sim.ObstaclePipe {
			continue
		}
		// Caps on the rows that face the gap.
		x0, x1 := math.Max(o.X, 0), math.Min(right, r.w.Width)
		if x1 <= x0 {
			continue
		}
		c0, top := r.v.ToScreen(x0, o.GapTop)
		c1, bot := r.v.ToScreen(x1, bottom)
		for col := c0; col < max(c1, c0+1); col++ {
			r.dst.SetColored(col, top-1, PipeCapTop, biome.Obstacle)
			r.dst.SetColored(col, bot, PipeCapBottom, biome.Obstacle)
		}
	}
}

func powerUpGlyph(k sim.PowerUpKind) (rune, core.Color) {
	switch k {
	case sim.PowerUpShield:
		return '◈', core.ColorBrightCyan
	case sim.PowerUpSlow:
		return '◷', core.ColorBrightBlue
	case sim.PowerUpScore:
		return '★', core.ColorBrightYellow
	case sim.PowerUpMagnet:
		return '∪', core.ColorBrightMagenta
	case sim.PowerUpDouble:
		return '×', core.ColorBrightGreen
	case sim.PowerUpRainbow:
		return '✦', core.ColorBrightRed
	default:
		return '?', core.ColorWhite
	}
}

func (r renderer) pickups(pus []sim.PowerUp, coins []sim.Coin, ticks uint64) {
	for _, c := range coins {
		if c.Collected {
			continue
		}
		ch, color := coinFrames[int(c.Phase*2)%len(coinFrames)], core.ColorYellow
		if c.Value > 1 {
			ch, color = RareCoinChar, core.ColorBrightYellow
		}
		r.set(c.X, c.Y, ch, color)
	}
	for _, p := range pus {
		if p.Collected {
			continue
		}
		ch, color := powerUpGlyph(p.Kind)
		if p.Kind == sim.PowerUpRainbow {
			color = rainbowColors[int(ticks/4)%len(rainbowColors)]
		}
		r.set(p.X, p.Y, ch, color)
	}
}

func weatherGlyph(k sim.WeatherKind) rune {
	switch k {
	case sim.WeatherRain:
		return '|'
	case sim.WeatherSnow:
		return '*'
	case sim.WeatherSandstorm:
		return '~'
	case sim.WeatherAsh:
		return '.'
	case sim.WeatherFog:
		return '░'
	case sim.WeatherAurora:
		return '≈'
	default:
		return '.'
	}
}

func (r renderer) particles(ps []sim.Particle, weather sim.WeatherKind) {
	for _, p := range ps {
		var ch rune
		switch p.Kind {
		case sim.ParticleTrail:
			ch = '·'
		case sim.ParticleSparkle:
			ch = '*'
			if p.Life*2 < p.MaxLife {
				ch = '+'
			}
		case sim.ParticleExplosion:
			ch = '#'
			if p.Size < 2 {
				ch = '•'
			}
		case sim.ParticleWeather:
			ch = weatherGlyph(weather)
		}
		r.set(p.X, p.Y, ch, p.Color)
	}
}

func playerColor(snap sim.Snapshot) core.Color {
	fx := snap.Player.Effects
	switch fx.Aura() {
	case sim.AuraGod:
		return core.ColorBrightYellow
	case sim.AuraSuper:
		return core.ColorBrightCyan
	case sim.AuraMega:
		return core.ColorBrightMagenta
	}
	if fx.Active(sim.EffectRainbow) {
		return rainbowColors[int(snap.Ticks/3)%len(rainbowColors)]
	}
	if snap.Phase == sim.PhaseGameOver {
		return core.ColorRed
	}
	return core.ColorYellow
}

func headGlyph(tilt float64) rune {
	switch {
	case tilt < -10:
		return '↗'
	case tilt > 30:
		return '↘'
	default:
		return '→'
	}
}

func (r renderer) player(snap sim.Snapshot) {
	p := snap.Player
	color := playerColor(snap)

	// Every cell whose centre lies inside the collision circle.
	c0, r0 := r.v.ToScreen(p.X-p.Radius, p.Y-p.Radius)
	c1, r1 := r.v.ToScreen(p.X+p.Radius, p.Y+p.Radius)
	drawn := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := r.v.ToWorld(col, row)
			if math.Hypot(x-p.X, y-p.Y) <= p.Radius {
				r.dst.SetColored(col, row, PlayerChar, color)
				drawn = true
			}
		}
	}
	if !drawn {
		r.set(p.X, p.Y, PlayerChar, color)
	}

	head := headGlyph(p.Tilt)
	if snap.Phase == sim.PhaseGameOver {
		head = CrashMarkChar
	}
	r.set(p.X+p.Radius, p.Y, head, color)

	if p.Effects.Active(sim.EffectShield) {
		ring := p.Radius + r.v.Aspect/r.v.Scale
		for i := 0; i < 16; i++ {
			a := float64(i) * math.Pi / 8
			r.set(p.X+ring*math.Cos(a), p.Y+ring*math.Sin(a), ShieldChar, core.ColorBrightCyan)
		}
	}
}

func seconds(ticks, rate int) float64 {
	if rate <= 0 {
		rate = 60
	}
	return float64(ticks) / float64(rate)
}

func drawHUD(dst *core.Screen, snap sim.Snapshot, tickRate int) {
	left := fmt.Sprintf(" Score: %d  Coins: %d ", snap.Score, snap.RunCoins)
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)

	biome := snap.BiomeInfo()
	right := fmt.Sprintf(" %s · %s ", biome.Name, snap.Weather)
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, biome.Hills)

	var parts []string
	for _, k := range sim.AllEffects {
		if n := snap.Player.Effects.Remaining(k); n > 0 {
			parts = append(parts, fmt.Sprintf("%s %.1fs", k, seconds(n, tickRate)))
		}
	}
	if snap.Player.Combo.Window > 0 {
		parts = append(parts, fmt.Sprintf("combo %.1fs", seconds(snap.Player.Combo.Window, tickRate)))
	}
	if len(parts) > 0 {
		dst.DrawTextColored(2, 1, strings.Join(parts, "  "), core.ColorBrightMagenta)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}

func drawDebug(dst *core.Screen, snap sim.Snapshot, opts DrawOptions) {
	p := snap.Player
	w := snap.World
	lines := []string{
		fmt.Sprintf("seed %d  tick %d  dt %s  phase %s", snap.Seed, snap.Ticks, opts.DT, snap.Phase),
		fmt.Sprintf("y %.1f  vy %.2f  tilt %.0f  speed x%.2f", p.Y, p.VY, p.Tilt, p.Effects.SpeedMultiplier()),
		fmt.Sprintf("scroll %.2f  gap %.0f  spacing %.0f", w.ScrollSpeed, w.GapSize, w.ObstacleSpacing),
		fmt.Sprintf("obs %d  pu %d  coin %d  part %d  deco %d",
			len(snap.Obstacles), len(snap.PowerUps), len(snap.Coins), len(snap.Particles), len(snap.Decorations)),
	}
	top := dst.Height() - len(lines)
	dst.DrawHLine(0, top-1, dst.Width(), '─', core.ColorGray)
	for i, l := range lines {
		dst.DrawTextColored(0, top+i, l, core.ColorGray)
	}
}
