package sim

import "github.com/vovakirdan/flappy-arcade/internal/core"

// WeatherKind is the ambient weather drawn as particles.
type WeatherKind uint8

const (
	WeatherClear WeatherKind = iota
	WeatherRain
	WeatherSnow
	WeatherSandstorm
	WeatherAsh
	WeatherFog
	WeatherAurora
)

func (k WeatherKind) String() string {
	switch k {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherSnow:
		return "snow"
	case WeatherSandstorm:
		return "sandstorm"
	case WeatherAsh:
		return "ash"
	case WeatherFog:
		return "fog"
	case WeatherAurora:
		return "aurora"
	default:
		return "unknown"
	}
}

// Biome is a themed zone selected by score.
type Biome struct {
	Name         string
	Sky          core.Color
	Obstacle     core.Color
	Ground       core.Color
	Hills        core.Color
	Obstacles    []ObstacleKind
	Weather      []WeatherKind
	PowerUpBonus float64
}

// Biomes cycle in order every biome_every points.
var Biomes = []Biome{
	{
		Name: "Meadow", Sky: core.ColorBlue, Obstacle: core.ColorGreen, Ground: core.ColorYellow, Hills: core.ColorBrightGreen,
		Obstacles: []ObstacleKind{ObstaclePipe}, Weather: []WeatherKind{WeatherClear, WeatherRain}, PowerUpBonus: 1.0,
	},
	{
		Name: "Desert", Sky: core.ColorBrightYellow, Obstacle: core.ColorGreen, Ground: core.ColorOrange, Hills: core.ColorYellow,
		Obstacles: []ObstacleKind{ObstacleCactus, ObstaclePillar}, Weather: []WeatherKind{WeatherClear, WeatherSandstorm}, PowerUpBonus: 1.2,
	},
	{
		Name: "Tundra", Sky: core.ColorBrightCyan, Obstacle: core.ColorBrightWhite, Ground: core.ColorWhite, Hills: core.ColorCyan,
		Obstacles: []ObstacleKind{ObstacleIcicle}, Weather: []WeatherKind{WeatherSnow, WeatherAurora, WeatherClear}, PowerUpBonus: 1.3,
	},
	{
		Name: "Ruins", Sky: core.ColorGray, Obstacle: core.ColorBrightYellow, Ground: core.ColorGray, Hills: core.ColorYellow,
		Obstacles: []ObstacleKind{ObstaclePillar, ObstaclePipe}, Weather: []WeatherKind{WeatherFog, WeatherRain}, PowerUpBonus: 1.4,
	},
	{
		Name: "City", Sky: core.ColorMagenta, Obstacle: core.ColorBrightBlue, Ground: core.ColorGray, Hills: core.ColorBlue,
		Obstacles: []ObstacleKind{ObstacleTower}, Weather: []WeatherKind{WeatherRain, WeatherFog, WeatherClear}, PowerUpBonus: 1.5,
	},
	{
		Name: "Volcano", Sky: core.ColorRed, Obstacle: core.ColorBrightMagenta, Ground: core.ColorBrightRed, Hills: core.ColorOrange,
		Obstacles: []ObstacleKind{ObstacleCrystal, ObstaclePillar}, Weather: []WeatherKind{WeatherAsh}, PowerUpBonus: 2.0,
	},
}

// BiomeIndex returns the biome for a score.
func BiomeIndex(score, every int) int {
	if every <= 0 || score < 0 {
		return 0
	}
	return (score / every) % len(Biomes)
}

// weatherMinTicks and weatherSpreadTicks bound how long a weather lasts.
const (
	weatherMinTicks    = 600
	weatherSpreadTicks = 600
)

// RollWeather draws a new weather from the current biome and restarts its countdown.
func RollWeather(st *State, rng Rand) {
	b := Biomes[st.Biome%len(Biomes)]
	st.Weather = WeatherClear
	if len(b.Weather) > 0 {
		st.Weather = b.Weather[rng.Intn(len(b.Weather))]
	}
	st.WeatherTicks = weatherMinTicks + rng.Intn(weatherSpreadTicks)
}

// TickWeather counts the weather down, rerolling on expiry.
func TickWeather(st *State, rng Rand) {
	st.WeatherTicks--
	if st.WeatherTicks <= 0 {
		RollWeather(st, rng)
	}
}
