package config

import "math"

// DifficultyManager maps session progress (score or ticks) to a difficulty
// level in [0, 1].
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level based on score/ticks.
// It is non-decreasing in both arguments.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GapRange returns the [lo, hi] vertical gap between consecutive platforms
// at the given level. Both ends grow with difficulty while the range
// narrows, and hi never exceeds maxReach, the tallest gap a bounce is
// guaranteed to clear.
func (p PlatformConfig) GapRange(level, maxReach float64) (lo, hi float64) {
	level = clampF(level, 0, 1)
	lo = lerp(p.MinGap, p.HardMinGap, level)
	hi = lerp(p.MaxGap, p.HardMaxGap, level)
	if hi > maxReach {
		hi = maxReach
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// WidthAt returns the platform width at the given level.
func (p PlatformConfig) WidthAt(level float64) float64 {
	return lerp(p.Width, p.HardWidth, clampF(level, 0, 1))
}

// WeightsAt interpolates kind weights between the easy and hard tables.
func (p PlatformConfig) WeightsAt(level float64) KindWeights {
	level = clampF(level, 0, 1)
	e, h := p.Weights.Easy, p.Weights.Hard
	return KindWeights{
		Normal:   lerp(e.Normal, h.Normal, level),
		Moving:   lerp(e.Moving, h.Moving, level),
		Breaking: lerp(e.Breaking, h.Breaking, level),
		Spring:   lerp(e.Spring, h.Spring, level),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
