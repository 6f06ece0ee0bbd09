// Package config provides YAML-based game configuration loading and
// difficulty management for Hop Bunny.
package config

// HopConfig contains all tunables of the simulation.
type HopConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Platforms  PlatformConfig   `yaml:"platforms"`
	Camera     CameraConfig     `yaml:"camera"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// EdgeMode selects what happens at the left/right world boundaries.
type EdgeMode string

const (
	EdgeWrap  EdgeMode = "wrap"  // Leaving one side re-enters from the other
	EdgeClamp EdgeMode = "clamp" // Walls at both sides
)

// PhysicsConfig defines per-tick physics parameters, in cells and ticks.
type PhysicsConfig struct {
	Gravity        float64  `yaml:"gravity"`
	JumpVelocity   float64  `yaml:"jump_velocity"`   // Upward speed after a normal bounce
	SpringVelocity float64  `yaml:"spring_velocity"` // Upward speed after a spring bounce
	MoveSpeed      float64  `yaml:"move_speed"`      // Horizontal speed while steering
	MaxFallSpeed   float64  `yaml:"max_fall_speed"`
	EdgeMode       EdgeMode `yaml:"edge_mode"`
}

// MaxJumpHeight returns the apex height of a normal bounce.
func (p PhysicsConfig) MaxJumpHeight() float64 {
	if p.Gravity <= 0 {
		return 0
	}
	return p.JumpVelocity * p.JumpVelocity / (2 * p.Gravity)
}

// PlayerConfig defines the bunny hitbox.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformConfig defines procedural platform generation.
// Every "hard_*" value is reached at difficulty level 1.0.
type PlatformConfig struct {
	Width         float64       `yaml:"width"`
	HardWidth     float64       `yaml:"hard_width"`
	MinGap        float64       `yaml:"min_gap"`
	MaxGap        float64       `yaml:"max_gap"`
	HardMinGap    float64       `yaml:"hard_min_gap"`
	HardMaxGap    float64       `yaml:"hard_max_gap"`
	ReachSafety   float64       `yaml:"reach_safety"`   // Fraction of the jump apex a gap may use
	SpawnAhead    float64       `yaml:"spawn_ahead"`    // Keep platforms this far above the view top
	RecycleMargin float64       `yaml:"recycle_margin"` // Drop platforms this far below the view bottom
	MovingSpeed   float64       `yaml:"moving_speed"`
	Capacity      int           `yaml:"capacity"` // Initial pool size
	Weights       WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds platform kind weights at both ends of the difficulty range.
type WeightsConfig struct {
	Easy KindWeights `yaml:"easy"`
	Hard KindWeights `yaml:"hard"`
}

// KindWeights are relative spawn weights per platform kind.
type KindWeights struct {
	Normal   float64 `yaml:"normal"`
	Moving   float64 `yaml:"moving"`
	Breaking float64 `yaml:"breaking"`
	Spring   float64 `yaml:"spring"`
}

// Total returns the sum of all weights.
func (w KindWeights) Total() float64 {
	return w.Normal + w.Moving + w.Breaking + w.Spring
}

// CameraConfig defines scroll-follow and the fall-out threshold.
type CameraConfig struct {
	Margin      float64 `yaml:"margin"`       // Player feet are kept at least this far below the view top
	DeathMargin float64 `yaml:"death_margin"` // Falling this far below the view bottom ends the game
}

// ScoringConfig defines how height turns into points.
type ScoringConfig struct {
	PointsPerCell float64 `yaml:"points_per_cell"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown or empty strings
// return "" which means "use the config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
