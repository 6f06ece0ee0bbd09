package config

import (
	_ "embed"
)

//go:embed defaults/hop.yaml
var defaultHopYAML []byte

// DefaultHopConfig returns the built-in configuration. It mirrors
// defaults/hop.yaml and is used when even the embedded YAML cannot be parsed.
func DefaultHopConfig() HopConfig {
	return HopConfig{
		Physics: PhysicsConfig{
			Gravity:        0.04,
			JumpVelocity:   1.0,
			SpringVelocity: 1.6,
			MoveSpeed:      0.7,
			MaxFallSpeed:   1.5,
			EdgeMode:       EdgeWrap,
		},
		Player: PlayerConfig{
			Width:  3,
			Height: 2,
		},
		Platforms: PlatformConfig{
			Width:         9,
			HardWidth:     5,
			MinGap:        2.5,
			MaxGap:        5,
			HardMinGap:    7,
			HardMaxGap:    9,
			ReachSafety:   0.85,
			SpawnAhead:    12,
			RecycleMargin: 4,
			MovingSpeed:   0.25,
			Capacity:      64,
			Weights: WeightsConfig{
				Easy: KindWeights{Normal: 80, Moving: 10, Breaking: 5, Spring: 5},
				Hard: KindWeights{Normal: 35, Moving: 30, Breaking: 25, Spring: 10},
			},
		},
		Camera: CameraConfig{
			Margin:      10,
			DeathMargin: 2,
		},
		Scoring: ScoringConfig{
			PointsPerCell: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultHopYAML
}
