package core

// RuntimeConfig contains the settings a front end passes to the game when a
// session is created or reset.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Player   string // Name used for high scores and the leaderboard
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "player",
	}
}

// GameState is the coarse status of a session as seen by a front end.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best known local score for the player
	Started   bool // Whether the session left the idle screen
	GameOver  bool // Whether the session has ended
	Paused    bool // Whether the simulation is paused
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
