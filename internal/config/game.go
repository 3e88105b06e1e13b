package config

import "time"

// Window - logical world size. Origin is the window center, Y points up.
const (
	WindowWidth  = 600.0
	WindowHeight = 900.0
)

// Simulation step
const (
	TickRate  = 60
	TimeStep  = 1.0 / TickRate // Seconds per tick
	TickTime  = time.Second / TickRate
	BaseSpeed = 200.0 // Units per second for a unit velocity
)

// DespawnMargin is how far past the window edge an auto-despawn entity may travel.
const DespawnMargin = 200.0

// Sprite sizes (full width, height) used as collision bounds.
var (
	PlayerSize      = [2]float64{1024, 1024}
	EnemySize       = [2]float64{103, 84}
	PlayerLaserSize = [2]float64{9, 54}
	EnemyLaserSize  = [2]float64{9, 37}
)

// Sprite scales
const (
	PlayerScale = 0.1
	EnemyScale  = 0.5
	LaserScale  = 1.0
)

// Depth used for every gameplay sprite.
const SpriteDepth = 10.0

// Player
const (
	PlayerRespawnDelay = 2.0  // Seconds
	PlayerBottomOffset = 15.0 // Gap between window bottom and ship
	PlayerLaserOffsetY = 15.0
	PlayerLaserInset   = 5.0
)

// Enemies
const (
	EnemyMax             = 2
	FormationMembersMax  = 2
	EnemySpawnInterval   = 1.0 // Seconds
	EnemyFireProbability = 1.0 / 120.0
	EnemyLaserOffsetY    = 15.0
	EnemySpawnMargin     = 100.0 // Keep formation starts this far inside the window
)

// Explosion animation
const (
	ExplosionFramePeriod = 0.05 // Seconds per frame
	ExplosionLen         = 16   // Frames in the sheet
)

// Client rendering
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// ExplosionCellSize is the width and height of one explosion sheet frame.
const ExplosionCellSize = 64.0

// Sessions
const (
	InactivityWarn       = 90 * time.Second  // Idle time before the warning screen
	InactivityDisconnect = 120 * time.Second // Idle time before the session ends
	ShutdownNotice       = 3 * time.Second   // How long the shutdown screen stays up
)
