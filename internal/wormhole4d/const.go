package wormhole4d

const (
	// Defaults for configuration fields left at zero.
	Width    = 1024
	Height   = 768
	Aspect   = 1.0
	FOV      = 90.0
	WScale   = 0.25
	Radius   = 0.1
	Infinity = 4.0
	Frames   = 24
	GIFDelay = 8 // 100ths of a second per frame
	PNGOut   = "wormhole.png"
	GIFOut   = "orbit.gif"
	// RayStep is the conventional fixed step; a zero step selects adaptive stepping.
	RayStep = 0.01
	// Fixed-step range accepted by the config layer.
	MinStep = 0.001
	MaxStep = 0.1

	// hot-loop constants
	minWScale        = 0.02 // floor on |wScale| that keeps the surface single-valued
	projectIters     = 10   // Newton budget when projecting along w
	stepIters        = 3    // Newton budget inside a step; fail fast and shrink instead
	maxHalvings      = 8    // fixed-step attempts before giving up
	baseAdaptiveStep = 0.01
	maxAdaptiveStep  = 0.1
	targetNormDiff   = 1.0e-4
	traceStepMult    = 10 // reference sub-steps per step in step statistics
)
