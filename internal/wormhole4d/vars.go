package wormhole4d

import "github.com/lukaszgryglicki/wormhole4d/internal/log"

var (
	Debug  = false // set to true to record trace events (halvings, failures)
	logger = log.New("wormhole4d")
	// Compile time checks for the stepping policies.
	_ stepper = (*fixedStepper)(nil)
	_ stepper = (*adaptiveStepper)(nil)
)
