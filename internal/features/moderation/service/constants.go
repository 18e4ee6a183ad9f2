package service

import "time"

const (
	// SpamInterval is the minimum gap between two accepted messages from
	// the same user.
	SpamInterval = 2 * time.Second

	// WarningLimit is the number of consecutive profanity violations that
	// triggers a temporary block.
	WarningLimit = 4

	// TempBlockDuration is the length of a profanity temporary block.
	TempBlockDuration = time.Hour
)
