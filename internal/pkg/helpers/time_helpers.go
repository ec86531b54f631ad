package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses durationStr, logging and returning fallback when it
// is not a valid duration.
func ParseDuration(durationStr string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("fallback", fallback).Msg("Failed to parse duration string, using fallback")
		return fallback
	}
	return d
}
