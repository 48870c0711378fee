package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses s as a time.Duration. Empty or malformed values fall
// back to fallback so a bad config entry cannot take the process down.
func ParseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		log.Warn().Err(err).Str("value", s).Dur("fallback", fallback).Msg("Invalid duration in configuration, using fallback")
		return fallback
	}
	return d
}
