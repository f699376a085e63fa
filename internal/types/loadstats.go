// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import "time"

// LoadStats describes one load of person records into a session.
type LoadStats struct {
	Source   string        // Human-readable source description
	Bytes    int           // Size of the JSON text that was parsed
	Records  int           // Number of records loaded
	Duration time.Duration // Time spent reading and parsing
}
