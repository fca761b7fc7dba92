package monitor

import "time"

// Status is the result of one round of dependency probes.
type Status struct {
	Services  map[string]bool `json:"services"`
	Healthy   bool            `json:"healthy"`
	LastCheck time.Time       `json:"lastCheck"`
}
