package tasks

import "time"

type Config struct {
	// Timeout bounds the run of a single task.
	Timeout time.Duration
}
