package git

import "time"

type AuthorConfig struct {
	Name  string
	Email string
}

type Config struct {
	// Timeout bounds every network call (push, fetch, list, clone).
	Timeout time.Duration
	// WorkspaceDir is the root under which project repositories live.
	WorkspaceDir string
	Author       AuthorConfig
	// AllowDelete permits pushes that delete remote refs.
	AllowDelete bool
}
