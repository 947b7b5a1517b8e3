package projects

import (
	"time"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/google/uuid"
)

type ProjectDraft struct {
	Name     string
	CloneURL string // Remote to clone on creation (optional)
	Branch   string // Branch to check out after cloning (optional)

	Credentials *git.Credentials // Used for the initial clone only, never stored
}

type Project struct {
	ID       uuid.UUID
	Name     string
	CloneURL string
	Dir      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Target returns the repository of the project.
func (p *Project) Target() git.Target {
	return git.Target{
		ID:  p.ID.String(),
		Dir: p.Dir,
	}
}
