package projects

import (
	"time"

	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/links"
	"github.com/google/uuid"
)

// CreateRequest represents the request payload for creating a project.
type CreateRequest struct {
	Name     string `json:"Name"     validate:"required,min=1,max=100,excludesall=/"`
	CloneURL string `json:"CloneURL" validate:"omitempty,max=2048"`
	Branch   string `json:"Branch"   validate:"omitempty,max=255"`

	// SSH credentials for the initial clone, never stored
	UserName   string `json:"UserName"`
	KnownHosts string `json:"KnownHosts"`
	PrivateKey string `json:"PrivateKey"`
	PublicKey  string `json:"PublicKey"`
	Passphrase string `json:"Passphrase"`
}

// ProjectResponse represents the response payload for a project.
type ProjectResponse struct {
	ID       uuid.UUID `json:"Id"`
	Name     string    `json:"Name"`
	CloneURL string    `json:"CloneURL,omitempty"`
	Location string    `json:"Location"`
	Git      links.Git `json:"Git"`

	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
}

func (r *CreateRequest) credentials() *git.Credentials {
	if r.PrivateKey == "" && r.UserName == "" {
		return nil
	}

	return &git.Credentials{
		Username:   r.UserName,
		KnownHosts: r.KnownHosts,
		PrivateKey: []byte(r.PrivateKey),
		PublicKey:  []byte(r.PublicKey),
		Passphrase: []byte(r.Passphrase),
	}
}
