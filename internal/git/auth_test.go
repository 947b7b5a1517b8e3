package git

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/go-git/go-git/v6/plumbing/transport/ssh"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func TestSSHUser(t *testing.T) {
	tests := []struct {
		url   string
		user  string
		isSSH bool
	}{
		{url: "git@github.com:org/repo.git", user: "git", isSSH: true},
		{url: "github.com:org/repo.git", user: "", isSSH: true},
		{url: "ssh://deploy@example.com:2222/org/repo.git", user: "deploy", isSSH: true},
		{url: "git+ssh://example.com/org/repo.git", user: "", isSSH: true},
		{url: "https://github.com/org/repo.git", isSSH: false},
		{url: "file:///srv/repo.git", isSSH: false},
		{url: "/srv/repo.git", isSSH: false},
		{url: `C:\repos\repo.git`, isSSH: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			user, isSSH := sshUser(tt.url)
			if isSSH != tt.isSSH {
				t.Errorf("Expected isSSH %v, got %v", tt.isSSH, isSSH)
			}
			if user != tt.user {
				t.Errorf("Expected user %q, got %q", tt.user, user)
			}
		})
	}
}

type keyPair struct {
	private    []byte
	public     []byte
	knownHosts string
}

func newKeyPair(t *testing.T) keyPair {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	block, err := gossh.MarshalPrivateKey(priv, "")
	if err != nil {
		t.Fatal(err)
	}

	sshPub, err := gossh.NewPublicKey(pub)
	if err != nil {
		t.Fatal(err)
	}

	return keyPair{
		private:    pem.EncodeToMemory(block),
		public:     gossh.MarshalAuthorizedKey(sshPub),
		knownHosts: knownhosts.Line([]string{"example.com"}, sshPub),
	}
}

func TestAuthMethod(t *testing.T) {
	auth, err := authMethod("https://example.com/org/repo.git", nil)
	if err != nil || auth != nil {
		t.Errorf("Expected no auth for HTTPS, got %v, %v", auth, err)
	}

	if _, err := authMethod("git@example.com:org/repo.git", nil); !errors.Is(err, ErrTransport) {
		t.Errorf("Expected ErrTransport without a key, got %v", err)
	}

	if _, err := authMethod("git@example.com:org/repo.git", &Credentials{PrivateKey: []byte("garbage")}); !errors.Is(err, ErrTransport) {
		t.Errorf("Expected ErrTransport for an invalid key, got %v", err)
	}

	keys := newKeyPair(t)
	other := newKeyPair(t)

	_, err = authMethod("git@example.com:org/repo.git", &Credentials{
		PrivateKey: keys.private,
		PublicKey:  other.public,
		KnownHosts: keys.knownHosts,
	})
	if !errors.Is(err, ErrTransport) {
		t.Errorf("Expected ErrTransport for a mismatched public key, got %v", err)
	}

	auth, err = authMethod("ssh://example.com/org/repo.git", &Credentials{
		PrivateKey: keys.private,
		PublicKey:  keys.public,
		KnownHosts: keys.knownHosts,
	})
	if err != nil {
		t.Fatalf("authMethod failed: %v", err)
	}
	publicKeys, ok := auth.(*ssh.PublicKeys)
	if !ok {
		t.Fatalf("Expected *ssh.PublicKeys, got %T", auth)
	}
	if publicKeys.User != defaultSSHUser {
		t.Errorf("Expected user %s, got %s", defaultSSHUser, publicKeys.User)
	}

	auth, err = authMethod("ssh://example.com/org/repo.git", &Credentials{
		Username:   "deploy",
		PrivateKey: keys.private,
		KnownHosts: keys.knownHosts,
	})
	if err != nil {
		t.Fatalf("authMethod failed: %v", err)
	}
	if user := auth.(*ssh.PublicKeys).User; user != "deploy" {
		t.Errorf("Expected user deploy, got %s", user)
	}
}
