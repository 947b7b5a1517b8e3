package git

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v6/plumbing/transport"
	"github.com/go-git/go-git/v6/plumbing/transport/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const defaultSSHUser = "git"

// scpLike matches the short SSH form user@host:path.
var scpLike = regexp.MustCompile(`^(?:([^@/:]+)@)?([^@/:]+):(.+)$`)

// sshUser reports whether the remote URL uses SSH and, if so, the user it
// names.
func sshUser(remoteURL string) (string, bool) {
	if strings.Contains(remoteURL, "://") {
		u, err := url.Parse(remoteURL)
		if err != nil {
			return "", false
		}
		if u.Scheme != "ssh" && u.Scheme != "git+ssh" {
			return "", false
		}
		return u.User.Username(), true
	}

	m := scpLike.FindStringSubmatch(remoteURL)
	if m == nil || len(m[2]) == 1 {
		// a single-letter host is a Windows drive
		return "", false
	}

	return m[1], true
}

// authMethod builds the transport authentication for remoteURL. Non-SSH
// remotes need none; SSH remotes require a private key and verify host keys.
func authMethod(remoteURL string, creds *Credentials) (transport.AuthMethod, error) {
	user, isSSH := sshUser(remoteURL)
	if !isSSH {
		return nil, nil //nolint:nilnil //no auth needed
	}

	if creds == nil || len(creds.PrivateKey) == 0 {
		return nil, fmt.Errorf("%w: private key is required for %s", ErrTransport, remoteURL)
	}

	if creds.Username != "" {
		user = creds.Username
	}
	if user == "" {
		user = defaultSSHUser
	}

	keys, err := ssh.NewPublicKeys(user, creds.PrivateKey, string(creds.Passphrase))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid private key: %w", ErrTransport, err)
	}

	if len(creds.PublicKey) > 0 {
		pub, _, _, _, parseErr := gossh.ParseAuthorizedKey(creds.PublicKey)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid public key: %w", ErrTransport, parseErr)
		}
		if !bytes.Equal(pub.Marshal(), keys.Signer.PublicKey().Marshal()) {
			return nil, fmt.Errorf("%w: public key does not match private key", ErrTransport)
		}
	}

	callback, err := hostKeyCallback(creds.KnownHosts)
	if err != nil {
		return nil, fmt.Errorf("%w: known hosts: %w", ErrTransport, err)
	}
	keys.HostKeyCallback = callback

	return keys, nil
}

// hostKeyCallback verifies host keys against the supplied known_hosts content,
// or the user's default known_hosts files when none is supplied.
func hostKeyCallback(knownHosts string) (gossh.HostKeyCallback, error) {
	if strings.TrimSpace(knownHosts) == "" {
		return ssh.NewKnownHostsCallback()
	}

	f, err := os.CreateTemp("", "known_hosts-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(knownHosts + "\n"); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	// the file is parsed eagerly, so it can be removed right after
	return ssh.NewKnownHostsCallback(f.Name())
}
