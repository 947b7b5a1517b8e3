package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"go.uber.org/zap"
)

// Push updates a remote branch, and optionally the remote tags, from local
// refs. Updates are never forced: every update is classified against the
// actual remote tip first and only fast-forwards are sent.
//
// Rejections are reported in the result with a WARNING severity. Transport
// failures, credential problems included, give an ERROR result and a nil
// error; the error return is reserved for invalid requests.
func (s *Service) Push(ctx context.Context, target Target, req PushRequest) (*PushResult, error) {
	defer observe(opPush)()

	if req.Remote == "" || req.Branch == "" {
		return nil, fmt.Errorf("%w: remote and branch are required", ErrValidation)
	}
	if req.SrcRef == "" && !req.Delete {
		return nil, fmt.Errorf("%w: source ref is required", ErrValidation)
	}

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	remoteURL, err := h.remoteURL(req.Remote)
	if err != nil {
		return nil, err
	}

	updates, err := h.planPush(req)
	if err != nil {
		return nil, err
	}

	log := s.logger.With(
		zap.String("project", target.ID),
		zap.String("remote", req.Remote),
		zap.String("branch", req.Branch))

	auth, err := authMethod(remoteURL, req.Credentials)
	if err != nil {
		log.Warn("push not attempted", zap.Error(err))
		return failPush(updates, err), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	remote, err := h.repo.Remote(req.Remote)
	if err != nil {
		return nil, fmt.Errorf("%w: remote %s", ErrNotFound, req.Remote)
	}

	tips, err := listRemote(ctx, remote, auth)
	if err != nil {
		log.Warn("failed to list remote refs", zap.Error(err))
		return failPush(updates, err), nil
	}

	pending := s.classify(h, updates, tips)
	if len(pending) > 0 {
		// only remote-tracking refs change here, so no publish is needed
		err = h.repo.PushContext(ctx, &git.PushOptions{
			RemoteName:        req.Remote,
			RefSpecs:          pushRefSpecs(pending),
			RequireRemoteRefs: requiredTips(pending, tips),
			Auth:              auth,
		})
		switch {
		case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
			markPending(pending, PushOK, "")
		case isRejection(err):
			markPending(pending, PushRejectedNonFastForward, err.Error())
		default:
			log.Warn("push failed", zap.Error(err))
			return failPush(updates, fmt.Errorf("%w: %w", ErrTransport, err)), nil
		}
	}

	result := aggregate(updates)
	for _, u := range updates {
		refUpdatesTotal.WithLabelValues(string(u.update.Status)).Inc()
	}

	log.Info("push finished",
		zap.String("severity", string(result.Severity)),
		zap.String("message", result.Message))

	return result, nil
}

// planPush resolves the local side of every update without any I/O.
func (h *Handle) planPush(req PushRequest) ([]refUpdate, error) {
	remoteRef := plumbing.NewBranchReferenceName(req.Branch)
	branch := refUpdate{
		remote: remoteRef,
		update: &RefUpdate{
			RemoteRef: remoteRef.String(),
			Status:    PushNotAttempted,
		},
	}

	if tracking, err := h.repo.Reference(plumbing.NewRemoteReferenceName(req.Remote, req.Branch), true); err == nil {
		branch.update.ExpectedOldID = tracking.Hash().String()
	}

	if !req.Delete {
		local, hash, ok := h.resolveLocal(req.SrcRef)
		branch.local = local
		branch.hash = hash
		branch.update.LocalRef = req.SrcRef
		if local != "" {
			branch.update.LocalRef = local.String()
		}
		if ok {
			branch.update.NewID = hash.String()
		} else {
			branch.update.Status = PushNonExisting
			branch.update.Message = "source ref does not exist"
		}
	}

	updates := []refUpdate{branch}
	if !req.IncludeTags {
		return updates, nil
	}

	tags, err := h.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		updates = append(updates, refUpdate{
			local:  ref.Name(),
			remote: ref.Name(),
			hash:   ref.Hash(),
			update: &RefUpdate{
				LocalRef:  ref.Name().String(),
				RemoteRef: ref.Name().String(),
				NewID:     ref.Hash().String(),
				Status:    PushNotAttempted,
			},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return updates, nil
}

// resolveLocal resolves the source of a push. Branch names resolve to their
// ref so that the ref itself is pushed; any other revision resolves to a
// commit.
func (h *Handle) resolveLocal(src string) (plumbing.ReferenceName, plumbing.Hash, bool) {
	if src == "HEAD" {
		ref, err := h.repo.Head()
		if err != nil {
			return "", plumbing.ZeroHash, false
		}
		if ref.Name().IsBranch() {
			return ref.Name(), ref.Hash(), true
		}
		return "", ref.Hash(), true
	}

	for _, name := range []plumbing.ReferenceName{
		plumbing.ReferenceName(src),
		plumbing.NewBranchReferenceName(src),
	} {
		if !name.IsBranch() {
			continue
		}
		if ref, err := h.repo.Reference(name, true); err == nil {
			return name, ref.Hash(), true
		}
	}

	hash, err := h.repo.ResolveRevision(plumbing.Revision(src))
	if err != nil {
		return "", plumbing.ZeroHash, false
	}

	return "", *hash, true
}

// classify sets the status of every update from the actual remote tips and
// returns the updates that should be sent.
func (s *Service) classify(h *Handle, updates []refUpdate, tips map[plumbing.ReferenceName]plumbing.Hash) []refUpdate {
	var pending []refUpdate

	for _, u := range updates {
		if u.update.Status != PushNotAttempted {
			continue
		}

		tip, exists := tips[u.remote]
		if exists {
			u.update.RemoteOldID = tip.String()
		}

		switch {
		case u.hash.IsZero() && !exists:
			u.update.Status = PushNonExisting
			u.update.Message = "remote ref does not exist"
		case u.hash.IsZero() && !s.config.AllowDelete:
			u.update.Status = PushRejectedNoDelete
			u.update.Message = "deleting remote refs is not allowed"
		case u.hash.IsZero():
			pending = append(pending, u)
		case exists && tip == u.hash:
			u.update.Status = PushUpToDate
		case !exists:
			pending = append(pending, u)
		case u.remote.IsTag():
			u.update.Status = PushRejectedOtherReason
			u.update.Message = "tag already exists on the remote"
		case h.isAncestor(tip, u.hash):
			pending = append(pending, u)
		default:
			u.update.Status = PushRejectedNonFastForward
			u.update.Message = "remote contains commits that are not present locally"
		}
	}

	return pending
}

func pushRefSpecs(updates []refUpdate) []config.RefSpec {
	specs := make([]config.RefSpec, 0, len(updates))
	for _, u := range updates {
		var src string
		switch {
		case u.hash.IsZero():
			src = ""
		case u.local != "":
			src = u.local.String()
		default:
			src = u.hash.String()
		}
		specs = append(specs, config.RefSpec(fmt.Sprintf("%s:%s", src, u.remote)))
	}

	return specs
}

// requiredTips pins the remote tips the classification was made against, so
// that a concurrent update of the remote rejects the push.
func requiredTips(updates []refUpdate, tips map[plumbing.ReferenceName]plumbing.Hash) []config.RefSpec {
	required := make([]config.RefSpec, 0, len(updates))
	for _, u := range updates {
		if tip, ok := tips[u.remote]; ok {
			required = append(required, config.RefSpec(fmt.Sprintf("%s:%s", tip, u.remote)))
		}
	}

	return required
}

func isRejection(err error) bool {
	if errors.Is(err, git.ErrNonFastForwardUpdate) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "non-fast-forward update") || strings.Contains(msg, "required to be")
}

func markPending(updates []refUpdate, status PushStatus, message string) {
	for _, u := range updates {
		u.update.Status = status
		u.update.Message = message
	}
}

// failPush reports a transport failure: nothing that was still pending has
// been sent.
func failPush(updates []refUpdate, err error) *PushResult {
	result := &PushResult{
		Severity: SeverityError,
		Message:  err.Error(),
		Updates:  make([]RefUpdate, 0, len(updates)),
	}
	for _, u := range updates {
		if u.update.Status == PushNotAttempted {
			u.update.Message = err.Error()
		}
		result.Updates = append(result.Updates, *u.update)
		refUpdatesTotal.WithLabelValues(string(u.update.Status)).Inc()
	}

	return result
}

// aggregate derives the overall severity; the message names the most severe
// ref update status.
func aggregate(updates []refUpdate) *PushResult {
	result := &PushResult{
		Severity: SeverityOK,
		Message:  string(PushOK),
		Updates:  make([]RefUpdate, 0, len(updates)),
	}

	for _, u := range updates {
		result.Updates = append(result.Updates, *u.update)

		sev := u.update.Status.severity()
		if severityRank(sev) > severityRank(result.Severity) {
			result.Severity = sev
			result.Message = string(u.update.Status)
		}
	}

	return result
}

func severityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

func (h *Handle) isAncestor(ancestor, descendant plumbing.Hash) bool {
	a, err := h.repo.CommitObject(ancestor)
	if err != nil {
		return false
	}
	d, err := h.repo.CommitObject(descendant)
	if err != nil {
		return false
	}

	ok, err := a.IsAncestor(d)

	return err == nil && ok
}

// listRemote returns the current tips of the remote. An empty remote has none.
func listRemote(ctx context.Context, remote *git.Remote, auth transport.AuthMethod) (map[plumbing.ReferenceName]plumbing.Hash, error) {
	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: auth})
	switch {
	case err == nil:
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		return map[plumbing.ReferenceName]plumbing.Hash{}, nil
	default:
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	tips := make(map[plumbing.ReferenceName]plumbing.Hash, len(refs))
	for _, ref := range refs {
		if ref.Type() == plumbing.HashReference {
			tips[ref.Name()] = ref.Hash()
		}
	}

	return tips, nil
}

// Fetch updates the remote-tracking branches of a remote and the tags that are
// not yet known locally. Local tags are never overwritten.
func (s *Service) Fetch(ctx context.Context, target Target, req FetchRequest) (*RemoteRef, error) {
	defer observe(opFetch)()

	if req.Remote == "" || req.Branch == "" {
		return nil, fmt.Errorf("%w: remote and branch are required", ErrValidation)
	}

	h, err := s.lock(ctx, target)
	if err != nil {
		return nil, err
	}
	defer h.Unlock()

	remoteURL, err := h.remoteURL(req.Remote)
	if err != nil {
		return nil, err
	}

	auth, err := authMethod(remoteURL, req.Credentials)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := h.fetch(ctx, req.Remote, auth); err != nil {
		s.logger.Error("fetch failed",
			zap.String("project", target.ID),
			zap.String("remote", req.Remote),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("fetch finished",
		zap.String("project", target.ID),
		zap.String("remote", req.Remote),
		zap.String("branch", req.Branch))

	return h.remoteRef(req.Remote, req.Branch)
}

func (h *Handle) fetch(ctx context.Context, name string, auth transport.AuthMethod) error {
	remote, err := h.repo.Remote(name)
	if err != nil {
		return fmt.Errorf("%w: remote %s", ErrNotFound, name)
	}

	tips, err := listRemote(ctx, remote, auth)
	if err != nil {
		return err
	}
	if len(tips) == 0 {
		return nil
	}

	specs := []config.RefSpec{
		config.RefSpec(fmt.Sprintf("+refs/heads/*:refs/remotes/%s/*", name)),
	}
	local := make(map[plumbing.ReferenceName]*plumbing.Reference)
	for ref := range tips {
		if !ref.IsTag() {
			continue
		}
		if existing, tagErr := h.repo.Reference(ref, false); tagErr == nil {
			local[ref] = existing
			continue
		}
		specs = append(specs, config.RefSpec(fmt.Sprintf("%s:%s", ref, ref)))
	}

	err = h.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: name,
		RefSpecs:   specs,
		Auth:       auth,
	})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		return nil
	default:
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	// tag following may have moved tags that already existed locally
	for ref, existing := range local {
		current, refErr := h.repo.Reference(ref, false)
		if refErr == nil && current.Hash() == existing.Hash() {
			continue
		}
		if setErr := h.repo.Storer.SetReference(existing); setErr != nil {
			return fmt.Errorf("failed to restore tag %s: %w", ref.Short(), setErr)
		}
	}

	return nil
}
