// Package repo resolves configuration repo entries into runnable hooks:
// local hooks pass through, meta hooks come from the built-in manifest,
// remote hooks are fetched at their pinned revision and looked up in the
// repository's exported manifest.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/giturl"
	"github.com/hooksmith/hooksmith/internal/model"
	"github.com/hooksmith/hooksmith/internal/params"
	"github.com/hooksmith/hooksmith/internal/store"
)

// ResolvedHook is a fully merged hook definition plus where it runs from.
type ResolvedHook struct {
	model.Hook

	// Source is the repo URL, "local" or "meta".
	Source string

	// RepoDir is the checkout directory for remote hooks. Hooks with
	// language "script" resolve their entry relative to it.
	RepoDir string
}

// Resolver turns config repo entries into resolved hooks, cloning and
// caching remote hook repositories as needed.
type Resolver struct {
	settings *params.Settings
	store    store.Store
	git      *git.Client
}

// NewResolver creates a resolver backed by the given checkout store.
func NewResolver(settings *params.Settings, st store.Store) *Resolver {
	return &Resolver{
		settings: settings,
		store:    st,
		git:      git.NewClient(),
	}
}

// Resolve resolves every hook in the configuration, in order. A hook id
// that does not exist in its declared repo is an error naming the ids the
// repo actually exports.
func (r *Resolver) Resolve(ctx context.Context, cfg *model.Config) ([]ResolvedHook, error) {
	var hooks []ResolvedHook

	for _, entry := range cfg.Repos {
		switch {
		case entry.IsLocal():
			for _, h := range entry.Hooks {
				hooks = append(hooks, ResolvedHook{Hook: h, Source: model.RepoLocal})
			}
		case entry.IsMeta():
			for _, h := range entry.Hooks {
				base, ok := metaManifest.Lookup(h.ID)
				if !ok {
					return nil, fmt.Errorf("meta hook %q does not exist (known: %v)", h.ID, model.MetaHookIDs)
				}

				hooks = append(hooks, ResolvedHook{Hook: model.Merge(base, h), Source: model.RepoMeta})
			}
		default:
			resolved, err := r.resolveRemote(ctx, entry)
			if err != nil {
				return nil, err
			}

			hooks = append(hooks, resolved...)
		}
	}

	return hooks, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, entry model.Repo) ([]ResolvedHook, error) {
	checkout, err := r.Checkout(ctx, entry.Repo, entry.Rev)
	if err != nil {
		return nil, err
	}

	manifest, err := config.LoadManifest(checkout.Path)
	if err != nil {
		return nil, fmt.Errorf("repo %s at %s has no usable hook manifest: %w", entry.Repo, entry.Rev, err)
	}

	hooks := make([]ResolvedHook, 0, len(entry.Hooks))

	for _, h := range entry.Hooks {
		base, ok := manifest.Lookup(h.ID)
		if !ok {
			return nil, fmt.Errorf("hook %q is not present in repo %s at %s (exports: %s)",
				h.ID, entry.Repo, entry.Rev, strings.Join(manifest.IDs(), ", "))
		}

		hooks = append(hooks, ResolvedHook{
			Hook:    model.Merge(base, h),
			Source:  entry.Repo,
			RepoDir: checkout.Path,
		})
	}

	return hooks, nil
}

// Checkout returns a cached checkout of the repository at the pinned rev,
// cloning it on first use.
func (r *Resolver) Checkout(ctx context.Context, repoURL, rev string) (*model.Checkout, error) {
	canonical, err := giturl.Canonical(repoURL)
	if err != nil {
		return nil, err
	}

	checkout, err := r.store.GetCheckout(canonical, rev)
	if err == nil {
		if checkoutUsable(ctx, checkout.Path) {
			_ = r.store.TouchCheckout(canonical, rev)
			return checkout, nil
		}

		// The cache directory was removed or gutted behind our back;
		// re-clone.
		if err := r.store.DeleteCheckout(canonical, rev); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if err := r.settings.EnsureHome(); err != nil {
		return nil, err
	}

	dir := filepath.Join(r.settings.ReposDir(), giturl.Slug(canonical)+"@"+sanitizeRev(rev))

	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}

	if err := r.git.CloneAtRev(ctx, repoURL, rev, dir); err != nil {
		return nil, fmt.Errorf("failed to fetch %s at %s: %w", repoURL, rev, err)
	}

	now := time.Now().UTC()
	checkout = &model.Checkout{
		UID:        uuid.New().String(),
		URL:        canonical,
		Rev:        rev,
		Path:       dir,
		CreatedAt:  now,
		LastUsedAt: now,
	}

	if err := r.store.SaveCheckout(checkout); err != nil {
		return nil, err
	}

	return checkout, nil
}

// checkoutUsable reports whether a cached checkout directory still
// resolves to a commit. A partially deleted checkout passes a bare
// stat but fails here.
func checkoutUsable(ctx context.Context, path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}

	_, err := git.NewClientForRepo(path).HeadRev(ctx)

	return err == nil
}

// Clean removes every cached checkout and its index entry.
func (r *Resolver) Clean() error {
	checkouts, err := r.store.ListCheckouts()
	if err != nil {
		return err
	}

	for _, c := range checkouts {
		if err := os.RemoveAll(c.Path); err != nil {
			return err
		}

		if err := r.store.DeleteCheckout(c.URL, c.Rev); err != nil {
			return err
		}
	}

	return nil
}

// GC removes checkouts that have not been used since the cutoff.
func (r *Resolver) GC(cutoff time.Time) (removed int, err error) {
	checkouts, err := r.store.ListCheckouts()
	if err != nil {
		return 0, err
	}

	for _, c := range checkouts {
		if !c.LastUsedAt.Before(cutoff) {
			continue
		}

		if err := os.RemoveAll(c.Path); err != nil {
			return removed, err
		}

		if err := r.store.DeleteCheckout(c.URL, c.Rev); err != nil {
			return removed, err
		}

		removed++
	}

	return removed, nil
}

// sanitizeRev makes a rev safe to embed in a directory name.
func sanitizeRev(rev string) string {
	return strings.NewReplacer("/", "-", "\\", "-", ":", "-").Replace(rev)
}
