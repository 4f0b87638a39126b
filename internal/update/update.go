// Package update moves the pinned revisions of a configuration to the
// newest tags the hook repositories publish. GitHub repositories go
// through the API; everything else is asked over ls-remote.
package update

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/giturl"
	"github.com/hooksmith/hooksmith/internal/model"
)

// Change records one repo whose pin moves.
type Change struct {
	Repo   string
	OldRev string
	NewRev string
}

// Updater looks up the newest published tag per hook repository.
type Updater struct {
	git   *git.Client
	token string
}

// New creates an updater. The token is optional; without one GitHub
// lookups run unauthenticated and fall back to ls-remote when the API
// refuses.
func New(gitClient *git.Client, token string) *Updater {
	return &Updater{git: gitClient, token: token}
}

func (u *Updater) githubClient(ctx context.Context) *github.Client {
	if u.token == "" {
		return github.NewClient(nil)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: u.token})

	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// Plan computes which pins would move, without touching anything.
// Repos already at their newest tag produce no change.
func (u *Updater) Plan(ctx context.Context, cfg *model.Config) ([]Change, error) {
	var changes []Change

	for _, entry := range cfg.Repos {
		if !entry.IsRemote() {
			continue
		}

		latest, err := u.LatestRev(ctx, entry.Repo)
		if err != nil {
			return nil, fmt.Errorf("cannot update %s: %w", entry.Repo, err)
		}

		if latest == entry.Rev {
			continue
		}

		changes = append(changes, Change{Repo: entry.Repo, OldRev: entry.Rev, NewRev: latest})
	}

	return changes, nil
}

// LatestRev finds the newest tag a hook repository publishes.
func (u *Updater) LatestRev(ctx context.Context, repoURL string) (string, error) {
	if giturl.IsGitHub(repoURL) {
		if rev, err := u.latestGitHubRev(ctx, repoURL); err == nil {
			return rev, nil
		}
		// API failures (rate limits, private repos) fall through to git.
	}

	tags, err := u.git.LsRemoteTags(ctx, repoURL)
	if err != nil {
		return "", err
	}

	latest, ok := latestTag(tags)
	if !ok {
		return "", fmt.Errorf("repository %s has no version tags", repoURL)
	}

	return latest, nil
}

func (u *Updater) latestGitHubRev(ctx context.Context, repoURL string) (string, error) {
	owner, name, err := giturl.OwnerRepo(repoURL)
	if err != nil {
		return "", err
	}

	client := u.githubClient(ctx)

	release, _, err := client.Repositories.GetLatestRelease(ctx, owner, name)
	if err == nil && release.GetTagName() != "" {
		return release.GetTagName(), nil
	}

	// Hook repos without releases still tag; take the newest tag.
	var names []string

	opts := &github.ListOptions{PerPage: 100}
	for {
		tags, resp, err := client.Repositories.ListTags(ctx, owner, name, opts)
		if err != nil {
			return "", err
		}

		for _, t := range tags {
			names = append(names, t.GetName())
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	latest, ok := latestTag(names)
	if !ok {
		return "", fmt.Errorf("repository %s/%s has no version tags", owner, name)
	}

	return latest, nil
}

// latestTag picks the newest version-shaped tag. Stable releases win
// over pre-releases; tags that do not parse as versions are ignored.
func latestTag(tags []string) (string, bool) {
	type candidate struct {
		tag     string
		version *semver.Version
	}

	var stable, prerelease []candidate

	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}

		c := candidate{tag: tag, version: v}
		if v.Prerelease() == "" {
			stable = append(stable, c)
		} else {
			prerelease = append(prerelease, c)
		}
	}

	pick := stable
	if len(pick) == 0 {
		pick = prerelease
	}

	if len(pick) == 0 {
		return "", false
	}

	sort.Slice(pick, func(i, j int) bool {
		return pick[i].version.LessThan(pick[j].version)
	})

	return pick[len(pick)-1].tag, true
}
