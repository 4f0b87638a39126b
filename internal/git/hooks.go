package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// HooksDir returns the directory git consults for hook scripts. It honors
// core.hooksPath from the repository configuration, the same way git does,
// so installing into a repo with a redirected hook dir works.
func (c *Client) HooksDir(ctx context.Context) (string, error) {
	gitDir, err := c.GitDir(ctx)
	if err != nil {
		return "", err
	}

	if custom, err := c.configuredHooksPath(ctx, gitDir); err == nil && custom != "" {
		return custom, nil
	}

	return filepath.Join(gitDir, "hooks"), nil
}

// configuredHooksPath reads core.hooksPath from the repository's config
// file. Git config keys are case-insensitive, ini handles the lookup.
func (c *Client) configuredHooksPath(ctx context.Context, gitDir string) (string, error) {
	cfgPath := filepath.Join(gitDir, "config")

	if _, err := os.Stat(cfgPath); err != nil {
		return "", err
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, cfgPath)
	if err != nil {
		return "", err
	}

	key, err := cfg.Section("core").GetKey("hookspath")
	if err != nil {
		return "", nil
	}

	hooksPath := strings.TrimSpace(key.String())
	if hooksPath == "" {
		return "", nil
	}

	if strings.HasPrefix(hooksPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		hooksPath = filepath.Join(home, hooksPath[2:])
	}

	if !filepath.IsAbs(hooksPath) {
		top, err := c.TopLevel(ctx)
		if err != nil {
			return "", err
		}
		hooksPath = filepath.Join(top, hooksPath)
	}

	return hooksPath, nil
}
