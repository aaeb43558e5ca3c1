package helpers

import (
	"context"
	"io"
	"os"

	"github.com/beehive/jxunxo/pkg/config"
	"github.com/mattn/go-isatty"
)

// isRunningInCI checks if we're running in a CI/CD environment
func isRunningInCI() bool {
	if os.Getenv("CI") != "" {
		return true
	}
	ciVars := []string{
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"BUILDKITE",
		"DRONE",
		"TF_BUILD",
		"JENKINS_URL",
		"CONTINUOUS_INTEGRATION",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isTerminal reports whether w is a terminal file descriptor
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ShouldUseColor resolves a color mode (auto, always, never) for output
// written to w. auto colors only interactive terminals outside CI and
// honors NO_COLOR and TERM=dumb.
func ShouldUseColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" || isRunningInCI() {
		return false
	}
	if term := os.Getenv("TERM"); term == "dumb" || term == "" {
		return false
	}
	return isTerminal(w)
}

// ConfigFrom returns the configuration stored in ctx, or nil
func ConfigFrom(ctx context.Context) *config.Config {
	if ctx == nil {
		return nil
	}
	cfg, ok := ctx.Value(ConfigKey).(*config.Config)
	if !ok {
		return nil
	}
	return cfg
}
