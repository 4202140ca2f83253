package config

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var repoPattern = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// WatchConfig describes the repository being digested and where the
// digest goes.
type WatchConfig struct {
	// Repository is the tracked issue repository in owner/name form.
	Repository string `yaml:"repository"`
	// HomeRepository is where the digest issue lives; defaults to the
	// tracked repository.
	HomeRepository string `yaml:"home_repository"`
	// IgnoreIssues seeds the persisted ignore list with issue numbers
	// that must never appear in a digest.
	IgnoreIssues []int `yaml:"ignore_issues"`
	// MaxPostSize overrides the digest post ceiling. Zero keeps the
	// platform default.
	MaxPostSize int `yaml:"max_post_size"`
	// WindowFallbackDays is how far back the first digest reaches when
	// the digest issue has no comments yet.
	WindowFallbackDays int `yaml:"window_fallback_days"`
}

// Validate checks the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Repository, validation.Required, validation.Match(repoPattern)),
		validation.Field(&c.HomeRepository, validation.Match(repoPattern)),
		validation.Field(&c.MaxPostSize, validation.Min(0)),
		validation.Field(&c.WindowFallbackDays, validation.Min(0)),
	)
}

// HomeOwnerName splits the home repository into owner and name.
func (c *WatchConfig) HomeOwnerName() (string, string) {
	parts := strings.SplitN(c.Home(), "/", 2)
	return parts[0], parts[1]
}

// Home returns the repository hosting the digest issue.
func (c *WatchConfig) Home() string {
	if c.HomeRepository != "" {
		return c.HomeRepository
	}
	return c.Repository
}

// IsSelfDigest reports whether the digest issue lives in the tracked
// repository itself.
func (c *WatchConfig) IsSelfDigest() bool {
	return c.Home() == c.Repository
}
