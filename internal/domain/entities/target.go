package entities

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultBranch is the branch files are committed to when none is configured.
const DefaultBranch = "main"

// DefaultWebURL is the browser-facing host printed in the run summary.
const DefaultWebURL = "https://github.com"

// ErrInvalidTarget is returned when a repository argument is not in owner/repo form.
var ErrInvalidTarget = errors.New("repository must be in format owner/repo")

// Target identifies the remote repository and branch files are pushed to.
type Target struct {
	Owner  string
	Name   string
	Branch string
}

// ParseTarget splits an "owner/repo" argument at its first slash.
// Anything after the first slash belongs to the repository name.
func ParseTarget(raw, branch string) (Target, error) {
	owner, name, ok := strings.Cut(raw, "/")
	if !ok {
		return Target{}, fmt.Errorf("%w: got %q", ErrInvalidTarget, raw)
	}
	if owner == "" || name == "" {
		return Target{}, fmt.Errorf("%w: owner and repo must not be empty (got %q)", ErrInvalidTarget, raw)
	}

	if branch == "" {
		branch = DefaultBranch
	}
	return Target{Owner: owner, Name: name, Branch: branch}, nil
}

// FullName returns the "owner/repo" form.
func (t Target) FullName() string {
	return t.Owner + "/" + t.Name
}

// HTMLURL returns the repository link on the given web host.
func (t Target) HTMLURL(webURL string) string {
	if webURL == "" {
		webURL = DefaultWebURL
	}
	return strings.TrimSuffix(webURL, "/") + "/" + t.FullName()
}
