// Package gitsource resolves remote repository URLs into local export roots.
package gitsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const temporaryDirectoryPattern = "treedump-git-"

// IsRemoteURL reports whether the value looks like a Git repository URL
// rather than a local path. The .git suffix and the SSH git@ prefix are
// recognized; plain http(s) addresses are ambiguous and not treated as remote.
func IsRemoteURL(value string) bool {
	return strings.HasSuffix(value, ".git") || strings.HasPrefix(value, "git@")
}

// CloneToTemp clones the repository's default branch into a fresh temporary
// directory and returns it together with a cleanup function removing that
// directory. A failed clone removes the partial directory before returning.
func CloneToTemp(executionContext context.Context, repositoryURL string) (string, func(), error) {
	temporaryDirectory, tempDirError := os.MkdirTemp("", temporaryDirectoryPattern)
	if tempDirError != nil {
		return "", nil, fmt.Errorf("creating temporary directory: %w", tempDirError)
	}

	_, cloneError := git.PlainCloneContext(executionContext, temporaryDirectory, false, &git.CloneOptions{
		URL:           repositoryURL,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if cloneError != nil {
		_ = os.RemoveAll(temporaryDirectory)
		return "", nil, fmt.Errorf("cloning repository %s: %w", repositoryURL, cloneError)
	}

	cleanup := func() {
		_ = os.RemoveAll(temporaryDirectory)
	}
	return temporaryDirectory, cleanup, nil
}
