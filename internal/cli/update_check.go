package cli

import (
	"fmt"
	"io"
	"strings"

	latest "github.com/tcnksm/go-latest"
)

const (
	unknownVersionLabel      = "unknown"
	releaseOwnerName         = "dstepanov"
	releaseRepositoryName    = "treedump"
	newerReleaseNoticeFormat = "A newer release is available: %s (you have %s)\n"
	releaseDownloadNotice    = "Download it from https://github.com/dstepanov/treedump/releases\n"
)

// reportNewerRelease prints a notice when a newer tagged release exists.
// The check is best effort: network failures and unparsable versions are
// silently ignored, as is an unknown local version.
func reportNewerRelease(writer io.Writer, currentVersion string) {
	normalizedVersion := strings.TrimPrefix(strings.TrimSpace(currentVersion), "v")
	if normalizedVersion == "" || normalizedVersion == unknownVersionLabel {
		return
	}

	githubTag := &latest.GithubTag{
		Owner:      releaseOwnerName,
		Repository: releaseRepositoryName,
	}
	checkResult, checkError := latest.Check(githubTag, normalizedVersion)
	if checkError != nil {
		return
	}
	if checkResult.Outdated {
		fmt.Fprintf(writer, newerReleaseNoticeFormat, checkResult.Current, normalizedVersion)
		fmt.Fprint(writer, releaseDownloadNotice)
	}
}
