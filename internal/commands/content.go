package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/dstepanov/treedump/internal/tokenizer"
	"github.com/dstepanov/treedump/internal/types"
	"github.com/dstepanov/treedump/internal/utils"
)

const (
	// warningAccessPathFormat is used when a path cannot be visited during the walk.
	warningAccessPathFormat = "Warning: error accessing path %s: %v\n"

	// warningTokenCountFormat is used when token estimation fails for a file.
	warningTokenCountFormat = "Warning: failed to count tokens for %s: %v\n"

	// undecodableContentFormat describes file data that is not valid UTF-8 text.
	undecodableContentFormat = "invalid UTF-8 data (%s)"

	relativePathSeparator = "/"
)

// ContentOptions configures a content collection run. The matcher and counter
// are optional; nil disables the corresponding behavior.
type ContentOptions struct {
	PrivateEntries   []string
	ExcludeFolders   []string
	HiddenFolders    []string
	GitignoreMatcher gitignore.IgnoreMatcher
	TokenCounter     tokenizer.Counter
}

// CollectContents walks the directory tree under rootDirectoryPath and returns
// one FileRecord per file found. Every record carries the root-relative path;
// the disposition is chosen by fixed precedence: a file below an excluded or
// hidden folder is redacted with the exclusion disposition, a file matching a
// private entry is redacted with the privacy disposition, and only the
// remaining files are read. Read failures and undecodable data become error
// records instead of aborting the walk.
func CollectContents(rootDirectoryPath string, options ContentOptions) ([]types.FileRecord, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	redactedFolders := append(append([]string{}, options.ExcludeFolders...), options.HiddenFolders...)

	var fileRecords []types.FileRecord

	directoryWalkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(os.Stderr, warningAccessPathFormat, walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}

		fileRecord := types.FileRecord{RelativePath: relativePath}
		if entryInfo, infoError := directoryEntry.Info(); infoError == nil {
			fileRecord.SizeBytes = entryInfo.Size()
		}

		switch {
		case hasRedactedComponent(relativePath, redactedFolders),
			gitignoreMatches(options.GitignoreMatcher, walkedPath, cleanedRootPath):
			fileRecord.Disposition = types.DispositionExcluded
		case isPrivateEntry(relativePath, rootDirectoryPath, options.PrivateEntries):
			fileRecord.Disposition = types.DispositionPrivate
		default:
			fileBytes, fileReadError := os.ReadFile(walkedPath)
			switch {
			case fileReadError != nil:
				fileRecord.Disposition = types.DispositionError
				fileRecord.Content = fileReadError.Error()
			case !utf8.Valid(fileBytes):
				fileRecord.Disposition = types.DispositionError
				fileRecord.Content = fmt.Sprintf(undecodableContentFormat, utils.DetectMimeType(fileBytes))
			default:
				fileRecord.Disposition = types.DispositionContent
				fileRecord.Content = string(fileBytes)
				if options.TokenCounter != nil {
					tokenResult, tokenError := tokenizer.CountBytes(options.TokenCounter, fileBytes)
					if tokenError != nil {
						fmt.Fprintf(os.Stderr, warningTokenCountFormat, walkedPath, tokenError)
					} else if tokenResult.Counted {
						fileRecord.Tokens = tokenResult.Tokens
					}
				}
			}
		}

		fileRecords = append(fileRecords, fileRecord)
		return nil
	})
	if directoryWalkError != nil {
		return nil, directoryWalkError
	}

	return fileRecords, nil
}

// hasRedactedComponent reports whether any directory component of the file's
// root-relative path exactly matches a redacted folder name.
func hasRedactedComponent(relativeFilePath string, redactedFolders []string) bool {
	if len(redactedFolders) == 0 {
		return false
	}
	pathComponents := strings.Split(relativeFilePath, relativePathSeparator)
	if len(pathComponents) < 2 {
		return false
	}
	for _, directoryComponent := range pathComponents[:len(pathComponents)-1] {
		if utils.ContainsString(redactedFolders, directoryComponent) {
			return true
		}
	}
	return false
}

// isPrivateEntry reports whether the file matches a private entry by base
// name, by root-relative path, or by the path joined from the root as it was
// configured, so entries written against a relative root match too.
func isPrivateEntry(relativeFilePath string, configuredRootPath string, privateEntries []string) bool {
	if len(privateEntries) == 0 {
		return false
	}
	configuredFilePath := filepath.Join(configuredRootPath, filepath.FromSlash(relativeFilePath))
	return utils.ContainsString(privateEntries, filepath.Base(configuredFilePath)) ||
		utils.ContainsString(privateEntries, relativeFilePath) ||
		utils.ContainsString(privateEntries, configuredFilePath)
}

// gitignoreMatches reports whether the matcher ignores the file itself or any
// containing directory below the root.
func gitignoreMatches(matcher gitignore.IgnoreMatcher, walkedPath string, rootPath string) bool {
	if matcher == nil {
		return false
	}
	if matcher.Match(walkedPath, false) {
		return true
	}
	for currentPath := filepath.Dir(walkedPath); len(currentPath) > len(rootPath); currentPath = filepath.Dir(currentPath) {
		if matcher.Match(currentPath, true) {
			return true
		}
	}
	return false
}
