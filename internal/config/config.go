// Package config resolves treedump settings from configuration files, the
// environment, and list-valued option strings.
package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/dstepanov/treedump/internal/utils"
)

const listSeparator = ","

// LoadListValue resolves a list-valued option into its entries.
// A value naming an existing regular file is read as UTF-8 text with one
// entry per line; any other non-empty value is treated as an inline
// comma-separated list. Entries are trimmed of surrounding whitespace,
// blank entries are dropped, and duplicates are removed preserving the
// first occurrence. A value that merely fails to name an existing file is
// not an error; it is taken as an inline list.
func LoadListValue(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	fileInformation, statError := os.Stat(value)
	if statError == nil && fileInformation.Mode().IsRegular() {
		return readListFile(value)
	}
	return splitInlineList(value), nil
}

// readListFile reads one entry per line from the file at listFilePath.
//
// #nosec G304
func readListFile(listFilePath string) ([]string, error) {
	fileHandle, openError := os.Open(listFilePath)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	var entries []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" {
			continue
		}
		entries = append(entries, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return utils.DeduplicateEntries(entries), nil
}

// splitInlineList splits value on commas, trimming pieces and dropping empties.
func splitInlineList(value string) []string {
	var entries []string
	for _, piece := range strings.Split(value, listSeparator) {
		trimmedPiece := strings.TrimSpace(piece)
		if trimmedPiece == "" {
			continue
		}
		entries = append(entries, trimmedPiece)
	}
	return utils.DeduplicateEntries(entries)
}
