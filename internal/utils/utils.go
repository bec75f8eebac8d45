// Package utils contains general helper functions used across the treedump tool.
package utils

import (
	"path/filepath"
)

// DeduplicateEntries removes duplicate strings from a slice while preserving order.
// The first occurrence of each unique entry is kept.
func DeduplicateEntries(entries []string) []string {
	encounteredEntries := make(map[string]struct{})
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, exists := encounteredEntries[entry]; !exists {
			encounteredEntries[entry] = struct{}{}
			result = append(result, entry)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the path of fullPath relative to root in
// forward-slash form. Returns the cleaned fullPath if relative calculation
// fails and "." if both resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)

	if cleanPath == cleanRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanRoot, cleanPath)
	if relativeError != nil {
		return filepath.ToSlash(cleanPath)
	}
	return filepath.ToSlash(relativePath)
}
