// Package commands contains the core traversal logic for each command.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dstepanov/treedump/internal/types"
	"github.com/dstepanov/treedump/internal/utils"
)

const (
	// warningStatPathFormat is used when file information cannot be retrieved.
	warningStatPathFormat = "Warning: unable to stat %s: %v\n"

	// warningListDirectoryFormat is used when a directory cannot be listed.
	warningListDirectoryFormat = "Warning: unable to list directory %s: %v\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// TreeBuilder builds directory tree nodes using configured options.
type TreeBuilder struct {
	HiddenFolders []string
}

// BuildTree generates the tree structure for a directory. The returned root
// node carries rootLabel as its display name; every directory below it lists
// its entries in lexicographic order with hidden directories dropped together
// with their subtrees. A directory that cannot be listed gets ReadError set
// and no children; the traversal continues elsewhere.
func (treeBuilder *TreeBuilder) BuildTree(rootDirectoryPath string, rootLabel string) (*types.TreeNode, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	displayLabel := rootLabel
	if displayLabel == "" {
		displayLabel = rootDirectoryPath
	}
	rootNode := &types.TreeNode{
		Name:  displayLabel,
		Path:  absoluteRootDirPath,
		IsDir: true,
	}
	if rootInfo, rootStatError := os.Stat(absoluteRootDirPath); rootStatError == nil {
		rootNode.LastModified = utils.FormatTimestamp(rootInfo.ModTime())
	}

	treeBuilder.populateChildren(rootNode)
	return rootNode, nil
}

// populateChildren lists the directory behind directoryNode and recursively
// fills in its visible children.
func (treeBuilder *TreeBuilder) populateChildren(directoryNode *types.TreeNode) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryNode.Path)
	if readDirectoryError != nil {
		directoryNode.ReadError = readDirectoryError.Error()
		fmt.Fprintf(os.Stderr, warningListDirectoryFormat, directoryNode.Path, readDirectoryError)
		return
	}

	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() && utils.ContainsString(treeBuilder.HiddenFolders, directoryEntry.Name()) {
			continue
		}

		childPath := filepath.Join(directoryNode.Path, directoryEntry.Name())
		childNode := &types.TreeNode{
			Name:  directoryEntry.Name(),
			Path:  childPath,
			IsDir: directoryEntry.IsDir(),
		}

		entryInfo, infoError := directoryEntry.Info()
		if infoError != nil {
			fmt.Fprintf(os.Stderr, warningStatPathFormat, childPath, infoError)
		} else {
			childNode.LastModified = utils.FormatTimestamp(entryInfo.ModTime())
			if !directoryEntry.IsDir() {
				childNode.Size = utils.FormatFileSize(entryInfo.Size())
				childNode.SizeBytes = entryInfo.Size()
			}
		}

		if directoryEntry.IsDir() {
			treeBuilder.populateChildren(childNode)
		}
		directoryNode.Children = append(directoryNode.Children, childNode)
	}
}
