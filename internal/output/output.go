// Package output renders collected tree and content data into the export
// artifact formats.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dstepanov/treedump/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	treeSectionHeader     = "FILE TREE:"
	contentsSectionHeader = "FILE CONTENTS:"

	artifactFilePermissions = 0o644
)

// RenderTreeText renders the tree as connector-based ASCII text. The first
// line is the root label; the result carries no trailing newline.
func RenderTreeText(rootNode *types.TreeNode) string {
	var buffer bytes.Buffer
	writeTreeNode(&buffer, rootNode, "", true, true)
	return strings.TrimSuffix(buffer.String(), "\n")
}

// writeTreeNode recursively prints one node and its visible descendants.
func writeTreeNode(writer io.Writer, node *types.TreeNode, prefix string, isRoot bool, isLast bool) {
	if node == nil {
		return
	}
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)
	fmt.Fprintf(writer, "%s%s\n", linePrefix, node.Name)
	if node.ReadError != "" {
		fmt.Fprintf(writer, "%s"+types.DirectoryErrorMarkerFormat+"\n", childPrefix, node.ReadError)
		return
	}
	for index, child := range node.Children {
		if child == nil {
			continue
		}
		writeTreeNode(writer, child, childPrefix, false, index == len(node.Children)-1)
	}
}

func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

// RenderContentsText renders the content records. Each record contributes a
// blank separator line, its relative path with a colon, and its body.
func RenderContentsText(fileRecords []types.FileRecord) string {
	var buffer bytes.Buffer
	for _, fileRecord := range fileRecords {
		fmt.Fprintf(&buffer, "\n%s:\n", fileRecord.RelativePath)
		buffer.WriteString(recordBody(fileRecord))
	}
	return buffer.String()
}

// recordBody returns the newline-terminated body for one record: the file
// content or the marker matching its disposition.
func recordBody(fileRecord types.FileRecord) string {
	switch fileRecord.Disposition {
	case types.DispositionExcluded:
		return types.ExcludedMarker + "\n"
	case types.DispositionPrivate:
		return types.PrivateMarker + "\n"
	case types.DispositionError:
		return fmt.Sprintf(types.FileErrorMarkerFormat, fileRecord.Content) + "\n"
	default:
		content := fileRecord.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		return content
	}
}

// AssembleText combines the rendered sections under the fixed headers.
func AssembleText(treeText string, contentsText string) string {
	var builder strings.Builder
	builder.WriteString(treeSectionHeader + "\n")
	builder.WriteString(treeText)
	builder.WriteString("\n\n" + contentsSectionHeader + "\n")
	builder.WriteString(contentsText)
	return builder.String()
}

// RenderJSON marshals the artifact as indented JSON.
func RenderJSON(artifact *types.Artifact) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(artifact, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded), nil
}

// FormatSummaryLine formats an ExportSummary into the run summary line.
func FormatSummaryLine(summary types.ExportSummary) string {
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	tokenSuffix := ""
	if summary.TotalTokens > 0 {
		tokenSuffix = fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", summary.TotalFiles, label, summary.TotalSize, tokenSuffix, modelSuffix)
}

// WriteArtifactFile writes the assembled artifact to the destination path.
func WriteArtifactFile(destinationPath string, content string) error {
	if writeError := os.WriteFile(destinationPath, []byte(content), artifactFilePermissions); writeError != nil {
		return fmt.Errorf("writing output file %s: %w", destinationPath, writeError)
	}
	return nil
}
