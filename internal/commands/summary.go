package commands

import (
	"github.com/dstepanov/treedump/internal/types"
	"github.com/dstepanov/treedump/internal/utils"
)

// SummarizeRecords aggregates file count, byte size, and token totals across
// the collected records. The tokenizer model, when one was used, is filled in
// by the caller.
func SummarizeRecords(fileRecords []types.FileRecord) types.ExportSummary {
	summary := types.ExportSummary{TotalFiles: len(fileRecords)}
	for _, fileRecord := range fileRecords {
		summary.TotalBytes += fileRecord.SizeBytes
		summary.TotalTokens += fileRecord.Tokens
	}
	summary.TotalSize = utils.FormatFileSize(summary.TotalBytes)
	return summary
}
