package output

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/dstepanov/treedump/internal/types"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
)

// WritePDF typesets the two artifact sections in a monospace font and saves
// the document to destinationPath.
func WritePDF(treeText string, fileRecords []types.FileRecord, destinationPath string) error {
	document := gofpdf.New("P", "mm", "A4", "")
	document.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	document.SetAutoPageBreak(true, pdfMargin)
	document.AddPage()
	translate := document.UnicodeTranslatorFromDescriptor("")
	contentWidth := float64(pdfPageWidth - 2*pdfMargin)

	document.SetFont("Helvetica", "B", pdfFontSize+2)
	document.MultiCell(contentWidth, pdfLineHeight, treeSectionHeader, "", "L", false)
	document.Ln(pdfLineHeight / 2.0)

	document.SetFont("Courier", "", pdfFontSize)
	document.MultiCell(contentWidth, pdfLineHeight, translate(treeText), "", "L", false)
	document.Ln(pdfLineHeight)

	document.SetFont("Helvetica", "B", pdfFontSize+2)
	document.MultiCell(contentWidth, pdfLineHeight, contentsSectionHeader, "", "L", false)
	document.Ln(pdfLineHeight / 2.0)

	for _, fileRecord := range fileRecords {
		document.SetFont("Helvetica", "B", pdfFontSize)
		document.MultiCell(contentWidth, pdfLineHeight, translate(fileRecord.RelativePath+":"), "", "L", false)
		document.SetFont("Courier", "", pdfFontSize)
		document.MultiCell(contentWidth, pdfLineHeight, translate(recordBody(fileRecord)), "", "L", false)
		document.Ln(pdfLineHeight / 2.0)
	}

	if saveError := document.OutputFileAndClose(destinationPath); saveError != nil {
		return fmt.Errorf("saving PDF to %s: %w", destinationPath, saveError)
	}
	return nil
}
