package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfIndent     = 8.0
	pdfCellWidth  = 40.0
	pdfCellHeight = 7.0
)

func newPDF(v *View) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Family Tree", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Family Tree")
	pdf.Ln(12)

	pdf.SetFont("Courier", "", 10)
	if v == nil {
		pdf.Cell(0, pdfCellHeight, EmptyTree)
		return pdf
	}
	// core fonts are cp1252, names arrive as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdfNode(pdf, tr, v, "", 0)
	return pdf
}

func pdfNode(pdf *gofpdf.Fpdf, tr func(string) string, v *View, tag string, depth int) {
	left, _, _, _ := pdf.GetMargins()
	pdf.SetX(left + float64(depth)*pdfIndent)

	label := v.Value
	if tag != "" {
		label = tag + ": " + v.Value
	}
	pdf.CellFormat(pdfCellWidth, pdfCellHeight, tr(label), "1", 1, "C", false, 0, "")

	if v.Left != nil {
		pdfNode(pdf, tr, v.Left, "L", depth+1)
	}
	if v.Right != nil {
		pdfNode(pdf, tr, v.Right, "R", depth+1)
	}
}

// PDF writes the tree as a PDF document, one bordered cell per person.
func PDF(w io.Writer, v *View) error {
	pdf := newPDF(v)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// PDFFile is PDF written to path.
func PDFFile(path string, v *View) error {
	pdf := newPDF(v)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf %s: %w", path, err)
	}
	return nil
}
