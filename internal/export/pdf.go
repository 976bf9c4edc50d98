package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDF layout constants, in millimetres on an A4 page. The y cursor
// walks down the page; crossing maxY mid-section starts a new page and
// the section continues there.
const (
	pdfLeftMargin  = 20.0
	pdfIndent      = 25.0
	pdfTopY        = 20.0
	pdfTitleStep   = 20.0
	pdfHeadingStep = 10.0
	pdfLineStep    = 8.0
	pdfSectionStep = 10.0
	pdfMaxY        = 280.0
)

// encodePDF renders the document form of the export: a title, then per
// section a heading and one compact line per record.
func encodePDF(sections []section) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := pdfTopY
	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(pdfLeftMargin, y, "Personal Data Export")
	y += pdfTitleStep

	for _, s := range sections {
		pdf.SetFont("Helvetica", "", 14)
		pdf.Text(pdfLeftMargin, y, title(s.key))
		y += pdfHeadingStep

		pdf.SetFont("Helvetica", "", 10)
		for i, row := range s.rows {
			line := recordLine(s.headers, row)
			if s.list {
				line = fmt.Sprintf("%d. %s", i+1, line)
			}
			pdf.Text(pdfIndent, y, line)
			y += pdfLineStep

			if y > pdfMaxY {
				pdf.AddPage()
				y = pdfTopY
			}
		}
		y += pdfSectionStep
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// recordLine flattens one record into "field: value, field: value".
func recordLine(headers, row []string) string {
	pairs := make([]string, len(headers))
	for i, h := range headers {
		pairs[i] = h + ": " + row[i]
	}
	return strings.Join(pairs, ", ")
}

// title uppercases the first letter of a section key for its heading.
func title(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
