package export

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pdfLinesPerPage = 54
	pdfMaxLineChars = 96
	pdfLeading      = 14
	pdfMarginX      = 72
	pdfTopY         = 756
)

var pdfEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// PDF renders a report as a single-font paginated PDF: 54 lines per page,
// lines truncated at 96 characters, bold markers stripped, title on page
// one. The output is a complete PDF 1.4 file with a classic xref table.
func PDF(title, report string) ([]byte, error) {
	pages := paginateLines(pdfLines(title, report), pdfLinesPerPage)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objCount := 3 + 2*len(pages)
	offsets := make([]int, objCount+1)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))
	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, page := range pages {
		pageObj := 4 + 2*i
		contentObj := pageObj + 1
		writeObj(pageObj, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentObj))

		stream := contentStream(page, i == 0)
		writeObj(contentObj, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, xrefOffset)

	return buf.Bytes(), nil
}

// pdfLines flattens title and report into display lines, bold stripped and
// truncated to the page width.
func pdfLines(title, report string) []string {
	out := []string{truncatePDFLine(stripBold(title)), ""}
	report = strings.ReplaceAll(report, "\r\n", "\n")
	for _, raw := range strings.Split(report, "\n") {
		line := strings.TrimRight(stripBold(raw), " \t")
		out = append(out, truncatePDFLine(line))
	}
	return out
}

func truncatePDFLine(line string) string {
	runes := []rune(line)
	if len(runes) <= pdfMaxLineChars {
		return line
	}
	return string(runes[:pdfMaxLineChars])
}

func paginateLines(lines []string, perPage int) [][]string {
	if len(lines) == 0 {
		return [][]string{{}}
	}
	var pages [][]string
	for start := 0; start < len(lines); start += perPage {
		end := min(start+perPage, len(lines))
		pages = append(pages, lines[start:end])
	}
	return pages
}

// contentStream builds one page's text operators. Text state does not carry
// across pages, so every stream sets the font before the first show.
func contentStream(lines []string, withTitle bool) string {
	var b strings.Builder
	b.WriteString("BT\n")
	fmt.Fprintf(&b, "%d TL\n", pdfLeading)
	fmt.Fprintf(&b, "%d %d Td\n", pdfMarginX, pdfTopY)
	if withTitle {
		b.WriteString("/F1 16 Tf\n")
	} else {
		b.WriteString("/F1 11 Tf\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("T*\n")
		}
		if withTitle && i == 1 {
			b.WriteString("/F1 11 Tf\n")
		}
		fmt.Fprintf(&b, "(%s) Tj\n", pdfEscaper.Replace(line))
	}
	b.WriteString("ET\n")
	return b.String()
}
