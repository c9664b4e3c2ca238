package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/rotisserie/eris"
)

// Minimal WordprocessingML package: content types, package relationships,
// and the document part itself.
const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

type docxDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNS   string   `xml:"xmlns:w,attr"`
	Body    docxBody `xml:"w:body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"w:p"`
}

type docxParagraph struct {
	Props *docxParaProps `xml:"w:pPr,omitempty"`
	Run   docxRun        `xml:"w:r"`
}

type docxParaProps struct {
	Style *docxStyle `xml:"w:pStyle,omitempty"`
}

type docxStyle struct {
	Val string `xml:"w:val,attr"`
}

type docxRun struct {
	Text string `xml:"w:t"`
}

// OfficeDocument renders a report as a minimal DOCX archive. Heading lines
// map to Heading1/2/3 styles, "- " lines to list paragraphs, everything else
// to body paragraphs. Bold markers are stripped.
func OfficeDocument(title, report string) ([]byte, error) {
	doc := docxDocument{
		XMLNS: "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
		Body:  docxBody{Paragraphs: buildDocxParagraphs(title, report)},
	}

	docXML, err := xml.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "export: marshal document.xml")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", xml.Header + string(docXML)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, eris.Wrapf(err, "export: create %s", part.name)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, eris.Wrapf(err, "export: write %s", part.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, eris.Wrap(err, "export: close archive")
	}
	return buf.Bytes(), nil
}

func buildDocxParagraphs(title, report string) []docxParagraph {
	paragraphs := []docxParagraph{styledParagraph("Title", title)}

	for _, raw := range strings.Split(report, "\n") {
		kind, text := classifyLine(raw)
		switch kind {
		case lineBlank:
			continue
		case lineHeading1:
			paragraphs = append(paragraphs, styledParagraph("Heading1", text))
		case lineHeading2:
			paragraphs = append(paragraphs, styledParagraph("Heading2", text))
		case lineHeading3:
			paragraphs = append(paragraphs, styledParagraph("Heading3", text))
		case lineBullet:
			paragraphs = append(paragraphs, styledParagraph("ListParagraph", text))
		default:
			paragraphs = append(paragraphs, docxParagraph{Run: docxRun{Text: text}})
		}
	}
	return paragraphs
}

func styledParagraph(style, text string) docxParagraph {
	return docxParagraph{
		Props: &docxParaProps{Style: &docxStyle{Val: style}},
		Run:   docxRun{Text: text},
	}
}
