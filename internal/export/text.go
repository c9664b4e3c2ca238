package export

import "strings"

// PlainText converts a rendered report to downloadable bytes. Bold markers
// are stripped; heading and bullet markers stay, since the text form is the
// report as shown on screen.
func PlainText(report string) []byte {
	text := stripBold(report)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return []byte(text)
}
