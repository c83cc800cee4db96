package gmd

import (
	"encoding/xml"
	"strings"
)

const (
	documentHeader = `<?xml version="1.0"?><plist version="1.0" gjver="2.0"><dict>`
	documentFooter = `</dict></plist>`
)

// Render writes the GMD document for a level using the default tag table.
// The k1 tag is taken from the save data, not from levelID.
func Render(levelID int64, pairs map[string]string) string {
	return RenderTags(pairs, Tags)
}

// RenderTags writes a document from an explicit tag table. Field rows whose source
// value is missing or empty are skipped; literal rows are always written.
func RenderTags(pairs map[string]string, tags []Tag) string {
	var b strings.Builder
	b.WriteString(documentHeader)
	for _, tag := range tags {
		value := tag.Literal
		if !tag.IsLiteral() {
			value = pairs[tag.Source]
		}
		if value == "" {
			continue
		}
		writeElement(&b, "k", tag.Key)
		writeElement(&b, string(tag.Kind), value)
	}
	b.WriteString(documentFooter)
	return b.String()
}

func writeElement(b *strings.Builder, name, text string) {
	b.WriteString("<" + name + ">")
	_ = xml.EscapeText(b, []byte(text))
	b.WriteString("</" + name + ">")
}
