// Package richtext renders catalog-supplied markdown (product descriptions)
// into sanitized HTML safe to embed in pages. The catalog source is remote,
// so its text is treated as untrusted user-generated content.
package richtext

import (
	"bytes"
	"html/template"
	"log"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	md     = goldmark.New()
	policy = bluemonday.UGCPolicy()
)

// Description converts markdown to sanitized HTML. On a conversion failure
// the raw text is returned escaped rather than failing the page.
func Description(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		log.Printf("richtext: convert: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
