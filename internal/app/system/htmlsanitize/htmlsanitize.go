// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans user-generated HTML, keeping common formatting tags
// and stripping scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all markup, leaving plain text. Post text, comment
// text, and bios are stored in this form.
func Strip(s string) string {
	return strict.Sanitize(s)
}
