// Package sanitize cleans user-authored content before it is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ugc allows basic formatting but strips scripts, event handlers, and
// anything else bluemonday's UGC policy rejects.
var ugc = bluemonday.UGCPolicy()

// Content sanitizes post/comment bodies and trims surrounding whitespace.
func Content(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}
