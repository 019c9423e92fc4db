package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes. Used for
	// fields that should only contain plain text (names, messages).
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated content with basic
	// formatting for page bodies edited by admins.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML tags and returns plain text.
func Text(input string) string {
	return strictPolicy.Sanitize(input)
}

// HTML sanitizes HTML content, allowing safe formatting tags and
// removing scripts, iframes, and event handlers.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}
