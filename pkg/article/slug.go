package article

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify maps heading text to a URL-safe token: diacritics transliterated,
// runs of anything else collapsed to "-", lower case, trimmed. The mapping
// is deterministic so permalinks survive rebuilds.
func Slugify(text string) string {
	return slug.Make(strings.ToLower(text))
}
