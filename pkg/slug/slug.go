package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name.
// Supports Albanian characters by transliterating them to ASCII equivalents.
//
// Examples:
//   - "Klasë Boksi" → "klase-boksi"
//   - "Përgatitje Fizike" → "pergatitje-fizike"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	// Transliterate Albanian characters to ASCII
	replacer := strings.NewReplacer(
		"ë", "e", "ç", "c",
		"\u00eb", "e", // ë (Unicode escape)
		"\u00e7", "c", // ç
	)
	slug = replacer.Replace(slug)

	// Replace any non-alphanumeric characters with hyphens
	slug = slugRegexp.ReplaceAllString(slug, "-")

	// Trim leading and trailing hyphens
	slug = strings.Trim(slug, "-")

	// Collapse consecutive hyphens into single hyphens
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return slug
}
