// Package i18n composes human-readable message text for trip records. It is
// not used for business logic; unknown keys fall through verbatim.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // fallback
	language.Vietnamese,
}

var matcher = language.NewMatcher(supported)

// Translator resolves a message key and formats its parameters.
type Translator func(key string, args ...interface{}) string

// NewTranslator returns a translator for the closest supported locale.
func NewTranslator(locale string) Translator {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()

	catalog, ok := catalogs[base.String()]
	if !ok {
		catalog = catalogs["en"]
	}

	return func(key string, args ...interface{}) string {
		format, ok := catalog[key]
		if !ok {
			format, ok = catalogs["en"][key]
			if !ok {
				return key
			}
		}
		if len(args) == 0 {
			return format
		}
		return fmt.Sprintf(format, args...)
	}
}
