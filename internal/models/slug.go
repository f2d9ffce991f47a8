package models

import "strings"

// turkishReplacer folds Turkish letters to their ASCII neighbours before
// slugging, so "Kaçak Tespiti" becomes "kacak-tespiti".
var turkishReplacer = strings.NewReplacer(
	"ş", "s", "Ş", "s",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
	"ı", "i", "İ", "i",
)

// Slugify derives a URL slug from a title: Turkish letters transliterated,
// lowercased, and every run of non-alphanumeric characters collapsed into a
// single hyphen.
func Slugify(title string) string {
	s := strings.ToLower(turkishReplacer.Replace(title))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
