package valueobject

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes to NFD, drops combining marks, and recomposes.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// đ/Đ carries no combining mark, so NFD cannot fold it.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// foldDiacritics maps accented Latin letters (Vietnamese included) to
// their base letter using canonical Unicode decomposition.
func foldDiacritics(s string) string {
	s = dReplacer.Replace(s)
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return s
	}
	return out
}
