// Package textsearch compara textos sin distinguir mayúsculas. Contains además ignora
// diacríticos ("Café" ~ "cafe"); ContainsFold no, y replica el ILIKE de PostgreSQL.
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize quita diacríticos y aplica case folding Unicode.
// Los transformers de x/text no son seguros entre goroutines, por eso se crean en cada llamada.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Contains reporta si term aparece dentro de s. Un término vacío coincide siempre.
func Contains(s, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(Normalize(s), Normalize(term))
}

// ContainsFold reporta si term aparece dentro de s sin distinguir mayúsculas; los acentos cuentan.
func ContainsFold(s, term string) bool {
	if term == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(term))
}
