package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quitaAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizarBusqueda prepara un término de búsqueda para filtros ILIKE:
// recorta espacios, quita acentos y pasa a minúsculas, de modo que
// "lámina" y "Lamina" encuentren lo mismo.
func NormalizarBusqueda(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if out, _, err := transform.String(quitaAcentos, s); err == nil {
		s = out
	}
	return strings.ToLower(s)
}
