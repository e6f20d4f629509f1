package watermark

import (
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	templatePrefix = ` SOLO PARA USO DE: "`
	templateSuffix = `" |`

	// glyphAspect is the advance of one monospace glyph relative to the font size.
	glyphAspect = 0.6

	// rowShift is how many characters each row is rotated relative to the previous one.
	rowShift = 5
)

// Template returns the upper-cased watermark phrase for holder text.
// Upper-casing uses full Unicode case mapping, so "ß" becomes "SS".
func Template(text string) string {
	return cases.Upper(language.Und).String(templatePrefix + text + templateSuffix)
}

// RotateText moves the last s runes of t to the front. s is reduced modulo
// the rune count, so any shift is valid.
func RotateText(t string, s int) string {
	r := []rune(t)
	n := len(r)
	if n == 0 {
		return t
	}
	s = ((s % n) + n) % n
	return string(r[n-s:]) + string(r[:n-s])
}

// FontSize returns the glyph size at which a phrase of n runes spans roughly
// one diagonal. The result is never below 1.
func FontSize(diagonal float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	return math.Max(1, math.Floor(diagonal/float64(n)/glyphAspect))
}
