package extract

import (
	"math"
	"regexp"
	"strconv"
)

var (
	decimalRe = regexp.MustCompile(`(\d+\.?\d*)`)
	integerRe = regexp.MustCompile(`(\d+)`)
)

// FirstDecimal returns the first decimal token in s, or "".
func FirstDecimal(s string) string {
	return decimalRe.FindString(s)
}

// FirstInteger returns the first run of digits in s, or "".
func FirstInteger(s string) string {
	return integerRe.FindString(s)
}

// Rating parses the first decimal token of s and rounds it to the nearest
// integer. Anything unparseable is 0.
func Rating(s string) int {
	tok := FirstDecimal(s)
	if tok == "" {
		return 0
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f))
}

// Helpful parses the first integer token of s. Zero and unparseable input
// both yield nil: the API reports "no data" and "zero votes" the same way.
func Helpful(s string) *int {
	tok := FirstInteger(s)
	if tok == "" {
		return nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
