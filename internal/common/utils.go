package common

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey returns a canonical key for case-insensitive name matching.
// A Caser is stateful, so a fresh one is created per call.
// "Białowieża Forest, Poland" and "BIAŁOWIEŻA FOREST, POLAND" fold to the same key.
func FoldKey(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
