package engine

import (
	"regexp"

	"github.com/nutrigrade/nutrigrade/pkg/additive"
)

// Both patterns allow an optional space or hyphen between the marker and
// a 3-4 digit code, and swallow a parenthesized annotation that follows,
// like "INS 211 (Sodium Benzoate)".
var (
	insRx = regexp.MustCompile(`(?i)INS[\s-]?(\d{3,4})(?:\s*\([^)]+\))?`)
	eRx   = regexp.MustCompile(`(?i)E[\s-]?(\d{3,4})(?:\s*\([^)]+\))?`)
)

// Extract finds additive code occurrences in ingredient text.
//
// INS and E-number patterns scan the text independently and their results
// are concatenated, INS matches first. Matches are not deduplicated: the
// E pattern is permissive and can fire inside other words ("Sauce 330"),
// such false positives resolve to Unknown later instead of being dropped
// here.
func (e *Engine) Extract(text string) []additive.Match {
	var res []additive.Match
	for _, rx := range []*regexp.Regexp{insRx, eRx} {
		for _, m := range rx.FindAllStringSubmatch(text, -1) {
			res = append(res, additive.Match{Raw: m[0], Code: m[1]})
		}
	}
	return res
}
