package score

import "strings"

// courseKeywords flag a goal as course-like when any appears in its title or
// description.
var courseKeywords = []string{
	"course",
	"training",
	"certification",
	"certificate",
	"bootcamp",
	"workshop",
	"webinar",
	"udemy",
	"coursera",
	"pluralsight",
}

// LooksLikeCourse reports whether free-form goal text reads like a course or
// training item. The heuristic only pre-fills a suggestion; the evaluator's
// explicit choice is never overwritten by it.
func LooksLikeCourse(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range courseKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
