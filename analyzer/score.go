package analyzer

import "math"

const checklistSize = 8

// HealthScore applies the fixed 8-point on-page checklist to the extracted
// features and returns a 0-100 percentage. Each check is weighted equally;
// the final value is rounded half-to-even so scores are reproducible across
// platforms.
func HealthScore(f PageFeatures) int {
	checks := [checklistSize]bool{
		f.Title.Present && f.Title.IncludesKeyword,
		f.Meta.Present && f.Meta.IncludesKeyword,
		f.H1.Count == 1 && f.H1.IncludesKeyword,
		f.KeywordInFirst150,
		f.WordCount >= 300,
		f.InternalLinks >= 3,
		// The alt-text check only passes when the page actually has
		// images; an empty page earns nothing here.
		f.Images.Total > 0 && f.Images.MissingAlt == 0,
		f.URLContainsKeyword,
	}

	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}

	return int(math.RoundToEven(100 * float64(passed) / checklistSize))
}
