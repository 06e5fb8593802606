package gradebook

// Entry is one graded piece of work within a class for one student.
type Entry struct {
	Points    float64
	MaxPoints float64
	Weight    float64
}

// WeightedAverage computes the weighted percentage across entries:
//
//	Σ (points_i/max_points_i) * weight_i / Σ weight_i * 100
//
// ok is false when the total weight is 0 (no graded work); callers must render
// a placeholder then, never "0%".
func WeightedAverage(entries []Entry) (pct float64, ok bool) {
	var score, total float64
	for _, e := range entries {
		if e.MaxPoints <= 0 {
			continue
		}
		score += (e.Points / e.MaxPoints) * e.Weight
		total += e.Weight
	}
	if total == 0 {
		return 0, false
	}
	return (score / total) * 100, true
}

var letterBands = []struct {
	min    float64
	letter string
}{
	{97, "A+"}, {93, "A"}, {90, "A-"},
	{87, "B+"}, {83, "B"}, {80, "B-"},
	{77, "C+"}, {73, "C"}, {70, "C-"},
	{67, "D+"}, {63, "D"}, {60, "D-"},
}

// LetterGrade maps a percentage to its letter band. Bands are closed on the
// lower bound, evaluated top-down, first match wins; total over all reals
// (negative values band to F, values over 100 to A+).
func LetterGrade(pct float64) string {
	for _, band := range letterBands {
		if pct >= band.min {
			return band.letter
		}
	}
	return "F"
}
