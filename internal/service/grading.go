package service

// gradeBand maps a lower percentage bound to a letter and grade point.
type gradeBand struct {
	min    float64
	letter string
	gpa    float64
}

// Letters and points share one table so their boundaries cannot drift apart.
var gradeBands = []gradeBand{
	{min: 90, letter: "A", gpa: 4.0},
	{min: 80, letter: "B", gpa: 3.0},
	{min: 70, letter: "C", gpa: 2.0},
	{min: 60, letter: "D", gpa: 1.0},
}

const (
	failingLetter = "F"
	failingGPA    = 0.0
)

// DeriveGrade returns the letter grade for a percentage. Boundaries belong to the higher band.
func DeriveGrade(percentage float64) string {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.letter
		}
	}
	return failingLetter
}

// DeriveGPA returns the grade point for a percentage.
func DeriveGPA(percentage float64) float64 {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.gpa
		}
	}
	return failingGPA
}

// Percentage converts a score to a percentage of maxScore. A non-positive maxScore yields 0.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}
