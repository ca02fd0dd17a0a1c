package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveGradeAndGPABoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		letter     string
		gpa        float64
	}{
		{100, "A", 4.0},
		{90, "A", 4.0},
		{89.999, "B", 3.0},
		{80, "B", 3.0},
		{79.99, "C", 2.0},
		{70, "C", 2.0},
		{60, "D", 1.0},
		{59.9, "F", 0.0},
		{0, "F", 0.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.letter, DeriveGrade(tc.percentage), "letter for %v", tc.percentage)
		assert.Equal(t, tc.gpa, DeriveGPA(tc.percentage), "gpa for %v", tc.percentage)
	}
}

func TestPercentageIsDeterministic(t *testing.T) {
	assert.Equal(t, 72.0, Percentage(72, 100))
	assert.Equal(t, 90.0, Percentage(45, 50))
	assert.Equal(t, Percentage(17, 20), Percentage(17, 20))
	assert.InDelta(t, 110.0, Percentage(55, 50), 1e-9)
	assert.Zero(t, Percentage(10, 0))
}
