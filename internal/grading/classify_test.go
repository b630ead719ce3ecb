package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyValue_Boundaries(t *testing.T) {
	const expected = 10.0
	tests := []struct {
		name      string
		deviation float64
		want      Verdict
	}{
		{"exact", 0, VerdictCorrect},
		{"inside", 0.5, VerdictCorrect},
		{"on correct edge", 1.0, VerdictCorrect},
		{"just past correct edge", 1.000001, VerdictAlmost},
		{"on almost edge", 2.0, VerdictAlmost},
		{"just past almost edge", 2.000001, VerdictIncorrect},
		{"far", 50, VerdictIncorrect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyValue(expected+tt.deviation, expected, 1.0, 2.0), "above")
			assert.Equal(t, tt.want, ClassifyValue(expected-tt.deviation, expected, 1.0, 2.0), "below")
		})
	}
}

func TestClassifyValue_AbsoluteTolerance(t *testing.T) {
	// Tolerance does not scale with the magnitude of the expected value.
	assert.Equal(t, VerdictIncorrect, ClassifyValue(1003, 1000, 1, 2))
	assert.Equal(t, VerdictCorrect, ClassifyValue(0.4, 0.1, 1, 2))
}

func TestAggregate(t *testing.T) {
	C, A, I := VerdictCorrect, VerdictAlmost, VerdictIncorrect
	tests := []struct {
		in   []Verdict
		want Verdict
	}{
		{[]Verdict{C, C, C}, C},
		{[]Verdict{C, C, A}, A},
		{[]Verdict{I, A, I}, A},
		{[]Verdict{C, I, C}, I},
		{[]Verdict{I, I, I}, I},
		{[]Verdict{A, A, A}, A},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Aggregate(tt.in), "%v", tt.in)
	}
}

func TestClassify(t *testing.T) {
	expected := Milliamps{83.333, 66.667, 16.667}

	r := Classify(Milliamps{83.3, 66.7, 16.7}, expected, DefaultConfig())
	assert.Equal(t, [3]Verdict{VerdictCorrect, VerdictCorrect, VerdictCorrect}, r.Values)
	assert.Equal(t, VerdictCorrect, r.Overall)

	r = Classify(Milliamps{85, 66.7, 0}, expected, DefaultConfig())
	assert.Equal(t, [3]Verdict{VerdictAlmost, VerdictCorrect, VerdictIncorrect}, r.Values)
	assert.Equal(t, VerdictAlmost, r.Overall)

	r = Classify(Milliamps{0, 0, 0}, expected, DefaultConfig())
	assert.Equal(t, VerdictIncorrect, r.Overall)
}

func TestClassify_ConfigOverride(t *testing.T) {
	expected := Milliamps{10, 20, 30}
	student := Milliamps{13, 20, 30}

	assert.Equal(t, VerdictIncorrect, Classify(student, expected, DefaultConfig()).Overall)

	loose := DefaultConfig()
	loose.CurrentTolerance = 5
	assert.Equal(t, VerdictCorrect, Classify(student, expected, loose).Overall)

	wide := DefaultConfig()
	wide.AlmostMultiplier = 4
	assert.Equal(t, VerdictAlmost, Classify(student, expected, wide).Overall)
}

func TestVerdictLabel(t *testing.T) {
	assert.Equal(t, "Correct", VerdictCorrect.Label())
	assert.Equal(t, "Almost", VerdictAlmost.Label())
	assert.Equal(t, "Incorrect", VerdictIncorrect.Label())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.CurrentTolerance = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.AlmostMultiplier = 0.5
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Equation.Rel = -1
	assert.Error(t, bad.Validate())
}
