package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	classifier := NewClassifier(20)

	tests := []struct {
		name          string
		hour          int
		minute        int
		nightPosition bool
		want          Class
	}{
		{name: "early morning", hour: 7, want: ClassDay},
		{name: "midday", hour: 12, want: ClassDay},
		{name: "last day hour", hour: 19, minute: 59, want: ClassDay},
		{name: "night threshold", hour: 20, want: ClassNight},
		{name: "late evening", hour: 21, minute: 30, want: ClassNight},
		{name: "just before midnight", hour: 23, minute: 59, want: ClassNight},
		{name: "after midnight", hour: 1, want: ClassDay},
		{name: "night position overrides day hour", hour: 7, nightPosition: true, want: ClassNight},
		{name: "night position at night hour", hour: 22, nightPosition: true, want: ClassNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2024, 1, 10, tt.hour, tt.minute, 0, 0, time.UTC)
			assert.Equal(t, tt.want, classifier.Classify(start, tt.nightPosition))
		})
	}
}

func TestClassifyCustomThreshold(t *testing.T) {
	classifier := NewClassifier(18)

	start := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, ClassNight, classifier.Classify(start, false))

	start = time.Date(2024, 1, 10, 17, 59, 0, 0, time.UTC)
	assert.Equal(t, ClassDay, classifier.Classify(start, false))
}

func TestNewClassifierRejectsInvalidHour(t *testing.T) {
	assert.Equal(t, defaultNightStartHour, NewClassifier(0).NightStartHour)
	assert.Equal(t, defaultNightStartHour, NewClassifier(-3).NightStartHour)
	assert.Equal(t, defaultNightStartHour, NewClassifier(24).NightStartHour)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "day", ClassDay.String())
	assert.Equal(t, "night", ClassNight.String())
}
