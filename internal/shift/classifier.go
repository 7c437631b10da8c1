package shift

import "time"

type Class int

const (
	ClassDay Class = iota
	ClassNight
)

func (c Class) String() string {
	if c == ClassNight {
		return "night"
	}
	return "day"
}

const defaultNightStartHour = 20

// Classifier decides whether a shift belongs to the day or night closure
// sweep. A shift is night-class when it starts at or after NightStartHour,
// or when the employee holds a night position.
type Classifier struct {
	NightStartHour int
}

func NewClassifier(nightStartHour int) Classifier {
	if nightStartHour <= 0 || nightStartHour > 23 {
		nightStartHour = defaultNightStartHour
	}
	return Classifier{NightStartHour: nightStartHour}
}

func (c Classifier) Classify(startAt time.Time, nightPosition bool) Class {
	if startAt.Hour() >= c.NightStartHour || nightPosition {
		return ClassNight
	}
	return ClassDay
}
