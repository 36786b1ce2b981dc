package reservation

import (
	"fmt"
	"time"
)

// TimeSlot is the booked interval. Overlap checks treat both ends as inclusive.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeRange
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports whether the closed intervals [start, end] of both slots intersect,
// so a slot ending at 10:00 overlaps one starting at 10:00.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return !ts.start.After(other.end) && !ts.end.Before(other.start)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s]", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}
