package blog

import (
	"fmt"
	"math"
	"strings"
)

// DefaultWordsPerMinute is the reading speed used by ReadingTimeFromContent.
const DefaultWordsPerMinute = 200

// ReadingTime is an estimate, in whole minutes, of how long a post takes to read.
type ReadingTime struct {
	minutes int
}

// ReadingTimeFromContent estimates reading time at DefaultWordsPerMinute.
func ReadingTimeFromContent(content string) ReadingTime {
	return ReadingTimeFromContentRate(content, DefaultWordsPerMinute)
}

// ReadingTimeFromContentRate estimates reading time at the given speed.
// Empty content reads in one minute.
func ReadingTimeFromContentRate(content string, wordsPerMinute int) ReadingTime {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(content))
	if words == 0 {
		return ReadingTime{minutes: 1}
	}
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	return ReadingTime{minutes: max(1, minutes)}
}

// ReadingTimeFromMinutes rounds minutes up. Values below one minute are rejected.
func ReadingTimeFromMinutes(minutes float64) (ReadingTime, error) {
	if !(minutes >= 1) {
		return ReadingTime{}, fmt.Errorf("%w: %v minutes, must be at least 1", ErrInvalidReadingTime, minutes)
	}
	return ReadingTime{minutes: int(math.Ceil(minutes))}, nil
}

// ReadingTimeFromPersistence wraps a stored value without validating it.
func ReadingTimeFromPersistence(minutes int) ReadingTime {
	return ReadingTime{minutes: minutes}
}

// Minutes returns the estimate in minutes.
func (r ReadingTime) Minutes() int {
	return r.minutes
}

// Equals compares by minute value.
func (r ReadingTime) Equals(other ReadingTime) bool {
	return r.minutes == other.minutes
}

// Format renders the long display form, e.g. "4 min read".
func (r ReadingTime) Format(locale string) string {
	if locale == "tr" {
		return fmt.Sprintf("%d dk okuma", r.minutes)
	}
	return fmt.Sprintf("%d min read", r.minutes)
}

// FormatShort renders the compact display form, e.g. "4 min".
func (r ReadingTime) FormatShort(locale string) string {
	if locale == "tr" {
		return fmt.Sprintf("%d dk", r.minutes)
	}
	return fmt.Sprintf("%d min", r.minutes)
}

func (r ReadingTime) String() string {
	return r.FormatShort("en")
}
