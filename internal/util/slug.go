package util

import (
	"math/rand"
	"time"
)

const slugChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const SlugLength = 8

// GenerateSlug returns a short random identifier used to build the
// patient-facing URL for an assessment instance. Uniqueness is enforced by
// the database index, not here.
func GenerateSlug() string {
	b := make([]byte, SlugLength)
	for i := range b {
		b[i] = slugChars[rand.Intn(len(slugChars))]
	}
	return string(b)
}

// StartOfDay truncates t to midnight in its own location, shifted by
// dayOffset days. The [StartOfDay(t), StartOfDay(t, 1)) window is the dedup
// range for automated assignments.
func StartOfDay(t time.Time, dayOffset ...int) time.Time {
	offset := 0
	if len(dayOffset) > 0 {
		offset = dayOffset[0]
	}
	return time.Date(t.Year(), t.Month(), t.Day()+offset, 0, 0, 0, 0, t.Location())
}
