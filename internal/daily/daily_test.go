package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 02:00 on the 2nd at +10 is still the 1st in UTC
	assert.Equal(t, "2026-01-01", DateKey(time.Date(2026, 1, 2, 2, 0, 0, 0, loc)))
}

func TestIndex(t *testing.T) {
	day := time.Date(2026, 7, 14, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	assert.Equal(t, 0, Index(day, "salt", "easy", 0))
	assert.Equal(t, Index(day, "salt", "easy", 97), Index(later, "salt", "easy", 97))

	for i := 0; i < 60; i++ {
		got := Index(day.AddDate(0, 0, i), "salt", "hard", 13)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 13)
	}

	// different scopes or salts should not all collide over a month
	sameScope, sameSalt := 0, 0
	for i := 0; i < 30; i++ {
		d := day.AddDate(0, 0, i)
		if Index(d, "salt", "easy", 1000) == Index(d, "salt", "hard", 1000) {
			sameScope++
		}
		if Index(d, "salt", "easy", 1000) == Index(d, "pepper", "easy", 1000) {
			sameSalt++
		}
	}
	assert.Less(t, sameScope, 5)
	assert.Less(t, sameSalt, 5)
}
