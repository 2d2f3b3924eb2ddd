// internal/daily/daily.go
//
// Deterministic "ladder of the day" selection.
// Every server holding the same pair catalog and salt hands out the same
// ladder for a given UTC date and difficulty.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey is the calendar day of t in UTC, e.g. "2026-04-01".
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index picks a slot in [0, n) for the day of date. The draw is keyed by
// salt and scope, so each difficulty gets its own independent sequence of
// days. n <= 0 yields 0.
func Index(date time.Time, salt, scope string, n int) int {
	if n <= 0 {
		return 0
	}
	msg := DateKey(date)
	if scope != "" {
		msg += "/" + scope
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(msg))
	draw := binary.BigEndian.Uint64(mac.Sum(nil))
	return int(draw % uint64(n))
}
