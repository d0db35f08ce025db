package utils

import (
	"time"
)

const layoutStamp = "2006-01-02 15:04"

// FormatStamp renders print timestamps on generated documents in local time.
func FormatStamp(t time.Time) string {
	return t.In(time.Local).Format(layoutStamp)
}
