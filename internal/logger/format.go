// internal/logger/format.go

package logger

import (
	"strings"
	"time"
)

// TimestampLayout renders times as "2006-01-02 15:04:05,000".
const TimestampLayout = "2006-01-02 15:04:05,000"

// FormatRecord renders a record as "<timestamp> - <LEVEL> - <message>\n".
// Trailing newlines in the message are dropped so every record stays one line.
func FormatRecord(record Record) []byte {
	var sb strings.Builder
	sb.Grow(len(TimestampLayout) + len(record.Message) + 16)
	sb.WriteString(record.Time.Format(TimestampLayout))
	sb.WriteString(" - ")
	sb.WriteString(record.Level.String())
	sb.WriteString(" - ")
	sb.WriteString(strings.TrimRight(record.Message, "\r\n"))
	sb.WriteByte('\n')
	return []byte(sb.String())
}

// fileStamp returns the filename suffix for the given mode.
func fileStamp(mode Mode, t time.Time) string {
	if mode == ModeRun {
		return t.Format("2006-01-02_15-04-05")
	}
	return t.Format("2006-01-02")
}
