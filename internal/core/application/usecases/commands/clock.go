package commands

import "time"

// nowUTC is the single time source for command handlers.
// All lifecycle timestamps are stored in UTC.
func nowUTC() time.Time {
	return time.Now().UTC()
}
