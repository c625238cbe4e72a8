package world

// Clock is the simulation calendar: a fixed 360-day year of twelve
// 30-day months. Not a real calendar.
type Clock struct {
	Tick  int `json:"tick"`
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Advance moves the calendar forward by days, normalizing month and year
// rollovers. The tick counter increments once per call regardless of days.
func (c *Clock) Advance(days int) {
	c.Day += days
	for c.Day > 30 {
		c.Day -= 30
		c.Month++
	}
	for c.Month > 12 {
		c.Month -= 12
		c.Year++
	}
	c.Tick++
}
