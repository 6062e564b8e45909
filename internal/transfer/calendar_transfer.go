package transfer

import "time"

type CalendarPost struct {
	ID          string     `json:"id"`
	Topic       string     `json:"topic"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Platforms   []string   `json:"platforms"`
	HasMedia    bool       `json:"has_media"`
}

type CalendarDay struct {
	Date  string         `json:"date"`
	Posts []CalendarPost `json:"posts"`
}

type CalendarWeek struct {
	WeekStart      string        `json:"week_start"`
	WeekEnd        string        `json:"week_end"`
	Days           []CalendarDay `json:"days"`
	TotalPosts     int           `json:"total_posts"`
	ScheduledCount int           `json:"scheduled_count"`
	DraftCount     int           `json:"draft_count"`
}
