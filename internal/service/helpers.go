package service

import (
	"database/sql"
	"strings"
	"time"
)

func GetExpiresAt(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}

func newNullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}

func nullTime() sql.NullTime {
	return sql.NullTime{}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinCSV(parts []string) string {
	return strings.Join(parts, ",")
}

// captionWithHashtags appends the hashtag block the way the networks
// expect it: caption, blank line, space-separated tags.
func captionWithHashtags(caption, hashtagsCSV string) string {
	tags := splitCSV(hashtagsCSV)
	if len(tags) == 0 {
		return caption
	}
	return caption + "\n\n" + strings.Join(tags, " ")
}

// truncate caps s at max characters, not bytes, so multi-byte captions
// are never cut mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
