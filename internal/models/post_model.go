package models

import (
	"database/sql"
	"time"
)

type Post struct {
	ID                 string         `db:"id" json:"id"`
	Topic              string         `db:"topic" json:"topic"`
	VoiceNotes         string         `db:"voice_notes" json:"voice_notes"`
	Status             string         `db:"status" json:"status"` // draft, scheduled, publishing, published, failed
	ScheduledAt        sql.NullTime   `db:"scheduled_at" json:"scheduled_at"`
	PublishedAt        sql.NullTime   `db:"published_at" json:"published_at"`
	MediaURL           string         `db:"media_url" json:"media_url"`
	MediaType          string         `db:"media_type" json:"media_type"`
	InstagramCaption   string         `db:"instagram_caption" json:"instagram_caption"`
	InstagramHashtags  string         `db:"instagram_hashtags" json:"instagram_hashtags"`
	FacebookCaption    string         `db:"facebook_caption" json:"facebook_caption"`
	TiktokCaption      string         `db:"tiktok_caption" json:"tiktok_caption"`
	TiktokHashtags     string         `db:"tiktok_hashtags" json:"tiktok_hashtags"`
	YoutubeTitle       string         `db:"youtube_title" json:"youtube_title"`
	YoutubeDescription string         `db:"youtube_description" json:"youtube_description"`
	YoutubeTags        string         `db:"youtube_tags" json:"youtube_tags"`
	LinkedinCaption    string         `db:"linkedin_caption" json:"linkedin_caption"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

type PostVersion struct {
	ID                 int64     `db:"id" json:"id"`
	PostID             string    `db:"post_id" json:"post_id"`
	VersionNumber      int       `db:"version_number" json:"version_number"`
	Command            string    `db:"command" json:"command"`
	InstagramCaption   string    `db:"instagram_caption" json:"instagram_caption"`
	InstagramHashtags  string    `db:"instagram_hashtags" json:"instagram_hashtags"`
	FacebookCaption    string    `db:"facebook_caption" json:"facebook_caption"`
	TiktokCaption      string    `db:"tiktok_caption" json:"tiktok_caption"`
	TiktokHashtags     string    `db:"tiktok_hashtags" json:"tiktok_hashtags"`
	YoutubeTitle       string    `db:"youtube_title" json:"youtube_title"`
	YoutubeDescription string    `db:"youtube_description" json:"youtube_description"`
	YoutubeTags        string    `db:"youtube_tags" json:"youtube_tags"`
	LinkedinCaption    string    `db:"linkedin_caption" json:"linkedin_caption"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

type PublishHistory struct {
	ID           int64     `db:"id" json:"id"`
	PostID       string    `db:"post_id" json:"post_id"`
	Platform     string    `db:"platform" json:"platform"`
	Success      bool      `db:"success" json:"success"`
	RemoteID     string    `db:"remote_id" json:"remote_id"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	PostStatusDraft      = "draft"
	PostStatusScheduled  = "scheduled"
	PostStatusPublishing = "publishing"
	PostStatusPublished  = "published"
	PostStatusFailed     = "failed"
)

const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTiktok    = "tiktok"
	PlatformYoutube   = "youtube"
	PlatformLinkedin  = "linkedin"
	PlatformTwitter   = "twitter"
)

// AllPlatforms lists the networks a Post can carry content for, in the
// order adapters are dispatched.
var AllPlatforms = []string{
	PlatformInstagram,
	PlatformFacebook,
	PlatformTiktok,
	PlatformYoutube,
	PlatformLinkedin,
}

// TargetPlatforms returns the platforms this post would be published to,
// derived from which per-platform fields are filled in.
func (p *Post) TargetPlatforms() []string {
	var platforms []string
	if p.InstagramCaption != "" {
		platforms = append(platforms, PlatformInstagram)
	}
	if p.FacebookCaption != "" {
		platforms = append(platforms, PlatformFacebook)
	}
	if p.TiktokCaption != "" {
		platforms = append(platforms, PlatformTiktok)
	}
	if p.YoutubeTitle != "" {
		platforms = append(platforms, PlatformYoutube)
	}
	if p.LinkedinCaption != "" {
		platforms = append(platforms, PlatformLinkedin)
	}
	return platforms
}
