package transfer

import "time"

type PostCreation struct {
	Topic      string   `json:"topic"`
	VoiceNotes string   `json:"voice_notes"`
	Platforms  []string `json:"platforms"`
}

// PostUpdate carries partial edits; nil means "leave unchanged".
type PostUpdate struct {
	Topic              *string `json:"topic"`
	InstagramCaption   *string `json:"instagram_caption"`
	InstagramHashtags  *string `json:"instagram_hashtags"`
	FacebookCaption    *string `json:"facebook_caption"`
	TiktokCaption      *string `json:"tiktok_caption"`
	TiktokHashtags     *string `json:"tiktok_hashtags"`
	YoutubeTitle       *string `json:"youtube_title"`
	YoutubeDescription *string `json:"youtube_description"`
	YoutubeTags        *string `json:"youtube_tags"`
	LinkedinCaption    *string `json:"linkedin_caption"`
	MediaURL           *string `json:"media_url"`
	MediaType          *string `json:"media_type"`
}

type RewriteRequest struct {
	Command  string `json:"command"`
	Platform string `json:"platform"`
}

type ScheduleRequest struct {
	ScheduledAt string `json:"scheduled_at"`
}

type InstagramContent struct {
	Caption        string   `json:"caption"`
	Hashtags       []string `json:"hashtags"`
	HashtagsString string   `json:"hashtags_string"`
}

type FacebookContent struct {
	Caption string `json:"caption"`
}

type TiktokContent struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

type YoutubeContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type LinkedinContent struct {
	Caption string `json:"caption"`
}

type ByPlatform struct {
	Instagram *InstagramContent `json:"instagram,omitempty"`
	Facebook  *FacebookContent  `json:"facebook,omitempty"`
	Tiktok    *TiktokContent    `json:"tiktok,omitempty"`
	Youtube   *YoutubeContent   `json:"youtube,omitempty"`
	Linkedin  *LinkedinContent  `json:"linkedin,omitempty"`
}

type PostResponse struct {
	ID            string     `json:"id"`
	Topic         string     `json:"topic"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	MediaURL      string     `json:"media_url,omitempty"`
	MediaType     string     `json:"media_type,omitempty"`
	ByPlatform    ByPlatform `json:"by_platform"`
	VersionsCount int        `json:"versions_count"`
}

type VersionResponse struct {
	ID            int64      `json:"id"`
	PostID        string     `json:"post_id"`
	VersionNumber int        `json:"version_number"`
	Command       string     `json:"command,omitempty"`
	ByPlatform    ByPlatform `json:"by_platform"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PublishResult is the outcome of one platform's attempt within a single
// dispatch. It lives only in the HTTP response; the aggregate status on
// the Post row is what persists.
type PublishResult struct {
	Platform string `json:"platform"`
	Success  bool   `json:"success"`
	PostID   string `json:"post_id,omitempty"`
	PostURL  string `json:"post_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type PublishSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

type DispatchOutcome struct {
	PostID  string          `json:"post_id"`
	Topic   string          `json:"topic"`
	Results []PublishResult `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}
