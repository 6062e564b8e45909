package models

import "time"

// BrandProfile is the single brand voice used for every generation call.
// One row exists per installation; it is created with defaults on first use.
type BrandProfile struct {
	ID                int64     `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	BusinessType      string    `db:"business_type" json:"business_type"`
	Tone              string    `db:"tone" json:"tone"`
	Language          string    `db:"language" json:"language"`
	TargetAudience    string    `db:"target_audience" json:"target_audience"`
	DefaultCta        string    `db:"default_cta" json:"default_cta"`
	EmojiLevel        string    `db:"emoji_level" json:"emoji_level"` // none, low, medium
	MaxWordsInstagram int       `db:"max_words_instagram" json:"max_words_instagram"`
	MaxWordsFacebook  int       `db:"max_words_facebook" json:"max_words_facebook"`
	MaxWordsTiktok    int       `db:"max_words_tiktok" json:"max_words_tiktok"`
	MaxWordsLinkedin  int       `db:"max_words_linkedin" json:"max_words_linkedin"`
	MaxWordsYoutube   int       `db:"max_words_youtube" json:"max_words_youtube"`
	BrandedHashtags   string    `db:"branded_hashtags" json:"branded_hashtags"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// MaxWordsFor returns the caption word budget for a platform, with a sane
// floor when the profile row predates the column default.
func (b *BrandProfile) MaxWordsFor(platform string) int {
	var n int
	switch platform {
	case PlatformInstagram:
		n = b.MaxWordsInstagram
	case PlatformFacebook:
		n = b.MaxWordsFacebook
	case PlatformTiktok:
		n = b.MaxWordsTiktok
	case PlatformLinkedin:
		n = b.MaxWordsLinkedin
	case PlatformYoutube:
		n = b.MaxWordsYoutube
	}
	if n <= 0 {
		n = 100
	}
	return n
}
