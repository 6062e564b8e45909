package transfer

// ProfileUpdate carries partial edits to the brand profile; nil means
// "leave unchanged".
type ProfileUpdate struct {
	Name              *string `json:"name"`
	BusinessType      *string `json:"business_type"`
	Tone              *string `json:"tone"`
	Language          *string `json:"language"`
	TargetAudience    *string `json:"target_audience"`
	DefaultCta        *string `json:"default_cta"`
	EmojiLevel        *string `json:"emoji_level"`
	MaxWordsInstagram *int    `json:"max_words_instagram"`
	MaxWordsFacebook  *int    `json:"max_words_facebook"`
	MaxWordsTiktok    *int    `json:"max_words_tiktok"`
	MaxWordsLinkedin  *int    `json:"max_words_linkedin"`
	MaxWordsYoutube   *int    `json:"max_words_youtube"`
	BrandedHashtags   *string `json:"branded_hashtags"`
}
