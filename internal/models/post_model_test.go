package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetPlatformsDerivedFromContent(t *testing.T) {
	post := &Post{
		InstagramCaption: "ig",
		YoutubeTitle:     "yt",
	}
	assert.Equal(t, []string{PlatformInstagram, PlatformYoutube}, post.TargetPlatforms())

	empty := &Post{}
	assert.Empty(t, empty.TargetPlatforms())
}

func TestMaxWordsForFloor(t *testing.T) {
	profile := &BrandProfile{MaxWordsInstagram: 50}
	assert.Equal(t, 50, profile.MaxWordsFor(PlatformInstagram))
	assert.Equal(t, 100, profile.MaxWordsFor(PlatformFacebook), "unset budgets fall back to the floor")
	assert.Equal(t, 100, profile.MaxWordsFor("unknown"))
}
