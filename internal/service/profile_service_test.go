package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilit308-creator/autosocial/internal/transfer"
)

func TestGetProfileCreatesDefaults(t *testing.T) {
	svc := NewProfileService(&fakeProfileRepo{})

	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "low", profile.EmojiLevel)
	assert.Equal(t, "en", profile.Language)
	assert.Equal(t, 100, profile.MaxWordsInstagram)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo)

	tone := "playful"
	maxWords := 80
	updated, err := svc.Update(context.Background(), &transfer.ProfileUpdate{
		Tone:              &tone,
		MaxWordsInstagram: &maxWords,
	})
	require.NoError(t, err)

	assert.Equal(t, "playful", updated.Tone)
	assert.Equal(t, 80, updated.MaxWordsInstagram)
	// Untouched fields keep their defaults.
	assert.Equal(t, "en", updated.Language)
}

func TestUpdateProfileValidatesEmojiLevel(t *testing.T) {
	svc := NewProfileService(&fakeProfileRepo{})

	bad := "lots"
	_, err := svc.Update(context.Background(), &transfer.ProfileUpdate{EmojiLevel: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	good := "medium"
	updated, err := svc.Update(context.Background(), &transfer.ProfileUpdate{EmojiLevel: &good})
	require.NoError(t, err)
	assert.Equal(t, "medium", updated.EmojiLevel)
}
