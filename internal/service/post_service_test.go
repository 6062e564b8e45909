package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

func newTestPostService(t *testing.T, model *fakeTextModel) (PostService, *fakePostRepo, *fakeVersionRepo) {
	t.Helper()
	pr := newFakePostRepo()
	vr := newFakeVersionRepo()
	pf := &fakeProfileRepo{}
	if model == nil {
		model = scriptedModel(t)
	}
	svc := NewPostService(pr, vr, pf, NewGeneratorService(model))
	return svc, pr, vr
}

func TestCreateRequiresTopic(t *testing.T) {
	svc, _, _ := newTestPostService(t, nil)

	_, err := svc.Create(context.Background(), &transfer.PostCreation{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsUnknownPlatform(t *testing.T) {
	svc, _, _ := newTestPostService(t, nil)

	_, err := svc.Create(context.Background(), &transfer.PostCreation{
		Topic:     "bread",
		Platforms: []string{"myspace"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateDefaultsToAllPlatforms(t *testing.T) {
	svc, pr, _ := newTestPostService(t, nil)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusDraft, resp.Status)
	assert.NotEmpty(t, resp.ID)
	assert.NotNil(t, resp.ByPlatform.Instagram)
	assert.NotNil(t, resp.ByPlatform.Facebook)
	assert.NotNil(t, resp.ByPlatform.Tiktok)
	assert.NotNil(t, resp.ByPlatform.Youtube)
	assert.NotNil(t, resp.ByPlatform.Linkedin)

	stored, err := pr.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.ElementsMatch(t, models.AllPlatforms, stored.TargetPlatforms())
}

func TestCreateSurvivesPartialGenerationFailure(t *testing.T) {
	model := &fakeTextModel{
		reply: func(system, prompt string) (string, error) {
			if strings.Contains(prompt, "caption for tiktok") {
				return "", errors.New("rate limited")
			}
			if strings.Contains(prompt, "hashtags for this") {
				return `{"hashtags": ["#x"], "notes": ""}`, nil
			}
			if strings.Contains(prompt, "YouTube video title") {
				return `{"title": "A Title", "alternatives": []}`, nil
			}
			return `{"caption": "text", "hook": "", "cta": ""}`, nil
		},
	}
	svc, _, _ := newTestPostService(t, model)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	assert.Nil(t, resp.ByPlatform.Tiktok)
	assert.NotNil(t, resp.ByPlatform.Instagram)
	assert.Equal(t, models.PostStatusDraft, resp.Status)
}

func TestGetMissingPostReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestPostService(t, nil)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAppliesPartialEdits(t *testing.T) {
	svc, _, _ := newTestPostService(t, nil)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	newCaption := "Hand-edited caption"
	updated, err := svc.Update(context.Background(), resp.ID, &transfer.PostUpdate{
		FacebookCaption: &newCaption,
	})
	require.NoError(t, err)

	assert.Equal(t, newCaption, updated.ByPlatform.Facebook.Caption)
	// Untouched fields stay as generated.
	assert.Equal(t, resp.ByPlatform.Instagram.Caption, updated.ByPlatform.Instagram.Caption)
}

func TestRewriteUnknownCommandRejectedBeforeSnapshot(t *testing.T) {
	svc, _, vr := newTestPostService(t, nil)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	_, err = svc.Rewrite(context.Background(), resp.ID, "make_viral", "")
	assert.ErrorIs(t, err, ErrValidation)

	count, err := vr.CountByPostID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "a rejected command must not create a version")
}

func TestRewriteSnapshotsBeforeChanging(t *testing.T) {
	rewriteModel := scriptedModel(t)
	svc, pr, vr := newTestPostService(t, rewriteModel)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)
	original, err := pr.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)

	rewriteModel.reply = func(system, prompt string) (string, error) {
		return `{"rewritten_text": "Much shorter.", "diff_summary": ""}`, nil
	}

	rewritten, err := svc.Rewrite(context.Background(), resp.ID, "shorter", "")
	require.NoError(t, err)
	assert.Equal(t, "Much shorter.", rewritten.ByPlatform.Instagram.Caption)
	assert.Equal(t, "Much shorter.", rewritten.ByPlatform.Facebook.Caption)

	versions, err := vr.ListByPostID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].VersionNumber)
	assert.Equal(t, "shorter", versions[0].Command)
	assert.Equal(t, original.InstagramCaption, versions[0].InstagramCaption,
		"the snapshot must hold the pre-rewrite text")
}

func TestRewriteVersionNumbersIncrease(t *testing.T) {
	rewriteModel := scriptedModel(t)
	svc, _, vr := newTestPostService(t, rewriteModel)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	rewriteModel.reply = func(system, prompt string) (string, error) {
		return `{"rewritten_text": "v", "diff_summary": ""}`, nil
	}

	_, err = svc.Rewrite(context.Background(), resp.ID, "shorter", "")
	require.NoError(t, err)
	_, err = svc.Rewrite(context.Background(), resp.ID, "longer", "")
	require.NoError(t, err)

	versions, err := vr.ListByPostID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].VersionNumber)
	assert.Equal(t, 1, versions[1].VersionNumber)
}

func TestRewriteSinglePlatformLeavesOthers(t *testing.T) {
	rewriteModel := scriptedModel(t)
	svc, pr, _ := newTestPostService(t, rewriteModel)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)
	before, err := pr.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)

	rewriteModel.reply = func(system, prompt string) (string, error) {
		return `{"rewritten_text": "Only LinkedIn changed.", "diff_summary": ""}`, nil
	}

	rewritten, err := svc.Rewrite(context.Background(), resp.ID, "more_professional", models.PlatformLinkedin)
	require.NoError(t, err)

	assert.Equal(t, "Only LinkedIn changed.", rewritten.ByPlatform.Linkedin.Caption)
	assert.Equal(t, before.InstagramCaption, rewritten.ByPlatform.Instagram.Caption)
	assert.Equal(t, before.FacebookCaption, rewritten.ByPlatform.Facebook.Caption)
}

func TestRewriteRejectsNonRewritablePlatform(t *testing.T) {
	svc, _, _ := newTestPostService(t, nil)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	_, err = svc.Rewrite(context.Background(), resp.ID, "shorter", models.PlatformYoutube)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRewriteModelFailureKeepsOriginalText(t *testing.T) {
	rewriteModel := scriptedModel(t)
	svc, pr, vr := newTestPostService(t, rewriteModel)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)
	before, err := pr.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)

	rewriteModel.reply = func(system, prompt string) (string, error) {
		return "", errors.New("model down")
	}

	rewritten, err := svc.Rewrite(context.Background(), resp.ID, "shorter", "")
	require.NoError(t, err, "a failed rewrite is not a request error")

	assert.Equal(t, before.InstagramCaption, rewritten.ByPlatform.Instagram.Caption)

	count, err := vr.CountByPostID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the snapshot is taken even when every rewrite fails")
}

func TestRestoreVersionRoundTrip(t *testing.T) {
	rewriteModel := scriptedModel(t)
	svc, _, _ := newTestPostService(t, rewriteModel)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)
	originalCaption := resp.ByPlatform.Instagram.Caption

	rewriteModel.reply = func(system, prompt string) (string, error) {
		return `{"rewritten_text": "rewritten", "diff_summary": ""}`, nil
	}
	_, err = svc.Rewrite(context.Background(), resp.ID, "shorter", "")
	require.NoError(t, err)

	restored, err := svc.RestoreVersion(context.Background(), resp.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, originalCaption, restored.ByPlatform.Instagram.Caption)

	// Restoring snapshots the rewritten content first, so restore is
	// itself reversible.
	versions, err := svc.ListVersions(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "restore", versions[0].Command)
	assert.Equal(t, "rewritten", versions[0].ByPlatform.Instagram.Caption)
}

func TestRestoreMissingVersion(t *testing.T) {
	svc, _, _ := newTestPostService(t, nil)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	_, err = svc.RestoreVersion(context.Background(), resp.ID, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	svc, pr, _ := newTestPostService(t, nil)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resp.ID))

	stored, err := pr.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.ErrorIs(t, svc.Delete(context.Background(), resp.ID), ErrNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, pr, _ := newTestPostService(t, nil)

	resp, err := svc.Create(context.Background(), &transfer.PostCreation{Topic: "bread"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &transfer.PostCreation{Topic: "cake"})
	require.NoError(t, err)

	require.NoError(t, pr.UpdateStatus(context.Background(), models.PostStatusPublished, resp.ID))

	drafts, err := svc.List(context.Background(), models.PostStatusDraft)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List(context.Background(), "archived")
	assert.ErrorIs(t, err, ErrValidation)
}
