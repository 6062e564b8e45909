package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/models"
)

func platformConfig() config.Config {
	cfg := config.Config{SecretKey: "0123456789abcdef0123456789abcdef"}
	cfg.Credentials.InstagramAccessToken = "ig-token"
	cfg.Credentials.InstagramUserID = "ig-user"
	cfg.Credentials.FacebookAccessToken = "fb-token"
	cfg.Credentials.FacebookPageID = "fb-page"
	cfg.Credentials.LinkedinAccessToken = "li-token"
	cfg.Credentials.LinkedinPersonID = "li-person"
	cfg.Credentials.TiktokAccessToken = "tt-token"
	cfg.Credentials.TwitterBearerToken = "tw-token"
	return cfg
}

func TestInstagramPublishRequiresMedia(t *testing.T) {
	svc := NewInstagramService(platformConfig(), newFakeAccountRepo())

	result := svc.Publish(context.Background(), &models.Post{
		ID:               "p1",
		InstagramCaption: "caption",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "image or video")
}

func TestInstagramPublishContainerFlow(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch {
		case strings.HasSuffix(r.URL.Path, "/media"):
			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "https://cdn.example.com/pic.jpg", payload["image_url"])
			assert.Contains(t, payload["caption"], "caption")
			assert.Contains(t, payload["caption"], "#bread")
			json.NewEncoder(w).Encode(map[string]string{"id": "container-1"})
		case strings.HasSuffix(r.URL.Path, "/media_publish"):
			json.NewEncoder(w).Encode(map[string]string{"id": "media-9"})
		default:
			// container status poll
			json.NewEncoder(w).Encode(map[string]string{"status_code": "FINISHED"})
		}
	}))
	defer server.Close()

	svc := NewInstagramService(platformConfig(), newFakeAccountRepo()).(*instagramService)
	svc.baseURL = server.URL
	svc.poll = time.Millisecond

	result := svc.Publish(context.Background(), &models.Post{
		ID:                "p1",
		InstagramCaption:  "caption",
		InstagramHashtags: "#bread,#bakery",
		MediaURL:          "https://cdn.example.com/pic.jpg",
		MediaType:         "image/jpeg",
	})

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "media-9", result.PostID)
	assert.Contains(t, result.PostURL, "media-9")
	assert.GreaterOrEqual(t, len(calls), 3)
}

func TestInstagramPublishContainerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/media") {
			json.NewEncoder(w).Encode(map[string]string{"id": "container-1"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status_code": "ERROR"})
	}))
	defer server.Close()

	svc := NewInstagramService(platformConfig(), newFakeAccountRepo()).(*instagramService)
	svc.baseURL = server.URL
	svc.poll = time.Millisecond

	result := svc.Publish(context.Background(), &models.Post{
		ID:               "p1",
		InstagramCaption: "caption",
		MediaURL:         "https://cdn.example.com/pic.jpg",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "ERROR")
}

func TestInstagramStatusPollSurfacesErrorEnvelope(t *testing.T) {
	var statusCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/media") {
			json.NewEncoder(w).Encode(map[string]string{"id": "container-1"})
			return
		}
		statusCalls++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Invalid OAuth access token", "code": 190},
		})
	}))
	defer server.Close()

	svc := NewInstagramService(platformConfig(), newFakeAccountRepo()).(*instagramService)
	svc.baseURL = server.URL
	svc.poll = time.Millisecond

	result := svc.Publish(context.Background(), &models.Post{
		ID:               "p1",
		InstagramCaption: "caption",
		MediaURL:         "https://cdn.example.com/pic.jpg",
	})

	// The poll fails on the first error reply instead of exhausting its
	// attempts against a dead token.
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Invalid OAuth access token")
	assert.Equal(t, 1, statusCalls)
}

func TestFacebookPublishTextOnlyGoesToFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/fb-page/feed"), r.URL.Path)
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hello fb", payload["message"])
		json.NewEncoder(w).Encode(map[string]string{"id": "page_post-1"})
	}))
	defer server.Close()

	svc := NewFacebookService(platformConfig(), newFakeAccountRepo()).(*facebookService)
	svc.baseURL = server.URL

	result := svc.Publish(context.Background(), &models.Post{
		ID:              "p1",
		FacebookCaption: "hello fb",
	})

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "page_post-1", result.PostID)
}

func TestFacebookPublishImageGoesToPhotos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/fb-page/photos"), r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "photo-1"})
	}))
	defer server.Close()

	svc := NewFacebookService(platformConfig(), newFakeAccountRepo()).(*facebookService)
	svc.baseURL = server.URL

	result := svc.Publish(context.Background(), &models.Post{
		ID:              "p1",
		FacebookCaption: "hello fb",
		MediaURL:        "https://cdn.example.com/pic.jpg",
		MediaType:       "image/jpeg",
	})

	require.True(t, result.Success, result.Error)
}

func TestLinkedinPublishReadsRestliHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))
		assert.Equal(t, "Bearer li-token", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "urn:li:person:li-person", payload["author"])

		w.Header().Set("x-restli-id", "urn:li:share:42")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := NewLinkedinService(platformConfig(), newFakeAccountRepo()).(*linkedinService)
	svc.baseURL = server.URL

	result := svc.Publish(context.Background(), &models.Post{
		ID:              "p1",
		LinkedinCaption: "professional update",
	})

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "urn:li:share:42", result.PostID)
}

func TestTiktokPublishRequiresVideo(t *testing.T) {
	svc := NewTiktokService(platformConfig(), newFakeAccountRepo())

	result := svc.Publish(context.Background(), &models.Post{
		ID:            "p1",
		TiktokCaption: "caption",
		MediaURL:      "https://cdn.example.com/pic.jpg",
		MediaType:     "image/jpeg",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "video")
}

func TestTiktokPublishTruncatesCaption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			PostInfo struct {
				Title string `json:"title"`
			} `json:"post_info"`
			SourceInfo struct {
				Source   string `json:"source"`
				VideoURL string `json:"video_url"`
			} `json:"source_info"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.LessOrEqual(t, utf8.RuneCountInString(payload.PostInfo.Title), tiktokCaptionLimit)
		assert.True(t, utf8.ValidString(payload.PostInfo.Title))
		assert.Equal(t, "PULL_FROM_URL", payload.SourceInfo.Source)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data":  map[string]string{"publish_id": "pub-7"},
			"error": map[string]string{"code": "ok", "message": ""},
		})
	}))
	defer server.Close()

	svc := NewTiktokService(platformConfig(), newFakeAccountRepo()).(*tiktokService)
	svc.baseURL = server.URL

	result := svc.Publish(context.Background(), &models.Post{
		ID:            "p1",
		TiktokCaption: strings.Repeat("מתכון חדש במאפייה ", 20),
		MediaURL:      "https://cdn.example.com/clip.mp4",
		MediaType:     "video/mp4",
	})

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "pub-7", result.PostID)
}

func TestPostTweetTruncatesTo280(t *testing.T) {
	var sentText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tw-token", r.Header.Get("Authorization"))
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		sentText = payload["text"]

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"id": "tweet-1", "text": payload["text"]},
		})
	}))
	defer server.Close()

	svc := NewTwitterService(platformConfig(), newFakeAccountRepo()).(*twitterService)
	svc.baseURL = server.URL

	result, err := svc.PostTweet(context.Background(), strings.Repeat("x", 400))
	require.NoError(t, err)
	assert.Equal(t, "tweet-1", result.PostID)
	assert.Len(t, sentText, tweetTextLimit)
	assert.True(t, strings.HasSuffix(sentText, "..."))
}

func TestPostTweetRequiresText(t *testing.T) {
	svc := NewTwitterService(platformConfig(), newFakeAccountRepo())

	_, err := svc.PostTweet(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}
