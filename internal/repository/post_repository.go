package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hilit308-creator/autosocial/internal/models"
)

const postColumns = `id, topic, voice_notes, status, scheduled_at, published_at,
	media_url, media_type,
	instagram_caption, instagram_hashtags, facebook_caption,
	tiktok_caption, tiktok_hashtags,
	youtube_title, youtube_description, youtube_tags,
	linkedin_caption, created_at, updated_at`

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, status string) ([]*models.Post, error)
	GetNextDraft(ctx context.Context) (*models.Post, error)
	GetScheduledBefore(ctx context.Context, t time.Time) ([]*models.Post, error)
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*models.Post, error)
	GetUpcoming(ctx context.Context, limit int) ([]*models.Post, error)
	UpdateContent(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, status, postID string) error
	SetSchedule(ctx context.Context, postID string, scheduledAt sql.NullTime, status string) error
	SetPublished(ctx context.Context, postID, status string, publishedAt sql.NullTime) error
	SetMedia(ctx context.Context, postID, mediaURL, mediaType string) error
	ClaimForPublish(ctx context.Context, postID string) (bool, error)
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, topic, voice_notes, status, scheduled_at, media_url, media_type,
			instagram_caption, instagram_hashtags, facebook_caption,
			tiktok_caption, tiktok_hashtags,
			youtube_title, youtube_description, youtube_tags, linkedin_caption)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Topic, post.VoiceNotes, post.Status, post.ScheduledAt,
		post.MediaURL, post.MediaType,
		post.InstagramCaption, post.InstagramHashtags, post.FacebookCaption,
		post.TiktokCaption, post.TiktokHashtags,
		post.YoutubeTitle, post.YoutubeDescription, post.YoutubeTags,
		post.LinkedinCaption)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func scanPost(row interface{ Scan(dest ...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.Topic, &post.VoiceNotes, &post.Status,
		&post.ScheduledAt, &post.PublishedAt, &post.MediaURL, &post.MediaType,
		&post.InstagramCaption, &post.InstagramHashtags, &post.FacebookCaption,
		&post.TiktokCaption, &post.TiktokHashtags,
		&post.YoutubeTitle, &post.YoutubeDescription, &post.YoutubeTags,
		&post.LinkedinCaption, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) List(ctx context.Context, status string) ([]*models.Post, error) {
	if status != "" {
		query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY created_at DESC`
		return r.queryPosts(ctx, query, status)
	}
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	return r.queryPosts(ctx, query)
}

func (r *postRepository) GetNextDraft(ctx context.Context) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY created_at ASC LIMIT 1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, models.PostStatusDraft))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetScheduledBefore(ctx context.Context, t time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status = $1 AND scheduled_at <= $2
		ORDER BY scheduled_at ASC`
	return r.queryPosts(ctx, query, models.PostStatusScheduled, t)
}

func (r *postRepository) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE (scheduled_at >= $1 AND scheduled_at <= $2)
		   OR (scheduled_at IS NULL AND created_at >= $1 AND created_at <= $2)
		ORDER BY scheduled_at ASC NULLS LAST`
	return r.queryPosts(ctx, query, start, end)
}

func (r *postRepository) GetUpcoming(ctx context.Context, limit int) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status = $1 AND scheduled_at >= $2
		ORDER BY scheduled_at ASC LIMIT $3`
	return r.queryPosts(ctx, query, models.PostStatusScheduled, time.Now(), limit)
}

func (r *postRepository) UpdateContent(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET topic = $1,
			media_url = $2,
			media_type = $3,
			instagram_caption = $4,
			instagram_hashtags = $5,
			facebook_caption = $6,
			tiktok_caption = $7,
			tiktok_hashtags = $8,
			youtube_title = $9,
			youtube_description = $10,
			youtube_tags = $11,
			linkedin_caption = $12,
			updated_at = $13
		WHERE id = $14
	`
	_, err := r.db.ExecContext(ctx, query,
		post.Topic, post.MediaURL, post.MediaType,
		post.InstagramCaption, post.InstagramHashtags, post.FacebookCaption,
		post.TiktokCaption, post.TiktokHashtags,
		post.YoutubeTitle, post.YoutubeDescription, post.YoutubeTags,
		post.LinkedinCaption, time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status, postID string) error {
	query := `UPDATE posts SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetSchedule(ctx context.Context, postID string, scheduledAt sql.NullTime, status string) error {
	query := `UPDATE posts SET scheduled_at = $1, status = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, scheduledAt, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetPublished(ctx context.Context, postID, status string, publishedAt sql.NullTime) error {
	query := `UPDATE posts SET status = $1, published_at = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, status, publishedAt, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) SetMedia(ctx context.Context, postID, mediaURL, mediaType string) error {
	query := `UPDATE posts SET media_url = $1, media_type = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, mediaURL, mediaType, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ClaimForPublish moves a post from scheduled to publishing atomically so
// overlapping sweeps cannot dispatch the same post twice. Returns false
// when another worker already holds the claim or the post is not scheduled.
func (r *postRepository) ClaimForPublish(ctx context.Context, postID string) (bool, error) {
	query := `UPDATE posts SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, models.PostStatusPublishing, time.Now(), postID, models.PostStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
