package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/hilit308-creator/autosocial/internal/models"
)

const versionColumns = `id, post_id, version_number, command,
	instagram_caption, instagram_hashtags, facebook_caption,
	tiktok_caption, tiktok_hashtags,
	youtube_title, youtube_description, youtube_tags,
	linkedin_caption, created_at`

type PostVersionRepository interface {
	Create(ctx context.Context, v *models.PostVersion) (int64, error)
	ListByPostID(ctx context.Context, postID string) ([]*models.PostVersion, error)
	GetByNumber(ctx context.Context, postID string, versionNumber int) (*models.PostVersion, error)
	CountByPostID(ctx context.Context, postID string) (int, error)
}

type postVersionRepository struct {
	db *sql.DB
}

func NewPostVersionRepository(db *sql.DB) PostVersionRepository {
	return &postVersionRepository{db: db}
}

func (r *postVersionRepository) Create(ctx context.Context, v *models.PostVersion) (int64, error) {
	query := `
		INSERT INTO post_versions (post_id, version_number, command,
			instagram_caption, instagram_hashtags, facebook_caption,
			tiktok_caption, tiktok_hashtags,
			youtube_title, youtube_description, youtube_tags, linkedin_caption)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		v.PostID, v.VersionNumber, v.Command,
		v.InstagramCaption, v.InstagramHashtags, v.FacebookCaption,
		v.TiktokCaption, v.TiktokHashtags,
		v.YoutubeTitle, v.YoutubeDescription, v.YoutubeTags,
		v.LinkedinCaption).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func scanVersion(row interface{ Scan(dest ...any) error }) (*models.PostVersion, error) {
	var v models.PostVersion
	err := row.Scan(&v.ID, &v.PostID, &v.VersionNumber, &v.Command,
		&v.InstagramCaption, &v.InstagramHashtags, &v.FacebookCaption,
		&v.TiktokCaption, &v.TiktokHashtags,
		&v.YoutubeTitle, &v.YoutubeDescription, &v.YoutubeTags,
		&v.LinkedinCaption, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *postVersionRepository) ListByPostID(ctx context.Context, postID string) ([]*models.PostVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM post_versions WHERE post_id = $1 ORDER BY version_number DESC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var versions []*models.PostVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (r *postVersionRepository) GetByNumber(ctx context.Context, postID string, versionNumber int) (*models.PostVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM post_versions WHERE post_id = $1 AND version_number = $2`
	v, err := scanVersion(r.db.QueryRowContext(ctx, query, postID, versionNumber))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return v, nil
}

func (r *postVersionRepository) CountByPostID(ctx context.Context, postID string) (int, error) {
	query := `SELECT COUNT(*) FROM post_versions WHERE post_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
