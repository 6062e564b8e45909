package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hilit308-creator/autosocial/internal/models"
)

type ProfileRepository interface {
	Get(ctx context.Context) (*models.BrandProfile, error)
	CreateDefault(ctx context.Context) (*models.BrandProfile, error)
	Update(ctx context.Context, p *models.BrandProfile) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, name, business_type, tone, language, target_audience,
	default_cta, emoji_level,
	max_words_instagram, max_words_facebook, max_words_tiktok,
	max_words_linkedin, max_words_youtube,
	branded_hashtags, created_at, updated_at`

func scanProfile(row interface{ Scan(dest ...any) error }) (*models.BrandProfile, error) {
	var p models.BrandProfile
	err := row.Scan(&p.ID, &p.Name, &p.BusinessType, &p.Tone, &p.Language,
		&p.TargetAudience, &p.DefaultCta, &p.EmojiLevel,
		&p.MaxWordsInstagram, &p.MaxWordsFacebook, &p.MaxWordsTiktok,
		&p.MaxWordsLinkedin, &p.MaxWordsYoutube,
		&p.BrandedHashtags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Get(ctx context.Context) (*models.BrandProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM brand_profiles ORDER BY id LIMIT 1`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) CreateDefault(ctx context.Context) (*models.BrandProfile, error) {
	query := `
		INSERT INTO brand_profiles (name, business_type, tone, language, target_audience,
			default_cta, emoji_level,
			max_words_instagram, max_words_facebook, max_words_tiktok,
			max_words_linkedin, max_words_youtube, branded_hashtags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRowContext(ctx, query,
		"", "business consulting", "professional and warm", "en",
		"small and medium business owners", "Contact us to learn more", "low",
		100, 120, 60, 150, 200, ""))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *models.BrandProfile) error {
	query := `
		UPDATE brand_profiles
		SET name = $1,
			business_type = $2,
			tone = $3,
			language = $4,
			target_audience = $5,
			default_cta = $6,
			emoji_level = $7,
			max_words_instagram = $8,
			max_words_facebook = $9,
			max_words_tiktok = $10,
			max_words_linkedin = $11,
			max_words_youtube = $12,
			branded_hashtags = $13,
			updated_at = $14
		WHERE id = $15
	`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.BusinessType, p.Tone, p.Language, p.TargetAudience,
		p.DefaultCta, p.EmojiLevel,
		p.MaxWordsInstagram, p.MaxWordsFacebook, p.MaxWordsTiktok,
		p.MaxWordsLinkedin, p.MaxWordsYoutube,
		p.BrandedHashtags, time.Now(), p.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
