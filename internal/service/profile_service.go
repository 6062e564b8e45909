package service

import (
	"context"
	"fmt"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type ProfileService interface {
	Get(ctx context.Context) (*models.BrandProfile, error)
	Update(ctx context.Context, upd *transfer.ProfileUpdate) (*models.BrandProfile, error)
}

type profileService struct {
	pf repository.ProfileRepository
}

func NewProfileService(pf repository.ProfileRepository) ProfileService {
	return &profileService{pf: pf}
}

func (s *profileService) Get(ctx context.Context) (*models.BrandProfile, error) {
	profile, err := s.pf.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return s.pf.CreateDefault(ctx)
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, upd *transfer.ProfileUpdate) (*models.BrandProfile, error) {
	if upd == nil {
		return nil, fmt.Errorf("%w: empty update", ErrValidation)
	}
	if upd.EmojiLevel != nil {
		switch *upd.EmojiLevel {
		case "none", "low", "medium":
		default:
			return nil, fmt.Errorf("%w: emoji_level must be none, low or medium", ErrValidation)
		}
	}

	profile, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(profile, upd)

	if err := s.pf.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return profile, nil
}

func applyProfileUpdate(p *models.BrandProfile, upd *transfer.ProfileUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.BusinessType != nil {
		p.BusinessType = *upd.BusinessType
	}
	if upd.Tone != nil {
		p.Tone = *upd.Tone
	}
	if upd.Language != nil {
		p.Language = *upd.Language
	}
	if upd.TargetAudience != nil {
		p.TargetAudience = *upd.TargetAudience
	}
	if upd.DefaultCta != nil {
		p.DefaultCta = *upd.DefaultCta
	}
	if upd.EmojiLevel != nil {
		p.EmojiLevel = *upd.EmojiLevel
	}
	if upd.MaxWordsInstagram != nil {
		p.MaxWordsInstagram = *upd.MaxWordsInstagram
	}
	if upd.MaxWordsFacebook != nil {
		p.MaxWordsFacebook = *upd.MaxWordsFacebook
	}
	if upd.MaxWordsTiktok != nil {
		p.MaxWordsTiktok = *upd.MaxWordsTiktok
	}
	if upd.MaxWordsLinkedin != nil {
		p.MaxWordsLinkedin = *upd.MaxWordsLinkedin
	}
	if upd.MaxWordsYoutube != nil {
		p.MaxWordsYoutube = *upd.MaxWordsYoutube
	}
	if upd.BrandedHashtags != nil {
		p.BrandedHashtags = *upd.BrandedHashtags
	}
}
