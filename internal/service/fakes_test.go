package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

type fakeTextModel struct {
	mu      sync.Mutex
	reply   func(system, prompt string) (string, error)
	prompts []string
}

func (m *fakeTextModel) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.reply(system, prompt)
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *post
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	copied.UpdatedAt = time.Now()
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) List(ctx context.Context, status string) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Post
	for _, p := range r.posts {
		if status == "" || p.Status == status {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) GetNextDraft(ctx context.Context) (*models.Post, error) {
	drafts, _ := r.List(ctx, models.PostStatusDraft)
	if len(drafts) == 0 {
		return nil, nil
	}
	return drafts[0], nil
}

func (r *fakePostRepo) GetScheduledBefore(ctx context.Context, t time.Time) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Post
	for _, p := range r.posts {
		if p.Status == models.PostStatusScheduled && p.ScheduledAt.Valid && !p.ScheduledAt.Time.After(t) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Time.Before(out[j].ScheduledAt.Time) })
	return out, nil
}

func (r *fakePostRepo) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Post
	for _, p := range r.posts {
		if p.ScheduledAt.Valid && !p.ScheduledAt.Time.Before(start) && p.ScheduledAt.Time.Before(end) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePostRepo) GetUpcoming(ctx context.Context, limit int) ([]*models.Post, error) {
	posts, _ := r.GetScheduledBefore(ctx, time.Now().AddDate(10, 0, 0))
	var out []*models.Post
	for _, p := range posts {
		if p.ScheduledAt.Time.After(time.Now()) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakePostRepo) UpdateContent(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.posts[post.ID]
	if !ok {
		return nil
	}
	copied := *post
	copied.Status = stored.Status
	copied.ScheduledAt = stored.ScheduledAt
	copied.PublishedAt = stored.PublishedAt
	copied.UpdatedAt = time.Now()
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) UpdateStatus(ctx context.Context, status, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok {
		p.Status = status
	}
	return nil
}

func (r *fakePostRepo) SetSchedule(ctx context.Context, postID string, scheduledAt sql.NullTime, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok {
		p.ScheduledAt = scheduledAt
		p.Status = status
	}
	return nil
}

func (r *fakePostRepo) SetPublished(ctx context.Context, postID, status string, publishedAt sql.NullTime) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok {
		p.Status = status
		p.PublishedAt = publishedAt
	}
	return nil
}

func (r *fakePostRepo) SetMedia(ctx context.Context, postID, mediaURL, mediaType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok {
		p.MediaURL = mediaURL
		p.MediaType = mediaType
	}
	return nil
}

func (r *fakePostRepo) ClaimForPublish(ctx context.Context, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok || p.Status != models.PostStatusScheduled {
		return false, nil
	}
	p.Status = models.PostStatusPublishing
	return true, nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

type fakeVersionRepo struct {
	mu       sync.Mutex
	versions map[string][]*models.PostVersion
	nextID   int64
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{versions: make(map[string][]*models.PostVersion)}
}

func (r *fakeVersionRepo) Create(ctx context.Context, v *models.PostVersion) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copied := *v
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.versions[v.PostID] = append(r.versions[v.PostID], &copied)
	return copied.ID, nil
}

func (r *fakeVersionRepo) ListByPostID(ctx context.Context, postID string) ([]*models.PostVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PostVersion, len(r.versions[postID]))
	for i, v := range r.versions[postID] {
		copied := *v
		out[len(out)-1-i] = &copied
	}
	return out, nil
}

func (r *fakeVersionRepo) GetByNumber(ctx context.Context, postID string, versionNumber int) (*models.PostVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.versions[postID] {
		if v.VersionNumber == versionNumber {
			copied := *v
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeVersionRepo) CountByPostID(ctx context.Context, postID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.versions[postID]), nil
}

type fakeProfileRepo struct {
	mu      sync.Mutex
	profile *models.BrandProfile
}

func (r *fakeProfileRepo) Get(ctx context.Context) (*models.BrandProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profile == nil {
		return nil, nil
	}
	copied := *r.profile
	return &copied, nil
}

func (r *fakeProfileRepo) CreateDefault(ctx context.Context) (*models.BrandProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = &models.BrandProfile{
		ID:                1,
		BusinessType:      "business consulting",
		Tone:              "professional and warm",
		Language:          "en",
		TargetAudience:    "small and medium business owners",
		DefaultCta:        "Contact us to learn more",
		EmojiLevel:        "low",
		MaxWordsInstagram: 100,
		MaxWordsFacebook:  120,
		MaxWordsTiktok:    60,
		MaxWordsLinkedin:  150,
		MaxWordsYoutube:   200,
	}
	copied := *r.profile
	return &copied, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, p *models.BrandProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *p
	r.profile = &copied
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*models.PublishHistory
}

func (r *fakeHistoryRepo) Create(ctx context.Context, h *models.PublishHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *h
	copied.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, &copied)
	return copied.ID, nil
}

func (r *fakeHistoryRepo) ListByPostID(ctx context.Context, postID string) ([]*models.PublishHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PublishHistory
	for _, e := range r.entries {
		if e.PostID == postID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*models.SocialAccount
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*models.SocialAccount)}
}

func (r *fakeAccountRepo) Upsert(ctx context.Context, acc *models.SocialAccount) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *acc
	if existing, ok := r.accounts[acc.Platform]; ok {
		copied.ID = existing.ID
	} else {
		r.nextID++
		copied.ID = r.nextID
	}
	r.accounts[acc.Platform] = &copied
	return copied.ID, nil
}

func (r *fakeAccountRepo) GetByPlatform(ctx context.Context, platform string) (*models.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[platform]
	if !ok {
		return nil, nil
	}
	copied := *acc
	return &copied, nil
}

func (r *fakeAccountRepo) List(ctx context.Context) ([]*models.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SocialAccount
	for _, acc := range r.accounts {
		copied := *acc
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAccountRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SocialAccount
	for _, acc := range r.accounts {
		if !acc.TokenExpiresAt.Before(from) && acc.TokenExpiresAt.Before(to) {
			copied := *acc
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) SetToken(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acc := range r.accounts {
		if acc.ID == id {
			acc.AccessToken = accessToken
			acc.RefreshToken = refreshToken
			acc.TokenExpiresAt = expiresAt
		}
	}
	return nil
}

func (r *fakeAccountRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for platform, acc := range r.accounts {
		if acc.ID == id {
			delete(r.accounts, platform)
		}
	}
	return nil
}

type fakeEnqueuer struct {
	mu       sync.Mutex
	err      error
	enqueued []struct {
		PostID string
		At     time.Time
	}
}

func (e *fakeEnqueuer) EnqueuePost(ctx context.Context, postID string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.enqueued = append(e.enqueued, struct {
		PostID string
		At     time.Time
	}{postID, at})
	return nil
}

type fakePublisher struct {
	platform string
	result   transfer.PublishResult
}

func (p *fakePublisher) Platform() string { return p.platform }

func (p *fakePublisher) Publish(ctx context.Context, post *models.Post) transfer.PublishResult {
	return p.result
}
