package mocks

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/lib/pq"
)

// Store is the shared in-memory state behind the mock repositories. It
// enforces the same unique and foreign-key rules as the schema and returns
// the repository package's error types.
type Store struct {
	mu          sync.Mutex
	Users       map[string]*models.User
	Categories  map[string]*models.Category
	Tags        map[string]*models.Tag
	Articles    map[string]*models.Article
	ArticleTags map[string][]string
	Likes       map[string]*models.ArticleLike
	Ratings     []*models.Rating
	Settings    *models.Settings
}

// NewStore creates an empty store with the default settings row
func NewStore() *Store {
	return &Store{
		Users:       make(map[string]*models.User),
		Categories:  make(map[string]*models.Category),
		Tags:        make(map[string]*models.Tag),
		Articles:    make(map[string]*models.Article),
		ArticleTags: make(map[string][]string),
		Likes:       make(map[string]*models.ArticleLike),
		Settings: &models.Settings{
			ID:          models.SettingsID,
			CompanyName: "Inkwell",
			UpdatedAt:   time.Now().UTC(),
		},
	}
}

// Repositories bundles mock repositories over one Store
type Repositories struct {
	Store    *Store
	User     *MockUserRepository
	Category *MockCategoryRepository
	Tag      *MockTagRepository
	Article  *MockArticleRepository
	Like     *MockLikeRepository
	Rating   *MockRatingRepository
	Settings *MockSettingsRepository
}

// NewRepositories creates all mock repositories over a fresh Store
func NewRepositories() *Repositories {
	store := NewStore()
	return &Repositories{
		Store:    store,
		User:     &MockUserRepository{store: store},
		Category: &MockCategoryRepository{store: store},
		Tag:      &MockTagRepository{store: store},
		Article:  &MockArticleRepository{store: store},
		Like:     &MockLikeRepository{store: store},
		Rating:   &MockRatingRepository{store: store},
		Settings: &MockSettingsRepository{store: store},
	}
}

// Interfaces returns the mocks as a repository.Repositories
func (r *Repositories) Interfaces() *repository.Repositories {
	return &repository.Repositories{
		User:     r.User,
		Category: r.Category,
		Tag:      r.Tag,
		Article:  r.Article,
		Like:     r.Like,
		Rating:   r.Rating,
		Settings: r.Settings,
	}
}

var (
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ repository.CategoryRepository = (*MockCategoryRepository)(nil)
	_ repository.TagRepository      = (*MockTagRepository)(nil)
	_ repository.ArticleRepository  = (*MockArticleRepository)(nil)
	_ repository.LikeRepository     = (*MockLikeRepository)(nil)
	_ repository.RatingRepository   = (*MockRatingRepository)(nil)
	_ repository.SettingsRepository = (*MockSettingsRepository)(nil)
)

// violation builds the error a real constraint failure produces
func violation(kind error, constraint string) error {
	code := pq.ErrorCode("23505")
	if kind == repository.ErrForeignKeyViolation {
		code = "23503"
	}
	return &repository.ConstraintError{
		Kind:       kind,
		Constraint: constraint,
		Err:        &pq.Error{Code: code, Constraint: constraint},
	}
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store       *Store
	InsertError error
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, u := range m.store.Users {
		if strings.EqualFold(u.Email, user.Email) {
			return violation(repository.ErrUniqueViolation, "users_email_key")
		}
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	m.store.Users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if u, ok := m.store.Users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, u := range m.store.Users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	users := make([]*models.User, 0, len(m.store.Users))
	for _, u := range m.store.Users {
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (m *MockUserRepository) ListAuthors(ctx context.Context) ([]models.Author, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	authors := make([]models.Author, 0, len(m.store.Users))
	for _, u := range m.store.Users {
		authors = append(authors, models.Author{ID: u.ID, FullName: u.FullName})
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].FullName < authors[j].FullName })
	return authors, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.Users[id]; !ok {
		return false, nil
	}
	delete(m.store.Users, id)
	for articleID, a := range m.store.Articles {
		if a.AuthorID == id {
			m.store.deleteArticle(articleID)
		}
	}
	return true, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Users), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	store       *Store
	InsertError error
	StreamError error
}

func (m *MockCategoryRepository) conflicts(c *models.Category) bool {
	for _, existing := range m.store.Categories {
		if existing.ID != c.ID && (existing.Name == c.Name || existing.Slug == c.Slug) {
			return true
		}
	}
	return false
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.conflicts(category) {
		return violation(repository.ErrUniqueViolation, "categories_name_key")
	}
	category.CreatedAt = time.Now().UTC()
	stored := *category
	m.store.Categories[category.ID] = &stored
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.Categories[category.ID]; !ok {
		return false, nil
	}
	if m.conflicts(category) {
		return false, violation(repository.ErrUniqueViolation, "categories_name_key")
	}
	stored := *category
	m.store.Categories[category.ID] = &stored
	return true, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.Categories[id]; !ok {
		return false, nil
	}
	for _, a := range m.store.Articles {
		if a.CategoryID == id {
			return false, violation(repository.ErrForeignKeyViolation, "articles_category_id_fkey")
		}
	}
	delete(m.store.Categories, id)
	return true, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if c, ok := m.store.Categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, c := range m.store.Categories {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) sorted() []*models.Category {
	categories := make([]*models.Category, 0, len(m.store.Categories))
	for _, c := range m.store.Categories {
		copied := *c
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.sorted(), nil
}

func (m *MockCategoryRepository) ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var out []*models.CategoryWithCount
	for _, c := range m.sorted() {
		entry := &models.CategoryWithCount{Category: *c}
		for _, a := range m.store.Articles {
			if a.CategoryID == c.ID && a.IsPublished() {
				entry.ArticleCount++
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.Categories), nil
}

func (m *MockCategoryRepository) StreamAll(ctx context.Context, callback func(*models.Category) error) error {
	m.store.mu.Lock()
	categories := m.sorted()
	m.store.mu.Unlock()
	for _, c := range categories {
		if err := callback(c); err != nil {
			return err
		}
		if m.StreamError != nil {
			return m.StreamError
		}
	}
	return m.StreamError
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	store *Store
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, t := range m.store.Tags {
		if t.Name == tag.Name {
			return violation(repository.ErrUniqueViolation, "tags_name_key")
		}
	}
	tag.CreatedAt = time.Now().UTC()
	stored := *tag
	m.store.Tags[tag.ID] = &stored
	return nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *models.Tag) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	existing, ok := m.store.Tags[tag.ID]
	if !ok {
		return false, nil
	}
	for _, t := range m.store.Tags {
		if t.ID != tag.ID && t.Name == tag.Name {
			return false, violation(repository.ErrUniqueViolation, "tags_name_key")
		}
	}
	existing.Name = tag.Name
	return true, nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.Tags[id]; !ok {
		return false, nil
	}
	delete(m.store.Tags, id)
	for articleID, tagIDs := range m.store.ArticleTags {
		kept := tagIDs[:0]
		for _, t := range tagIDs {
			if t != id {
				kept = append(kept, t)
			}
		}
		m.store.ArticleTags[articleID] = kept
	}
	return true, nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if t, ok := m.store.Tags[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (m *MockTagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	tags := make([]*models.Tag, 0, len(m.store.Tags))
	for _, t := range m.store.Tags {
		copied := *t
		tags = append(tags, &copied)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (m *MockTagRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var found []string
	for _, id := range ids {
		if _, ok := m.store.Tags[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	store *Store

	// InsertError, when set, is returned by Create instead of storing
	InsertError error
	// StreamError, when set, is returned by StreamAll after the first row
	StreamError error
}

func (m *MockArticleRepository) SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var slugs []string
	for _, a := range m.store.Articles {
		if strings.HasPrefix(a.Slug, prefix) {
			slugs = append(slugs, a.Slug)
		}
	}
	return slugs, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article, tagIDs []string) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, a := range m.store.Articles {
		if a.Slug == article.Slug {
			return violation(repository.ErrUniqueViolation, "articles_slug_key")
		}
	}
	if _, ok := m.store.Categories[article.CategoryID]; !ok {
		return violation(repository.ErrForeignKeyViolation, "articles_category_id_fkey")
	}

	now := time.Now().UTC()
	article.CreatedAt, article.UpdatedAt = now, now
	stored := *article
	m.store.Articles[article.ID] = &stored
	m.store.ArticleTags[article.ID] = append([]string(nil), tagIDs...)
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article, tagIDs []string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	stored, ok := m.store.Articles[article.ID]
	if !ok {
		return false, nil
	}
	stored.Title = article.Title
	stored.Body = article.Body
	stored.Excerpt = article.Excerpt
	stored.CategoryID = article.CategoryID
	stored.Status = article.Status
	if stored.PublishedAt == nil && article.PublishedAt != nil {
		t := *article.PublishedAt
		stored.PublishedAt = &t
	}
	stored.UpdatedAt = time.Now().UTC()
	m.store.ArticleTags[article.ID] = append([]string(nil), tagIDs...)

	article.PublishedAt = stored.PublishedAt
	article.UpdatedAt = stored.UpdatedAt
	return true, nil
}

func (m *MockArticleRepository) SetStatus(ctx context.Context, id, status string, at time.Time) (*models.Article, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	stored, ok := m.store.Articles[id]
	if !ok {
		return nil, nil
	}
	stored.Status = status
	if status == models.StatusPublished && stored.PublishedAt == nil {
		t := at
		stored.PublishedAt = &t
	}
	stored.UpdatedAt = at
	copied := *stored
	return &copied, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.Articles[id]; !ok {
		return false, nil
	}
	m.store.deleteArticle(id)
	return true, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.ArticleDetails, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	a, ok := m.store.Articles[id]
	if !ok {
		return nil, nil
	}
	return m.store.details(a), nil
}

func (m *MockArticleRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.ArticleDetails, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, a := range m.store.Articles {
		if a.Slug == slug && a.IsPublished() {
			return m.store.details(a), nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) IsPublished(ctx context.Context, id string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	a, ok := m.store.Articles[id]
	return ok && a.IsPublished(), nil
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.ArticleDetails, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	out := []*models.ArticleDetails{}
	for _, a := range m.store.Articles {
		if a.AuthorID == authorID {
			out = append(out, m.store.details(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]*models.ArticleDetails, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	search := strings.ToLower(filter.Search)
	out := []*models.ArticleDetails{}
	for _, a := range m.store.Articles {
		switch {
		case !a.IsPublished():
		case filter.CategoryID != "" && a.CategoryID != filter.CategoryID:
		case filter.AuthorID != "" && a.AuthorID != filter.AuthorID:
		case filter.ExcludeID != "" && a.ID == filter.ExcludeID:
		case search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Body), search):
		default:
			out = append(out, m.store.details(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	if filter.Limit > 0 && uint64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MockArticleRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	count := 0
	for _, a := range m.store.Articles {
		if status == "" || a.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.ArticleDetails) error) error {
	m.store.mu.Lock()
	all := make([]*models.ArticleDetails, 0, len(m.store.Articles))
	for _, a := range m.store.Articles {
		all = append(all, m.store.details(a))
	}
	m.store.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	for _, d := range all {
		if err := callback(d); err != nil {
			return err
		}
		if m.StreamError != nil {
			return m.StreamError
		}
	}
	return m.StreamError
}

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	store *Store

	// ToggleError, when set, is returned by Toggle to simulate a lost race
	ToggleError error
}

func likeKey(articleID, fingerprint string) string {
	return articleID + "\x00" + fingerprint
}

func (m *MockLikeRepository) Toggle(ctx context.Context, like *models.ArticleLike) (bool, error) {
	if m.ToggleError != nil {
		return false, m.ToggleError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	key := likeKey(like.ArticleID, like.Fingerprint)
	if _, ok := m.store.Likes[key]; ok {
		delete(m.store.Likes, key)
		return false, nil
	}
	like.CreatedAt = time.Now().UTC()
	stored := *like
	m.store.Likes[key] = &stored
	return true, nil
}

func (m *MockLikeRepository) Exists(ctx context.Context, articleID, fingerprint string) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	_, ok := m.store.Likes[likeKey(articleID, fingerprint)]
	return ok, nil
}

func (m *MockLikeRepository) Count(ctx context.Context, articleID string) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.store.likeCount(articleID), nil
}

// MockRatingRepository is a mock implementation of RatingRepository
type MockRatingRepository struct {
	store *Store
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.Articles[rating.ArticleID]; !ok {
		return violation(repository.ErrForeignKeyViolation, "ratings_article_id_fkey")
	}
	rating.CreatedAt = time.Now().UTC()
	stored := *rating
	m.store.Ratings = append(m.store.Ratings, &stored)
	return nil
}

func (m *MockRatingRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.Rating, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	out := []*models.Rating{}
	for i := len(m.store.Ratings) - 1; i >= 0; i-- {
		if r := m.store.Ratings[i]; r.ArticleID == articleID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockRatingRepository) Summary(ctx context.Context, articleID string) (float64, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	avg, count := m.store.ratingSummary(articleID)
	return avg, count, nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	store *Store
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Settings == nil {
		return nil, nil
	}
	copied := *m.store.Settings
	return &copied, nil
}

func (m *MockSettingsRepository) Update(ctx context.Context, update *models.SettingsUpdate) (*models.Settings, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.Settings == nil {
		return nil, nil
	}
	s := m.store.Settings
	if update.LogoURL != nil {
		s.LogoURL = *update.LogoURL
	}
	if update.CompanyName != nil {
		s.CompanyName = *update.CompanyName
	}
	if update.CompanyWebsite != nil {
		s.CompanyWebsite = *update.CompanyWebsite
	}
	if update.ContactEmail != nil {
		s.ContactEmail = *update.ContactEmail
	}
	s.UpdatedAt = time.Now().UTC()
	copied := *s
	return &copied, nil
}

// deleteArticle removes an article and everything that cascades from it.
// Callers hold mu.
func (s *Store) deleteArticle(id string) {
	delete(s.Articles, id)
	delete(s.ArticleTags, id)
	for key, like := range s.Likes {
		if like.ArticleID == id {
			delete(s.Likes, key)
		}
	}
	kept := s.Ratings[:0]
	for _, r := range s.Ratings {
		if r.ArticleID != id {
			kept = append(kept, r)
		}
	}
	s.Ratings = kept
}

func (s *Store) likeCount(articleID string) int {
	count := 0
	for _, like := range s.Likes {
		if like.ArticleID == articleID {
			count++
		}
	}
	return count
}

func (s *Store) ratingSummary(articleID string) (float64, int) {
	sum, count := 0, 0
	for _, r := range s.Ratings {
		if r.ArticleID == articleID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

// details builds the read model the SQL repository selects. Callers hold mu.
func (s *Store) details(a *models.Article) *models.ArticleDetails {
	d := &models.ArticleDetails{Article: *a, TagIDs: []string{}, TagNames: []string{}}
	if c, ok := s.Categories[a.CategoryID]; ok {
		d.CategoryName, d.CategorySlug = c.Name, c.Slug
	}
	if u, ok := s.Users[a.AuthorID]; ok {
		d.AuthorName = u.FullName
	}

	var tags []*models.Tag
	for _, id := range s.ArticleTags[a.ID] {
		if t, ok := s.Tags[id]; ok {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	for _, t := range tags {
		d.TagIDs = append(d.TagIDs, t.ID)
		d.TagNames = append(d.TagNames, t.Name)
	}

	d.LikeCount = s.likeCount(a.ID)
	avg, count := s.ratingSummary(a.ID)
	d.AverageRating = math.Round(avg*10) / 10
	d.RatingCount = count
	return d
}
