package service_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-api/internal/auth"
	"github.com/inkwell-api/internal/config"
	"github.com/inkwell-api/internal/mocks"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
)

type fixture struct {
	svcs     *service.Services
	repos    *mocks.Repositories
	author   *models.User
	admin    *models.User
	category *models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	repos := mocks.NewRepositories()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			Issuer:     "inkwell-test",
			BcryptCost: 4,
		},
	}
	f := &fixture{
		svcs:  service.NewServices(repos.Interfaces(), cfg, zerolog.Nop()),
		repos: repos,
	}

	f.author = &models.User{ID: uuid.NewString(), Email: "ada@example.com", FullName: "Ada", Role: models.RoleAuthor}
	f.admin = &models.User{ID: uuid.NewString(), Email: "root@example.com", FullName: "Root", Role: models.RoleAdmin}
	for _, u := range []*models.User{f.author, f.admin} {
		if err := repos.User.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	category, err := f.svcs.Category.Create(ctx, f.admin, &models.CategoryInput{Name: "Engineering"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	f.category = category
	return f
}

func (f *fixture) article(t *testing.T, title, status string) *models.ArticleDetails {
	t.Helper()
	a, err := f.svcs.Article.Create(context.Background(), f.author, &models.ArticleInput{
		Title:      title,
		Body:       "<p>Some body about " + title + "</p>",
		CategoryID: f.category.ID,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("create article %q: %v", title, err)
	}
	return a
}

func expectValidation(t *testing.T, err error, message string) {
	t.Helper()
	var ve *service.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if message != "" && ve.Message != message {
		t.Errorf("Expected message %q, got %q", message, ve.Message)
	}
}

func TestArticleService_SlugCollisions(t *testing.T) {
	f := newFixture(t)

	want := []string{"x", "x-1", "x-2", "x-3"}
	for i, expected := range want {
		a := f.article(t, "X", models.StatusDraft)
		if a.Slug != expected {
			t.Errorf("article %d: expected slug %s, got %s", i, expected, a.Slug)
		}
	}
}

func TestArticleService_SlugFromTitle(t *testing.T) {
	f := newFixture(t)

	a := f.article(t, "  Hello, World! Ünïcode  ", models.StatusDraft)
	if a.Slug != "hello-world-n-code" {
		t.Errorf("Unexpected slug %s", a.Slug)
	}
	if a.Title != "Hello, World! Ünïcode" {
		t.Errorf("Title should be trimmed, got %q", a.Title)
	}
}

func TestArticleService_MaxLengthTitleCollision(t *testing.T) {
	f := newFixture(t)
	title := strings.Repeat("a", 500)

	first := f.article(t, title, models.StatusDraft)
	second := f.article(t, title, models.StatusDraft)

	if second.Slug != first.Slug+"-1" {
		t.Errorf("Expected %s-1, got %s", first.Slug, second.Slug)
	}
	for _, a := range []*models.ArticleDetails{first, second} {
		if len(a.Slug) > 500 {
			t.Errorf("Slug of length %d does not fit the slug column", len(a.Slug))
		}
	}
}

func TestArticleService_SlugRaceSurfacesConflict(t *testing.T) {
	f := newFixture(t)
	f.repos.Article.InsertError = &repository.ConstraintError{
		Kind:       repository.ErrUniqueViolation,
		Constraint: "articles_slug_key",
		Err:        errors.New("duplicate key value violates unique constraint"),
	}

	_, err := f.svcs.Article.Create(context.Background(), f.author, &models.ArticleInput{
		Title: "Race", Body: "<p>b</p>", CategoryID: f.category.ID,
	})
	if !errors.Is(err, service.ErrSlugTaken) {
		t.Errorf("Expected ErrSlugTaken, got %v", err)
	}
	if !errors.Is(err, service.ErrConflict) {
		t.Errorf("ErrSlugTaken should be a conflict, got %v", err)
	}
}

func TestArticleService_PublishedAtSetOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.article(t, "Launch", models.StatusPublished)
	if a.PublishedAt == nil {
		t.Fatal("Published article should have published_at")
	}
	first := *a.PublishedAt

	time.Sleep(2 * time.Millisecond)
	updated, err := f.svcs.Article.Update(ctx, f.author, a.ID, &models.ArticleInput{
		Title: "Launch v2", Body: "<p>new</p>", CategoryID: f.category.ID, Status: models.StatusPublished,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.PublishedAt.Equal(first) {
		t.Errorf("Re-saving changed published_at from %v to %v", first, updated.PublishedAt)
	}
	if updated.Slug != a.Slug {
		t.Errorf("Slug should be stable on update, got %s", updated.Slug)
	}

	if _, err := f.svcs.Article.SetPublished(ctx, f.author, a.ID, false); err != nil {
		t.Fatalf("Unpublish failed: %v", err)
	}
	republished, err := f.svcs.Article.SetPublished(ctx, f.author, a.ID, true)
	if err != nil {
		t.Fatalf("Republish failed: %v", err)
	}
	if !republished.PublishedAt.Equal(first) {
		t.Errorf("Republish changed published_at from %v to %v", first, republished.PublishedAt)
	}
}

func TestArticleService_DraftHasNoPublishedAt(t *testing.T) {
	f := newFixture(t)

	a := f.article(t, "Draft", "")
	if a.Status != models.StatusDraft {
		t.Errorf("Expected default status draft, got %s", a.Status)
	}
	if a.PublishedAt != nil {
		t.Errorf("Draft should not have published_at, got %v", a.PublishedAt)
	}

	published, err := f.svcs.Article.SetPublished(context.Background(), f.author, a.ID, true)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if published.PublishedAt == nil {
		t.Error("Publishing should set published_at")
	}
}

func TestArticleService_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   *models.ArticleInput
		message string
	}{
		{
			name:    "missing everything",
			input:   &models.ArticleInput{},
			message: "Title, content, and category are required",
		},
		{
			name:    "body is only markup",
			input:   &models.ArticleInput{Title: "t", Body: "<p></p><script>x</script>", CategoryID: f.category.ID},
			message: "Title, content, and category are required",
		},
		{
			name:    "unknown category",
			input:   &models.ArticleInput{Title: "t", Body: "b", CategoryID: uuid.NewString()},
			message: "Category does not exist",
		},
		{
			name:    "unknown tag",
			input:   &models.ArticleInput{Title: "t", Body: "b", CategoryID: f.category.ID, TagIDs: []string{uuid.NewString()}},
			message: "One or more tags do not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svcs.Article.Create(ctx, f.author, tt.input)
			expectValidation(t, err, tt.message)
		})
	}
}

func TestArticleService_SanitisesBodyAndDerivesExcerpt(t *testing.T) {
	f := newFixture(t)

	a, err := f.svcs.Article.Create(context.Background(), f.author, &models.ArticleInput{
		Title:      "Safe",
		Body:       `<p onclick="steal()">Hello</p><script>alert(1)</script><p>World</p>`,
		CategoryID: f.category.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if strings.Contains(a.Body, "script") || strings.Contains(a.Body, "onclick") {
		t.Errorf("Body not sanitised: %s", a.Body)
	}
	if a.Excerpt != "Hello World" {
		t.Errorf("Unexpected excerpt %q", a.Excerpt)
	}
}

func TestArticleService_Tags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	goTag, err := f.svcs.Tag.Create(ctx, f.admin, &models.TagInput{Name: "go"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	apiTag, err := f.svcs.Tag.Create(ctx, f.admin, &models.TagInput{Name: "api"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	a, err := f.svcs.Article.Create(ctx, f.author, &models.ArticleInput{
		Title:      "Tagged",
		Body:       "<p>b</p>",
		CategoryID: f.category.ID,
		TagIDs:     []string{goTag.ID, apiTag.ID, goTag.ID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if fmt.Sprint(a.TagNames) != "[api go]" {
		t.Errorf("Expected tags [api go], got %v", a.TagNames)
	}

	if err := f.svcs.Tag.Delete(ctx, goTag.ID); err != nil {
		t.Fatalf("Delete tag failed: %v", err)
	}
	reloaded, _ := f.svcs.Article.Get(ctx, f.author, a.ID)
	if fmt.Sprint(reloaded.TagNames) != "[api]" {
		t.Errorf("Deleting a tag should unlink it, got %v", reloaded.TagNames)
	}
}

func TestArticleService_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.article(t, "Mine", models.StatusDraft)

	stranger := &models.User{ID: uuid.NewString(), Role: models.RoleAuthor}
	if _, err := f.svcs.Article.Get(ctx, stranger, a.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for another author, got %v", err)
	}
	if err := f.svcs.Article.Delete(ctx, stranger, a.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden on delete, got %v", err)
	}
	if _, err := f.svcs.Article.Get(ctx, nil, a.ID); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := f.svcs.Article.Get(ctx, f.admin, a.ID); err != nil {
		t.Errorf("Admin should see any article, got %v", err)
	}
	if _, err := f.svcs.Article.Get(ctx, f.author, "not-a-uuid"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for malformed id, got %v", err)
	}

	if err := f.svcs.Article.Delete(ctx, f.admin, a.ID); err != nil {
		t.Fatalf("Admin delete failed: %v", err)
	}
	if _, err := f.svcs.Article.Get(ctx, f.author, a.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestArticleService_PublicReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.article(t, "Hidden draft", models.StatusDraft)
	var published []*models.ArticleDetails
	for i := 0; i < 5; i++ {
		published = append(published, f.article(t, fmt.Sprintf("Golang note %d", i), models.StatusPublished))
		time.Sleep(time.Millisecond)
	}

	if _, err := f.svcs.Article.GetPublished(ctx, draft.Slug); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Drafts must not be readable publicly, got %v", err)
	}

	got, err := f.svcs.Article.GetPublished(ctx, published[0].Slug)
	if err != nil || got.ID != published[0].ID {
		t.Fatalf("GetPublished failed: %v", err)
	}

	list, err := f.svcs.Article.ListPublished(ctx, f.category.Slug, "")
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(list) != 5 {
		t.Errorf("Expected 5 published, got %d", len(list))
	}
	if list[0].ID != published[4].ID {
		t.Errorf("Expected newest first")
	}

	if _, err := f.svcs.Article.ListPublished(ctx, "no-such-category", ""); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown category, got %v", err)
	}

	byAuthor, _ := f.svcs.Article.ListPublished(ctx, "", f.admin.ID)
	if len(byAuthor) != 0 {
		t.Errorf("Admin wrote nothing, got %d", len(byAuthor))
	}

	related, err := f.svcs.Article.Related(ctx, published[0].Slug)
	if err != nil {
		t.Fatalf("Related failed: %v", err)
	}
	if len(related) != models.RelatedArticlesLimit {
		t.Errorf("Expected %d related, got %d", models.RelatedArticlesLimit, len(related))
	}
	for _, r := range related {
		if r.ID == published[0].ID {
			t.Error("Related must exclude the article itself")
		}
	}
}

func TestArticleService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.article(t, "Golang concurrency", models.StatusPublished)
	f.article(t, "Golang drafts", models.StatusDraft)
	f.article(t, "Cooking", models.StatusPublished)

	for _, q := range []string{"", "   ", "\t\n"} {
		results, err := f.svcs.Article.Search(ctx, q)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", q, err)
		}
		if len(results) != 0 {
			t.Errorf("Search(%q) should return nothing, got %d", q, len(results))
		}
	}

	results, err := f.svcs.Article.Search(ctx, "  golang ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Golang concurrency" {
		t.Errorf("Expected only the published golang article, got %d results", len(results))
	}
}

func TestArticleService_ListMine(t *testing.T) {
	f := newFixture(t)

	f.article(t, "One", models.StatusDraft)
	f.article(t, "Two", models.StatusPublished)

	mine, err := f.svcs.Article.ListMine(context.Background(), f.author)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("Expected 2 articles, got %d", len(mine))
	}
	if mine[0].CategoryName != "Engineering" {
		t.Errorf("Expected category name to be joined, got %q", mine[0].CategoryName)
	}
}

func TestLikeService_ToggleTwiceRestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.article(t, "Likeable", models.StatusPublished)

	before, err := f.svcs.Like.Info(ctx, a.ID, "fp-1")
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}

	first, err := f.svcs.Like.Toggle(ctx, a.ID, "fp-1")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !first.Liked || first.Count != before.Count+1 {
		t.Errorf("Expected liked with count %d, got %+v", before.Count+1, first)
	}

	if _, err := f.svcs.Like.Toggle(ctx, a.ID, "fp-2"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	second, err := f.svcs.Like.Toggle(ctx, a.ID, "fp-1")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if second.Liked != before.Liked {
		t.Errorf("Double toggle should restore liked=%v", before.Liked)
	}
	if second.Count != before.Count+1 {
		t.Errorf("Expected only fp-2's like to remain, got count %d", second.Count)
	}

	info, _ := f.svcs.Like.Info(ctx, a.ID, "fp-2")
	if !info.Liked || info.Count != 1 {
		t.Errorf("Unexpected info for fp-2: %+v", info)
	}
	anonymous, _ := f.svcs.Like.Info(ctx, a.ID, "")
	if anonymous.Liked {
		t.Error("Empty fingerprint should never be liked")
	}
}

func TestLikeService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.article(t, "Draft", models.StatusDraft)
	published := f.article(t, "Live", models.StatusPublished)

	_, err := f.svcs.Like.Toggle(ctx, published.ID, "  ")
	expectValidation(t, err, "No fingerprint provided")

	if _, err := f.svcs.Like.Toggle(ctx, draft.ID, "fp"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for draft, got %v", err)
	}
	if _, err := f.svcs.Like.Toggle(ctx, "garbage", "fp"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for malformed id, got %v", err)
	}

	f.repos.Like.ToggleError = &repository.ConstraintError{
		Kind:       repository.ErrUniqueViolation,
		Constraint: "article_likes_article_fingerprint_key",
		Err:        errors.New("duplicate"),
	}
	if _, err := f.svcs.Like.Toggle(ctx, published.ID, "fp"); !errors.Is(err, service.ErrConflict) {
		t.Errorf("Expected ErrConflict on concurrent insert, got %v", err)
	}
}

func TestRatingService_Summary(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		avg     float64
		count   int
	}{
		{name: "no ratings", ratings: nil, avg: 0, count: 0},
		{name: "5 3 4", ratings: []int{5, 3, 4}, avg: 4.0, count: 3},
		{name: "5 4", ratings: []int{5, 4}, avg: 4.5, count: 2},
		{name: "5 5 4", ratings: []int{5, 5, 4}, avg: 4.7, count: 3},
		{name: "1 2 2", ratings: []int{1, 2, 2}, avg: 1.7, count: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			a := f.article(t, "Rated", models.StatusPublished)

			for _, r := range tt.ratings {
				if _, err := f.svcs.Rating.Rate(ctx, a.ID, &models.RatingInput{Rating: r}); err != nil {
					t.Fatalf("Rate(%d) failed: %v", r, err)
				}
			}

			summary, err := f.svcs.Rating.Summary(ctx, a.ID)
			if err != nil {
				t.Fatalf("Summary failed: %v", err)
			}
			if summary.AverageRating != tt.avg || summary.RatingCount != tt.count {
				t.Errorf("Expected %.1f/%d, got %v/%d", tt.avg, tt.count, summary.AverageRating, summary.RatingCount)
			}

			details, _ := f.svcs.Article.GetPublished(ctx, a.Slug)
			if details.AverageRating != tt.avg || details.RatingCount != tt.count {
				t.Errorf("Read model disagrees with summary: %v/%d", details.AverageRating, details.RatingCount)
			}
		})
	}
}

func TestRatingService_Rate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.article(t, "Rated", models.StatusPublished)

	for _, bad := range []int{0, 6, -3} {
		_, err := f.svcs.Rating.Rate(ctx, a.ID, &models.RatingInput{Rating: bad})
		expectValidation(t, err, "Rating must be between 1 and 5")
	}

	rating, err := f.svcs.Rating.Rate(ctx, a.ID, &models.RatingInput{
		Rating: 5, Feedback: "  great prompt ", UserName: "Grace", UserEmail: "grace@example.com",
	})
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if rating.Feedback != "great prompt" {
		t.Errorf("Feedback should be trimmed, got %q", rating.Feedback)
	}

	list, err := f.svcs.Rating.List(ctx, a.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected 1 rating, got %d (%v)", len(list), err)
	}

	draft := f.article(t, "Draft", models.StatusDraft)
	if _, err := f.svcs.Rating.Rate(ctx, draft.ID, &models.RatingInput{Rating: 3}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for draft, got %v", err)
	}
}

func TestCategoryService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.svcs.Category.Create(ctx, f.admin, &models.CategoryInput{Name: "Empty"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := f.svcs.Category.Delete(ctx, empty.ID); err != nil {
		t.Errorf("Deleting an unused category should succeed, got %v", err)
	}

	f.article(t, "Pinned", models.StatusDraft)
	err = f.svcs.Category.Delete(ctx, f.category.ID)
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}
	if err.Error() != "Cannot delete category with articles" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	if err := f.svcs.Category.Delete(ctx, uuid.NewString()); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCategoryService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Category.Create(ctx, f.admin, &models.CategoryInput{Name: "  "})
	expectValidation(t, err, "Category name is required")

	_, err = f.svcs.Category.Create(ctx, f.admin, &models.CategoryInput{Name: "Engineering"})
	if !errors.Is(err, service.ErrConflict) || err.Error() != "Category already exists" {
		t.Errorf("Expected duplicate conflict, got %v", err)
	}

	c, err := f.svcs.Category.Create(ctx, f.admin, &models.CategoryInput{Name: "Data Science", Description: "  "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Slug != "data-science" || c.Description != nil {
		t.Errorf("Unexpected category %+v", c)
	}

	updated, err := f.svcs.Category.Update(ctx, c.ID, &models.CategoryInput{Name: "ML & AI", Description: "models"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "ml-ai" || updated.Description == nil || *updated.Description != "models" {
		t.Errorf("Unexpected update result %+v", updated)
	}

	bySlug, err := f.svcs.Category.GetBySlug(ctx, "ml-ai")
	if err != nil || bySlug.ID != c.ID {
		t.Errorf("GetBySlug failed: %v", err)
	}

	f.article(t, "Counted", models.StatusPublished)
	f.article(t, "Not counted", models.StatusDraft)
	counts, _ := f.svcs.Category.ListWithCounts(ctx)
	for _, entry := range counts {
		if entry.ID == f.category.ID && entry.ArticleCount != 1 {
			t.Errorf("Expected 1 published article, got %d", entry.ArticleCount)
		}
	}
}

func TestAuthService_RegisterLoginAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svcs.Auth.Register(ctx, &models.UserInput{
		Email: " Grace@Example.com ", Password: "correct-horse", FullName: "Grace", Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleAuthor {
		t.Errorf("Registration must force author role, got %s", user.Role)
	}
	if user.Email != "grace@example.com" {
		t.Errorf("Email should be normalised, got %s", user.Email)
	}

	_, err = f.svcs.Auth.Register(ctx, &models.UserInput{Email: "grace@example.com", Password: "another-pass", FullName: "G"})
	if !errors.Is(err, service.ErrConflict) {
		t.Errorf("Expected duplicate email conflict, got %v", err)
	}

	_, err = f.svcs.Auth.Login(ctx, &models.Credentials{Email: "grace@example.com", Password: "wrong-password"})
	if !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}

	token, err := f.svcs.Auth.Login(ctx, &models.Credentials{Email: "GRACE@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token.TokenType != "Bearer" || token.AccessToken == "" {
		t.Errorf("Unexpected token response %+v", token)
	}

	current, err := f.svcs.Auth.Authenticate(ctx, token.AccessToken)
	if err != nil || current.ID != user.ID {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if err := f.svcs.User.Delete(ctx, f.admin, user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := f.svcs.Auth.Authenticate(ctx, token.AccessToken); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("Deleted user's token must stop working, got %v", err)
	}
	if _, err := f.svcs.Auth.Authenticate(ctx, "garbage"); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuthService_AuthenticateRejectsMalformedSubject(t *testing.T) {
	f := newFixture(t)

	// signed with the fixture's secret, so only the subject is wrong
	tokens := auth.NewTokenManager(config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "inkwell-test",
	})
	token, _, err := tokens.Issue(&models.User{ID: "not-a-uuid", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := f.svcs.Auth.Authenticate(context.Background(), token); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestUserService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	editor, err := f.svcs.User.Create(ctx, &models.UserInput{
		Email: "ed@example.com", Password: "password1", FullName: "Ed", Role: "editor",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if editor.Role != models.RoleAuthor {
		t.Errorf("Unknown role should become author, got %s", editor.Role)
	}

	boss, err := f.svcs.User.Create(ctx, &models.UserInput{
		Email: "boss@example.com", Password: "password1", FullName: "Boss", Role: models.RoleAdmin,
	})
	if err != nil || boss.Role != models.RoleAdmin {
		t.Fatalf("Admin create failed: %v", err)
	}

	err = f.svcs.User.Delete(ctx, f.admin, f.admin.ID)
	expectValidation(t, err, "You cannot delete your own account")

	if err := f.svcs.User.Delete(ctx, f.admin, uuid.NewString()); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	users, _ := f.svcs.User.List(ctx)
	if len(users) != 4 {
		t.Errorf("Expected 4 users, got %d", len(users))
	}
}

func TestSettingsService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	settings, err := f.svcs.Settings.Get(ctx)
	if err != nil || settings.CompanyName != "Inkwell" {
		t.Fatalf("Get failed: %v", err)
	}

	logo := " /logo.svg "
	updated, err := f.svcs.Settings.Update(ctx, &models.SettingsUpdate{LogoURL: &logo})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.LogoURL != "/logo.svg" || updated.CompanyName != "Inkwell" {
		t.Errorf("Partial update went wrong: %+v", updated)
	}

	bad := "nope"
	_, err = f.svcs.Settings.Update(ctx, &models.SettingsUpdate{ContactEmail: &bad})
	expectValidation(t, err, "")

	f.repos.Store.Settings = nil
	if _, err := f.svcs.Settings.Get(ctx); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound without a settings row, got %v", err)
	}
	name := "Acme"
	if _, err := f.svcs.Settings.Update(ctx, &models.SettingsUpdate{CompanyName: &name}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Update must not create a missing settings row, got %v", err)
	}
	if f.repos.Store.Settings != nil {
		t.Error("Settings row was created by Update")
	}
}

func TestDashboardService_Stats(t *testing.T) {
	f := newFixture(t)

	f.article(t, "a", models.StatusDraft)
	f.article(t, "b", models.StatusPublished)
	f.article(t, "c", models.StatusPublished)

	stats, err := f.svcs.Dashboard.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	want := models.DashboardStats{Users: 2, Categories: 1, Articles: 3, Published: 2, Drafts: 1}
	if *stats != want {
		t.Errorf("Expected %+v, got %+v", want, *stats)
	}
}

func TestExportService_CategoriesCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svcs.Category.Create(ctx, f.admin, &models.CategoryInput{Name: "Zines", Description: "small, press"}); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	if err := f.svcs.Export.StreamResource(ctx, rec, "categories", "csv"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Unexpected content type %s", ct)
	}

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if records[2][1] != "Zines" || records[2][3] != "small, press" {
		t.Errorf("Unexpected row %v", records[2])
	}
}

func TestExportService_ArticlesNDJSON(t *testing.T) {
	f := newFixture(t)
	f.article(t, "First", models.StatusDraft)
	f.article(t, "Second", models.StatusPublished)

	rec := httptest.NewRecorder()
	if err := f.svcs.Export.StreamResource(context.Background(), rec, "prompti", "ndjson"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 lines, got %d", len(lines))
	}

	err := f.svcs.Export.StreamResource(context.Background(), httptest.NewRecorder(), "articles", "xml")
	expectValidation(t, err, "unsupported format: xml")
}

func TestExportService_JSONFailureLeavesArrayOpen(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		setup    func(f *fixture)
	}{
		{
			name:     "articles",
			resource: "articles",
			setup: func(f *fixture) {
				f.article(t, "First", models.StatusDraft)
				f.repos.Article.StreamError = errors.New("connection reset")
			},
		},
		{
			name:     "categories",
			resource: "categories",
			setup: func(f *fixture) {
				f.repos.Category.StreamError = errors.New("connection reset")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			rec := httptest.NewRecorder()
			err := f.svcs.Export.StreamResource(context.Background(), rec, tt.resource, "json")
			if err == nil {
				t.Fatal("Expected export error")
			}
			if strings.HasSuffix(rec.Body.String(), "]") {
				t.Errorf("Failed export must not be terminated: %s", rec.Body.String())
			}
			if json.Valid(rec.Body.Bytes()) {
				t.Errorf("Failed export must not be valid JSON: %s", rec.Body.String())
			}
		})
	}
}

func TestExportService_ArticlesJSON(t *testing.T) {
	f := newFixture(t)
	f.article(t, "First", models.StatusDraft)
	f.article(t, "Second", models.StatusPublished)

	rec := httptest.NewRecorder()
	if err := f.svcs.Export.StreamResource(context.Background(), rec, "articles", "json"); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var articles []models.ArticleDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &articles); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("Expected 2 articles, got %d", len(articles))
	}
}
