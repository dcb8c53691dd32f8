package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/inkwell-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Limits on free-text fields
const (
	MaxTitleLength    = 500
	MaxNameLength     = 255
	MaxTagNameLength  = 100
	MaxFeedbackLength = 5000
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator checks request payloads. It also remembers the category and tag
// names it has accepted so a batch (e.g. a seed file) can reject its own duplicates.
type Validator struct {
	categoryNameCache map[string]bool
	tagNameCache      map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		categoryNameCache: make(map[string]bool),
		tagNameCache:      make(map[string]bool),
	}
}

// AddCategoryName adds a category name to the uniqueness cache
func (v *Validator) AddCategoryName(name string) {
	v.categoryNameCache[normalize(name)] = true
}

// AddTagName adds a tag name to the uniqueness cache
func (v *Validator) AddTagName(name string) {
	v.tagNameCache[normalize(name)] = true
}

// ValidateArticle validates an article create or update payload
func (v *Validator) ValidateArticle(in *models.ArticleInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Body) == "" || in.CategoryID == "" {
		errors = append(errors, ValidationError{Message: "Title, content, and category are required"})
		return errors
	}

	if len([]rune(in.Title)) > MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength),
		})
	}

	if !IsUUID(in.CategoryID) {
		errors = append(errors, ValidationError{Field: "category_id", Message: "invalid category", Value: in.CategoryID})
	}

	if in.Status != "" && !models.ValidStatuses[in.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   in.Status,
		})
	}

	for _, id := range in.TagIDs {
		if !IsUUID(id) {
			errors = append(errors, ValidationError{Field: "tag_ids", Message: "invalid tag", Value: id})
			break
		}
	}

	return errors
}

// ValidateCategory validates a category payload
func (v *Validator) ValidateCategory(in *models.CategoryInput) []ValidationError {
	var errors []ValidationError

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "Category name is required"})
	} else if len([]rune(name)) > MaxNameLength {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("category name must be at most %d characters", MaxNameLength),
		})
	} else if v.categoryNameCache[normalize(name)] {
		errors = append(errors, ValidationError{Field: "name", Message: "duplicate category name", Value: name})
	}

	return errors
}

// ValidateTag validates a tag payload
func (v *Validator) ValidateTag(in *models.TagInput) []ValidationError {
	var errors []ValidationError

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "Tag name is required"})
	} else if len([]rune(name)) > MaxTagNameLength {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("tag name must be at most %d characters", MaxTagNameLength),
		})
	} else if v.tagNameCache[normalize(name)] {
		errors = append(errors, ValidationError{Field: "name", Message: "duplicate tag name", Value: name})
	}

	return errors
}

// ValidateUser validates a registration or admin create-user payload
func (v *Validator) ValidateUser(in *models.UserInput) []ValidationError {
	var errors []ValidationError

	email := strings.TrimSpace(in.Email)
	if email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !IsEmail(email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}

	if len(in.Password) < models.MinPasswordLength {
		errors = append(errors, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", models.MinPasswordLength),
		})
	}

	if strings.TrimSpace(in.FullName) == "" {
		errors = append(errors, ValidationError{Field: "full_name", Message: "full name is required"})
	}

	return errors
}

// ValidateCredentials validates a login payload
func (v *Validator) ValidateCredentials(in *models.Credentials) []ValidationError {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return []ValidationError{{Message: "Email and password are required"}}
	}
	return nil
}

// ValidateRating validates a rating payload
func (v *Validator) ValidateRating(in *models.RatingInput) []ValidationError {
	var errors []ValidationError

	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		errors = append(errors, ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("Rating must be between %d and %d", models.MinRating, models.MaxRating),
			Value:   in.Rating,
		})
	}

	if len([]rune(in.Feedback)) > MaxFeedbackLength {
		errors = append(errors, ValidationError{
			Field:   "feedback",
			Message: fmt.Sprintf("feedback must be at most %d characters", MaxFeedbackLength),
		})
	}

	if email := strings.TrimSpace(in.UserEmail); email != "" && !IsEmail(email) {
		errors = append(errors, ValidationError{Field: "user_email", Message: "invalid email format", Value: email})
	}

	return errors
}

// ValidateSettings validates a partial settings update
func (v *Validator) ValidateSettings(in *models.SettingsUpdate) []ValidationError {
	var errors []ValidationError

	if in.ContactEmail != nil {
		if email := strings.TrimSpace(*in.ContactEmail); email != "" && !IsEmail(email) {
			errors = append(errors, ValidationError{Field: "contact_email", Message: "invalid email format", Value: email})
		}
	}
	if in.CompanyName != nil && strings.TrimSpace(*in.CompanyName) == "" {
		errors = append(errors, ValidationError{Field: "company_name", Message: "company name cannot be empty"})
	}

	return errors
}

// IsEmail checks if a string looks like an email address
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsUUID checks if a string is a valid UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
