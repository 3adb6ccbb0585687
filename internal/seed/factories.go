// Package seed provides helpers to create development and demo data. These
// helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded account gets, so
// seeded users can be logged into during development.
const DefaultPassword = "inkwell-dev"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	// hash of DefaultPassword, computed once since bcrypt is slow
	passwordHash string
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// CreateUser persists a user with a random unique username.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	user := &models.User{
		PublicID: uuid.New().String(),
		Username: fmt.Sprintf("%s_%d", strings.ToLower(gofakeit.Username()), f.rand.Intn(10000)),
		Password: f.passwordHash,
	}
	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create seed user: %w", err)
	}
	return user, nil
}

// CreatePost persists a post owned by the given user, with generated title
// and content clamped to the validation bounds.
func (f *Factory) CreatePost(ctx context.Context, owner *models.User) (*models.Post, error) {
	post := f.BuildPost(owner)
	if err := f.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create seed post: %w", err)
	}
	return post, nil
}

// BuildPost constructs a post without persisting it. Useful for batching.
func (f *Factory) BuildPost(owner *models.User) *models.Post {
	title := gofakeit.Sentence(3 + f.rand.Intn(6))
	if len(title) > validation.TitleMaxLen {
		title = title[:validation.TitleMaxLen]
	}

	content := gofakeit.Paragraph(1+f.rand.Intn(3), 2, 8, "\n")
	if len(content) > validation.ContentMaxLen {
		content = content[:validation.ContentMaxLen]
	}

	// realistic created_at spread over the past 90 days
	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)

	return &models.Post{
		Title:     strings.TrimSuffix(title, "."),
		Content:   content,
		UserID:    owner.ID,
		CreatedAt: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
	}
}
