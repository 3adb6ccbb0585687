package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options controls how much random data Run generates.
type Options struct {
	Users        int
	PostsPerUser int
}

// Run populates the database with generated users and posts.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	for i := 0; i < opts.Users; i++ {
		user, err := factory.CreateUser(ctx)
		if err != nil {
			return err
		}
		for j := 0; j < opts.PostsPerUser; j++ {
			if _, err := factory.CreatePost(ctx, user); err != nil {
				return err
			}
		}
	}

	middleware.Logger.Info("Seed completed",
		slog.Int("users", opts.Users),
		slog.Int("posts_per_user", opts.PostsPerUser),
	)
	return nil
}

// Fixture is the YAML shape for deterministic seed data.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

// FixtureUser is a user entry in a fixture file.
type FixtureUser struct {
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Posts    []FixturePost `yaml:"posts"`
}

// FixturePost is a post entry in a fixture file.
type FixturePost struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// LoadFixture reads a fixture file from disk.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file: %w", err)
	}
	return &fixture, nil
}

// ApplyFixture persists the fixture's users and posts. Usernames already
// present are skipped so applying a fixture is idempotent.
func ApplyFixture(ctx context.Context, db *gorm.DB, fixture *Fixture) error {
	for _, fu := range fixture.Users {
		var existing models.User
		err := db.WithContext(ctx).Where("username = ?", fu.Username).First(&existing).Error
		if err == nil {
			middleware.Logger.Info("Fixture user already present, skipping",
				slog.String("username", fu.Username))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check fixture user %q: %w", fu.Username, err)
		}

		password := fu.Password
		if password == "" {
			password = DefaultPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash fixture password: %w", err)
		}

		user := &models.User{
			PublicID: uuid.New().String(),
			Username: fu.Username,
			Password: string(hash),
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("failed to create fixture user %q: %w", fu.Username, err)
		}

		for _, fp := range fu.Posts {
			post := &models.Post{
				Title:   fp.Title,
				Content: fp.Content,
				UserID:  user.ID,
			}
			if err := db.WithContext(ctx).Create(post).Error; err != nil {
				return fmt.Errorf("failed to create fixture post %q: %w", fp.Title, err)
			}
		}
	}
	return nil
}
