package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/penmark/penmark/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var usernameCharset = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// AuthService handles credential validation, signup, and login.
type AuthService struct {
	users      domain.UserRepository
	bcryptCost int
}

// NewAuthService creates a new AuthService. bcryptCost is injected so tests
// can use a cheap cost.
func NewAuthService(users domain.UserRepository, bcryptCost int) *AuthService {
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// ValidateCredentials checks every username and password rule independently
// and returns the accumulated violations. Username uniqueness is probed
// against the store even when other rules already failed, so the caller gets
// the complete picture in one round trip. A non-nil error means the store
// could not be consulted, not that validation failed.
func (s *AuthService) ValidateCredentials(ctx context.Context, username, password string) (domain.Violations, error) {
	var v domain.Violations

	if strings.TrimSpace(username) == "" {
		v.Add("Username is required.")
	} else {
		if len(username) < 3 || len(username) > 20 {
			v.Add("Username must be between 3 and 20 characters.")
		}
		if !usernameCharset.MatchString(username) {
			v.Add("Username may only contain letters, digits, underscores, and hyphens.")
		}
		if strings.HasPrefix(username, "_") || strings.HasPrefix(username, "-") ||
			strings.HasSuffix(username, "_") || strings.HasSuffix(username, "-") {
			v.Add("Username may not start or end with an underscore or hyphen.")
		}
	}

	if strings.TrimSpace(password) == "" {
		v.Add("Password is required.")
	} else {
		if len(password) < 8 || len(password) > 128 {
			v.Add("Password must be between 8 and 128 characters.")
		}
		var hasLower, hasUpper, hasDigit bool
		for _, r := range password {
			switch {
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if !hasLower {
			v.Add("Password must contain at least one lowercase letter.")
		}
		if !hasUpper {
			v.Add("Password must contain at least one uppercase letter.")
		}
		if !hasDigit {
			v.Add("Password must contain at least one digit.")
		}
	}

	if strings.TrimSpace(username) != "" {
		_, err := s.users.GetByUsername(ctx, username)
		switch {
		case err == nil:
			v.Add("Username already exists.")
		case errors.Is(err, domain.ErrNotFound):
			// Available.
		default:
			return nil, fmt.Errorf("check username availability: %w", err)
		}
	}

	return v, nil
}

// SignUp validates the credentials, hashes the password, and creates the
// user. A unique-constraint race at insert time folds back into the same
// violation the pre-check would have produced.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (*domain.User, error) {
	violations, err := s.ValidateCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if verr := violations.Err(); verr != nil {
		return nil, verr
	}

	// bcrypt embeds a random per-call salt in the hash.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.Violations{"Username already exists."}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and returns the user's identity. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, domain.ErrInvalidCredentials
		}
		return domain.Identity{}, fmt.Errorf("get user: %w", err)
	}

	// Constant-time comparison.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	return domain.Identity{UserID: user.ID, Username: user.Username}, nil
}
