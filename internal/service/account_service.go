package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/auth"
	dom "taskboard/internal/domain"
	"taskboard/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used for new password digests.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// AccountService handles signup and login.
type AccountService struct {
	users      repo.UserRepo
	tokens     TokenIssuer
	bcryptCost int

	// dummyHash is compared against on unknown emails so both login
	// failures cost one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash []byte
}

// NewAccountService returns a new AccountService. A zero cost means DefaultBcryptCost.
func NewAccountService(users repo.UserRepo, tokens TokenIssuer, bcryptCost int) *AccountService {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &AccountService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// HashPassword returns the bcrypt digest of password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Signup creates the account and returns it with a fresh session token.
// A taken email is reported by the insert itself, not by a prior lookup.
func (s *AccountService) Signup(ctx context.Context, email, password string) (dom.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, "", dom.ErrInvalidInput
	}
	if len(password) > MaxPasswordBytes {
		return dom.User{}, "", dom.ErrPasswordTooLong
	}
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return dom.User{}, "", err
	}
	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, dom.ErrEmailTaken) {
			return dom.User{}, "", dom.ErrEmailTaken
		}
		return dom.User{}, "", fmt.Errorf("create user: %w", err)
	}
	token, err := s.tokens.Issue(auth.Identity{ID: u.ID, Email: u.Email})
	if err != nil {
		return dom.User{}, "", err
	}
	return u, token, nil
}

// Login checks the credentials and returns the user with a fresh session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (dom.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, "", dom.ErrInvalidInput
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, dom.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
			return dom.User{}, "", dom.ErrInvalidCredentials
		}
		return dom.User{}, "", fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, "", dom.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(auth.Identity{ID: u.ID, Email: u.Email})
	if err != nil {
		return dom.User{}, "", err
	}
	return u, token, nil
}

func (s *AccountService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.bcryptCost)
	})
	return s.dummyHash
}
