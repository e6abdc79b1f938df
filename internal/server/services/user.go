// Package services contains server-side business logic. This file implements
// UserService, the Auth Service: account signup, credential login with JWT
// issuance, and profile lookup for token holders.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/siteauth/internal/common"
	"github.com/dmitrijs2005/siteauth/internal/logging"
	"github.com/dmitrijs2005/siteauth/internal/server/auth"
	"github.com/dmitrijs2005/siteauth/internal/server/config"
	"github.com/dmitrijs2005/siteauth/internal/server/models"
	"github.com/dmitrijs2005/siteauth/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput is the raw registration request.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is a freshly signed token plus the authenticated user.
type LoginResult struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
//   - Signup: validate input and create an account
//   - Login: verify credentials and mint a token
//   - Profile: load the account a verified token refers to
//
// Errors are the sentinels from internal/common: ErrorValidation,
// ErrorAlreadyExists, ErrorUnauthorized, ErrorUnavailable, ErrorInternal.
type UserService struct {
	repo                  users.Repository
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	storeTimeout          time.Duration
	passwordCost          int
	defaultRole           string

	// dummyHash is compared against on unknown emails so that both login
	// failure paths do the same amount of work.
	dummyHash string
}

// NewUserService constructs a UserService over repo using server config.
// The signing secret is copied once here.
func NewUserService(repo users.Repository, cfg *config.Config, logger logging.Logger) *UserService {
	s := &UserService{
		repo:                  repo,
		logger:                logger.With("module", "userservice"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		storeTimeout:          cfg.StoreTimeout,
		passwordCost:          cfg.PasswordCost,
		defaultRole:           cfg.DefaultRole,
	}

	s.dummyHash = s.makeDummyHash(cfg.PasswordCost)

	return s
}

// hashPasswordFn is a test seam for bcrypt hashing.
var hashPasswordFn = auth.HashPassword

// makeDummyHash hashes a random filler at cost, retrying at bcrypt.MinCost.
// The result is never empty so unknown-email logins always run a comparison.
func (s *UserService) makeDummyHash(cost int) string {
	filler, err := common.MakeRandHexString(16)
	if err != nil {
		filler = "siteauth-dummy-password"
	}
	hash, err := hashPasswordFn(filler, cost)
	if err == nil {
		return hash
	}
	s.logger.Warn(context.Background(), "dummy hash failed, retrying at min cost", "cost", cost)
	if hash, err = hashPasswordFn(filler, bcrypt.MinCost); err == nil {
		return hash
	}
	s.logger.Error(context.Background(), "dummy hash failed")
	return fallbackDummyHash
}

// fallbackDummyHash is a well-formed cost 10 bcrypt hash of no known password.
const fallbackDummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z8Y2Qz0CSHJxQ9k3H2bYz7Tq"

// Signup registers a new account. No token is issued; the caller logs in
// separately.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, common.ErrorValidation
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, common.ErrorPasswordTooLong
	}

	// Advisory only: the store's unique constraint decides races.
	_, err := s.findByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info(ctx, "signup rejected", "reason", "email taken")
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.storeFailure(ctx, "find_by_email", err)
	}

	hash, err := auth.HashPassword(in.Password, s.passwordCost)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		s.logger.Error(ctx, "password hashing failed")
		return nil, common.ErrorInternal
	}

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repo.Insert(sctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         s.defaultRole,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Info(ctx, "signup rejected", "reason", "email taken")
			return nil, common.ErrorAlreadyExists
		}
		return nil, s.storeFailure(ctx, "insert", err)
	}

	s.logger.Info(ctx, "signup ok", "user_id", user.ID)
	return user, nil
}

// Login verifies email and password and returns a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.ComparePassword(s.dummyHash, password)
			s.logger.Info(ctx, "login rejected")
			return nil, common.ErrorUnauthorized
		}
		return nil, s.storeFailure(ctx, "find_by_email", err)
	}

	if !auth.ComparePassword(user.PasswordHash, password) {
		s.logger.Info(ctx, "login rejected")
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token signing failed")
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "login ok", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

// Profile returns the account behind a verified token. A token whose user no
// longer exists is treated as unauthorized.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repo.FindByID(sctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, s.storeFailure(ctx, "find_by_id", err)
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) storeFailure(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "credential store failure", "op", op, "error", err)
	return common.ErrorUnavailable
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
