package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/auth"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// LoginInput identifies a staff member
type LoginInput struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Session is the result of a successful login
type Session struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *models.User `json:"user"`
}

// AuthService signs staff in and resolves bearer tokens
type AuthService struct {
	deps *Dependencies
}

// NewAuthService creates a new auth service
func NewAuthService(deps *Dependencies) *AuthService {
	return &AuthService{deps: deps}
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	user, err := s.deps.Store.Users.FindByEmployeeID(ctx, strings.TrimSpace(input.EmployeeID))
	if err != nil {
		if err = fromRepo(err, i18n.UserNotFound); !IsNotFound(err) {
			return nil, err
		}
		return nil, s.failed(input.EmployeeID, "unknown employee id")
	}
	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, s.failed(input.EmployeeID, "wrong password")
	}
	if user.Status != models.UserStatusActive {
		return nil, unauthorized(i18n.AuthUserInactive)
	}

	token, expires, err := s.deps.Tokens.Issue(user)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Key: i18n.ErrInternal, Err: err}
	}
	return &Session{AccessToken: token, TokenType: "Bearer", ExpiresAt: expires, User: user}, nil
}

func (s *AuthService) failed(employeeID, reason string) error {
	s.deps.Metrics.IncrementCounter(metrics.LoginFailures)
	log.Info().Str("employee_id", employeeID).Str("reason", reason).Msg("login failed")
	return unauthorized(i18n.AuthInvalidCredentials)
}

// Authenticate resolves a bearer token into the calling actor
func (s *AuthService) Authenticate(ctx context.Context, token string) (Actor, error) {
	if token == "" {
		return Actor{}, unauthorized(i18n.AuthTokenMissing)
	}
	claims, err := s.deps.Tokens.Parse(token)
	if err != nil {
		return Actor{}, unauthorized(i18n.AuthTokenInvalid)
	}
	return Actor{UserID: claims.UserID(), Role: claims.Role, BranchIDs: claims.BranchIDs}, nil
}

// Me returns the account behind actor, refusing deactivated accounts
func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	user, err := s.deps.Store.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		if err = fromRepo(err, i18n.UserNotFound); IsNotFound(err) {
			return nil, unauthorized(i18n.AuthTokenInvalid)
		}
		return nil, err
	}
	if user.Status != models.UserStatusActive {
		return nil, unauthorized(i18n.AuthUserInactive)
	}
	return user, nil
}
