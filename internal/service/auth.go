// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// AuthService is the authentication workflow: it orchestrates the credential
// hasher and the user repository to implement signup, signin, signout, and
// duplicate-email lookup. It knows nothing about HTTP.
//
// ERROR MODEL — RESULT CODES, NOT ERRORS:
// A wrong password or an unknown email is an EXPECTED outcome, not a fault.
// Signin and Signout therefore return typed result structs carrying a code
// and let the error return value mean exactly one thing: the store itself
// failed (connection loss, constraint violation). Handlers serialise the
// result; they never have to guess whether an error is "business" or
// "infrastructure".
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ksaito/taskboard/internal/apperror"
	"github.com/ksaito/taskboard/internal/credential"
	"github.com/ksaito/taskboard/internal/model"
	"github.com/ksaito/taskboard/internal/repository"
)

// Result codes reported by Signin and Signout. They deliberately read like
// HTTP status codes because the transport maps them straight through.
const (
	CodeSuccess         = 200
	CodeSignoutNotFound = 400
	CodeWrongPassword   = 401
	CodeSigninNotFound  = 404
)

// SigninResult is the outcome of a signin attempt.
type SigninResult struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SignoutResult is the outcome of a signout attempt. TargetUser is the
// account snapshot from BEFORE the flag was flipped, nil when no account
// matched the email.
type SignoutResult struct {
	Code       int
	TargetUser *model.User
}

// AuthService handles the authentication business logic.
type AuthService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewAuthService creates an AuthService. The repository is an interface so
// tests can substitute an in-memory fake.
func NewAuthService(users repository.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		logger: logger,
	}
}

// Signup creates a new account.
//
// FLOW:
//  1. Generate a fresh salt (never reused, never regenerated).
//  2. Digest the password with it.
//  3. Persist the user with IsSignedin = true — an account is considered
//     active immediately upon signup, no separate signin required.
//
// The returned record includes the digest and salt; redacting is the
// transport layer's decision, not this workflow's.
//
// NO DUPLICATE CHECK:
// Signup does not look for an existing account with the same email. Callers
// that want collision prevention run SearchSameEmailUser first and decide
// for themselves. Wiring the check in here would silently change what a
// second signup with a known email does.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	salt, err := credential.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	user := &model.User{
		Name:       name,
		Email:      email,
		Password:   credential.Hash(password, salt),
		Salt:       salt,
		IsSignedin: true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user (email=%s): %w", email, err)
	}

	s.logger.Info("user signed up",
		slog.Int64("userID", user.ID),
		slog.String("name", user.Name),
	)

	return user, nil
}

// Signin verifies credentials and marks the account signed in.
//
// OUTCOMES (all non-error):
//   - unknown email     → {404, "user not found"}
//   - wrong password    → {401, "Failed"}, no state change
//   - correct password  → {200, "Success"}, IsSignedin forced true
//
// Idempotent on success: repeating a correct signin keeps the flag true and
// returns the same result.
//
// The lookup resolves duplicate emails to the first-created account (the
// repository contract), so later colliding signups can't capture an
// existing account's signin.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &SigninResult{Code: CodeSigninNotFound, Message: "user not found"}, nil
		}
		return nil, fmt.Errorf("service/auth: looking up %s: %w", email, err)
	}

	if !credential.Verify(user.Password, password, user.Salt) {
		s.logger.Info("signin rejected", slog.Int64("userID", user.ID))
		return &SigninResult{Code: CodeWrongPassword, Message: "Failed"}, nil
	}

	if _, err := s.users.SetSignedin(ctx, user.ID, email, true); err != nil {
		return nil, fmt.Errorf("service/auth: marking %d signed in: %w", user.ID, err)
	}

	s.logger.Info("user signed in", slog.Int64("userID", user.ID))
	return &SigninResult{Code: CodeSuccess, Message: "Success"}, nil
}

// Signout marks the account signed out.
//
// OUTCOMES (all non-error):
//   - unknown email → {400, nil}
//   - known email   → {200, pre-update snapshot}, IsSignedin forced false
//
// THE id ARGUMENT:
// The account is resolved by email; id rides along from the transport but
// does not discriminate the match. When it disagrees with the resolved
// account we log the mismatch and proceed with the email's account — the
// flag update is keyed to the row the lookup found.
func (s *AuthService) Signout(ctx context.Context, id int64, email string) (*SignoutResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &SignoutResult{Code: CodeSignoutNotFound, TargetUser: nil}, nil
		}
		return nil, fmt.Errorf("service/auth: looking up %s: %w", email, err)
	}

	if id != 0 && id != user.ID {
		s.logger.Warn("signout id does not match account resolved by email",
			slog.Int64("requestedID", id),
			slog.Int64("resolvedID", user.ID),
		)
	}

	// Snapshot BEFORE the update — the contract returns the account as it
	// was at the moment signout was requested.
	snapshot := *user

	if _, err := s.users.SetSignedin(ctx, user.ID, email, false); err != nil {
		return nil, fmt.Errorf("service/auth: marking %d signed out: %w", user.ID, err)
	}

	s.logger.Info("user signed out", slog.Int64("userID", user.ID))
	return &SignoutResult{Code: CodeSuccess, TargetUser: &snapshot}, nil
}

// SearchSameEmailUser returns every account registered under the given
// email, oldest first. Read-only — the composable pre-condition a caller
// runs before Signup to detect collisions.
func (s *AuthService) SearchSameEmailUser(ctx context.Context, email string) ([]model.User, error) {
	users, err := s.users.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: listing accounts for %s: %w", email, err)
	}
	return users, nil
}
