// Package auth implements the session flows: registration, login, access
// token refresh and logout. Outcomes are reported through the store's
// notification slot; identity changes go through AUTH dispatches.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MhasnainGIT/e-commerce/internal/gateway"
	"github.com/MhasnainGIT/e-commerce/internal/store"
)

// Gateway is the slice of the API client the auth flows need.
type Gateway interface {
	Login(ctx context.Context, creds gateway.Credentials) (*gateway.AuthResponse, error)
	Register(ctx context.Context, reg gateway.Registration) (*gateway.MsgResponse, error)
	RefreshAccessToken(ctx context.Context) (*gateway.AuthResponse, error)
	ClearSession()
}

// Navigator receives navigation intents for the external router.
type Navigator interface {
	Push(path string)
}

// Service drives the session lifecycle against the store.
type Service struct {
	store    *store.Store
	gw       Gateway
	nav      Navigator
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates the auth service.
func NewService(st *store.Store, gw Gateway, nav Navigator, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		gw:       gw,
		nav:      nav,
		validate: validator.New(),
		logger:   logger.With("component", "auth"),
	}
}

// RegisterInput is the registration form. The rules mirror the storefront
// registration validation.
type RegisterInput struct {
	Name       string `json:"name"        validate:"required,max=20"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=6"`
	CfPassword string `json:"cf_password" validate:"eqfield=Password"`
}

// Register validates the form and creates the account. Validation failures
// and business errors become error notifications; they are not Go errors.
// A transport failure is returned after raising an error notification.
func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	if msg := s.validateRegistration(input); msg != "" {
		s.store.Dispatch(store.NotifyError(msg))
		return nil
	}

	s.store.Dispatch(store.NotifyLoading())
	resp, err := s.gw.Register(ctx, gateway.Registration{
		Name:       input.Name,
		Email:      input.Email,
		Password:   input.Password,
		CfPassword: input.CfPassword,
	})
	if err != nil {
		s.logger.Error("registration request failed", "error", err)
		s.store.Dispatch(store.NotifyError("Registration failed. Please try again."))
		return fmt.Errorf("registration request failed: %w", err)
	}
	if resp.Err != "" {
		s.store.Dispatch(store.NotifyError(resp.Err))
		return nil
	}
	s.store.Dispatch(store.NotifySuccess(resp.Msg))
	return nil
}

// Login exchanges credentials for a session and commits the identity.
func (s *Service) Login(ctx context.Context, email, password string) error {
	s.store.Dispatch(store.NotifyLoading())
	resp, err := s.gw.Login(ctx, gateway.Credentials{Email: email, Password: password})
	if err != nil {
		s.logger.Error("login request failed", "error", err)
		s.store.Dispatch(store.NotifyError("Login failed. Please try again."))
		return fmt.Errorf("login request failed: %w", err)
	}
	if resp.Err != "" {
		s.store.Dispatch(store.NotifyError(resp.Err))
		return nil
	}

	s.store.Dispatch(store.Auth(store.AuthIdentity{
		Token: resp.AccessToken,
		User:  resp.User,
	}))
	s.store.Dispatch(store.NotifySuccess(resp.Msg))
	return nil
}

// RefreshSession exchanges the refresh cookie for a fresh access token when
// the current one is absent or expired. A failed exchange clears the
// identity silently; the next login starts clean.
func (s *Service) RefreshSession(ctx context.Context) error {
	current := s.store.State().Auth
	if current.LoggedIn() && !tokenExpired(current.Token) {
		return nil
	}

	resp, err := s.gw.RefreshAccessToken(ctx)
	if err != nil {
		s.logger.Debug("token refresh failed", "error", err)
		s.store.Dispatch(store.Auth(store.AuthIdentity{}))
		return fmt.Errorf("token refresh failed: %w", err)
	}
	if resp.Err != "" {
		s.logger.Debug("token refresh rejected", "reason", resp.Err)
		s.store.Dispatch(store.Auth(store.AuthIdentity{}))
		return nil
	}

	s.store.Dispatch(store.Auth(store.AuthIdentity{
		Token: resp.AccessToken,
		User:  resp.User,
	}))
	return nil
}

// Logout drops the refresh cookie, clears the identity and hands a
// navigation intent back to the storefront root.
func (s *Service) Logout() {
	s.gw.ClearSession()
	s.store.Dispatch(store.Auth(store.AuthIdentity{}))
	s.store.Dispatch(store.NotifySuccess("Logged out!"))
	s.nav.Push("/")
}

// validateRegistration returns the user-facing message for the first
// violated rule, or "" when the form is valid.
func (s *Service) validateRegistration(input RegisterInput) string {
	err := s.validate.Struct(input)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid registration data."
	}
	return registrationMessage(verrs[0])
}

func registrationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return "Name is up to 20 chars long."
		}
		return "Please add your name."
	case "Email":
		if fe.Tag() == "email" {
			return "Email format is incorrect."
		}
		return "Please add your email."
	case "Password":
		if fe.Tag() == "min" {
			return "Password must be at least 6 chars."
		}
		return "Please add your password."
	case "CfPassword":
		return "Confirm password did not match."
	default:
		return "Invalid registration data."
	}
}

// tokenExpired inspects the access token's exp claim without verifying the
// signature; verification is the backend's job, the client only needs to
// know when to ask for a new one.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
