package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
	"printshop/internal/core/validation"
)

// Route is the initial navigation target chosen from the persisted session.
type Route string

const (
	RouteAuth Route = "auth"
	RouteHome Route = "home"
)

const emailProvider = "email"

// AuthService is the session context: it owns the token and cached user and is
// the only writer of the session store.
type AuthService struct {
	api   ports.MarketplaceAPI
	store ports.SessionStore

	mu      sync.RWMutex
	session *domain.Session
	loaded  bool
}

func NewAuthService(api ports.MarketplaceAPI, store ports.SessionStore) *AuthService {
	return &AuthService{api: api, store: store}
}

// Restore loads the persisted session and picks the first screen.
func (s *AuthService) Restore(ctx context.Context) (Route, *domain.Session, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return RouteAuth, nil, err
	}
	if !sess.Authenticated() {
		return RouteAuth, nil, nil
	}
	return RouteHome, sess, nil
}

// Token returns a snapshot of the current bearer token, or ErrNotAuthenticated.
func (s *AuthService) Token(ctx context.Context) (string, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return "", err
	}
	if !sess.Authenticated() {
		return "", domain.ErrNotAuthenticated
	}
	return sess.Token, nil
}

func (s *AuthService) Login(ctx context.Context, form validation.AuthForm) (*domain.AuthResult, error) {
	if err := validation.ValidateAuthForm(domain.AuthModeLogin, form); err != nil {
		return nil, err
	}

	res, err := s.api.Login(ctx, domain.Credentials{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.save(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AuthService) Register(ctx context.Context, form validation.AuthForm) (*domain.AuthResult, error) {
	if err := validation.ValidateAuthForm(domain.AuthModeRegister, form); err != nil {
		return nil, err
	}

	res, err := s.api.Register(ctx, domain.Registration{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Provider: emailProvider,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := s.save(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.session = nil
	s.loaded = true
	return nil
}

// Profile fetches the signed-in user. A rejected token ends the session.
func (s *AuthService) Profile(ctx context.Context) (*domain.User, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.api.GetProfile(ctx, token)
	if err != nil {
		return nil, s.handleAuthError(ctx, "profile", token, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Skip the cache update if the session changed while the request was out.
	if s.session == nil || s.session.Token != token {
		return user, nil
	}
	updated := &domain.Session{Token: token, User: *user}
	if err := s.store.Save(ctx, updated); err != nil {
		log.WithError(err).Warn("failed to cache user profile")
		return user, nil
	}
	s.session = updated
	return user, nil
}

// handleAuthError ends the session when the backend rejected token. A session
// started with a different token while the request was out is left alone.
func (s *AuthService) handleAuthError(ctx context.Context, op, token string, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		if clearErr := s.logoutIfToken(ctx, token); clearErr != nil {
			log.WithError(clearErr).Warn("failed to clear session")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *AuthService) logoutIfToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.Token != token {
		log.Debug("rejected token is no longer current, keeping session")
		return nil
	}
	log.Info("token rejected, clearing session")
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.session = nil
	s.loaded = true
	return nil
}

func (s *AuthService) save(ctx context.Context, res *domain.AuthResult) error {
	if res.Token == "" {
		return fmt.Errorf("%w: auth response has no token", domain.ErrMalformedResponse)
	}
	sess := &domain.Session{Token: res.Token, User: res.User}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.session = sess
	s.loaded = true
	return nil
}

func (s *AuthService) current(ctx context.Context) (*domain.Session, error) {
	s.mu.RLock()
	if s.loaded {
		sess := s.session
		s.mu.RUnlock()
		return sess, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.session, nil
	}
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	s.session = sess
	s.loaded = true
	return sess, nil
}
