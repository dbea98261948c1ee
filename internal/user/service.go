package user

import (
	"context"
	"strings"

	"storefront-client/internal/auth"
	"storefront-client/internal/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Credentials is the token store the account flows write to.
type Credentials interface {
	AccessToken(ctx context.Context) (string, error)
	Save(ctx context.Context, c auth.Credentials) error
	Clear(ctx context.Context) error
}

type Service interface {
	Login(ctx context.Context, in LoginInput) (*User, error)
	Register(ctx context.Context, in RegisterInput) (*User, error)
	GoogleLogin(ctx context.Context, credential string) (*User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, in PasswordResetConfirm) error
	BuyerID(ctx context.Context) (string, error)
}

type service struct {
	repo  Repository
	creds Credentials
}

func NewService(repo Repository, creds Credentials) Service {
	return &service{repo: repo, creds: creds}
}

func (s *service) Login(ctx context.Context, in LoginInput) (*User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	resp, err := s.repo.Login(ctx, in)
	if err != nil {
		logger.FromCtx(ctx).Info("login failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	return s.signIn(ctx, "login", resp)
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	resp, err := s.repo.Register(ctx, in)
	if err != nil {
		logger.FromCtx(ctx).Info("register failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	return s.signIn(ctx, "register", resp)
}

func (s *service) GoogleLogin(ctx context.Context, credential string) (*User, error) {
	in := GoogleLoginInput{Credential: strings.TrimSpace(credential)}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	resp, err := s.repo.GoogleLogin(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, "google", resp)
}

// signIn stores both tokens or neither, then the profile.
func (s *service) signIn(ctx context.Context, flow string, resp *AuthResponse) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("flow", flow),
	)

	creds := resp.credentials()
	if !creds.Complete() {
		log.Warn("auth response missing tokens",
			zap.Bool("has_access", creds.AccessToken != ""),
			zap.Bool("has_refresh", creds.RefreshToken != ""),
		)
		return nil, ErrIncompleteLogin
	}

	if err := s.creds.Save(ctx, creds); err != nil {
		log.Error("failed to store credentials", zap.Error(err))
		return nil, err
	}

	u := resp.User
	if u == nil {
		fetched, err := s.repo.FetchMe(ctx)
		if err != nil {
			log.Warn("signed in but profile fetch failed", zap.Error(err))
			return userFromToken(creds.AccessToken), nil
		}
		u = fetched
	}

	if err := s.repo.SaveStored(ctx, u); err != nil {
		log.Warn("failed to store profile", zap.Error(err))
	}

	log.Info("signed in", zap.String("user_id", string(u.ID)))
	return u, nil
}

// Logout forgets tokens and profile. Carts are left alone.
func (s *service) Logout(ctx context.Context) error {
	return multierr.Combine(
		s.creds.Clear(ctx),
		s.repo.RemoveStored(ctx),
	)
}

// CurrentUser returns the stored profile, fetching it once if only the
// tokens are present.
func (s *service) CurrentUser(ctx context.Context) (*User, error) {
	token, err := s.creds.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	u, err := s.repo.GetStored(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("stored profile unreadable", zap.Error(err))
	}
	if u != nil && u.ID != "" {
		return u, nil
	}

	u, err = s.repo.FetchMe(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveStored(ctx, u); err != nil {
		logger.FromCtx(ctx).Warn("failed to store profile", zap.Error(err))
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error) {
	if in.empty() {
		return nil, ErrEmptyUpdate
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	u, err := s.repo.UpdateMe(ctx, in)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	if err := s.repo.SaveStored(ctx, u); err != nil {
		logger.FromCtx(ctx).Warn("failed to store profile", zap.Error(err))
	}
	return u, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	in := PasswordResetRequest{Email: normalizeEmail(email)}
	if err := validateInput(in); err != nil {
		return err
	}
	return s.repo.RequestPasswordReset(ctx, in)
}

func (s *service) ConfirmPasswordReset(ctx context.Context, in PasswordResetConfirm) error {
	in.UID = strings.TrimSpace(in.UID)
	in.Token = strings.TrimSpace(in.Token)
	if err := validateInput(in); err != nil {
		return err
	}
	return s.repo.ConfirmPasswordReset(ctx, in)
}

// BuyerID is the stored profile id, or the id claim of the access token.
// It is empty when nobody is signed in.
func (s *service) BuyerID(ctx context.Context) (string, error) {
	if u, err := s.repo.GetStored(ctx); err == nil && u != nil && u.ID != "" {
		return string(u.ID), nil
	}

	token, err := s.creds.AccessToken(ctx)
	if err != nil || token == "" {
		return "", err
	}

	claims, err := auth.ParseClaims(token)
	if err != nil {
		logger.FromCtx(ctx).Debug("access token has no readable claims", zap.Error(err))
		return "", nil
	}
	return claims.BuyerID(), nil
}

// userFromToken is the best effort profile read from the token claims.
func userFromToken(token string) *User {
	claims, err := auth.ParseClaims(token)
	if err != nil {
		return &User{}
	}
	return &User{ID: auth.SubjectID(claims.BuyerID()), Email: claims.Email}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
