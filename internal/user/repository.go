package user

import (
	"context"
	"net/http"

	"storefront-client/internal/api"
	"storefront-client/internal/storage"
)

// Repository talks to the account endpoints and keeps the signed in
// profile in client storage.
type Repository interface {
	Login(ctx context.Context, in LoginInput) (*AuthResponse, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	GoogleLogin(ctx context.Context, in GoogleLoginInput) (*AuthResponse, error)
	RequestPasswordReset(ctx context.Context, in PasswordResetRequest) error
	ConfirmPasswordReset(ctx context.Context, in PasswordResetConfirm) error
	FetchMe(ctx context.Context) (*User, error)
	UpdateMe(ctx context.Context, in UpdateProfileInput) (*User, error)

	GetStored(ctx context.Context) (*User, error)
	SaveStored(ctx context.Context, u *User) error
	RemoveStored(ctx context.Context) error
}

type repository struct {
	api   api.Doer
	store storage.Store
}

func NewRepository(client api.Doer, store storage.Store) Repository {
	return &repository{api: client, store: store}
}

func (r *repository) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	return r.authenticate(ctx, "/auth/login/", in)
}

func (r *repository) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	return r.authenticate(ctx, "/auth/register/", in)
}

func (r *repository) GoogleLogin(ctx context.Context, in GoogleLoginInput) (*AuthResponse, error) {
	return r.authenticate(ctx, "/auth/google/", in)
}

func (r *repository) authenticate(ctx context.Context, path string, body any) (*AuthResponse, error) {
	resp, err := r.api.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	var out AuthResponse
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) RequestPasswordReset(ctx context.Context, in PasswordResetRequest) error {
	_, err := r.api.Do(ctx, http.MethodPost, "/auth/password-reset/", in)
	return err
}

func (r *repository) ConfirmPasswordReset(ctx context.Context, in PasswordResetConfirm) error {
	_, err := r.api.Do(ctx, http.MethodPost, "/auth/password-reset/confirm/", in)
	return err
}

func (r *repository) FetchMe(ctx context.Context) (*User, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, "/users/me/", nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := resp.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateMe(ctx context.Context, in UpdateProfileInput) (*User, error) {
	resp, err := r.api.Do(ctx, http.MethodPatch, "/users/me/", in)
	if err != nil {
		return nil, err
	}
	var u User
	if err := resp.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetStored(ctx context.Context) (*User, error) {
	var u User
	err := storage.GetJSON(ctx, r.store, storage.KeyUser, &u)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) SaveStored(ctx context.Context, u *User) error {
	return storage.SetJSON(ctx, r.store, storage.KeyUser, u)
}

func (r *repository) RemoveStored(ctx context.Context) error {
	return r.store.Remove(ctx, storage.KeyUser)
}
