package user

import (
	"context"
	"net/http"
	"testing"

	"storefront-client/internal/api"
	"storefront-client/internal/api/apitest"
	"storefront-client/internal/auth"
	"storefront-client/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userJSON = `{"id": 42, "email": "ana@example.com", "first_name": "Ana", "last_name": "Mensah", "role": "customer"}`

func newTestService(t *testing.T, d *apitest.Doer) (Service, *storage.Memory, *auth.Session) {
	t.Helper()
	store := storage.NewMemory()
	session := auth.NewSession(store)
	return NewService(NewRepository(d, store), session), store, session
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		d := apitest.New().Reply(http.MethodPost, "/auth/login/", http.StatusOK,
			`{"access":"a1","refresh":"r1","user":`+userJSON+`}`)
		svc, _, session := newTestService(t, d)

		u, err := svc.Login(ctx, LoginInput{Email: "  Ana@Example.com ", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, auth.SubjectID("42"), u.ID)
		assert.Equal(t, "Ana Mensah", u.DisplayName())

		creds, _ := session.Credentials(ctx)
		assert.Equal(t, auth.Credentials{AccessToken: "a1", RefreshToken: "r1"}, creds)

		var sent LoginInput
		require.NoError(t, d.Last().JSON(&sent))
		assert.Equal(t, "ana@example.com", sent.Email)

		stored, err := svc.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, u, stored)
		assert.Len(t, d.Calls(), 1, "profile came from the login response")
	})

	t.Run("MissingRefreshStoresNothing", func(t *testing.T) {
		d := apitest.New().Reply(http.MethodPost, "/auth/login/", http.StatusOK,
			`{"access":"a1","user":`+userJSON+`}`)
		svc, store, _ := newTestService(t, d)

		_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "secret"})

		assert.ErrorIs(t, err, ErrIncompleteLogin)
		assert.Empty(t, store.Keys())
	})

	t.Run("MissingAccessStoresNothing", func(t *testing.T) {
		d := apitest.New().Reply(http.MethodPost, "/auth/login/", http.StatusOK, `{"refresh_token":"r1"}`)
		svc, store, _ := newTestService(t, d)

		_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "secret"})

		assert.ErrorIs(t, err, ErrIncompleteLogin)
		assert.Empty(t, store.Keys())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		d := apitest.New().Reply(http.MethodPost, "/auth/login/", http.StatusUnauthorized,
			`{"detail":"No active account found with the given credentials"}`)
		svc, store, _ := newTestService(t, d)

		_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "nope"})

		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "No active account found with the given credentials", apiErr.Message)
		assert.Empty(t, store.Keys())
	})

	t.Run("InvalidInput", func(t *testing.T) {
		d := apitest.New()
		svc, _, _ := newTestService(t, d)

		_, err := svc.Login(ctx, LoginInput{Email: "not-an-email", Password: "x"})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorContains(t, err, "email must be a valid email")
		assert.Empty(t, d.Calls())
	})

	t.Run("FetchesProfileWhenAbsent", func(t *testing.T) {
		d := apitest.New().
			Reply(http.MethodPost, "/auth/login/", http.StatusOK, `{"access_token":"a1","refresh_token":"r1"}`).
			Reply(http.MethodGet, "/users/me/", http.StatusOK, userJSON)
		svc, _, _ := newTestService(t, d)

		u, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "Ana", u.FirstName)
	})

	t.Run("ProfileFetchFailsFallsBackToClaims", func(t *testing.T) {
		access := signedToken(t, jwt.MapClaims{"user_id": 7, "email": "ana@example.com"})
		d := apitest.New().
			Reply(http.MethodPost, "/auth/login/", http.StatusOK, `{"access":"`+access+`","refresh":"r1"}`).
			Reply(http.MethodGet, "/users/me/", http.StatusInternalServerError, `{}`)
		svc, _, session := newTestService(t, d)

		u, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, auth.SubjectID("7"), u.ID)
		creds, _ := session.Credentials(ctx)
		assert.True(t, creds.Complete())
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		d := apitest.New().Reply(http.MethodPost, "/auth/register/", http.StatusCreated,
			`{"access":"a1","refresh":"r1","user":`+userJSON+`}`)
		svc, _, _ := newTestService(t, d)

		u, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "longenough", FirstName: " Ana "})

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", u.Email)

		var sent map[string]any
		require.NoError(t, d.Last().JSON(&sent))
		assert.Equal(t, "Ana", sent["first_name"])
		assert.NotContains(t, sent, "last_name")
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc, _, _ := newTestService(t, apitest.New())

		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "short", FirstName: "Ana"})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorContains(t, err, "password must be at least 8 characters")
	})

	t.Run("EmailTaken", func(t *testing.T) {
		d := apitest.New().Reply(http.MethodPost, "/auth/register/", http.StatusBadRequest,
			`{"email":["user with this email already exists."]}`)
		svc, _, _ := newTestService(t, d)

		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "longenough", FirstName: "Ana"})

		assert.ErrorIs(t, err, api.ErrBackendRejected)
	})
}

func TestService_GoogleLogin(t *testing.T) {
	ctx := context.Background()
	d := apitest.New().Reply(http.MethodPost, "/auth/google/", http.StatusOK,
		`{"access":"a1","refresh":"r1","user":`+userJSON+`}`)
	svc, _, session := newTestService(t, d)

	_, err := svc.GoogleLogin(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	u, err := svc.GoogleLogin(ctx, "google-id-token")
	require.NoError(t, err)
	assert.Equal(t, auth.SubjectID("42"), u.ID)

	var sent GoogleLoginInput
	require.NoError(t, d.Last().JSON(&sent))
	assert.Equal(t, "google-id-token", sent.Credential)

	token, _ := session.AccessToken(ctx)
	assert.Equal(t, "a1", token)
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	d := apitest.New().Reply(http.MethodPost, "/auth/login/", http.StatusOK,
		`{"access":"a1","refresh":"r1","user":`+userJSON+`}`)
	svc, store, _ := newTestService(t, d)
	require.NoError(t, store.Set(ctx, storage.KeyCart, []byte(`[]`)))

	_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	assert.Equal(t, []string{storage.KeyCart}, store.Keys())
	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	d := apitest.New().Reply(http.MethodGet, "/users/me/", http.StatusOK, userJSON)
	svc, store, session := newTestService(t, d)
	require.NoError(t, session.Save(ctx, auth.Credentials{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, store.Set(ctx, storage.KeyUser, []byte(`{broken`)))

	u, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)

	_, err = svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Len(t, d.Calls(), 1, "second read comes from storage")
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	d := apitest.New().Reply(http.MethodPatch, "/users/me/", http.StatusOK,
		`{"id": 42, "email": "ana@example.com", "first_name": "Ana", "phone": "0201234567"}`)
	svc, store, _ := newTestService(t, d)

	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	bad := "not a url"
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{AvatarURL: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	phone := "0201234567"
	u, err := svc.UpdateProfile(ctx, UpdateProfileInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, u.Phone)

	var sent map[string]any
	require.NoError(t, d.Last().JSON(&sent))
	assert.Equal(t, map[string]any{"phone": phone}, sent)

	raw, err := store.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, string(raw), phone)
}

func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	d := apitest.New().
		Reply(http.MethodPost, "/auth/password-reset/", http.StatusOK, `{"detail":"Password reset e-mail has been sent."}`).
		Reply(http.MethodPost, "/auth/password-reset/confirm/", http.StatusOK, `{}`)
	svc, _, _ := newTestService(t, d)

	require.NoError(t, svc.RequestPasswordReset(ctx, " Ana@Example.com"))
	var sent PasswordResetRequest
	require.NoError(t, d.Last().JSON(&sent))
	assert.Equal(t, "ana@example.com", sent.Email)

	assert.ErrorIs(t, svc.RequestPasswordReset(ctx, "nope"), ErrInvalidInput)

	err := svc.ConfirmPasswordReset(ctx, PasswordResetConfirm{UID: "MQ", Token: "abc-123", NewPassword: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, PasswordResetConfirm{UID: " MQ ", Token: "abc-123", NewPassword: "longenough"}))
	assert.Equal(t, "/auth/password-reset/confirm/", d.Last().Path)
}

func TestService_BuyerID(t *testing.T) {
	ctx := context.Background()

	t.Run("NotLoggedIn", func(t *testing.T) {
		svc, _, _ := newTestService(t, apitest.New())
		id, err := svc.BuyerID(ctx)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("FromStoredProfile", func(t *testing.T) {
		svc, store, _ := newTestService(t, apitest.New())
		require.NoError(t, store.Set(ctx, storage.KeyUser, []byte(userJSON)))

		id, err := svc.BuyerID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "42", id)
	})

	t.Run("FromTokenClaims", func(t *testing.T) {
		svc, _, session := newTestService(t, apitest.New())
		access := signedToken(t, jwt.MapClaims{"sub": "user-9"})
		require.NoError(t, session.Save(ctx, auth.Credentials{AccessToken: access, RefreshToken: "r"}))

		id, err := svc.BuyerID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-9", id)
	})

	t.Run("OpaqueToken", func(t *testing.T) {
		svc, _, session := newTestService(t, apitest.New())
		require.NoError(t, session.Save(ctx, auth.Credentials{AccessToken: "opaque", RefreshToken: "r"}))

		id, err := svc.BuyerID(ctx)
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}
