package review

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"storefront-client/internal/api"
	"storefront-client/internal/api/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_List(t *testing.T) {
	d := apitest.New().Reply(http.MethodGet, "/products/p1/reviews/", http.StatusOK, `[
		{"id":"r1","rating":4,"comment":"ok","created_at":"2026-01-01T00:00:00Z"},
		{"id":"r2","rating":5,"comment":"great","created_at":"2026-02-01T00:00:00Z"}
	]`)
	svc := NewService(NewRepository(d))

	reviews, err := svc.List(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r2", reviews[0].ID, "newest first")
	assert.Equal(t, Summary{Count: 2, Average: 4.5}, Summarize(reviews))

	_, err = svc.List(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestService_List_RejectsBadRating(t *testing.T) {
	d := apitest.New().Reply(http.MethodGet, "/products/p1/reviews/", http.StatusOK, `[{"id":"r1","rating":9}]`)

	_, err := NewService(NewRepository(d)).List(context.Background(), "p1")
	assert.ErrorIs(t, err, api.ErrDecode)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	d := apitest.New().Reply(http.MethodPost, "/products/p1/reviews/", http.StatusCreated,
		`{"id":"r3","rating":5,"comment":"Lovely","likes":0,"created_at":"2026-03-01T00:00:00Z"}`)
	svc := NewService(NewRepository(d))

	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{"RatingTooLow", CreateInput{Rating: 0}, ErrInvalidRating},
		{"RatingTooHigh", CreateInput{Rating: 6}, ErrInvalidRating},
		{"CommentTooLong", CreateInput{Rating: 3, Comment: strings.Repeat("é", 2001)}, ErrCommentTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "p1", tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, d.Calls())

	r, err := svc.Create(ctx, "p1", CreateInput{Rating: 5, Comment: "  Lovely "})
	require.NoError(t, err)
	assert.Equal(t, "r3", r.ID)

	var sent CreateInput
	require.NoError(t, d.Last().JSON(&sent))
	assert.Equal(t, CreateInput{Rating: 5, Comment: "Lovely"}, sent)
}

func TestService_Like(t *testing.T) {
	ctx := context.Background()
	d := apitest.New().
		Reply(http.MethodPost, "/reviews/r1/like/", http.StatusOK, `{"likes":3}`).
		Reply(http.MethodPost, "/reviews/r2/like/", http.StatusNoContent, ``)
	svc := NewService(NewRepository(d))

	likes, err := svc.Like(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 3, likes)

	likes, err = svc.Like(ctx, "r2")
	require.NoError(t, err)
	assert.Zero(t, likes)

	_, err = svc.Like(ctx, "r9")
	assert.ErrorIs(t, err, api.ErrBackendRejected)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}
