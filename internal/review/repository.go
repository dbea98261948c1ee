package review

import (
	"context"
	"net/http"
	"net/url"

	"storefront-client/internal/api"
)

type Repository interface {
	List(ctx context.Context, productID string) ([]Review, error)
	Create(ctx context.Context, productID string, in CreateInput) (*Review, error)
	Like(ctx context.Context, reviewID string) (int, error)
}

type repository struct {
	api api.Doer
}

func NewRepository(client api.Doer) Repository {
	return &repository{api: client}
}

func reviewsPath(productID string) string {
	return "/products/" + url.PathEscape(productID) + "/reviews/"
}

func (r *repository) List(ctx context.Context, productID string) ([]Review, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, reviewsPath(productID), nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[Review](resp)
}

func (r *repository) Create(ctx context.Context, productID string, in CreateInput) (*Review, error) {
	resp, err := r.api.Do(ctx, http.MethodPost, reviewsPath(productID), in)
	if err != nil {
		return nil, err
	}
	var out Review
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) Like(ctx context.Context, reviewID string) (int, error) {
	resp, err := r.api.Do(ctx, http.MethodPost, "/reviews/"+url.PathEscape(reviewID)+"/like/", nil)
	if err != nil {
		return 0, err
	}
	var out likeResponse
	if len(resp.Body) == 0 {
		return 0, nil
	}
	if err := resp.Decode(&out); err != nil {
		return 0, err
	}
	return out.Likes, nil
}
