package category

import (
	"context"
	"net/http"

	"storefront-client/internal/api"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
}

type repository struct {
	api api.Doer
}

func NewRepository(client api.Doer) Repository {
	return &repository{api: client}
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, "/categories/", nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[*Category](resp)
}
