package product

import (
	"context"
	"net/http"
	"net/url"

	"storefront-client/internal/api"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

type repository struct {
	api api.Doer
}

func NewRepository(client api.Doer) Repository {
	return &repository{api: client}
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, "/products/"+opts.query(), nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[Product](resp)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, "/products/"+url.PathEscape(id)+"/", nil)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := resp.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
