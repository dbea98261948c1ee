package wishlist

import (
	"context"
	"net/http"
	"net/url"

	"storefront-client/internal/api"
)

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
}

type repository struct {
	api api.Doer
}

func NewRepository(client api.Doer) Repository {
	return &repository{api: client}
}

func (r *repository) List(ctx context.Context) ([]Item, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, "/wishlist/", nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[Item](resp)
}

func (r *repository) Add(ctx context.Context, productID string) error {
	_, err := r.api.Do(ctx, http.MethodPost, "/wishlist/", addRequest{ProductID: productID})
	return err
}

func (r *repository) Remove(ctx context.Context, productID string) error {
	_, err := r.api.Do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID)+"/", nil)
	return err
}
