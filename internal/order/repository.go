package order

import (
	"context"
	"net/http"
	"net/url"

	"storefront-client/internal/api"
)

type Repository interface {
	Create(ctx context.Context, sub Submission) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
}

type repository struct {
	api api.Doer
}

func NewRepository(client api.Doer) Repository {
	return &repository{api: client}
}

func (r *repository) Create(ctx context.Context, sub Submission) (*Order, error) {
	resp, err := r.api.Do(ctx, http.MethodPost, "/orders/", sub)
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp)
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, "/orders/", nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[Order](resp)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	resp, err := r.api.Do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id)+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp)
}

func decodeOrder(resp *api.Response) (*Order, error) {
	var o Order
	if err := resp.Decode(&o); err != nil {
		return nil, err
	}
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	return &o, nil
}
