package seller

import (
	"context"
	"net/http"
	"path/filepath"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Submit(ctx context.Context, a Application) (*Submission, error)
}

type service struct {
	api api.Doer
}

func NewService(client api.Doer) Service {
	return &service{api: client}
}

// Submit validates the application and uploads it as multipart form data.
func (s *service) Submit(ctx context.Context, a Application) (*Submission, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}
	a = a.normalized()

	resp, err := s.api.DoMultipart(ctx, http.MethodPost, "/sellers/applications/", buildForm(a))
	if err != nil {
		logger.FromCtx(ctx).Warn("seller application rejected", zap.String("store_name", a.StoreName), zap.Error(err))
		return nil, err
	}

	var out Submission
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("seller application submitted", zap.String("application_id", out.ID))
	return &out, nil
}

func buildForm(a Application) *api.MultipartForm {
	form := api.NewMultipartForm().
		Field("store_name", a.StoreName).
		Field("owner_name", a.OwnerName).
		Field("email", a.Email).
		Field("phone", a.Phone).
		Field("category", a.Category)
	if a.Description != "" {
		form.Field("description", a.Description)
	}
	if a.Website != "" {
		form.Field("website", a.Website)
	}
	if a.Logo != nil {
		form.File("logo", filepath.Base(a.Logo.Name), a.Logo.Content)
	}
	for _, doc := range a.Documents {
		form.File("documents", filepath.Base(doc.Name), doc.Content)
	}
	return form
}
