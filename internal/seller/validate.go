package seller

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"storefront-client/internal/utils"

	"github.com/go-playground/validator/v10"
)

const maxFileSize = 5 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return utils.ValidPhone(fl.Field().String())
	})
	return v
}

func (a Application) normalized() Application {
	a.StoreName = utils.CollapseSpaces(a.StoreName)
	a.OwnerName = utils.CollapseSpaces(a.OwnerName)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Phone = strings.TrimSpace(a.Phone)
	a.Category = strings.TrimSpace(a.Category)
	a.Description = strings.TrimSpace(a.Description)
	a.Website = strings.TrimSpace(a.Website)
	return a
}

// Validate checks fields and attachments before anything is uploaded.
func Validate(a Application) error {
	a = a.normalized()
	fields := map[string]string{}

	if err := validate.Struct(a); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range errs {
			fields[fe.Field()] = validationMessage(fe)
		}
	}

	if a.Logo != nil {
		if err := checkFile(*a.Logo); err != nil {
			fields["logo"] = err.Error()
		}
	}
	for i, f := range a.Documents {
		if err := checkFile(f); err != nil {
			fields[fmt.Sprintf("documents[%d]", i)] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkFile(f File) error {
	if len(f.Content) == 0 {
		return ErrEmptyFile
	}
	if len(f.Content) > maxFileSize {
		return ErrFileTooLarge
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(f.Name))] {
		return ErrUnsupportedFile
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return "needs at least one document"
	case "email":
		return "must be a valid email"
	case "phone":
		return "must be a valid phone number"
	case "url":
		return "must be a valid URL"
	}
	return "is invalid"
}
