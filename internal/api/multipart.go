package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

type formField struct {
	name, value string
}

type formFile struct {
	field, filename string
	content         []byte
}

// MultipartForm collects fields and files for a multipart/form-data request.
// It is encoded once per call so a retried request resends identical bytes.
type MultipartForm struct {
	fields []formField
	files  []formFile
}

func NewMultipartForm() *MultipartForm {
	return &MultipartForm{}
}

func (f *MultipartForm) Field(name, value string) *MultipartForm {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

func (f *MultipartForm) File(field, filename string, content []byte) *MultipartForm {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

// Encode renders the form body and its Content-Type header value.
func (f *MultipartForm) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", file.field, err)
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", file.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
