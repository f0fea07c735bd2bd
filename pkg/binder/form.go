package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds the in-memory part of a multipart form.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies
// into fields tagged `form:"name"`. Values are taken as submitted; trimming and
// validation belong to the caller.
//
// Requests without a body content type (GET, HEAD) are reported with
// ErrBinderNotApplicable so that handler.Wrap can skip the binder.
//
//	type BookingRequest struct {
//		Name  string `form:"nome"`
//		Phone string `form:"telefone"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				return ErrBinderNotApplicable
			}
			return fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
		default:
			return fmt.Errorf("%w: got %s, expected a form encoding", ErrUnsupportedMediaType, mediaType)
		}

		return bindStruct(v, "form", func(name string) []string {
			if r.MultipartForm != nil {
				if vals, ok := r.MultipartForm.Value[name]; ok {
					return vals
				}
			}
			return r.PostForm[name]
		}, ErrInvalidForm)
	}
}
