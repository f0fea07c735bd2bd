package binder

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Signals binds the DataStar signal store a browser sends with an action.
// GET requests carry it in the "datastar" query parameter, other methods
// as a JSON body. Fields use their `json` tags.
//
// A GET without the parameter is reported with ErrBinderNotApplicable.
//
//	type ScrollSignals struct {
//		ScrollTop float64 `json:"scrollTop"`
//	}
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			if !r.URL.Query().Has(datastar.DatastarKey) {
				return ErrBinderNotApplicable
			}
		} else {
			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
			}
			if mediaType != "application/json" {
				return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
			}
		}

		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}
