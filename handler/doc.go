// Package handler provides type-safe HTTP request handling for server-rendered
// pages that are progressively enhanced with DataStar.
//
// A HandlerFunc receives a Context and a bound request struct and returns a
// Response. Wrap turns it into an http.HandlerFunc, running the configured
// binders first and routing any binding or rendering error to the
// ErrorHandler:
//
//	type BookingRequest struct {
//		Name string `form:"nome"`
//	}
//
//	func submit(ctx handler.Context, req BookingRequest) handler.Response {
//		return handler.Templ(views.Success())
//	}
//
//	r.Post("/booking", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, BookingRequest](binder.Form()),
//	))
//
// # Responses
//
// Every response adapts to the request type. DataStar actions get SSE
// events (element patches, signal patches, client-side redirects) while
// regular requests get HTML, JSON or an HTTP redirect:
//
//	handler.Templ(component, handler.WithTarget("#booking-form"))
//	handler.TemplPartial(fragment, fullPage)
//	handler.TemplMulti(handler.Patch(a), handler.Patch(b))
//	handler.Signals(map[string]any{"loading": false})
//	handler.Redirect("/?sent=booking")
//	handler.SSE(func(stream handler.StreamContext) error { ... })
//
// # Errors
//
// NewErrorHandler classifies errors: HTTPError carries its own status,
// validator.ValidationErrors map to 422, anything else is a 500. Client
// errors are logged at warn level, server errors at error level. DataStar
// requests receive a toast, regular requests an error page.
package handler
