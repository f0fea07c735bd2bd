package inquiry

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/modules/effects"
	"github.com/dmitrymomot/storefront/pkg/binder"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/ratelimit"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

const defaultCounterTick = 16 * time.Millisecond

// ErrSubmissionUnavailable is what visitors see when delivery failed.
var ErrSubmissionUnavailable = handler.NewHTTPError(http.StatusServiceUnavailable, "errors.submission_failed")

// Handlers serves the landing page and both forms.
type Handlers struct {
	cfg          Config
	service      *Service
	catalog      *Catalog
	loc          *Localizer
	views        *Views
	languages    []string
	limiter      ratelimit.Limiter
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// HandlersOption configures Handlers.
type HandlersOption func(*Handlers)

// WithLimiter rate limits the submit routes per client IP.
func WithLimiter(l ratelimit.Limiter) HandlersOption {
	return func(h *Handlers) { h.limiter = l }
}

// WithLanguages lists the languages offered in the language switcher.
func WithLanguages(langs ...string) HandlersOption {
	return func(h *Handlers) { h.languages = langs }
}

func WithHandlersLogger(log *slog.Logger) HandlersOption {
	return func(h *Handlers) {
		if log != nil {
			h.log = log
		}
	}
}

func NewHandlers(
	cfg Config,
	service *Service,
	catalog *Catalog,
	loc *Localizer,
	views *Views,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...HandlersOption,
) *Handlers {
	h := &Handlers{
		cfg:          cfg,
		service:      service,
		catalog:      catalog,
		loc:          loc,
		views:        views,
		errorHandler: errorHandler,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handlers) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(h.page,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))

	r.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(ratelimit.Middleware(h.limiter,
				ratelimit.Composite(ratelimit.ByClientIP(), ratelimit.ByRoute()),
				ratelimit.WithOnLimited(h.limited),
				ratelimit.WithOnError(h.limiterFailed),
			))
		}

		r.Post("/booking", handler.Wrap(h.submitBooking,
			handler.WithBinders[handler.Context, BookingRequest](binder.Form()),
			handler.WithErrorHandler[handler.Context, BookingRequest](h.errorHandler),
		))
		r.Post("/contact", handler.Wrap(h.submitContact,
			handler.WithBinders[handler.Context, ContactRequest](binder.Form()),
			handler.WithErrorHandler[handler.Context, ContactRequest](h.errorHandler),
		))
	})

	r.Post("/booking/fields/{field}", handler.Wrap(h.validateBookingField,
		handler.WithBinders[handler.Context, BookingFieldRequest](binder.Path(chi.URLParam), binder.Form()),
		handler.WithErrorHandler[handler.Context, BookingFieldRequest](h.errorHandler),
	))
	r.Post("/contact/fields/{field}", handler.Wrap(h.validateContactField,
		handler.WithBinders[handler.Context, ContactFieldRequest](binder.Path(chi.URLParam), binder.Form()),
		handler.WithErrorHandler[handler.Context, ContactFieldRequest](h.errorHandler),
	))

	r.Post("/booking/phone", handler.Wrap(h.formatPhone,
		handler.WithBinders[handler.Context, PhoneRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, PhoneRequest](h.errorHandler),
	))

	r.Get("/stats", handler.Wrap(h.stats,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))

	r.Post("/ui/scroll", handler.Wrap(h.scroll,
		handler.WithBinders[handler.Context, ScrollSignals](binder.Signals()),
		handler.WithErrorHandler[handler.Context, ScrollSignals](h.errorHandler),
	))
	r.Post("/ui/menu/{event}", handler.Wrap(h.menu,
		handler.WithBinders[handler.Context, MenuSignals](binder.Path(chi.URLParam), binder.Signals()),
		handler.WithErrorHandler[handler.Context, MenuSignals](h.errorHandler),
	))

	return r
}

func (h *Handlers) page(ctx handler.Context, _ struct{}) handler.Response {
	lang := h.lang(ctx)
	return handler.Templ(h.views.Page(h.pageParams(lang, FormParams{})))
}

func (h *Handlers) submitBooking(ctx handler.Context, req BookingRequest) handler.Response {
	return h.submit(ctx, FormBooking, req.Fields(h.catalog))
}

func (h *Handlers) submitContact(ctx handler.Context, req ContactRequest) handler.Response {
	return h.submit(ctx, FormContact, req.Fields(h.catalog))
}

// submit answers DataStar clients with a stream of patches (errors, or
// loading, reset form and a success notice that disappears after
// Outcome.ShowFor). Plain posts get the whole page back.
func (h *Handlers) submit(ctx handler.Context, form string, fields []Field) handler.Response {
	lang := h.lang(ctx)

	if handler.IsDataStar(ctx.Request()) {
		return handler.SSE(func(stream handler.StreamContext) error {
			return h.streamSubmit(stream, lang, form, fields)
		})
	}

	outcome, err := h.service.Submit(ctx, form, fields)
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		params := h.formParams(lang, form, Values(fields), h.loc.Errors(lang, errs))
		return handler.TemplWithStatus(http.StatusUnprocessableEntity, h.views.Page(h.pageParams(lang, params)))
	}
	if err != nil {
		return handler.Error(errors.Join(ErrSubmissionUnavailable, err))
	}

	params := h.formParams(lang, form, nil, nil)
	params.Success = &SuccessParams{
		Lang:    lang,
		Form:    form,
		Message: h.loc.Success(lang, outcome),
		ShowFor: outcome.ShowFor,
	}
	return handler.Templ(h.views.Page(h.pageParams(lang, params)))
}

func (h *Handlers) streamSubmit(stream handler.StreamContext, lang, form string, fields []Field) error {
	formTarget := handler.WithTarget("#" + form + "-form")

	if err := h.service.Validate(stream, form, fields); err != nil {
		errs := validator.ExtractValidationErrors(err)
		if errs == nil {
			return err
		}
		return stream.SendComponent(
			h.formView(form)(h.formParams(lang, form, Values(fields), h.loc.Errors(lang, errs))),
			formTarget,
		)
	}

	loadingTarget := handler.WithTarget("#" + form + "-loading")
	if err := stream.SendComponent(h.views.Loading(LoadingParams{Lang: lang, Form: form, Active: true}), loadingTarget); err != nil {
		return err
	}

	outcome, err := h.service.Submit(stream, form, fields)

	if sendErr := stream.SendComponent(h.views.Loading(LoadingParams{Lang: lang, Form: form}), loadingTarget); sendErr != nil {
		return sendErr
	}
	if err != nil {
		return errors.Join(ErrSubmissionUnavailable, err)
	}

	success := SuccessParams{
		Lang:    lang,
		Form:    form,
		Message: h.loc.Success(lang, outcome),
		ShowFor: outcome.ShowFor,
	}
	successTarget := handler.WithTarget("#" + form + "-success")

	patches := []handler.TemplPatch{handler.Patch(h.views.Success(success), successTarget)}
	if outcome.ResetForm {
		patches = append(patches, handler.Patch(h.formView(form)(h.formParams(lang, form, nil, nil)), formTarget))
	}
	if err := stream.SendMultiple(patches...); err != nil {
		return err
	}

	timer := time.NewTimer(outcome.ShowFor)
	defer timer.Stop()
	select {
	case <-stream.Done():
		return nil
	case <-timer.C:
	}

	success.Hidden = true
	return stream.SendComponent(h.views.Success(success), successTarget)
}

func (h *Handlers) validateBookingField(ctx handler.Context, req BookingFieldRequest) handler.Response {
	return h.validateField(ctx, FormBooking, req.Field, req.BookingRequest.Fields(h.catalog))
}

func (h *Handlers) validateContactField(ctx handler.Context, req ContactFieldRequest) handler.Response {
	return h.validateField(ctx, FormContact, req.Field, req.ContactRequest.Fields(h.catalog))
}

func (h *Handlers) validateField(ctx handler.Context, form, name string, fields []Field) handler.Response {
	field, ok := FindField(fields, name)
	if !ok {
		return handler.Error(errors.Join(handler.ErrNotFound, ErrUnknownField))
	}

	lang := h.lang(ctx)
	params := FieldErrorParams{Lang: lang, Form: form, Field: name}
	if res := h.service.Validator().Blur(field); !res.Valid() {
		params.Message = h.loc.Error(lang, res.Errors[0])
	}

	return handler.Templ(h.views.FieldError(params), handler.WithTarget("#"+FieldErrorID(form, name)))
}

func (h *Handlers) formatPhone(_ handler.Context, req PhoneRequest) handler.Response {
	return handler.Signals(map[string]any{"telefone": sanitizer.FormatPhone(req.Phone)})
}

// stats plays the "about" counters as signal patches, one frame per tick.
func (h *Handlers) stats(_ handler.Context, _ struct{}) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		counters := make([]effects.Counter, 0, len(h.catalog.Stats))
		for _, st := range h.catalog.Stats {
			counters = append(counters, effects.Counter{Key: st.Key, Target: st.Target})
		}

		playback, err := effects.NewCounterGroup(counters...).Start(stream)
		if err != nil {
			return err
		}

		tick := h.cfg.CounterTick
		if tick <= 0 {
			tick = defaultCounterTick
		}
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for {
			values, ok := playback.Next(stream)
			if !ok {
				return nil
			}

			signals := make(map[string]any, len(values))
			for key, v := range values {
				signals[StatSignal(key)] = v
			}
			if err := stream.SendSignals(signals); err != nil {
				return err
			}

			select {
			case <-stream.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}

func (h *Handlers) limited(w http.ResponseWriter, r *http.Request, _ ratelimit.Result) {
	h.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
}

func (h *Handlers) limiterFailed(r *http.Request, err error) {
	h.log.WarnContext(r.Context(), "rate limiter unavailable",
		logger.Component("inquiry"),
		logger.Error(err),
	)
}

func (h *Handlers) lang(ctx handler.Context) string {
	return i18n.LanguageFromContext(ctx, DefaultLanguage)
}

func (h *Handlers) formView(form string) func(FormParams) templ.Component {
	if form == FormContact {
		return h.views.ContactForm
	}
	return h.views.BookingForm
}

func (h *Handlers) services(lang string) []ServiceChoice {
	out := make([]ServiceChoice, 0, len(h.catalog.Services))
	for _, s := range h.catalog.Services {
		out = append(out, ServiceChoice{ID: s.ID, Name: h.catalog.ServiceName(s.ID, lang), Duration: s.Duration})
	}
	return out
}

func (h *Handlers) formParams(lang, form string, values, errs map[string]string) FormParams {
	p := FormParams{
		Lang:    lang,
		Form:    form,
		Values:  values,
		Errors:  errs,
		MinDate: h.service.Validator().MinDate(),
	}
	if form == FormBooking {
		p.Services = h.services(lang)
		p.Slots = h.catalog.Slots
	}
	return p
}

// pageParams builds the landing page with both forms empty, except the
// one given in override.
func (h *Handlers) pageParams(lang string, override FormParams) PageParams {
	p := PageParams{
		Lang:         lang,
		Languages:    h.languages,
		BusinessName: h.cfg.BusinessName,
		Services:     h.services(lang),
		Stats:        h.catalog.Stats,
		Booking:      h.formParams(lang, FormBooking, nil, nil),
		Contact:      h.formParams(lang, FormContact, nil, nil),
		Effects:      h.pageEffects(),
	}
	switch override.Form {
	case FormBooking:
		p.Booking = override
	case FormContact:
		p.Contact = override
	}
	return p
}

// FieldErrorID is the element id of a field's inline message.
func FieldErrorID(form, field string) string {
	return "error-" + form + "-" + field
}

// StatSignal is the DataStar signal carrying a counter's current value.
func StatSignal(key string) string {
	return "stat_" + key
}
