// Package views is the default markup for the inquiry module. Components
// are plain templ components, so the handlers treat them exactly like
// generated templates.
package views

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/modules/effects"
	"github.com/dmitrymomot/storefront/modules/inquiry"
)

// DataStarScript is the client bundle the page loads.
const DataStarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// Set renders the inquiry pages with translated labels.
type Set struct {
	loc     *inquiry.Localizer
	catalog *inquiry.Catalog
}

// New returns the default components. catalog supplies the time slots and
// fields; loc translates labels and headings.
func New(loc *inquiry.Localizer, catalog *inquiry.Catalog) *inquiry.Views {
	s := &Set{loc: loc, catalog: catalog}
	return &inquiry.Views{
		Page:         s.Page,
		BookingForm:  s.BookingForm,
		ContactForm:  s.ContactForm,
		FieldError:   s.FieldError,
		Loading:      s.Loading,
		Success:      s.Success,
		Notification: Notification,
	}
}

func (s *Set) t(lang, key, fallback string, args ...string) string {
	return s.loc.T(lang, key, fallback, args...)
}

// Page is the whole landing page.
func (s *Set) Page(p inquiry.PageParams) templ.Component {
	return component(func(h *html) {
		lang := p.Lang
		h.raw("<!DOCTYPE html>").open("html", "lang", lang)
		h.open("head").raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.el("title", s.t(lang, "page.title", p.BusinessName, "business", p.BusinessName))
		h.raw(`<script type="module" src="` + DataStarScript + `"></script>`)
		h.raw("<script>" + measureViewportScript + "</script>")
		h.close("head")

		fx := p.Effects
		h.raw("<body")
		if class := fx.Menu.BodyClass(); class != "" {
			h.attr("class", class)
		}
		h.attr("data-signals", signalsJSON(fx.Signals)).
			attr("data-class-menu-open", "$menuOpen").
			attr("data-on-scroll__window__throttle.100ms", "$viewport = measureViewport(); @post('/ui/scroll')").
			attr("data-effect", "$scrollTarget >= 0 && (window.scrollTo({top: $scrollTarget, behavior: 'smooth'}), $scrollTarget = -1)").
			raw(">")

		s.header(h, p)

		h.raw(`<main>`)
		s.hero(h, p)
		s.services(h, p)
		s.about(h, p)

		revealSection(h, "agendamento", "booking")
		h.el("h2", s.t(lang, "booking.title", "Agende seu horário"))
		formSection(h, p.Booking, s.BookingForm(p.Booking))
		h.close("section")

		revealSection(h, "contato", "contact")
		h.el("h2", s.t(lang, "contact.title", "Fale conosco"))
		formSection(h, p.Contact, s.ContactForm(p.Contact))
		h.close("section")
		h.raw(`</main>`)

		h.open("div", "id", "toast-container").close("div")
		h.raw("<button type=\"button\" class=\"scroll-to-top\"").
			attr("aria-label", s.t(lang, "page.to_top", "Voltar ao topo"))
		if !fx.State.ScrollToTop {
			h.attr("style", "display: none")
		}
		h.attr("data-show", "$toTop").
			attr("data-on-click", "window.scrollTo({top: 0, behavior: 'smooth'})").
			raw(">&uarr;</button>")

		h.close("body").close("html")
	})
}

func (s *Set) header(h *html, p inquiry.PageParams) {
	lang := p.Lang
	head := p.Effects.State.Header
	menu := p.Effects.Menu

	h.raw(`<header id="header"`).
		attr("style", fmt.Sprintf("background: %s; backdrop-filter: %s; transform: %s",
			head.Background(), head.BackdropFilter(), head.Transform())).
		attr("data-style-background", "$header.background").
		attr("data-style-backdrop-filter", "$header.backdropFilter").
		attr("data-style-transform", "$header.transform").
		raw(">")
	h.el("a", p.BusinessName, "href", "#inicio", "class", "logo")

	h.raw(`<button type="button" id="hamburger"`).
		attr("class", classes("hamburger", menu.HamburgerClass())).
		attr("aria-label", s.t(lang, "page.menu", "Menu")).
		attr("data-class-active", "$menuOpen").
		attr("data-on-click", "@post('/ui/menu/toggle')").
		raw("><span></span><span></span><span></span></button>")

	h.raw(`<nav id="nav-menu"`).
		attr("class", classes("nav-menu", menu.NavClass())).
		attr("data-class-active", "$menuOpen").
		attr("data-on-click__outside", "$menuOpen && @post('/ui/menu/outside_click')").
		raw(">")
	for _, link := range []struct{ href, key, fallback string }{
		{"#servicos", "nav.services", "Serviços"},
		{"#sobre", "nav.about", "Sobre"},
		{"#agendamento", "nav.booking", "Agendamento"},
		{"#contato", "nav.contact", "Contato"},
	} {
		h.el("a", s.t(lang, link.key, link.fallback),
			"href", link.href,
			"class", "nav-link",
			"data-on-click__prevent", anchorScript(link.href),
		)
	}
	for _, l := range p.Languages {
		h.el("a", l, "href", "?lang="+l, "class", "lang-link", "hreflang", l)
	}
	h.close("nav").close("header")
}

// anchorScript reports the target's offset; the server answers with the
// scroll position and closes the menu.
func anchorScript(href string) string {
	return fmt.Sprintf("$anchorTop = document.querySelector('%s').offsetTop; @post('/ui/menu/link_clicked')", href)
}

func (s *Set) hero(h *html, p inquiry.PageParams) {
	lang := p.Lang
	h.open("section", "id", "inicio", "class", "hero")
	h.el("p", s.t(lang, "page.tagline", ""), "class", "tagline")
	heroImage(h, p.Effects.Hero)
	h.raw(`<button type="button" class="scroll-indicator"`).
		attr("style", fmt.Sprintf("opacity: %g", p.Effects.State.IndicatorOpacity)).
		attr("data-style-opacity", "$indicatorOpacity").
		attr("data-on-click", "document.getElementById('servicos').scrollIntoView({behavior: 'smooth'})").
		raw(">").text(s.t(lang, "page.scroll", "")).raw("</button>")
	h.close("section")
}

func (s *Set) services(h *html, p inquiry.PageParams) {
	revealSection(h, "servicos", "services")
	h.el("h2", s.t(p.Lang, "services.title", "Nossos serviços"))
	for _, svc := range p.Services {
		id := inquiry.SlideID(svc.ID)
		h.raw(`<article class="service-card" data-slide`).
			attr("id", id).
			attr("data-class-slide-up", signalKey("slidUp", id)).
			attr("data-class-fade-in", signalKey("slidUp", id)).
			raw(">")
		h.el("h3", svc.Name)
		if svc.Duration > 0 {
			h.el("p", formatDuration(svc.Duration), "class", "duration")
		}
		h.close("article")
	}
	h.close("section")
}

func (s *Set) about(h *html, p inquiry.PageParams) {
	h.raw(`<section id="sobre" class="about" data-reveal`).
		attr("data-class-fade-in", signalKey("revealed", "sobre")).
		attr("data-effect", "$startCounters && @get('/stats')").
		raw(">")
	h.el("h2", s.t(p.Lang, "about.title", "Sobre nós"))
	h.open("div", "class", "stats")
	for _, st := range p.Stats {
		target := strconv.Itoa(st.Target)
		h.open("div", "class", "stat")
		h.raw(`<span class="stat-number"`).
			attr("data-target", target).
			attr("data-text", "$"+inquiry.StatSignal(st.Key)).
			raw(">0</span>")
		h.el("span", s.t(p.Lang, "stats."+st.Key, st.Key), "class", "stat-label")
		h.close("div")
	}
	h.close("div").close("section")
}

// heroImage renders the hero picture. A lazy image starts on a placeholder
// and swaps in data-src when it scrolls into view; the noscript copy points
// at the real source.
func heroImage(h *html, img effects.LazyImage) {
	h.raw(`<div class="hero-image"`).
		attr("data-style-transform", "$parallax").
		raw(">")
	switch {
	case img.Src == "":
	case img.Loaded():
		h.raw("<img").attr("src", img.Src).attr("alt", "").raw(">")
	default:
		h.raw(`<img class="lazy"`).
			attr("src", img.Src).
			attr("data-src", img.DataSrc).
			attr("alt", "").
			attr("data-on-intersect__once", "el.src = el.dataset.src; el.classList.remove('lazy')").
			raw(">")
		h.raw("<noscript><img").attr("src", img.Load().Src).attr("alt", "").raw("></noscript>")
	}
	h.raw("</div>")
}

// revealSection opens a section that fades in once the server reports it
// above the reveal line.
func revealSection(h *html, id, class string) {
	h.raw("<section data-reveal").
		attr("id", id).
		attr("class", class).
		attr("data-class-fade-in", signalKey("revealed", id)).
		raw(">")
}

func signalKey(signal, key string) string {
	return "$" + signal + "[" + strconv.Quote(key) + "]"
}

func classes(base, extra string) string {
	if extra == "" {
		return base
	}
	return base + " " + extra
}

func signalsJSON(signals map[string]any) string {
	b, err := json.Marshal(signals)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// measureViewportScript reports the scroll offset, the top edge of every
// [data-reveal] element and the visible share of every [data-slide] element
// and of the about section.
const measureViewportScript = `function measureViewport() {
  const h = window.innerHeight;
  const ratio = (el) => {
    const r = el.getBoundingClientRect();
    return r.height > 0 ? Math.max(0, Math.min(r.bottom, h) - Math.max(r.top, 0)) / r.height : 0;
  };
  const v = {scrollTop: window.scrollY, height: h, tops: {}, ratios: {}, statsRatio: 0};
  document.querySelectorAll('[data-reveal]').forEach((el) => { v.tops[el.id] = el.getBoundingClientRect().top; });
  document.querySelectorAll('[data-slide]').forEach((el) => { v.ratios[el.id] = ratio(el); });
  const about = document.getElementById('sobre');
  if (about) { v.statsRatio = ratio(about); }
  return v;
}`

func formSection(h *html, p inquiry.FormParams, form templ.Component) {
	var success templ.Component = emptySlot(p.Form + "-success")
	if p.Success != nil {
		success = successNotice(*p.Success)
	}
	h.component(success)
	h.component(form)
	h.component(loading(inquiry.LoadingParams{Lang: p.Lang, Form: p.Form}))
}

// BookingForm renders the appointment form.
func (s *Set) BookingForm(p inquiry.FormParams) templ.Component {
	fields := inquiry.BookingRequest{
		Name:    p.Values["nome"],
		Phone:   p.Values["telefone"],
		Email:   p.Values["email"],
		Service: p.Values["servico"],
		Date:    p.Values["data"],
		Time:    p.Values["horario"],
	}.Fields(s.catalog)
	return s.form(p, fields, s.t(p.Lang, "booking.submit", "Agendar"))
}

// ContactForm renders the message form.
func (s *Set) ContactForm(p inquiry.FormParams) templ.Component {
	fields := inquiry.ContactRequest{
		Name:    p.Values["nome"],
		Email:   p.Values["email"],
		Phone:   p.Values["telefone"],
		Message: p.Values["mensagem"],
	}.Fields(s.catalog)
	return s.form(p, fields, s.t(p.Lang, "contact.submit", "Enviar mensagem"))
}

func (s *Set) form(p inquiry.FormParams, fields []inquiry.Field, submit string) templ.Component {
	return component(func(h *html) {
		action := "/" + p.Form
		h.raw("<form").
			attr("id", p.Form+"-form").
			attr("class", p.Form+"-form").
			attr("method", "post").
			attr("action", action).
			attr("novalidate", "").
			attr("data-on-submit__prevent", "@post('"+action+"', {contentType: 'form'})").
			raw(">")

		for _, f := range fields {
			s.field(h, p, f)
		}

		h.el("button", submit, "type", "submit", "class", "btn-submit")
		h.close("form")
	})
}

func (s *Set) field(h *html, p inquiry.FormParams, f inquiry.Field) {
	id := p.Form + "-" + f.Name
	msg := p.Errors[f.Name]
	class := "form-group"
	if msg != "" {
		class += " has-error"
	}

	h.open("div", "class", class)
	h.el("label", s.loc.Label(p.Lang, f), "for", id)

	blur := fmt.Sprintf("@post('/%s/fields/%s', {contentType: 'form'})", p.Form, f.Name)

	switch {
	case f.Kind == inquiry.KindSelect:
		h.raw("<select").attr("id", id).attr("name", f.Name).attrIf("required", f.Required).attr("data-on-blur", blur).raw(">")
		h.el("option", s.t(p.Lang, "booking.choose_"+selectKey(f.Name), labelFallback(f)), "value", "")
		for _, opt := range s.options(p, f) {
			h.raw("<option").attr("value", opt.value).attrIf("selected", opt.value == f.Value).raw(">").text(opt.label).raw("</option>")
		}
		h.raw("</select>")

	case f.Multiline:
		h.raw("<textarea").attr("id", id).attr("name", f.Name).attr("rows", "5").attrIf("required", f.Required).
			attr("data-on-blur", blur).raw(">").text(f.Value).raw("</textarea>")

	default:
		h.raw("<input").
			attr("id", id).
			attr("name", f.Name).
			attr("type", inputType(f.Kind)).
			attr("value", f.Value).
			attrIf("required", f.Required).
			attr("data-on-blur", blur)
		if f.MaxLen > 0 {
			h.attr("maxlength", strconv.Itoa(f.MaxLen))
		}
		if f.Kind == inquiry.KindDate && p.MinDate != "" {
			h.attr("min", p.MinDate)
		}
		if f.Kind == inquiry.KindPhone && p.Form == inquiry.FormBooking {
			h.attr("data-bind-telefone", "").
				attr("data-on-input__debounce.150ms", "@post('/booking/phone', {contentType: 'form'})")
		}
		h.raw(">")
	}

	h.component(fieldError(inquiry.FieldErrorParams{Lang: p.Lang, Form: p.Form, Field: f.Name, Message: msg}))
	h.close("div")
}

type option struct{ value, label string }

func (s *Set) options(p inquiry.FormParams, f inquiry.Field) []option {
	if f.Name == "servico" {
		out := make([]option, 0, len(p.Services))
		for _, svc := range p.Services {
			out = append(out, option{value: svc.ID, label: svc.Name})
		}
		return out
	}
	out := make([]option, 0, len(f.Options))
	for _, o := range f.Options {
		out = append(out, option{value: o, label: o})
	}
	return out
}

func selectKey(field string) string {
	if field == "horario" {
		return "time"
	}
	return "service"
}

func labelFallback(f inquiry.Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func inputType(k inquiry.Kind) string {
	switch k {
	case inquiry.KindEmail:
		return "email"
	case inquiry.KindPhone:
		return "tel"
	case inquiry.KindDate:
		return "date"
	default:
		return "text"
	}
}

// FieldError is the inline message slot of one field.
func (s *Set) FieldError(p inquiry.FieldErrorParams) templ.Component {
	return fieldError(p)
}

func fieldError(p inquiry.FieldErrorParams) templ.Component {
	return component(func(h *html) {
		class := "error-message"
		if p.Message != "" {
			class += " show"
		}
		h.el("div", p.Message, "id", inquiry.FieldErrorID(p.Form, p.Field), "class", class, "role", "alert")
	})
}

// Loading is the submit spinner.
func (s *Set) Loading(p inquiry.LoadingParams) templ.Component {
	return loading(p)
}

func loading(p inquiry.LoadingParams) templ.Component {
	return component(func(h *html) {
		class := "loading"
		if p.Active {
			class += " active"
		}
		h.open("div", "id", p.Form+"-loading", "class", class, "aria-live", "polite")
		if p.Active {
			h.raw(`<div class="loading-spinner"></div>`)
		}
		h.close("div")
	})
}

// Success is the confirmation notice.
func (s *Set) Success(p inquiry.SuccessParams) templ.Component {
	if p.Hidden {
		return emptySlot(p.Form + "-success")
	}
	return successNotice(p)
}

func successNotice(p inquiry.SuccessParams) templ.Component {
	return component(func(h *html) {
		h.el("div", p.Message,
			"id", p.Form+"-success",
			"class", "success-message show",
			"role", "status",
			"style", fmt.Sprintf("--show-for: %dms", p.ShowFor.Milliseconds()),
		)
	})
}

func emptySlot(id string) templ.Component {
	return component(func(h *html) {
		h.open("div", "id", id).close("div")
	})
}

// Notification is the e-mail body sent to the business.
func Notification(p inquiry.NotificationParams) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html><body style="font-family: sans-serif">`)
		h.el("h1", p.Heading, "style", "font-size: 18px")
		h.raw(`<table cellpadding="6" style="border-collapse: collapse">`)
		for _, row := range p.Rows {
			h.raw("<tr>").el("th", row.Label, "align", "left").open("td")
			for i, line := range strings.Split(row.Value, "\n") {
				if i > 0 {
					h.raw("<br>")
				}
				h.text(line)
			}
			h.raw("</td></tr>")
		}
		h.raw("</table>")
		h.el("p", p.ReceivedAt+" · "+p.BusinessName, "style", "color: #888; font-size: 12px")
		h.raw("</body></html>")
	})
}

// ErrorPage renders a full error page for handler.NewErrorHandler.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`).
			text(strconv.Itoa(p.StatusCode)).raw("</title></head><body>")
		h.open("main", "class", "error-page")
		h.el("h1", strconv.Itoa(p.StatusCode))
		h.el("p", p.Error)
		if p.RetryURL != "" {
			h.el("a", "↻", "href", p.RetryURL)
		}
		if p.RequestID != "" {
			h.el("small", p.RequestID, "class", "request-id")
		}
		h.close("main").raw("</body></html>")
	})
}

// ErrorToast renders a toast for DataStar requests.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return component(func(h *html) {
		h.el("div", p.Message, "class", "toast toast-"+p.Type, "role", "alert", "data-request-id", p.RequestID)
	})
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02d", m/60, m%60)
}
