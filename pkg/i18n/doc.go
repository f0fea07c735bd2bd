// Package i18n provides YAML-backed translations and request language
// negotiation.
//
// Translation files hold one tree per language:
//
//	pt-BR:
//	  booking:
//	    sent: "Agendamento enviado, %{name}!"
//
// Keys are dot-separated paths into the tree. Placeholders use %{name}:
//
//	tr, err := i18n.NewTranslator(ctx, localesFS, i18n.WithDefaultLanguage("pt-BR"))
//	msg := tr.T("en", "booking.sent", "name", "Ana")
//
// A key missing in the requested language resolves in the default language,
// then to the key itself, so a page never renders an empty label.
//
// Matcher negotiates languages with golang.org/x/text/language. Middleware
// reads ?lang=, the lang cookie and Accept-Language, stores the result on the
// request context (LanguageFromContext) and sets Content-Language.
package i18n
