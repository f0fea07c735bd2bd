package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// html is a small buffered writer for hand-written components. The first
// write error sticks and is returned by err.
type html struct {
	ctx context.Context
	w   io.Writer
	e   error
}

func newHTML(ctx context.Context, w io.Writer) *html {
	return &html{ctx: ctx, w: w}
}

func (h *html) raw(s string) *html {
	if h.e == nil {
		_, h.e = io.WriteString(h.w, s)
	}
	return h
}

func (h *html) text(s string) *html {
	return h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) *html {
	return h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// attrIf writes a boolean attribute when on is set.
func (h *html) attrIf(name string, on bool) *html {
	if on {
		h.raw(" " + name)
	}
	return h
}

func (h *html) open(tag string, attrs ...string) *html {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.attr(attrs[i], attrs[i+1])
	}
	return h.raw(">")
}

func (h *html) close(tag string) *html {
	return h.raw("</" + tag + ">")
}

// el writes <tag attrs...>text</tag>.
func (h *html) el(tag, text string, attrs ...string) *html {
	return h.open(tag, attrs...).text(text).close(tag)
}

func (h *html) component(c templ.Component) *html {
	if h.e == nil && c != nil {
		h.e = c.Render(h.ctx, h.w)
	}
	return h
}

func (h *html) err() error {
	return h.e
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		fn(h)
		return h.err()
	})
}
