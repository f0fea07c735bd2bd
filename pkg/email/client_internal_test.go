package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() SendEmailParams {
	return SendEmailParams{
		SendTo:   "owner@example.com",
		Subject:  "Contato",
		BodyHTML: "<p>Olá</p>",
		Tag:      "contact",
	}
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	cfg := Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
		SenderName:           "Studio",
		SupportEmail:         "hello@example.com",
	}

	newClient := func(t *testing.T, h http.HandlerFunc) EmailSender {
		t.Helper()
		srv := httptest.NewServer(h)
		t.Cleanup(srv.Close)

		sender, err := NewPostmarkClient(cfg)
		require.NoError(t, err)
		sender.(*postmarkClient).client.BaseURL = srv.URL
		return sender
	}

	t.Run("sends with fallback reply-to", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		sender := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"ErrorCode":0,"Message":"OK","MessageID":"m-1"}`))
		})

		require.NoError(t, sender.SendEmail(context.Background(), testParams()))
		assert.Equal(t, "Studio <noreply@example.com>", got["From"])
		assert.Equal(t, "hello@example.com", got["ReplyTo"])
		assert.Equal(t, "contact", got["Tag"])
	})

	t.Run("provider error code", func(t *testing.T) {
		t.Parallel()

		sender := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ErrorCode":406,"Message":"Inactive recipient"}`))
		})

		err := sender.SendEmail(context.Background(), testParams())
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "406")
	})

	t.Run("invalid params never reach the api", func(t *testing.T) {
		t.Parallel()

		sender := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})
		assert.ErrorIs(t, sender.SendEmail(context.Background(), SendEmailParams{}), ErrInvalidParams)
	})
}

func TestNewPostmarkClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewPostmarkClient(Config{PostmarkAccountToken: "a", SenderEmail: "x@example.com"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "PostmarkServerToken")

	_, err = NewPostmarkClient(Config{PostmarkServerToken: "s", SenderEmail: "x@example.com"})
	assert.Contains(t, err.Error(), "PostmarkAccountToken")

	_, err = NewPostmarkClient(Config{PostmarkServerToken: "s", PostmarkAccountToken: "a", SenderEmail: "x@example.com", SupportEmail: "bad"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

type fakeResendEmails struct {
	req *resend.SendEmailRequest
	err error
}

func (f *fakeResendEmails) SendWithContext(_ context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "re-1"}, nil
}

func TestResendClient_SendEmail(t *testing.T) {
	t.Parallel()

	cfg := Config{ResendAPIKey: "re_key", SenderEmail: "noreply@example.com", SupportEmail: "hello@example.com"}

	t.Run("maps params", func(t *testing.T) {
		t.Parallel()

		fake := &fakeResendEmails{}
		c := &resendClient{emails: fake, config: cfg}

		p := testParams()
		p.ReplyTo = "visitor@example.com"
		require.NoError(t, c.SendEmail(context.Background(), p))

		require.NotNil(t, fake.req)
		assert.Equal(t, "noreply@example.com", fake.req.From)
		assert.Equal(t, []string{"owner@example.com"}, fake.req.To)
		assert.Equal(t, "visitor@example.com", fake.req.ReplyTo)
		assert.Equal(t, "<p>Olá</p>", fake.req.Html)
		assert.Equal(t, []resend.Tag{{Name: "category", Value: "contact"}}, fake.req.Tags)
	})

	t.Run("wraps provider error", func(t *testing.T) {
		t.Parallel()

		fake := &fakeResendEmails{err: errors.New("rate limited")}
		c := &resendClient{emails: fake, config: cfg}

		err := c.SendEmail(context.Background(), testParams())
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
		assert.Equal(t, "hello@example.com", fake.req.ReplyTo)
	})

	t.Run("requires api key", func(t *testing.T) {
		t.Parallel()

		_, err := NewResendClient(Config{SenderEmail: "noreply@example.com"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
