package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmationEmail(t *testing.T) {
	body, err := RenderConfirmationEmail("Ana <script>", "http://api.test/user/dependents/confirm?token=abc.def")
	require.NoError(t, err)

	assert.Contains(t, body, `href="http://api.test/user/dependents/confirm?token=abc.def"`)
	assert.Contains(t, body, "Ana &lt;script&gt;")
	assert.Contains(t, body, "24 hours")
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := LogMailer{Log: zerolog.New(&buf)}

	require.NoError(t, m.Send(context.Background(), "a@example.com", ConfirmationSubject, "<p>secret link</p>"))
	assert.Contains(t, buf.String(), "a@example.com")
	assert.NotContains(t, buf.String(), "secret link")
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer("127.0.0.1", 1, "", "", "noreply@example.com")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, "a@example.com", "s", "b"), context.Canceled)
}
