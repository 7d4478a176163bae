package mail

import (
	"testing"

	"github.com/ottlabs/ott-platform/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInactiveWarningHTML(t *testing.T) {
	body := InactiveWarningHTML("kundan", 95, "Jan 2, 2026")
	assert.Contains(t, body, "kundan")
	assert.Contains(t, body, "95 days")
	assert.Contains(t, body, "Jan 2, 2026")
}

func TestInactiveWarningHTMLEscapesUsername(t *testing.T) {
	body := InactiveWarningHTML("<script>alert(1)</script>", 90, "Jan 1, 2026")
	assert.NotContains(t, body, "<script>")
}

func TestFromConfigPicksNoopWithoutHost(t *testing.T) {
	mailer := FromConfig(&config.Config{})
	_, ok := mailer.(NoopMailer)
	assert.True(t, ok)

	assert.NoError(t, mailer.Send("a@b.c", "subject", "text", ""))

	mailer = FromConfig(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587})
	_, ok = mailer.(*SMTPMailer)
	assert.True(t, ok)
}
