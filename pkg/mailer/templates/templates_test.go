package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResetOTP(t *testing.T) {
	expires := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	data := NewEmailData("shopflow-backoffice", "Demo Operator", "operator@shopflow.vn",
		WithCode("123456"), WithExpiresAt(expires))

	html, err := Render(ResetOTP, ToMap(data))
	require.NoError(t, err)
	assert.Contains(t, html, "Demo Operator")
	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "shopflow-backoffice")
	assert.Contains(t, html, "28 August 2026, 10:30")
}

func TestRenderPasswordChanged(t *testing.T) {
	data := NewEmailData("shopflow-backoffice", "Demo Operator", "operator@shopflow.vn")

	html, err := Render(PasswordChanged, ToMap(data))
	require.NoError(t, err)
	assert.Contains(t, html, "operator@shopflow.vn")
	assert.Contains(t, html, "shopflow-backoffice")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("no_such_template", nil)
	require.Error(t, err)
}

func TestRenderEscapesHTML(t *testing.T) {
	data := NewEmailData("app", "<script>alert(1)</script>", "x@y.vn", WithCode("000000"))
	html, err := Render(ResetOTP, ToMap(data))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSubjectsCoverAllTemplates(t *testing.T) {
	for _, name := range []string{ResetOTP, PasswordChanged} {
		assert.NotEmpty(t, Subjects[name], name)
	}
}
