package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, NewWelcomeData("", "Ann", "ann@x.com"))
	require.NoError(t, err)

	assert.Equal(t, "Welcome to our app", subject)
	assert.Contains(t, text, "Your account ann@x.com was created")
	assert.Contains(t, html, "<strong>ann@x.com</strong>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}
