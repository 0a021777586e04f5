package templates

import (
	"bytes"
	"testing"

	"cafedir/form"
	"cafedir/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllViews(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{
		"index.html", "about.html", "contact.html", "cafe.html", "search.html",
		"register.html", "login.html", "add_cafe.html", "edit_cafe.html",
		"not_found.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRender_CafeDetail(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	cafe := &model.Cafe{Name: "Test <Cafe>", Location: "London", HasWifi: true, CoffeePrice: "£2.50"}
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "cafe.html", map[string]any{
		"cafe":      cafe,
		"logged_in": false,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Test &lt;Cafe&gt;")
	assert.Contains(t, out, "£2.50")
	assert.Contains(t, out, `href="/login"`)
	assert.NotContains(t, out, "/logout")
}

func TestRender_FieldErrors(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "register.html", map[string]any{
		"form":      form.CredentialsForm{Email: "bad"},
		"errors":    form.FieldErrors{"email": {"Invalid email address."}},
		"logged_in": false,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Invalid email address.")
}

func TestRadio(t *testing.T) {
	out := string(radio("has_wifi", form.ChoiceYes))
	assert.Contains(t, out, `name="has_wifi" value="1" checked`)
	assert.Contains(t, out, `name="has_wifi" value="0">`)
}
