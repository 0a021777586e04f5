// Package templates holds the server-rendered views.
package templates

import (
	"embed"
	"fmt"
	"html/template"

	"cafedir/form"
)

//go:embed views/*.html
var views embed.FS

// Load parses every view. Each view is addressed by its file name, e.g.
// "index.html".
func Load() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(views, "views/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

var funcs = template.FuncMap{
	"fieldError": func(fe form.FieldErrors, field string) string {
		return fe.First(field)
	},
	"yesNo": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"radio": radio,
}

// radio renders the Yes/No pair for a choice field.
func radio(name, current string) template.HTML {
	n := template.HTMLEscapeString(name)
	out := ""
	for _, opt := range []struct{ value, label string }{{form.ChoiceYes, "Yes"}, {form.ChoiceNo, "No"}} {
		checked := ""
		if current == opt.value {
			checked = " checked"
		}
		out += fmt.Sprintf(`<label><input type="radio" name="%s" value="%s"%s> %s</label> `, n, opt.value, checked, opt.label)
	}
	return template.HTML(out)
}
