package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Choice literals used by the yes/no radio fields.
const (
	ChoiceYes = "1"
	ChoiceNo  = "0"
)

// FieldErrors maps a form field name to the messages shown next to it.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// First returns the first message for field, or "".
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})
	return v
}

// decode maps raw into out by `form` tags, trims string fields and runs the
// `binding` rules. Fields tagged `trim:"-"` keep their value byte for byte.
// It never looks at the request itself.
func decode(raw url.Values, out any) FieldErrors {
	if err := binding.MapFormWithTag(out, raw, "form"); err != nil {
		return FieldErrors{"_form": {fmt.Sprintf("Malformed submission: %v", err)}}
	}
	trimStrings(out)

	err := validate.Struct(out)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_form": {err.Error()}}
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		fe.Add(e.Field(), message(e.Tag(), e.Param()))
	}
	return fe
}

func trimStrings(out any) {
	v := reflect.ValueOf(out).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if t.Field(i).Tag.Get("trim") == "-" {
			continue
		}
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

func message(rule, param string) string {
	switch rule {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "oneof":
		return "Not a valid choice."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", param)
	default:
		return "Invalid value."
	}
}

// Choice converts a validated choice literal to a bool. Callers only pass
// values that passed the oneof rule.
func Choice(v string) bool {
	return v == ChoiceYes
}

// ChoiceOf is the inverse of Choice, used to pre-fill forms.
func ChoiceOf(b bool) string {
	if b {
		return ChoiceYes
	}
	return ChoiceNo
}
