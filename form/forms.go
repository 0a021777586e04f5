package form

import (
	"net/url"

	"cafedir/model"
)

// SearchForm matches locations exactly, so loc is not trimmed.
type SearchForm struct {
	Loc string `form:"loc" binding:"required,max=300" trim:"-"`
}

func ValidateSearch(raw url.Values) (SearchForm, FieldErrors) {
	var f SearchForm
	return f, decode(raw, &f)
}

// CredentialsForm backs both the register and the login form.
type CredentialsForm struct {
	Email    string `form:"email" binding:"required,email,max=300"`
	Password string `form:"password" binding:"required" trim:"-"`
}

type (
	RegisterForm = CredentialsForm
	LoginForm    = CredentialsForm
)

func ValidateCredentials(raw url.Values) (CredentialsForm, FieldErrors) {
	var f CredentialsForm
	if fe := decode(raw, &f); fe != nil {
		// never echo the password back into the page
		f.Password = ""
		return f, fe
	}
	return f, nil
}

type CafeForm struct {
	Name        string `form:"name" binding:"required,max=300"`
	MapURL      string `form:"murl" binding:"required,max=300"`
	ImgURL      string `form:"iurl" binding:"required,max=300"`
	Location    string `form:"location" binding:"required,max=300"`
	HasSocket   string `form:"has_socket" binding:"required,oneof=1 0"`
	HasToilet   string `form:"has_toilet" binding:"required,oneof=1 0"`
	HasWifi     string `form:"has_wifi" binding:"required,oneof=1 0"`
	TakeCall    string `form:"take_call" binding:"required,oneof=1 0"`
	Seats       string `form:"seats" binding:"required,max=300"`
	CoffeePrice string `form:"coffee_price" binding:"required,max=290"`
}

func ValidateCafe(raw url.Values) (CafeForm, FieldErrors) {
	var f CafeForm
	return f, decode(raw, &f)
}

// Cafe builds a new café row. currency prefixes the price.
func (f CafeForm) Cafe(currency string) model.Cafe {
	return model.Cafe{
		Name:         f.Name,
		MapURL:       f.MapURL,
		ImgURL:       f.ImgURL,
		Location:     f.Location,
		HasSockets:   Choice(f.HasSocket),
		HasToilet:    Choice(f.HasToilet),
		HasWifi:      Choice(f.HasWifi),
		CanTakeCalls: Choice(f.TakeCall),
		Seats:        f.Seats,
		CoffeePrice:  model.FormatPrice(currency, f.CoffeePrice),
	}
}

type EditCafeForm struct {
	Seats       string `form:"seats" binding:"required,max=300"`
	CoffeePrice string `form:"coffee_price" binding:"required,max=290"`
	HasWifi     string `form:"has_wifi" binding:"required,oneof=1 0"`
	TakeCall    string `form:"take_call" binding:"required,oneof=1 0"`
	HasSocket   string `form:"has_socket" binding:"required,oneof=1 0"`
}

func ValidateEditCafe(raw url.Values) (EditCafeForm, FieldErrors) {
	var f EditCafeForm
	return f, decode(raw, &f)
}

// EditCafeFormFrom pre-fills the edit form from the stored row.
func EditCafeFormFrom(c *model.Cafe, currency string) EditCafeForm {
	return EditCafeForm{
		Seats:       c.Seats,
		CoffeePrice: model.BarePrice(currency, c.CoffeePrice),
		HasWifi:     ChoiceOf(c.HasWifi),
		TakeCall:    ChoiceOf(c.CanTakeCalls),
		HasSocket:   ChoiceOf(c.HasSockets),
	}
}

// Columns lists exactly the columns the edit flow may change.
func (f EditCafeForm) Columns(currency string) map[string]any {
	return map[string]any{
		"seats":          f.Seats,
		"coffee_price":   model.FormatPrice(currency, f.CoffeePrice),
		"has_wifi":       Choice(f.HasWifi),
		"can_take_calls": Choice(f.TakeCall),
		"has_sockets":    Choice(f.HasSocket),
	}
}
