package controller

import (
	"errors"
	"net/http"

	"cafedir/auth"
	"cafedir/form"
	"cafedir/logger"
	"cafedir/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgEmailTaken      = "Email Already Exists . Login"
	msgInvalidPassword = "Invalid Password"
	msgNoAccount       = "No email found . Register"
)

func (h *Handler) Register(c *gin.Context) {
	data := gin.H{"title": "Register", "form": form.CredentialsForm{}, "errors": form.FieldErrors(nil)}
	if !submitted(c) {
		h.render(c, http.StatusOK, "register.html", data)
		return
	}

	f, fe := form.ValidateCredentials(postValues(c))
	data["form"] = form.CredentialsForm{Email: f.Email}
	if fe != nil {
		data["errors"] = fe
		h.render(c, http.StatusOK, "register.html", data)
		return
	}

	user, err := auth.Register(c.Request.Context(), h.db, f.Email, f.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			utils.AddFlash(c, msgEmailTaken)
			h.render(c, http.StatusOK, "register.html", data)
			return
		}
		h.internalError(c, "Failed to register user", err)
		return
	}
	h.metrics.SignupsTotal.Inc()

	if err := h.sessions.Login(c, user); err != nil {
		h.internalError(c, "Failed to start session", err)
		return
	}

	logger.FromGin(c).Info("user registered", zap.Uint("user_id", user.ID))
	utils.Redirect(c, "/")
}

func (h *Handler) Login(c *gin.Context) {
	next := c.Query("next")
	data := gin.H{"title": "Login", "form": form.CredentialsForm{}, "errors": form.FieldErrors(nil), "next": next}
	if !submitted(c) {
		h.render(c, http.StatusOK, "login.html", data)
		return
	}

	f, fe := form.ValidateCredentials(postValues(c))
	data["form"] = form.CredentialsForm{Email: f.Email}
	if fe != nil {
		data["errors"] = fe
		h.render(c, http.StatusOK, "login.html", data)
		return
	}

	user, err := auth.Authenticate(c.Request.Context(), h.db, f.Email, f.Password)
	switch {
	case errors.Is(err, auth.ErrNoAccount):
		h.metrics.LoginsTotal.WithLabelValues("no_account").Inc()
		utils.AddFlash(c, msgNoAccount)
		h.render(c, http.StatusOK, "login.html", data)
		return
	case errors.Is(err, auth.ErrInvalidPassword):
		h.metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		utils.AddFlash(c, msgInvalidPassword)
		h.render(c, http.StatusOK, "login.html", data)
		return
	case err != nil:
		h.internalError(c, "Failed to authenticate", err)
		return
	}
	h.metrics.LoginsTotal.WithLabelValues("ok").Inc()

	if err := h.sessions.Login(c, user); err != nil {
		h.internalError(c, "Failed to start session", err)
		return
	}

	logger.FromGin(c).Info("user logged in", zap.Uint("user_id", user.ID))
	utils.Redirect(c, utils.SafeNext(next))
}

func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Logout(c)
	utils.Redirect(c, "/")
}
