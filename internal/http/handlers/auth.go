package handlers

import (
	"net/http"

	"github.com/sycelim/delivery-web/internal/gateway/deliveryapi"
	"github.com/sycelim/delivery-web/internal/logx"
	"github.com/sycelim/delivery-web/internal/session"
	"github.com/sycelim/delivery-web/internal/web"
)

// AuthHandler serves the public pages: home, login, register, logout.
type AuthHandler struct {
	base
	gateway Gateway
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(logger logx.Logger, renderer *web.Renderer, gateway Gateway, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		base:    base{logger: logger, renderer: renderer, secure: cookieSecure},
		gateway: gateway,
	}
}

// redirectBySession sends an already-authenticated visitor straight to their
// role's landing page. Returns false when no usable session exists.
func (h *AuthHandler) redirectBySession(w http.ResponseWriter, r *http.Request) bool {
	store := h.sess(w, r)
	token, ok := store.Token()
	if !ok {
		return false
	}
	role, err := session.Role(token)
	if err != nil {
		return false
	}
	target := role.HomePath()
	if target == "/" {
		// unknown role: stay on the public page
		return false
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return true
}

// Home handles GET /.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if h.redirectBySession(w, r) {
		return
	}
	store := h.sess(w, r)
	h.render(w, r, "home", web.HomeData{Title: "Accueil", Flash: store.PopFlash()})
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectBySession(w, r) {
		return
	}
	store := h.sess(w, r)
	h.render(w, r, "login", web.AuthData{
		Title:  "Connexion",
		Flash:  store.PopFlash(),
		CSRF:   store.EnsureCSRF(),
		Values: map[string]string{},
		Errors: map[string]string{},
	})
}

// LoginSubmit handles POST /login: validates all fields together, exchanges
// credentials for a token, stores it and routes by the decoded role.
func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r, "/login") {
		return
	}
	store := h.sess(w, r)

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if errs := validateLogin(email, password); len(errs) > 0 {
		h.render(w, r, "login", web.AuthData{
			Title:  "Connexion",
			CSRF:   store.EnsureCSRF(),
			Values: map[string]string{"email": email},
			Errors: errs,
		})
		return
	}

	result, err := h.gateway.Login(r.Context(), email, password)
	if err != nil {
		store.SetFlash("error", deliveryapi.UserMessage(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	store.SetToken(result.Token)
	if result.Message != "" {
		store.SetFlash("success", result.Message)
	}

	role, err := session.Role(result.Token)
	if err != nil {
		// token stored but undecodable: land on the public page,
		// the gates will bounce any protected view anyway
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, role.HomePath(), http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectBySession(w, r) {
		return
	}
	store := h.sess(w, r)
	h.render(w, r, "register", web.AuthData{
		Title:  "Inscription",
		Flash:  store.PopFlash(),
		CSRF:   store.EnsureCSRF(),
		Values: map[string]string{},
		Errors: map[string]string{},
	})
}

// RegisterSubmit handles POST /register. Registration never stores a token:
// the API assigns the livreur role and the user logs in afterwards.
func (h *AuthHandler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r, "/register") {
		return
	}
	store := h.sess(w, r)

	firstName := r.PostFormValue("firstName")
	lastName := r.PostFormValue("lastName")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if errs := validateRegister(firstName, lastName, email, password); len(errs) > 0 {
		h.render(w, r, "register", web.AuthData{
			Title: "Inscription",
			CSRF:  store.EnsureCSRF(),
			Values: map[string]string{
				"firstName": firstName,
				"lastName":  lastName,
				"email":     email,
			},
			Errors: errs,
		})
		return
	}

	message, err := h.gateway.Register(r.Context(), firstName, lastName, email, password)
	if err != nil {
		store.SetFlash("error", deliveryapi.UserMessage(err))
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if message == "" {
		message = "Compte créé, vous pouvez vous connecter"
	}
	store.SetFlash("success", message)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout handles POST /logout: drops the token and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r, "/login") {
		return
	}
	h.sess(w, r).Clear()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
