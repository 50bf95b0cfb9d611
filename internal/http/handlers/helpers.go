package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sycelim/delivery-web/internal/logx"
	"github.com/sycelim/delivery-web/internal/session"
	"github.com/sycelim/delivery-web/internal/web"
)

func reqID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r)),
			logx.Any("err", err),
		)
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	logger.Warn("http error",
		logx.String("req_id", reqID(r)),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, errResponse{Error: msg})
}

// base carries what every page handler needs.
type base struct {
	logger   logx.Logger
	renderer *web.Renderer
	secure   bool
}

// sess binds a session store to the current request.
func (b base) sess(w http.ResponseWriter, r *http.Request) *session.Store {
	return session.New(w, r, b.secure)
}

// render executes a page template, degrading to a 500 when the template
// itself fails.
func (b base) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := b.renderer.Render(w, page, data); err != nil {
		b.logger.Error("render error",
			logx.String("req_id", reqID(r)),
			logx.String("page", page),
			logx.Any("err", err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// pageQuery reads the 1-based page number from the query string; anything
// unparsable falls back to page 1.
func pageQuery(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// checkCSRF verifies the submitted CSRF token, redirecting back to the given
// path with an error flash when it does not match.
func (b base) checkCSRF(w http.ResponseWriter, r *http.Request, backTo string) bool {
	store := b.sess(w, r)
	if store.VerifyCSRF(r.PostFormValue("csrf_token")) {
		return true
	}
	store.SetFlash("error", "Session expirée, veuillez réessayer")
	http.Redirect(w, r, backTo, http.StatusSeeOther)
	return false
}

// backToPage rebuilds the table URL including the submitted page number so a
// mutation returns the user to the page they were on.
func backToPage(basePath string, r *http.Request) string {
	if p := r.PostFormValue("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 1 {
			return basePath + "?page=" + strconv.Itoa(n)
		}
	}
	return basePath
}
