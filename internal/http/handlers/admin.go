package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/gateway/deliveryapi"
	"github.com/sycelim/delivery-web/internal/logx"
	"github.com/sycelim/delivery-web/internal/view"
	"github.com/sycelim/delivery-web/internal/web"
)

// AdminHandler serves the admin view: every delivery, with a status editor
// and a delete action per row.
type AdminHandler struct {
	base
	gateway Gateway
	locks   *view.RowLocks
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(logger logx.Logger, renderer *web.Renderer, gateway Gateway, locks *view.RowLocks, cookieSecure bool) *AdminHandler {
	return &AdminHandler{
		base:    base{logger: logger, renderer: renderer, secure: cookieSecure},
		gateway: gateway,
		locks:   locks,
	}
}

// Page handles GET /admin. A failed load renders the error state; the page
// stays navigable either way.
func (h *AdminHandler) Page(w http.ResponseWriter, r *http.Request) {
	store := h.sess(w, r)
	token, ok := store.Token()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var table view.Table
	deliveries, err := h.gateway.ListAll(r.Context(), token)
	if err != nil {
		table = view.BuildError(deliveryapi.UserMessage(err))
	} else {
		table = view.Build(deliveries, pageQuery(r), h.locks, view.Options{
			ShowCourier:    true,
			ShowActions:    true,
			EditableStatus: true,
		})
	}

	h.render(w, r, "deliveries", web.TableData{
		Title:    "Tableau des livraisons",
		Flash:    store.PopFlash(),
		CSRF:     store.EnsureCSRF(),
		Table:    table,
		BasePath: "/admin",
	})
}

// UpdateStatus handles POST /admin/deliveries/{id}/status. The row lock
// rejects a second submission for the same delivery while one is in flight;
// other rows are unaffected.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	backTo := backToPage("/admin", r)
	if !h.checkCSRF(w, r, backTo) {
		return
	}
	store := h.sess(w, r)
	token, ok := store.Token()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := chi.URLParam(r, "id")
	status := domain.Status(r.PostFormValue("status"))
	if id == "" || !status.Valid() {
		store.SetFlash("error", "Statut invalide")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	if !h.locks.TryAcquire(id) {
		store.SetFlash("error", "Mise à jour déjà en cours pour cette livraison")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}
	defer h.locks.Release(id)

	message, err := h.gateway.UpdateStatus(r.Context(), token, id, status)
	if err != nil {
		// the row keeps its previous status: nothing was mirrored locally
		store.SetFlash("error", deliveryapi.UserMessage(err))
	} else {
		if message == "" {
			message = "Statut mis à jour"
		}
		store.SetFlash("success", message)
	}
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

// Delete handles POST /admin/deliveries/{id}/delete. On failure the row
// stays present and the error is flashed.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	backTo := backToPage("/admin", r)
	if !h.checkCSRF(w, r, backTo) {
		return
	}
	store := h.sess(w, r)
	token, ok := store.Token()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		store.SetFlash("error", "Livraison inconnue")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	message, err := h.gateway.Delete(r.Context(), token, id)
	if err != nil {
		store.SetFlash("error", deliveryapi.UserMessage(err))
	} else {
		if message == "" {
			message = "Livraison supprimée"
		}
		store.SetFlash("success", message)
	}
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}
