package handlers

import (
	"net/http"
	"strings"

	"github.com/sycelim/delivery-web/internal/gateway/deliveryapi"
	"github.com/sycelim/delivery-web/internal/logx"
	"github.com/sycelim/delivery-web/internal/view"
	"github.com/sycelim/delivery-web/internal/web"
)

// LivreurHandler serves the courier view: the caller's own deliveries plus
// the creation form. Statuses are read-only here; only the admin edits them.
type LivreurHandler struct {
	base
	gateway Gateway
}

// NewLivreurHandler creates a LivreurHandler.
func NewLivreurHandler(logger logx.Logger, renderer *web.Renderer, gateway Gateway, cookieSecure bool) *LivreurHandler {
	return &LivreurHandler{
		base:    base{logger: logger, renderer: renderer, secure: cookieSecure},
		gateway: gateway,
	}
}

// Page handles GET /livreur.
func (h *LivreurHandler) Page(w http.ResponseWriter, r *http.Request) {
	store := h.sess(w, r)
	token, ok := store.Token()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var table view.Table
	deliveries, err := h.gateway.ListMine(r.Context(), token)
	if err != nil {
		table = view.BuildError(deliveryapi.UserMessage(err))
	} else {
		table = view.Build(deliveries, pageQuery(r), nil, view.Options{})
	}

	h.render(w, r, "deliveries", web.TableData{
		Title:          "Mes livraisons",
		Flash:          store.PopFlash(),
		CSRF:           store.EnsureCSRF(),
		Table:          table,
		BasePath:       "/livreur",
		WithCreateForm: true,
	})
}

// Create handles POST /livreur/deliveries. The list is only re-rendered
// after the API confirms, so the view never shows a delivery the server
// rejected.
func (h *LivreurHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r, "/livreur") {
		return
	}
	store := h.sess(w, r)
	token, ok := store.Token()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	customerName := strings.TrimSpace(r.PostFormValue("customerName"))
	address := strings.TrimSpace(r.PostFormValue("address"))
	if customerName == "" || address == "" {
		store.SetFlash("error", "Destinataire et adresse sont requis")
		http.Redirect(w, r, "/livreur", http.StatusSeeOther)
		return
	}

	message, err := h.gateway.Create(r.Context(), token, customerName, address)
	if err != nil {
		store.SetFlash("error", deliveryapi.UserMessage(err))
	} else {
		if message == "" {
			message = "Livraison créée"
		}
		store.SetFlash("success", message)
	}
	http.Redirect(w, r, "/livreur", http.StatusSeeOther)
}
