package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sycelim/delivery-web/internal/apperr"
	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/gateway/deliveryapi"
	"github.com/sycelim/delivery-web/internal/http/handlers"
	"github.com/sycelim/delivery-web/internal/view"
)

func newAdminHandler(t *testing.T, gw *stubGateway, locks *view.RowLocks) *handlers.AdminHandler {
	t.Helper()
	if locks == nil {
		locks = view.NewRowLocks()
	}
	return handlers.NewAdminHandler(testLogger(), newRenderer(t), gw, locks, false)
}

// adminRouter mounts the handler the way the real router does, so URL
// parameters resolve.
func adminRouter(h *handlers.AdminHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/admin", h.Page)
	r.Post("/admin/deliveries/{id}/status", h.UpdateStatus)
	r.Post("/admin/deliveries/{id}/delete", h.Delete)
	return r
}

func someDeliveries(n int) []domain.Delivery {
	out := make([]domain.Delivery, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Delivery{
			ID:           fmt.Sprintf("d%d", i),
			CustomerName: fmt.Sprintf("Client %d", i),
			Address:      fmt.Sprintf("%d rue de la Paix", i),
			Status:       domain.StatusPending,
			CreatedAt:    "2024-03-01T10:00:00.000Z",
			CourierName:  "Marc",
		})
	}
	return out
}

func TestAdminPage_RendersAllColumns(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		listAllFn: func(_ context.Context, token string) ([]domain.Delivery, error) {
			require.Equal(t, "tok", token)
			return someDeliveries(3), nil
		},
	}
	router := adminRouter(newAdminHandler(t, gw, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getWithToken("/admin", "tok"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Client 1")
	require.Contains(t, body, "Marc")
	require.Contains(t, body, "Livreur")
	require.Contains(t, body, "Actions")
	require.Contains(t, body, "En attente")
	require.Contains(t, body, "/admin/deliveries/d1/status")
	require.Contains(t, body, "/admin/deliveries/d1/delete")
}

func TestAdminPage_Pagination(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		listAllFn: func(context.Context, string) ([]domain.Delivery, error) {
			return someDeliveries(12), nil
		},
	}
	router := adminRouter(newAdminHandler(t, gw, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getWithToken("/admin?page=3", "tok"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Client 11")
	require.Contains(t, body, "Client 12")
	require.NotContains(t, body, "Client 10")
	require.Contains(t, body, "Page 3 / 3")
}

func TestAdminPage_LoadError_RendersErrorState(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		listAllFn: func(context.Context, string) ([]domain.Delivery, error) {
			return nil, &deliveryapi.Error{
				Op:      "list deliveries",
				Status:  http.StatusBadGateway,
				Kind:    apperr.ErrLoad,
				Message: "Impossible de charger les livraisons",
			}
		},
	}
	router := adminRouter(newAdminHandler(t, gw, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getWithToken("/admin", "tok"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Impossible de charger les livraisons")
}

func TestAdminPage_NoToken_RedirectsToLogin(t *testing.T) {
	t.Parallel()

	router := adminRouter(newAdminHandler(t, &stubGateway{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getWithToken("/admin", ""))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAdminUpdateStatus_Success(t *testing.T) {
	t.Parallel()

	var gotID string
	var gotStatus domain.Status
	gw := &stubGateway{
		updateStatusFn: func(_ context.Context, token, id string, status domain.Status) (string, error) {
			require.Equal(t, "tok", token)
			gotID, gotStatus = id, status
			return "Statut modifié", nil
		},
	}
	router := adminRouter(newAdminHandler(t, gw, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/deliveries/d7/status", "tok", url.Values{
		"status": {"delivered"},
		"page":   {"2"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin?page=2", rec.Header().Get("Location"))
	require.Equal(t, "d7", gotID)
	require.Equal(t, domain.StatusDelivered, gotStatus)

	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	require.Equal(t, "success", flash.Kind)
	require.Equal(t, "Statut modifié", flash.Message)
}

func TestAdminUpdateStatus_InvalidStatus(t *testing.T) {
	t.Parallel()

	called := false
	gw := &stubGateway{
		updateStatusFn: func(context.Context, string, string, domain.Status) (string, error) {
			called = true
			return "", nil
		},
	}
	router := adminRouter(newAdminHandler(t, gw, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/deliveries/d7/status", "tok", url.Values{
		"status": {"teleported"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.False(t, called)

	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	require.Equal(t, "error", flash.Kind)
	require.Equal(t, "Statut invalide", flash.Message)
}

func TestAdminUpdateStatus_RowLocked(t *testing.T) {
	t.Parallel()

	called := false
	gw := &stubGateway{
		updateStatusFn: func(context.Context, string, string, domain.Status) (string, error) {
			called = true
			return "", nil
		},
	}
	locks := view.NewRowLocks()
	require.True(t, locks.TryAcquire("d7"))
	router := adminRouter(newAdminHandler(t, gw, locks))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/deliveries/d7/status", "tok", url.Values{
		"status": {"in_progress"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.False(t, called)

	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	require.Equal(t, "error", flash.Kind)
	require.Equal(t, "Mise à jour déjà en cours pour cette livraison", flash.Message)

	// an unrelated row is still free to update
	require.True(t, locks.TryAcquire("d8"))
	locks.Release("d8")
}

func TestAdminUpdateStatus_GatewayError_KeepsNothingLocal(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		updateStatusFn: func(context.Context, string, string, domain.Status) (string, error) {
			return "", &deliveryapi.Error{
				Op:      "update status",
				Status:  http.StatusInternalServerError,
				Kind:    apperr.ErrUpdate,
				Message: "Impossible de mettre à jour le statut",
			}
		},
	}
	locks := view.NewRowLocks()
	router := adminRouter(newAdminHandler(t, gw, locks))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/deliveries/d7/status", "tok", url.Values{
		"status": {"delivered"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	require.Equal(t, "error", flash.Kind)
	require.Equal(t, "Impossible de mettre à jour le statut", flash.Message)

	// the lock was released after the failed call
	require.True(t, locks.TryAcquire("d7"))
}

func TestAdminDelete_Success(t *testing.T) {
	t.Parallel()

	var gotID string
	gw := &stubGateway{
		deleteFn: func(_ context.Context, token, id string) (string, error) {
			require.Equal(t, "tok", token)
			gotID = id
			return "", nil
		},
	}
	router := adminRouter(newAdminHandler(t, gw, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/deliveries/d3/delete", "tok", url.Values{}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "d3", gotID)

	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	require.Equal(t, "success", flash.Kind)
	require.Equal(t, "Livraison supprimée", flash.Message)
}

func TestAdminDelete_NotFound_FlashesError(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		deleteFn: func(context.Context, string, string) (string, error) {
			return "", &deliveryapi.Error{
				Op:      "delete delivery",
				Status:  http.StatusNotFound,
				Kind:    apperr.ErrDelete,
				Message: "Livraison introuvable",
			}
		},
	}
	router := adminRouter(newAdminHandler(t, gw, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/admin/deliveries/d404/delete", "tok", url.Values{}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	require.Equal(t, "error", flash.Kind)
	require.Equal(t, "Livraison introuvable", flash.Message)
}
