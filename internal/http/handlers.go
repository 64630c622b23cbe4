package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kpnaturals/storefront-service/internal/catalog"
	"github.com/kpnaturals/storefront-service/internal/config"
	"github.com/kpnaturals/storefront-service/internal/model"
	"github.com/kpnaturals/storefront-service/internal/pricing"

	"github.com/kpnaturals/storefront-service/internal/auth"
	"github.com/kpnaturals/storefront-service/internal/obs"
)

// App bundles the handlers' dependencies.
type App struct {
	Cfg     config.Config
	Pricing *pricing.Store
	Catalog catalog.Store
	Auth    *auth.Service
	started time.Time
}

func NewApp(cfg config.Config, ps *pricing.Store, cs catalog.Store, as *auth.Service) *App {
	return &App{Cfg: cfg, Pricing: ps, Catalog: cs, Auth: as, started: time.Now()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes a strict JSON body into dst, translating type mismatches
// into field-level validation messages.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("invalid %s: expected %s", typeErr.Field, typeErr.Type)
		}
		return err
	}
	return nil
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": time.Since(a.started).Seconds(),
	})
}

// publicPricing is the anonymous-facing snapshot shape: no lastUpdated, no
// history.
type publicPricing struct {
	CurrentPrice  string `json:"currentPrice"`
	CurrentOffer  string `json:"currentOffer"`
	IsOfferActive bool   `json:"isOfferActive"`
}

func (a *App) publicPricingHandler(w http.ResponseWriter, r *http.Request) {
	snap := a.Pricing.Snapshot()
	writeJSON(w, http.StatusOK, publicPricing{
		CurrentPrice:  snap.CurrentPrice,
		CurrentOffer:  snap.CurrentOffer,
		IsOfferActive: snap.IsOfferActive,
	})
}

func (a *App) adminPricingGetHandler(w http.ResponseWriter, r *http.Request) {
	snap := a.Pricing.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"currentPrice":  snap.CurrentPrice,
		"currentOffer":  snap.CurrentOffer,
		"isOfferActive": snap.IsOfferActive,
		"lastUpdated":   snap.LastUpdated,
		"updateHistory": a.Pricing.History(10),
	})
}

func (a *App) adminPricingPostHandler(w http.ResponseWriter, r *http.Request) {
	var upd model.PricingUpdate
	if err := decodeJSON(r, &upd); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if upd.Price != nil {
		if err := pricing.ValidatePrice(*upd.Price); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}
	updatedBy := "admin"
	if id, ok := IdentityFromContext(r.Context()); ok {
		updatedBy = id.Email
	}
	snap := a.Pricing.Update(upd, updatedBy)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"currentPrice":  snap.CurrentPrice,
		"currentOffer":  snap.CurrentOffer,
		"isOfferActive": snap.IsOfferActive,
		"lastUpdated":   snap.LastUpdated,
		"message":       "Pricing updated successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	token, err := a.Auth.SignIn(req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (a *App) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		a.Auth.SignOut(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetRequest struct {
	Email string `json:"email"`
}

func (a *App) resetRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	// Always 202: the endpoint must not reveal whether an account exists.
	// The reset token stands in for the provider's email delivery and is
	// logged server-side only.
	if token, err := a.Auth.RequestPasswordReset(req.Email); err == nil {
		logResetToken(r, req.Email, token)
	}
	w.WriteHeader(http.StatusAccepted)
}

func logResetToken(r *http.Request, email, token string) {
	obs.Logger.Info("password_reset_issued",
		"email", email,
		"reset_token", token,
		"request_id", RequestIDFromContext(r.Context()),
	)
}

type resetUpdate struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (a *App) resetHandler(w http.ResponseWriter, r *http.Request) {
	var req resetUpdate
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := a.Auth.UpdatePassword(req.Token, req.Password); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := a.Catalog.ListProducts(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	p, err := a.Catalog.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := decodeJSON(r, &p); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	created, err := a.Catalog.CreateProduct(r.Context(), p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": created})
}

func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := decodeJSON(r, &p); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	p.ID = mux.Vars(r)["id"]
	updated, err := a.Catalog.UpdateProduct(r.Context(), p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": updated})
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "product_id is required")
		return
	}
	reviews, err := a.Catalog.ListReviews(r.Context(), productID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (a *App) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var rv model.Review
	if err := decodeJSON(r, &rv); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	created, err := a.Catalog.CreateReview(r.Context(), rv)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"review": created})
}

func (a *App) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"users": a.Auth.ListUsers()})
}

func (a *App) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.Email == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "email is required")
		return
	}
	if err := a.Auth.CreateUser(req.Email, req.Password); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (a *App) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Auth.DeleteUser(mux.Vars(r)["email"]); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
