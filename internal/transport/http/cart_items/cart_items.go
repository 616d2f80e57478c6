package cartitems

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/sessionsvc"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
)

// sessions edits the cart of a session.
type sessions interface {
	AddToCart(ctx context.Context, id, itemID string) (*sessionsvc.Session, error)
	UpdateQuantity(id, itemID string, delta int) (*sessionsvc.Session, error)
	RemoveFromCart(id, itemID string) (*sessionsvc.Session, error)
	ClearCart(id string) (*sessionsvc.Session, error)
}

// viewer prices the cart of a session.
type viewer interface {
	View(ctx context.Context, sessionID string) (checkoutsvc.Summary, error)
}

type addItemRequest struct {
	ItemID   string `json:"itemId"   validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=99"`
}

type updateItemRequest struct {
	Delta int `json:"delta" validate:"required,gte=-99,lte=99"`
}

func summary(w http.ResponseWriter, r *http.Request, viewer viewer, sessionID string) {
	s, err := viewer.View(r.Context(), sessionID)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	w.Header().Set(respond.SessionHeader, s.SessionID)
	respond.JSON(w, http.StatusOK, s)
}

// GetCart returns the priced cart of the session.
func GetCart(w http.ResponseWriter, r *http.Request, viewer viewer) {
	summary(w, r, viewer, r.Header.Get(respond.SessionHeader))
}

// AddItem adds quantity units of a menu item, one when quantity is omitted.
func AddItem(w http.ResponseWriter, r *http.Request, sessions sessions, viewer viewer) {
	req := addItemRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	sessionID := r.Header.Get(respond.SessionHeader)
	for range max(req.Quantity, 1) {
		sess, err := sessions.AddToCart(r.Context(), sessionID, req.ItemID)
		if err != nil {
			respond.Error(w, r, err)

			return
		}
		sessionID = sess.ID
	}

	summary(w, r, viewer, sessionID)
}

// UpdateItem changes the quantity of a cart line by delta.
func UpdateItem(w http.ResponseWriter, r *http.Request, sessions sessions, viewer viewer) {
	req := updateItemRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	sess, err := sessions.UpdateQuantity(r.Header.Get(respond.SessionHeader), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	summary(w, r, viewer, sess.ID)
}

// RemoveItem drops a cart line.
func RemoveItem(w http.ResponseWriter, r *http.Request, sessions sessions, viewer viewer) {
	sess, err := sessions.RemoveFromCart(r.Header.Get(respond.SessionHeader), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	summary(w, r, viewer, sess.ID)
}

// Clear empties the cart.
func Clear(w http.ResponseWriter, r *http.Request, sessions sessions, viewer viewer) {
	sess, err := sessions.ClearCart(r.Header.Get(respond.SessionHeader))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	summary(w, r, viewer, sess.ID)
}
