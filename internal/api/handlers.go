package api

import (
	"errors"
	"net/http"

	"github.com/emberpost/newsletter/internal/domain"
	"github.com/emberpost/newsletter/internal/pkg/httputil"
	"github.com/emberpost/newsletter/internal/pkg/logger"
	"github.com/emberpost/newsletter/internal/service/subscription"
)

// Handlers holds the HTTP handlers for the subscription API.
type Handlers struct {
	subscriptions *subscription.Service
}

// NewHandlers creates the handler set.
func NewHandlers(subscriptions *subscription.Service) *Handlers {
	return &Handlers{subscriptions: subscriptions}
}

// Subscribe registers a new subscriber from a URL-encoded form with
// "name" and "email" fields.
//
//	POST /subscriptions
//
// Responds 201 when the subscriber is stored and the confirmation email
// is on its way, 400 on invalid input, 409 when the email is already
// registered, 500 otherwise.
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "malformed form data")
		return
	}

	name := r.PostForm.Get("name")
	email := r.PostForm.Get("email")

	_, err := h.subscriptions.Subscribe(r.Context(), name, email)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.BadRequest(w, verr.Error())
		case errors.Is(err, subscription.ErrDuplicateEmail):
			httputil.Conflict(w, "email is already subscribed")
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	logger.Info("new subscription accepted", "email", email)
	httputil.Status(w, http.StatusCreated)
}

// Confirm redeems a subscription token delivered by the confirmation
// email and activates the subscriber.
//
//	GET /subscriptions/confirm?subscription_token=<token>
//
// Responds 200 on success (including repeat confirmations), 401 when the
// token is unknown, 500 otherwise.
func (h *Handlers) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")

	if err := h.subscriptions.Confirm(r.Context(), token); err != nil {
		if errors.Is(err, subscription.ErrTokenNotFound) {
			httputil.Unauthorized(w, "unknown subscription token")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.Status(w, http.StatusOK)
}
