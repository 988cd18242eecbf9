package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const chargeSuccessEvent = "charge.success"

// paymentWebhookPayload is the gateway's charge notification body.
type paymentWebhookPayload struct {
	Event string `json:"event" validate:"required"`
	Data  struct {
		Reference string `json:"reference" validate:"required"`
		Status    string `json:"status" validate:"required"`
		Amount    int64  `json:"amount" validate:"gte=0"`
		Currency  string `json:"currency" validate:"required"`
	} `json:"data" validate:"required"`
}

// PaymentWebhookHandler receives signed charge notifications from the payment
// gateway. The body is authenticated with hex HMAC-SHA512 over the raw bytes
// before any parsing. The gateway retries on non-2xx, so every recognized
// outcome, including an unknown reference, answers 200: unknown references
// are parked in the payment inbox for rematching instead of failing outward.
type PaymentWebhookHandler struct {
	secret         []byte
	validate       *validator.Validate
	confirmPayment commands.ConfirmPaymentCommandHandler
	inboxFactory   commands.PaymentUoWFactory
	log            *slog.Logger
}

// NewPaymentWebhookHandler creates the webhook handler. An empty secret is
// accepted here but every request will answer 500 until one is configured.
func NewPaymentWebhookHandler(
	secret string,
	confirmPayment commands.ConfirmPaymentCommandHandler,
	inboxFactory commands.PaymentUoWFactory,
	log *slog.Logger,
) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		secret:         []byte(secret),
		validate:       validator.New(),
		confirmPayment: confirmPayment,
		inboxFactory:   inboxFactory,
		log:            log.With("component", "payment_webhook"),
	}
}

// Handle processes POST /webhooks/payment.
func (h *PaymentWebhookHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	if len(h.secret) == 0 {
		h.log.ErrorContext(ctx, "Payment webhook secret is not configured")
		return errorResponse(c, http.StatusInternalServerError, "Webhook not configured")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Unreadable body")
	}

	if !h.verifySignature(body, c.Request().Header.Get("X-Signature")) {
		return errorResponse(c, http.StatusBadRequest, "Invalid signature")
	}

	var payload paymentWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Malformed payload")
	}
	if err := h.validate.Struct(payload); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid payload: "+err.Error())
	}

	if payload.Event != chargeSuccessEvent || payload.Data.Status != "success" {
		// Authenticated but inert: acknowledge so the gateway stops retrying.
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	}

	cmd, err := commands.NewConfirmPaymentCommand(payload.Data.Reference)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid reference")
	}

	if _, err := h.confirmPayment.Handle(ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			if recordErr := h.recordUnmatched(ctx, payload); recordErr != nil {
				h.log.ErrorContext(ctx, "Failed to park unmatched payment",
					"reference", payload.Data.Reference, "error", recordErr)
				return errorResponse(c, http.StatusInternalServerError, "Internal error")
			}
			h.log.InfoContext(ctx, "Parked unmatched payment for rematch",
				"reference", payload.Data.Reference)
			return c.JSON(http.StatusOK, map[string]bool{"ok": true})
		}
		h.log.ErrorContext(ctx, "Payment confirmation failed",
			"reference", payload.Data.Reference, "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Internal error")
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *PaymentWebhookHandler) verifySignature(body []byte, signature string) bool {
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha512.New, h.secret)
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}

func (h *PaymentWebhookHandler) recordUnmatched(ctx context.Context, payload paymentWebhookPayload) error {
	uow := h.inboxFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	err := uow.PaymentInboxRepository().Record(ctx,
		payload.Data.Reference, payload.Data.Amount, payload.Data.Currency)
	if err != nil {
		return err
	}
	return uow.Commit(ctx)
}
