// Package notifications sends customer SMS updates for order milestones.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pharmaflow/internal/core/application/usecases/commands"
	"pharmaflow/internal/core/domain/model/kernel"
	"pharmaflow/internal/core/domain/model/order"
	"pharmaflow/internal/core/ports"
)

const defaultSendTimeout = 10 * time.Second

// Dispatcher implements commands.NotificationDispatcher. Each message kind is
// sent at most once per order: a marker event on the order trail records the
// send, and a pending marker short-circuits repeats.
type Dispatcher struct {
	uowFactory commands.OrderUoWFactory
	sender     ports.SMSSender
	log        *slog.Logger
	timeout    time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher sending through the given gateway.
func NewDispatcher(
	uowFactory commands.OrderUoWFactory,
	sender ports.SMSSender,
	log *slog.Logger,
) (*Dispatcher, error) {
	if uowFactory == nil {
		return nil, fmt.Errorf("uowFactory is required")
	}
	if sender == nil {
		return nil, fmt.Errorf("sender is required")
	}
	if log == nil {
		return nil, fmt.Errorf("log is required")
	}
	return &Dispatcher{
		uowFactory: uowFactory,
		sender:     sender,
		log:        log.With("component", "notifications"),
		timeout:    defaultSendTimeout,
	}, nil
}

// Dispatch sends the notification in the background. Failures are logged and
// dropped so the mutation that triggered the message is never affected.
func (d *Dispatcher) Dispatch(orderID kernel.UUID, kind string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.send(ctx, orderID, kind); err != nil {
			d.log.Warn("notification failed",
				"order_id", orderID.String(), "kind", kind, "error", err)
		}
	}()
}

// Wait blocks until all in-flight notifications have finished. Used on
// shutdown and by tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) send(ctx context.Context, orderID kernel.UUID, kind string) error {
	uow := d.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	orderRepository := uow.OrderRepository()

	o, err := orderRepository.Get(ctx, orderID)
	if err != nil {
		return err
	}

	marker := order.SMSMarkerLabel(kind)
	alreadySent, err := orderRepository.HasEventWithLabel(ctx, orderID, marker)
	if err != nil {
		return err
	}
	if alreadySent {
		return nil
	}

	body, err := composeBody(kind, o)
	if err != nil {
		return err
	}

	message := ports.SMSMessage{To: o.Phone().Normalized(), Body: body}
	if err := d.sender.Send(ctx, message); err != nil {
		return err
	}

	event, err := order.NewEvent(orderID, marker, "sent to "+o.PhoneMasked())
	if err != nil {
		return err
	}
	if err := orderRepository.AppendEvent(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func composeBody(kind string, o *order.Order) (string, error) {
	code := o.TrackingCode().String()
	switch kind {
	case ports.NotificationConfirmation:
		return fmt.Sprintf(
			"Your payment for order %s has been confirmed. We will text you when it ships.",
			code), nil
	case ports.NotificationShipping:
		return fmt.Sprintf(
			"Your order %s is out for delivery. Please keep your phone reachable.",
			code), nil
	case ports.NotificationDelivery:
		return fmt.Sprintf(
			"Your order %s has been delivered. Thank you for choosing us.",
			code), nil
	default:
		return "", fmt.Errorf("unknown notification kind %q", kind)
	}
}
