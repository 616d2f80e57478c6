package notifysvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"go.opentelemetry.io/otel"
)

var ErrNoRecipient = errors.New("confirmation has no recipient")

// Mail is a rendered confirmation mail.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer hands a mail over for delivery.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// LogMailer writes mails to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, mail Mail) error {
	slog.Info("Confirmation mail", "to", mail.To, "subject", mail.Subject, "body", mail.Body)

	return nil
}

type labels struct {
	subject  string
	greeting string
	subtotal string
	fee      string
	total    string
	delivery string
	pickup   string
	ready    string
	payment  string
	notes    string
}

var translations = map[string]labels{
	"nl": {
		subject:  "Orderbevestiging",
		greeting: "Bedankt voor je bestelling, %s!",
		subtotal: "Subtotaal",
		fee:      "Bezorgkosten",
		total:    "Totaal",
		delivery: "Bezorgen op",
		pickup:   "Afhalen in het restaurant",
		ready:    "Verwacht om",
		payment:  "Betaling",
		notes:    "Opmerkingen",
	},
	"pl": {
		subject:  "Potwierdzenie zamówienia",
		greeting: "Dziękujemy za zamówienie, %s!",
		subtotal: "Suma częściowa",
		fee:      "Koszt dostawy",
		total:    "Razem",
		delivery: "Dostawa na adres",
		pickup:   "Odbiór w restauracji",
		ready:    "Przewidywany czas",
		payment:  "Płatność",
		notes:    "Uwagi",
	},
	"en": {
		subject:  "Order confirmation",
		greeting: "Thank you for your order, %s!",
		subtotal: "Subtotal",
		fee:      "Delivery fee",
		total:    "Total",
		delivery: "Delivery to",
		pickup:   "Pickup at the restaurant",
		ready:    "Expected at",
		payment:  "Payment",
		notes:    "Notes",
	},
}

func labelsFor(language string) labels {
	if l, ok := translations[language]; ok {
		return l
	}

	return translations["en"]
}

// Subject returns the localized mail subject for an order.
func Subject(orderID, language string) string {
	return labelsFor(language).subject + " #" + orderID
}

// Render builds the confirmation mail.
func Render(msg notification.OrderConfirmation) Mail {
	l := labelsFor(msg.Language)

	var b strings.Builder
	fmt.Fprintf(&b, l.greeting+"\n\n", msg.CustomerName)
	for _, line := range msg.Items {
		fmt.Fprintf(&b, "%dx %s  %s\n", line.Quantity, line.Name, currency.Format(line.LineTotalCents))
	}
	fmt.Fprintf(&b, "\n%s: %s\n", l.subtotal, currency.Format(msg.SubtotalCents))
	if msg.DeliveryType == string(order.DeliveryTypeDelivery) {
		fmt.Fprintf(&b, "%s: %s\n", l.fee, currency.Format(msg.DeliveryFeeCents))
	}
	fmt.Fprintf(&b, "%s: %s\n\n", l.total, currency.Format(msg.TotalCents))

	if msg.DeliveryType == string(order.DeliveryTypeDelivery) {
		fmt.Fprintf(&b, "%s: %s\n", l.delivery, msg.Address)
	} else {
		fmt.Fprintf(&b, "%s\n", l.pickup)
	}
	fmt.Fprintf(&b, "%s: %s\n", l.ready, msg.EstimatedReadyTime.Format("15:04"))
	fmt.Fprintf(&b, "%s: %s (%s)\n", l.payment, msg.PaymentMethod, msg.PaymentStatus)
	if msg.Notes != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.notes, msg.Notes)
	}

	return Mail{
		To:      msg.CustomerEmail,
		Subject: Subject(msg.OrderID, msg.Language),
		Body:    b.String(),
	}
}

// NotifyService renders order confirmations and hands them to a mailer.
type NotifyService struct {
	mailer Mailer
}

// option is a function that configures the NotifyService.
type option func(*NotifyService)

// MustNewNotifyService creates a new NotifyService. It logs mails unless a
// mailer is set.
func MustNewNotifyService(opts ...option) *NotifyService {
	s := &NotifyService{mailer: LogMailer{}}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithMailer sets the mailer for the NotifyService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailer(m Mailer) option {
	return func(s *NotifyService) {
		s.mailer = m
	}
}

// SendOrderConfirmation renders and sends the confirmation of one order.
func (s *NotifyService) SendOrderConfirmation(ctx context.Context, msg notification.OrderConfirmation) error {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.SendOrderConfirmation")
	defer span.End()

	if strings.TrimSpace(msg.CustomerEmail) == "" {
		return fmt.Errorf("%w: order %s", ErrNoRecipient, msg.OrderID)
	}

	if err := s.mailer.Send(ctx, Render(msg)); err != nil {
		slog.Warn("Failed to send confirmation", "order_id", msg.OrderID, "error", err)

		return fmt.Errorf("failed to send confirmation: %w", err)
	}

	slog.Info("Confirmation sent", "order_id", msg.OrderID, "language", msg.Language)

	return nil
}
