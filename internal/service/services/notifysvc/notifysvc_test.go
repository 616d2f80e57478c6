package notifysvc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
)

type recordingMailer struct {
	sent []Mail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, mail Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)

	return nil
}

func confirmation(language string) notification.OrderConfirmation {
	return notification.OrderConfirmation{
		OrderID:            "ORD-1-ABCD",
		Language:           language,
		CustomerName:       "Anna",
		CustomerEmail:      "anna@example.com",
		Items:              []notification.Line{{Name: "Moussaka", Quantity: 2, LineTotalCents: 5200}},
		SubtotalCents:      5200,
		TotalCents:         5200,
		DeliveryType:       "delivery",
		Address:            "Denneweg 10, 2514 CG Den Haag",
		PaymentMethod:      "card",
		PaymentStatus:      "paid",
		EstimatedReadyTime: time.Date(2024, 5, 1, 18, 45, 0, 0, time.UTC),
	}
}

func TestSubject(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"nl", "Orderbevestiging #ORD-1"},
		{"pl", "Potwierdzenie zamówienia #ORD-1"},
		{"en", "Order confirmation #ORD-1"},
		{"de", "Order confirmation #ORD-1"},
		{"", "Order confirmation #ORD-1"},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			if got := Subject("ORD-1", tt.language); got != tt.want {
				t.Errorf("Subject() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	mail := Render(confirmation("en"))

	if mail.To != "anna@example.com" {
		t.Errorf("to = %q", mail.To)
	}
	for _, want := range []string{"Anna", "2x Moussaka", "€52.00", "Denneweg 10", "18:45", "card (paid)"} {
		if !strings.Contains(mail.Body, want) {
			t.Errorf("body misses %q:\n%s", want, mail.Body)
		}
	}

	pickup := confirmation("nl")
	pickup.DeliveryType = "pickup"
	pickup.Address = ""
	if body := Render(pickup).Body; !strings.Contains(body, "Afhalen") || strings.Contains(body, "Bezorgkosten") {
		t.Errorf("unexpected pickup body:\n%s", body)
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	mailer := &recordingMailer{}
	s := MustNewNotifyService(WithMailer(mailer))

	if err := s.SendOrderConfirmation(context.Background(), confirmation("pl")); err != nil {
		t.Fatal(err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].Subject != "Potwierdzenie zamówienia #ORD-1-ABCD" {
		t.Errorf("sent = %+v", mailer.sent)
	}

	noMail := confirmation("en")
	noMail.CustomerEmail = " "
	if err := s.SendOrderConfirmation(context.Background(), noMail); !errors.Is(err, ErrNoRecipient) {
		t.Errorf("err = %v, want ErrNoRecipient", err)
	}

	mailer.err = errors.New("smtp down")
	if err := s.SendOrderConfirmation(context.Background(), confirmation("en")); err == nil {
		t.Error("mailer error swallowed")
	}
}
