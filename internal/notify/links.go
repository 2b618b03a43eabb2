package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkBuilder constructs deep links for client notifications. Delivery is
// external to this service; the links only decorate API responses so staff
// can reach the client in one tap.
type LinkBuilder interface {
	ProofRequestLink(channel, phone string, amountCents int, shopName string) string
}

type DeepLinkBuilder struct{}

func NewDeepLinkBuilder() *DeepLinkBuilder {
	return &DeepLinkBuilder{}
}

func (DeepLinkBuilder) ProofRequestLink(channel, phone string, amountCents int, shopName string) string {
	msg := fmt.Sprintf(
		"Olá! Para confirmar seu agendamento na %s, envie o comprovante do pagamento de R$ %d,%02d.",
		shopName, amountCents/100, amountCents%100,
	)

	digits := onlyDigits(phone)

	switch channel {
	case "sms":
		return fmt.Sprintf("sms:%s?body=%s", digits, url.QueryEscape(msg))
	default: // whatsapp
		return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(msg))
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
