package payments

import (
	"context"
	"math"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// Verifier cross-checks a gateway payment reference against an expected
// amount in cents.
type Verifier interface {
	VerifyPayment(ctx context.Context, paymentRef string, expectedCents int) (bool, error)
}

// MercadoPagoVerifier implements Verifier against the Mercado Pago API.
type MercadoPagoVerifier struct {
	client payment.Client
}

func NewMercadoPagoVerifier(accessToken string) (*MercadoPagoVerifier, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoVerifier{client: payment.NewClient(cfg)}, nil
}

func (v *MercadoPagoVerifier) VerifyPayment(ctx context.Context, paymentRef string, expectedCents int) (bool, error) {
	id, err := strconv.Atoi(paymentRef)
	if err != nil {
		return false, nil
	}

	p, err := v.client.Get(ctx, id)
	if err != nil {
		return false, err
	}

	if p.Status != "approved" {
		return false, nil
	}

	// Amount tolerance of one cent covers gateway float rounding.
	paidCents := int(math.Round(p.TransactionAmount * 100))
	if expectedCents > 0 && abs(paidCents-expectedCents) > 1 {
		return false, nil
	}

	return true, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
