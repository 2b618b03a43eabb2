package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProofRequestLinkWhatsApp(t *testing.T) {
	link := NewDeepLinkBuilder().ProofRequestLink("whatsapp", "+55 (11) 99999-0000", 4050, "Corner Cuts")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999990000?text="))
	assert.Contains(t, link, "40%2C50") // R$ 40,50 url-encoded
}

func TestProofRequestLinkSMS(t *testing.T) {
	link := NewDeepLinkBuilder().ProofRequestLink("sms", "11999990000", 10000, "Corner Cuts")

	assert.True(t, strings.HasPrefix(link, "sms:11999990000?body="))
}

func TestProofRequestLinkUnknownChannelFallsBackToWhatsApp(t *testing.T) {
	link := NewDeepLinkBuilder().ProofRequestLink("carrier-pigeon", "11999990000", 100, "X")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/"))
}
