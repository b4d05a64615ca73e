// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creativechain/creativechain-backend/internal/config"
)

func TestPlatformFeeCents(t *testing.T) {
	cases := []struct {
		name    string
		amount  int64
		percent float64
		want    int64
	}{
		{"five percent of fifty dollars", 5000, 5.0, 250},
		{"rounds to nearest cent", 999, 2.5, 25},
		{"zero percent", 5000, 0, 0},
		{"zero amount", 0, 5.0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlatformFeeCents(tc.amount, tc.percent))
		})
	}
}

func TestPaymentPublicConfig(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{
		Payment: config.PaymentConfig{
			StripePublishableKey: "pk_test_123",
			PlatformFeePercent:   5.0,
		},
	}
	svc := NewPaymentService(db, cfg, NewMintingService(db, cfg))

	public := svc.PublicConfig()

	assert.Equal(t, "pk_test_123", public.PublishableKey)
	assert.Equal(t, 5.0, public.PlatformFeePercent)
}
