package infra

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

// BuildUPIPayload returns a upi:// deep link for the given payee and amount,
// the payload encoded into payment QRs on invoices.
func BuildUPIPayload(vpa, payeeName string, amount decimal.Decimal, invoiceRef string) string {
	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", payeeName)
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", "INR")
	if invoiceRef != "" {
		q.Set("tn", invoiceRef)
	}
	return "upi://pay?" + q.Encode()
}

// GenerateQRPNG encodes payload as a QR code PNG.
func GenerateQRPNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}
	return png, nil
}
