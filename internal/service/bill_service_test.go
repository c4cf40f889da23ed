package service

import (
	"context"
	"testing"
	"time"

	"billtrack/internal/dto"
	"billtrack/internal/model"
	"billtrack/internal/reconcile"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestBillTotals(t *testing.T) {
	items := []dto.BillItemRequest{
		{ItemCode: "P1", ItemName: "Milk", Quantity: 2, UnitPrice: dec("42.50"), GST: dec("5")},
		{ItemCode: "P2", ItemName: "Bread", Quantity: 1, UnitPrice: dec("30"), GST: dec("12")},
	}

	subtotal, gstAmount, total := billTotals(items)

	// 2*42.50 + 30 = 115; GST = 85*0.05 + 30*0.12 = 4.25 + 3.60 = 7.85
	assert.Equal(t, "115", subtotal.String())
	assert.Equal(t, "7.85", gstAmount.String())
	assert.Equal(t, "122.85", total.String())
}

func TestBillTotalsEmpty(t *testing.T) {
	subtotal, gstAmount, total := billTotals(nil)
	assert.True(t, subtotal.IsZero())
	assert.True(t, gstAmount.IsZero())
	assert.True(t, total.IsZero())
}

func TestCanonicalItemsRoundTrip(t *testing.T) {
	items := []dto.BillItemRequest{
		{ItemCode: "P1", ItemName: "Milk", Quantity: 2, UnitPrice: dec("42.50"), GST: dec("5"), HSN: "0401"},
	}

	raw, err := canonicalItems(items)
	require.NoError(t, err)

	lines := reconcile.ParseBillLines(raw)
	require.Len(t, lines, 1)
	assert.Equal(t, "P1", lines[0].ItemCode)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "42.5", lines[0].UnitPrice.String())
	assert.Equal(t, "0401", lines[0].HSN)
}

// paidCreditRepo returns an already-settled bill from FindByID.
type paidCreditRepo struct {
	stubCreditRepo
	bill model.CreditBill
}

func (s *paidCreditRepo) FindByID(context.Context, string, uuid.UUID) (*model.CreditBill, error) {
	b := s.bill
	return &b, nil
}

func TestMarkCreditBillPaidRejectsDoubleSettlement(t *testing.T) {
	paidAt := time.Now()
	repo := &paidCreditRepo{bill: model.CreditBill{
		ID:        uuid.New(),
		CompanyID: "acme",
		InvoiceNo: 9,
		Items:     []byte(`[]`),
		Paid:      true,
		PaidAt:    &paidAt,
	}}

	svc := NewBillService(&stubCashRepo{}, repo, nil)
	_, err := svc.MarkCreditBillPaid(context.Background(), "acme", repo.bill.ID)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}
