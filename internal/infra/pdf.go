package infra

// pdf.go: Invoice PDF generation using go-pdf/fpdf.
// Renders an A4 GST tax invoice:
//   - Business name header + invoice number and date
//   - Customer block
//   - Item table (code, name, HSN, qty, rate, GST %, amount)
//   - Subtotal / GST / bold total
//   - Embedded UPI payment QR
//
// The output file is saved to storagePath/{kind}_invoice_{number}.pdf.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"billtrack/internal/reconcile"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// InvoiceData carries everything the PDF needs; the caller resolves bills
// and parses line items before rendering.
type InvoiceData struct {
	BusinessName  string
	Kind          string // "cash" | "credit"
	InvoiceNo     int64
	CustomerName  string
	CustomerPhone string
	Lines         []reconcile.BillLine
	Subtotal      decimal.Decimal
	GSTAmount     decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
	QRPNG         []byte // optional payment QR, embedded when non-empty
}

// GenerateInvoicePDF writes the invoice to storagePath (created if needed)
// and returns the absolute path of the generated file.
func GenerateInvoicePDF(data InvoiceData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_invoice_%d.pdf", data.Kind, data.InvoiceNo)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, data.BusinessName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	title := "Tax Invoice (Cash)"
	if data.Kind == "credit" {
		title = "Tax Invoice (Credit)"
	}
	pdf.CellFormat(contentW, 6, title, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, fmt.Sprintf("Invoice No: %d", data.InvoiceNo), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, data.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	if data.CustomerName != "" {
		pdf.CellFormat(contentW, 6, "Billed to: "+data.CustomerName, "", 1, "L", false, 0, "")
	}
	if data.CustomerPhone != "" {
		pdf.CellFormat(contentW, 6, "Phone: "+data.CustomerPhone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	colCode := contentW * 0.14
	colName := contentW * 0.32
	colHSN := contentW * 0.10
	colQty := contentW * 0.08
	colRate := contentW * 0.12
	colGST := contentW * 0.08
	colAmt := contentW * 0.16

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colCode, 7, "Code", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colName, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colHSN, 7, "HSN", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colRate, 7, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colGST, 7, "GST%", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range data.Lines {
		name := l.ItemName
		if len(name) > 34 {
			name = name[:33] + "…"
		}
		amount := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		pdf.CellFormat(colCode, 6, l.ItemCode, "", 0, "L", false, 0, "")
		pdf.CellFormat(colName, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colHSN, 6, l.HSN, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", l.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(colRate, 6, l.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colGST, 6, l.GST.StringFixed(1), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmt, 6, amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	label := contentW - colAmt
	pdf.CellFormat(label, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 6, data.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(label, 6, "GST:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 6, data.GSTAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(label, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 8, data.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment QR ───────────────────────────────────────────────────────────
	if len(data.QRPNG) > 0 {
		pdf.Ln(4)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(data.QRPNG))
		pdf.ImageOptions("payment-qr", 12, pdf.GetY(), 32, 32, false, opts, 0, "")
		pdf.SetXY(48, pdf.GetY()+12)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW-36, 6, "Scan to pay via UPI", "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
