package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"urbancab/internal/domain"
)

// ReceiptService renders payout settlement statements as PDFs.
type ReceiptService struct {
	payoutService *PayoutService
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(payoutService *PayoutService) *ReceiptService {
	return &ReceiptService{payoutService: payoutService}
}

// PayoutStatement renders the settlement statement for a payout. Visible to
// admins and to the dealer/driver the payout belongs to. Returns the PDF
// bytes and a suggested filename.
func (s *ReceiptService) PayoutStatement(ctx context.Context, caller Caller, payoutID string) ([]byte, string, error) {
	payout, err := s.payoutService.GetPayout(ctx, caller, payoutID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := buildPayoutPDF(payout)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("payout-%s.pdf", payout.ID), nil
}

func buildPayoutPDF(p *domain.Payout) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payout Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "UrbanCab Payout Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	row := func(label, value string) {
		pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	row("Payout ID", p.ID)
	row("Booking ID", p.BookingID)
	row("Status", string(p.Status))
	if !p.ProcessedAt.IsZero() {
		row("Processed At", p.ProcessedAt.Format("2006-01-02 15:04:05"))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Settlement Breakdown", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	row("Booking Price", domain.FormatAmount(p.BookingPrice))
	row("Platform Commission", domain.FormatAmount(p.AdminCommission))
	if p.DealerID != "" {
		row("Dealer Amount", domain.FormatAmount(p.DealerAmount))
	}
	row("Driver Amount", domain.FormatAmount(p.DriverAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
