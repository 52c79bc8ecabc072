package services

import (
	"bytes"
	"fmt"
	"strings"

	"ourbus/internal/domain/models"
	"ourbus/internal/repositories"
	"ourbus/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders the printable e-ticket for a booking.
type TicketService struct {
	Ledger    repositories.LedgerRepository
	RequestID string
	Loader    func(string) (models.Booking, error)
}

func (s TicketService) GenerateETicket(bookingID string) ([]byte, string, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_eticket", "booking_id="+bookingID)
	return buildETicketPDF(booking)
}

func (s TicketService) loadBooking(bookingID string) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.Ledger.GetByID(bookingID)
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("OurBus E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "OURBUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID  : %s", b.ID),
		fmt.Sprintf("Status      : %s", b.Status),
		fmt.Sprintf("Route       : %s -> %s", safe(b.From, "-"), safe(b.To, "-")),
		fmt.Sprintf("Travel Date : %s", safe(b.Date, "-")),
		fmt.Sprintf("Mobile      : %s", safe(b.Mobile, "-")),
		fmt.Sprintf("Seats       : %s", strings.Join(b.Seats, ", ")),
		fmt.Sprintf("Amount Paid : %s", formatAmount(b.TotalAmount)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range b.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s (age %s) - seat %s", i+1, safe(p.Name, "-"), safe(p.Age, "-"), p.SeatID))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this ticket while boarding. One entry per seat.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(b.ID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 48 {
		s = s[:48]
	}
	return s
}

func formatAmount(v int64) string {
	if v <= 0 {
		return "Rs 0"
	}
	s := fmt.Sprintf("%d", v)
	var out strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return "Rs " + out.String()
}
