// Package invoice renders booking invoices as PDF.
package invoice

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	bookingModel "kingdom/internal/domains/booking/model"
	roomModel "kingdom/internal/domains/room/model"
	"kingdom/shared/constant"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	lineHeight = 7
	moneyScale = 2
)

type Data struct {
	Booking  bookingModel.Booking
	Room     roomModel.Room
	Currency string
	IssuedAt time.Time
	Issuer   string
}

// FileName is the attachment name for a booking invoice.
func FileName(reference string) string {
	return "invoice-" + reference + ".pdf"
}

// Render lays out a one page A4 invoice.
func Render(d Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+d.Booking.BookingReference, false)
	pdf.SetAuthor(d.Issuer, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, strings.ToUpper(d.Issuer)+" INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line(pdf, "Invoice No  : "+d.Booking.BookingReference)
	line(pdf, "Issued      : "+d.IssuedAt.Format("2006-01-02 15:04"))
	line(pdf, "Status      : "+d.Booking.Status)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line(pdf, "Billed to:")

	pdf.SetFont("Helvetica", "", 12)
	line(pdf, "Name   : "+safe(d.Booking.GuestName))
	line(pdf, "Email  : "+safe(d.Booking.GuestEmail))
	line(pdf, "Phone  : "+safe(d.Booking.GuestPhone))
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line(pdf, "Stay:")

	pdf.SetFont("Helvetica", "", 11)
	line(pdf, fmt.Sprintf("Room %s (%s, %s package)", safe(d.Room.RoomNumber), d.Room.RoomType, d.Room.PackageTier))
	line(pdf, fmt.Sprintf("Check-in %s, check-out %s, %d night(s)",
		d.Booking.CheckInDate.Format(constant.DateOnly),
		d.Booking.CheckOutDate.Format(constant.DateOnly),
		d.Booking.NumberOfNights,
	))
	line(pdf, "Nightly rate : "+Money(d.Currency, d.Room.PricePerNight))
	line(pdf, "Payment      : "+strings.ReplaceAll(d.Booking.PaymentMethod, "_", " "))

	if d.Booking.SpecialRequests != nil && *d.Booking.SpecialRequests != "" {
		pdf.MultiCell(0, 6, "Special requests: "+*d.Booking.SpecialRequests, "", "", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	line(pdf, "Total: "+Money(d.Currency, d.Booking.TotalAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.Bytes(), nil
}

// Money formats an amount with its currency code, e.g. "KES 1,250.00".
func Money(currency string, amount decimal.Decimal) string {
	fixed := amount.StringFixed(moneyScale)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder

	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}

		grouped.WriteRune(digit)
	}

	return fmt.Sprintf("%s %s%s.%s", currency, sign, grouped.String(), frac)
}

func line(pdf *gofpdf.Fpdf, text string) {
	pdf.Cell(0, lineHeight, text)
	pdf.Ln(lineHeight)
}

func safe(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}

	return value
}
