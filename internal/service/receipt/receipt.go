// Package receipt renders the two service receipts handed to the client: the
// intake receipt printed when a printer is dropped off and the completion
// receipt printed at pickup. Half of an A4 sheet, landscape.
package receipt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"printer-crm/internal/service/company"
	"printer-crm/internal/storage"
)

const (
	pageWidth  = 210.0
	pageHeight = 148.5
)

// The built-in fonts cover cp1252 only, so Romanian diacritics are folded to
// their base letters before drawing.
var diacritics = strings.NewReplacer(
	"ă", "a", "Ă", "A",
	"â", "a", "Â", "A",
	"î", "i", "Î", "I",
	"ș", "s", "Ș", "S",
	"ț", "t", "Ț", "T",
)

func newPage() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// Intake renders the drop-off receipt for a freshly created order.
func Intake(order *storage.ServiceOrder, p company.Profile, logo []byte, logoMIME string) ([]byte, error) {
	const op = "service.receipt.Intake"

	pdf := newPage()

	drawLogo(pdf, logo, logoMIME)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(10, 45, diacritics.Replace(p.Name))
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(10, 50, diacritics.Replace(p.Address))
	pdf.Text(10, 54, fmt.Sprintf("CUI: %s   Reg. Com.: %s", p.CUI, p.RegCom))
	pdf.Text(10, 58, fmt.Sprintf("Tel: %s   Email: %s", p.Phone, p.Email))

	pdf.SetFont("Helvetica", "B", 12)
	centerText(pdf, 70, "BON PREDARE ECHIPAMENT")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 102, 204)
	centerText(pdf, 77, "Nr. Comanda: "+order.OrderID)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8)
	y := 88.0
	for _, line := range []string{
		"Client: " + diacritics.Replace(order.ClientName),
		"Telefon: " + order.ClientPhone,
		fmt.Sprintf("Imprimanta: %s %s", diacritics.Replace(order.PrinterBrand), diacritics.Replace(order.PrinterModel)),
		"Serie: " + order.PrinterSerial,
		"Problema: " + diacritics.Replace(order.IssueDescription),
		"Accesorii: " + diacritics.Replace(order.Accessories),
		"Data predarii: " + order.DateReceived,
	} {
		pdf.Text(10, y, line)
		y += 4
	}
	if order.DatePickupScheduled != "" {
		pdf.Text(10, y, "Data estimata ridicare: "+order.DatePickupScheduled)
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(10, pageHeight-12, "Semnatura client: ______________________")
	pdf.Text(120, pageHeight-12, "Semnatura service: ______________________")

	return output(pdf, op)
}

// Completion renders the pickup receipt with the final cost breakdown.
func Completion(order *storage.ServiceOrder, p company.Profile, logo []byte, logoMIME string) ([]byte, error) {
	const op = "service.receipt.Completion"

	pdf := newPage()

	drawLogo(pdf, logo, logoMIME)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(10, 45, diacritics.Replace(p.Name))
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(10, 50, diacritics.Replace(p.Address))

	pdf.SetFont("Helvetica", "B", 12)
	centerText(pdf, 62, "BON FINALIZARE REPARATIE")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 170, 0)
	centerText(pdf, 69, "Nr. Comanda: "+order.OrderID)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8)
	y := 80.0
	for _, line := range []string{
		"Client: " + diacritics.Replace(order.ClientName),
		fmt.Sprintf("Imprimanta: %s %s", diacritics.Replace(order.PrinterBrand), diacritics.Replace(order.PrinterModel)),
		"Tehnician: " + diacritics.Replace(order.Technician),
		"Detalii reparatie: " + diacritics.Replace(order.RepairDetails),
		"Piese folosite: " + diacritics.Replace(order.PartsUsed),
		"Data finalizarii: " + order.DateCompleted,
	} {
		pdf.Text(10, y, line)
		y += 4
	}

	y += 4
	pdf.Text(10, y, fmt.Sprintf("Manopera: %.2f RON", float64(order.LaborCost)))
	y += 4
	pdf.Text(10, y, fmt.Sprintf("Piese: %.2f RON", float64(order.PartsCost)))
	y += 5
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(10, y, fmt.Sprintf("Total: %.2f RON", float64(order.TotalCost)))

	return output(pdf, op)
}

func centerText(pdf *fpdf.Fpdf, y float64, s string) {
	w := pdf.GetStringWidth(s)
	pdf.Text((pageWidth-w)/2, y, s)
}

// drawLogo paints the uploaded logo in the top-left corner, or a gray
// placeholder box when none was uploaded or the format is unusable.
func drawLogo(pdf *fpdf.Fpdf, logo []byte, logoMIME string) {
	imgType := ""
	switch logoMIME {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg", "image/jpg":
		imgType = "JPG"
	}

	if len(logo) > 0 && imgType != "" {
		opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
		if pdf.Ok() {
			pdf.ImageOptions("logo", 10, 10, 40, 0, false, opts, 0, "")
			return
		}
		// Bad image data: fall through to the placeholder.
		pdf.ClearError()
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, 10, 40, 25, "FD")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(15, 24, "[LOGO]")
}

func output(pdf *fpdf.Fpdf, op string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
