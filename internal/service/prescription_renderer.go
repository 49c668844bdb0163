package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"go-telemedicine/internal/domain/entity"

	"github.com/jung-kurt/gofpdf"
)

var ErrNoPrescription = errors.New("consultation has no prescription")

// PrescriptionDateLayout formats the prescription date, e.g. "20 January 2024".
const PrescriptionDateLayout = "2 January 2006"

const (
	pageMargin  = 50.0
	lineSpacing = 1.2
)

// RGB is a text colour.
type RGB struct {
	R, G, B int
}

var (
	colorHeading = RGB{51, 51, 51}
	colorMuted   = RGB{102, 102, 102}
	colorText    = RGB{0, 0, 0}
	colorAccent  = RGB{204, 0, 0}
	colorFaint   = RGB{136, 136, 136}
)

// Block is one element of the prescription layout: either a run of text or,
// when Space is set, vertical space measured in lines of the current font.
type Block struct {
	Text      string
	FontSize  float64
	Color     RGB
	Align     string
	Underline bool
	Space     float64
}

type PrescriptionRenderer interface {
	Layout(c *entity.Consultation) ([]Block, error)
	Render(c *entity.Consultation) ([]byte, error)
}

type prescriptionRenderer struct{}

func NewPrescriptionRenderer() PrescriptionRenderer {
	return &prescriptionRenderer{}
}

type layoutBuilder struct {
	blocks   []Block
	fontSize float64
	color    RGB
}

func (b *layoutBuilder) text(s string, size float64, color RGB, align string) {
	b.fontSize, b.color = size, color
	b.blocks = append(b.blocks, Block{Text: s, FontSize: size, Color: color, Align: align})
}

// line continues with the current font and colour.
func (b *layoutBuilder) line(s string) {
	b.text(s, b.fontSize, b.color, "L")
}

func (b *layoutBuilder) heading(s string) {
	b.fontSize, b.color = 14, colorText
	b.blocks = append(b.blocks, Block{Text: s, FontSize: 14, Color: colorText, Align: "L", Underline: true})
}

func (b *layoutBuilder) space(lines float64) {
	b.blocks = append(b.blocks, Block{Space: lines, FontSize: b.fontSize, Color: b.color})
}

func (r *prescriptionRenderer) Layout(c *entity.Consultation) ([]Block, error) {
	if c == nil || c.Prescription == nil {
		return nil, ErrNoPrescription
	}
	p := c.Prescription
	b := &layoutBuilder{}

	b.text("MEDICAL PRESCRIPTION", 20, colorHeading, "C")
	b.space(0.5)
	b.text("This is an official medical prescription", 10, colorMuted, "C")
	b.space(2)

	b.heading("Doctor Information")
	b.space(0.5)
	b.text("Name: "+c.DoctorName, 11, colorText, "L")
	b.line("Specialty: " + c.DoctorSpecialty)
	b.line("Date: " + p.PrescribedAt.Format(PrescriptionDateLayout))
	b.space(1.5)

	b.heading("Patient Information")
	b.space(0.5)
	b.text("Name: "+c.PatientName, 11, colorText, "L")
	b.line(fmt.Sprintf("Age: %d years", c.PatientAge))
	b.line("Phone: " + c.PatientPhone)
	b.line("Email: " + c.PatientEmail)
	b.space(1.5)

	b.heading("Medical History")
	b.space(0.5)
	b.text("Current Illness: "+c.CurrentIllness, 11, colorText, "L")
	if c.HadRecentSurgery() {
		b.line("Recent Surgery: " + c.RecentSurgery)
		if c.SurgeryTimespan != "" {
			b.line("Time Since Surgery: " + c.SurgeryTimespan)
		}
	}
	diabetes := c.DiabetesHistory
	if diabetes == "" {
		diabetes = "Not specified"
	}
	b.line("Diabetes History: " + diabetes)
	if c.Allergies != "" {
		b.line("Allergies: " + c.Allergies)
	}
	b.space(1.5)

	b.heading("PRESCRIPTION")
	b.space(0.5)
	b.text("Care to be Taken:", 12, colorAccent, "L")
	b.space(0.3)
	b.text(p.CareToBeTaken, 11, colorText, "J")
	b.space(1)
	if p.Medicines != "" {
		b.text("Medicines:", 12, colorAccent, "L")
		b.space(0.3)
		b.text(p.Medicines, 11, colorText, "J")
	}
	b.space(2)

	if c.TransactionID != "" {
		b.text("Transaction ID: "+c.TransactionID, 9, colorFaint, "R")
	}
	b.space(1)
	b.text(strings.Repeat("_", 60), 10, colorMuted, "C")
	b.text("Dr. "+c.DoctorName, 9, colorMuted, "C")
	b.text("Digital Signature", 8, colorFaint, "C")

	return b.blocks, nil
}

// Render draws the layout on a Letter page. Document dates are pinned to the
// prescription date, so equal input always produces equal bytes.
func (r *prescriptionRenderer) Render(c *entity.Consultation) ([]byte, error) {
	blocks, err := r.Layout(c)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCreationDate(c.Prescription.PrescribedAt)
	pdf.SetModificationDate(c.Prescription.PrescribedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Medical Prescription", true)
	pdf.SetAuthor("Dr. "+c.DoctorName, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, block := range blocks {
		style := ""
		if block.Underline {
			style = "U"
		}
		pdf.SetFont("Helvetica", style, block.FontSize)
		pdf.SetTextColor(block.Color.R, block.Color.G, block.Color.B)

		lineHeight := block.FontSize * lineSpacing
		if block.Space > 0 {
			pdf.Ln(block.Space * lineHeight)
			continue
		}
		pdf.MultiCell(0, lineHeight, tr(block.Text), "", block.Align, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render prescription for consultation %d: %w", c.ID, err)
	}
	return buf.Bytes(), nil
}
