package dto

import (
	"io"
	"time"
)

type PrescriptionRequest struct {
	CareToBeTaken string `json:"careToBeTaken"`
	Medicines     string `json:"medicines"`
}

// UploadedPDF is a file received in the pdfFile multipart field.
type UploadedPDF struct {
	OriginalName string
	ContentType  string
	Size         int64
	Content      io.ReadSeeker
	Notes        string
}

type PrescriptionResponse struct {
	CareToBeTaken string              `json:"careToBeTaken"`
	Medicines     string              `json:"medicines"`
	PrescribedAt  time.Time           `json:"prescribedAt"`
	PrescribedBy  string              `json:"prescribedBy"`
	PDFFile       string              `json:"pdfFile,omitempty"`
	SentToPatient bool                `json:"sentToPatient"`
	SentAt        *time.Time          `json:"sentAt,omitempty"`
	CustomPDFs    []CustomPDFResponse `json:"customPDFs"`
}

type CustomPDFResponse struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Notes        string    `json:"notes"`
}

type SubmitPrescriptionResponse struct {
	Success bool   `json:"success"`
	PDFFile string `json:"pdfFile"`
}

type SendPrescriptionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UploadPrescriptionResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// PrescriptionDocument is a rendered prescription ready to stream.
type PrescriptionDocument struct {
	Filename string
	Content  []byte
}
