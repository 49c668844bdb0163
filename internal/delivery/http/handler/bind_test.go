package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-telemedicine/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/patientSignUp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestBindRequest_URLEncodedForm(t *testing.T) {
	req := formRequest(url.Values{
		"name":           {"Shreya Jain"},
		"email":          {"shreya@demo.com"},
		"age":            {" 28 "},
		"surgeryHistory": {"knee, appendix ,"},
		"illnessHistory": {"asthma", "migraine, anemia"},
		"unknownField":   {"ignored"},
	})

	var got dto.PatientSignupRequest
	require.NoError(t, bindRequest(req, &got))

	assert.Equal(t, "Shreya Jain", got.Name)
	assert.Equal(t, dto.FormValue("28"), got.Age)
	assert.Equal(t, dto.CSVList{"knee", "appendix"}, got.SurgeryHistory)
	assert.Equal(t, dto.CSVList{"asthma", "migraine", "anemia"}, got.IllnessHistory)
}

func TestBindRequest_RepeatedScalarKeepsLastValue(t *testing.T) {
	req := formRequest(url.Values{
		"email":    {"first@demo.com", "second@demo.com"},
		"password": {"secret"},
	})

	var got dto.SignInRequest
	require.NoError(t, bindRequest(req, &got))
	assert.Equal(t, "second@demo.com", got.Email)
	assert.Equal(t, "secret", got.Password)
}

func TestBindRequest_MultipartForm(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("careToBeTaken", "Rest"))
	require.NoError(t, writer.WriteField("medicines", "Aspirin"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/submitPrescription/1", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var got dto.PrescriptionRequest
	require.NoError(t, bindRequest(req, &got))
	assert.Equal(t, dto.PrescriptionRequest{CareToBeTaken: "Rest", Medicines: "Aspirin"}, got)
}

func TestBindRequest_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/patientSignUp",
		strings.NewReader(`{"name": "Shreya Jain", "age": 28, "surgeryHistory": ["knee"]}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	var got dto.PatientSignupRequest
	require.NoError(t, bindRequest(req, &got))
	assert.Equal(t, dto.FormValue("28"), got.Age)
	assert.Equal(t, dto.CSVList{"knee"}, got.SurgeryHistory)

	bad := httptest.NewRequest(http.MethodPost, "/patientSignUp", strings.NewReader(`{"name": `))
	bad.Header.Set("Content-Type", "application/json")
	assert.ErrorIs(t, bindRequest(bad, &got), errInvalidBody)
}
