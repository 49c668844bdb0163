package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Forbidden(rec, "Not authorized")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorized", body["error"])
}

func TestView(t *testing.T) {
	rec := httptest.NewRecorder()
	View(rec, "doctorsList", map[string]interface{}{"doctors": []string{"a"}})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "doctorsList", body["view"])
	assert.Equal(t, []interface{}{"a"}, body["doctors"])
}

func TestPDF(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, PDF(rec, "prescription_1.pdf", bytes.NewReader([]byte("%PDF-1.3"))))

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="prescription_1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
