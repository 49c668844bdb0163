package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"go-telemedicine/internal/delivery/dto"

	"github.com/gorilla/schema"
)

var errInvalidBody = errors.New("invalid request body")

const maxFormMemory = 1 << 20

// formDecoder maps form fields onto the same json names the DTOs use for
// JSON bodies.
var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
	decoder.RegisterConverter(dto.FormValue(""), func(value string) reflect.Value {
		return reflect.ValueOf(dto.FormValue(strings.TrimSpace(value)))
	})
	return decoder
}

// formNormalizer is implemented by requests that post-process decoded form
// values, such as splitting comma separated lists.
type formNormalizer interface {
	NormalizeForm()
}

// bindRequest decodes a JSON body, or an urlencoded or multipart form, into
// dst. When a form field repeats, scalar fields keep the last value.
func bindRequest(r *http.Request, dst interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return errInvalidBody
		}
		return nil
	}

	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return errInvalidBody
	}

	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return errInvalidBody
	}
	if n, ok := dst.(formNormalizer); ok {
		n.NormalizeForm()
	}
	return nil
}
