package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
)

type CORSMiddleware struct {
	origins []string
}

// NewCORSMiddleware allows the comma separated origins; credentials are
// always allowed so session cookies travel with cross-origin calls.
func NewCORSMiddleware(origins string) *CORSMiddleware {
	var allowed []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed = append(allowed, origin)
		}
	}
	return &CORSMiddleware{origins: allowed}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	if len(m.origins) == 0 {
		return next
	}
	return handlers.CORS(
		handlers.AllowedOrigins(m.origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	)(next)
}
