//nolint:revive
package common

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AddHealthEndpoint registers a health check endpoint on the provided router.
//
// Endpoint details:
//   - Method: GET
//   - Path: {contextPath}/health
//   - Response: HTTP 200 with JSON body {"status":"UP"}
func AddHealthEndpoint(r *chi.Mux, config *Config) {
	r.Get(config.Server.ContextPath+"/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("{\"status\":\"UP\"}"))
		if err != nil {
			http.Error(w, "Failed to write response", http.StatusInternalServerError)
		}
	})
}
