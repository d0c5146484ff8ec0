// Package common provides shared utilities for the DPP Go components.
package common

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SwaggerUIHTML is the HTML template for Swagger UI
const SwaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Swagger UI</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
    <style>
        html { box-sizing: border-box; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin: 0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{.SpecURL}}",
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout"
            });
        };
    </script>
</body>
</html>`

// SwaggerUIConfig holds configuration for Swagger UI endpoint setup
type SwaggerUIConfig struct {
	Title       string // Title shown in browser tab
	SpecURL     string // URL to the OpenAPI spec (e.g., "/api-docs/openapi.yaml")
	UIPath      string // Path where Swagger UI will be served (e.g., "/swagger")
	SpecPath    string // Path where spec will be served (e.g., "/api-docs/openapi.yaml")
	SpecContent []byte // The OpenAPI spec content
}

// AddSwaggerUI adds Swagger UI endpoints to the router.
//
// This adds two endpoints:
//   - cfg.UIPath: Serves the Swagger UI HTML page
//   - cfg.SpecPath: Serves the OpenAPI specification file
func AddSwaggerUI(r *chi.Mux, cfg SwaggerUIConfig) {
	// Serve the OpenAPI spec
	r.Get(cfg.SpecPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(cfg.SpecContent)
	})

	// Serve Swagger UI
	tmpl := template.Must(template.New("swagger").Parse(SwaggerUIHTML))
	r.Get(cfg.UIPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, struct {
			Title   string
			SpecURL string
		}{
			Title:   cfg.Title,
			SpecURL: cfg.SpecURL,
		})
	})

	log.Printf("📖 Swagger UI available at %s", cfg.UIPath)
	log.Printf("📄 OpenAPI spec available at %s", cfg.SpecPath)
}

// AddSwaggerUIFromFS adds Swagger UI endpoints using an embedded filesystem.
func AddSwaggerUIFromFS(r *chi.Mux, specFS embed.FS, specFile string, title string, uiPath string, specPath string, serverConfig *Config) error {
	content, err := fs.ReadFile(specFS, specFile)
	if err != nil {
		return err
	}

	contextPath := ""
	if serverConfig != nil && serverConfig.Server.ContextPath != "" {
		contextPath = serverConfig.Server.ContextPath
		if !strings.HasPrefix(contextPath, "/") {
			contextPath = "/" + contextPath
		}
		contextPath = strings.TrimSuffix(contextPath, "/")
	}

	fullUIPath := contextPath + uiPath
	fullSpecPath := contextPath + specPath

	AddSwaggerUI(r, SwaggerUIConfig{
		Title:       title,
		SpecURL:     fullSpecPath,
		UIPath:      fullUIPath,
		SpecPath:    fullSpecPath,
		SpecContent: content,
	})

	if serverConfig != nil {
		host := serverConfig.Server.Host
		if host == "0.0.0.0" || host == "" {
			host = "localhost"
		}
		log.Printf("🌐 API base: %s", fmt.Sprintf("http://%s:%d%s", host, serverConfig.Server.Port, contextPath))
	}

	return nil
}
