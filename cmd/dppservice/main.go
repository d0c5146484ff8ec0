package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/dpp40/dpp-go-components/internal/auth"
	"github.com/dpp40/dpp-go-components/internal/common"
	api "github.com/dpp40/dpp-go-components/internal/dppshell/api"
	"github.com/dpp40/dpp-go-components/internal/dppshell/persistence"
	persistence_inmemory "github.com/dpp40/dpp-go-components/internal/dppshell/persistence/inmemory"
	persistence_postgresql "github.com/dpp40/dpp-go-components/internal/dppshell/persistence/postgresql"
	"github.com/dpp40/dpp-go-components/internal/dppshell/projection"
	visapi "github.com/dpp40/dpp-go-components/internal/visualization/api"
	openapi "github.com/dpp40/dpp-go-components/pkg/dppapi/go"
)

//go:embed api/openapi.yaml
var openAPISpec embed.FS

func runServer(ctx context.Context, configPath string) error {
	log.Default().Println("Loading DPP Shell Service...")
	log.Default().Println("Config Path:", configPath)
	// Load configuration
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	config.Server.ContextPath = common.NormalizeBasePath(config.Server.ContextPath)

	// Create Chi router
	r := chi.NewRouter()

	// Enable CORS
	common.AddCors(r, config)

	// Resolve the requester role on every request
	r.Use(auth.Middleware(config.Auth))

	// Add health endpoint
	common.AddHealthEndpoint(r, config)

	// ==== Shell store backend ====
	var db persistence.ShellDatabase
	switch config.Repository.Backend {
	case "postgres":
		pgDB, err := persistence_postgresql.NewPostgreSQLShellDatabase(ctx, config.Postgres)
		if err != nil {
			return fmt.Errorf("failed to initialize database connection: %w", err)
		}
		defer pgDB.Close()
		db = pgDB
		log.Println("🗄️  Using PostgreSQL shell store")
	case "memory", "":
		db = persistence_inmemory.NewInMemoryShellDatabase()
		log.Println("🗄️  Using in-memory shell store")
	default:
		return fmt.Errorf("unknown repository backend %q", config.Repository.Backend)
	}

	projector := projection.NewProjector()

	// ==== DPP Repository Service ====
	repoSvc := api.NewDPPRepositoryService(db, projector, config.Repository.UniqueIdShort)
	repoCtrl := openapi.NewDPPRepositoryAPIController(repoSvc, config.Server.ContextPath)
	for _, rt := range repoCtrl.Routes() {
		r.Method(rt.Method, rt.Pattern, rt.HandlerFunc)
	}

	// ==== Visualization Service ====
	visSvc := visapi.NewVisualizationAPIService(db, projector)
	visCtrl := openapi.NewVisualizationAPIController(visSvc, config.Server.ContextPath)
	for _, rt := range visCtrl.Routes() {
		r.Method(rt.Method, rt.Pattern, rt.HandlerFunc)
	}

	// ==== Description Service ====
	descSvc := openapi.NewDescriptionAPIService()
	descCtrl := openapi.NewDescriptionAPIController(descSvc, config.Server.ContextPath)
	for _, rt := range descCtrl.Routes() {
		r.Method(rt.Method, rt.Pattern, rt.HandlerFunc)
	}

	// ==== Swagger UI ====
	if err := common.AddSwaggerUIFromFS(r, openAPISpec, "api/openapi.yaml",
		"DPP Shell Service", "/swagger", "/api-docs/openapi.yaml", config); err != nil {
		return fmt.Errorf("failed to set up swagger ui: %w", err)
	}

	// Start the server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{Addr: addr, Handler: r}
	log.Printf("▶️  DPP Shell Service listening on %s\n", addr)
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	return server.Shutdown(context.Background())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// load config path from flag
	configPath := ""
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	if err := runServer(ctx, configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
