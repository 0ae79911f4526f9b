package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditpkg "pagecraft/backend/internal/audit"
	auditrepo "pagecraft/backend/internal/audit/repository"
	authhandler "pagecraft/backend/internal/auth/handler"
	authservice "pagecraft/backend/internal/auth/service"
	"pagecraft/backend/internal/config"
	"pagecraft/backend/internal/db"
	domainshandler "pagecraft/backend/internal/domains/handler"
	domainsrepo "pagecraft/backend/internal/domains/repository"
	mediahandler "pagecraft/backend/internal/media/handler"
	mediarepo "pagecraft/backend/internal/media/repository"
	pageshandler "pagecraft/backend/internal/pages/handler"
	pagesrepo "pagecraft/backend/internal/pages/repository"
	sectionshandler "pagecraft/backend/internal/sections/handler"
	sectionsrepo "pagecraft/backend/internal/sections/repository"
	"pagecraft/backend/internal/security"
	seohandler "pagecraft/backend/internal/seo/handler"
	seorepo "pagecraft/backend/internal/seo/repository"
	"pagecraft/backend/internal/server"
	"pagecraft/backend/internal/server/middleware"
	"pagecraft/backend/internal/telemetry"
	userhandler "pagecraft/backend/internal/user/handler"
	userrepo "pagecraft/backend/internal/user/repository"
)

const serviceName = "pagecraft-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	provider, err := telemetry.NewProvider(ctx, cfg.OTLPEndpoint, serviceName, cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	provider.SetGlobal()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	users := userrepo.NewPostgresRepository(conn)
	domains := domainsrepo.NewPostgresRepository(conn)
	pages := pagesrepo.NewPostgresRepository(conn)
	sections := sectionsrepo.NewPostgresRepository(conn)
	media := mediarepo.NewPostgresRepository(conn)
	seo := seorepo.NewPostgresRepository(conn)
	audits := auditrepo.NewPostgresRepository(conn)

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider(
		[]byte(cfg.SessionSigningKey),
		cfg.SessionIssuer,
		cfg.SessionTTL(),
		security.NewMemoryRevocationStore(),
	)
	recorder := auditpkg.NewLogger(audits, middleware.ClientIPFromContext)
	auth := authservice.NewAuthService(users, hasher, tokens, recorder)

	engine := server.New(server.Deps{
		Auth:        authhandler.New(auth, cfg.SessionTTL(), cfg.SessionCookieSecure),
		Users:       userhandler.New(users, audits),
		Domains:     domainshandler.New(domains),
		Pages:       pageshandler.New(pages, domains),
		Sections:    sectionshandler.New(sections, pages, domains),
		Media:       mediahandler.New(media, sections, pages, domains, cfg.UploadDir),
		SEO:         seohandler.New(seo, domains),
		Resolver:    auth,
		Pinger:      conn,
		UploadDir:   cfg.UploadDir,
		ServiceName: serviceName,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
