// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the demo user (demo@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"pagecraft/backend/internal/config"
	"pagecraft/backend/internal/db"
	domainsdomain "pagecraft/backend/internal/domains/domain"
	domainsrepo "pagecraft/backend/internal/domains/repository"
	mediadomain "pagecraft/backend/internal/media/domain"
	mediarepo "pagecraft/backend/internal/media/repository"
	pagesdomain "pagecraft/backend/internal/pages/domain"
	pagesrepo "pagecraft/backend/internal/pages/repository"
	sectionsdomain "pagecraft/backend/internal/sections/domain"
	sectionsrepo "pagecraft/backend/internal/sections/repository"
	"pagecraft/backend/internal/security"
	seodomain "pagecraft/backend/internal/seo/domain"
	seorepo "pagecraft/backend/internal/seo/repository"
	userdomain "pagecraft/backend/internal/user/domain"
	userrepo "pagecraft/backend/internal/user/repository"
)

const (
	adminEmail   = "admin@example.com"
	demoEmail    = "demo@example.com"
	seedPassword = "password123"
	adminUserID  = "seed-user-admin"
	demoUserID   = "seed-user-demo"
	demoDomainID = "seed-domain-001"
	demoPageID   = "seed-page-001"
	demoSection1 = "seed-section-001"
	demoSection2 = "seed-section-002"
	demoMediaID  = "seed-media-001"
	demoSEOID    = "seed-seo-001"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, demoEmail)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if existing != nil {
		log.Println("seed: demo user already present, nothing to do")
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash([]byte(seedPassword))
	if err != nil {
		log.Fatalf("seed: hash: %v", err)
	}

	now := time.Now().UTC()
	for _, u := range []*userdomain.User{
		{ID: adminUserID, Email: adminEmail, Name: "Admin", PasswordHash: hash, Role: userdomain.RoleAdmin, CreatedAt: now, UpdatedAt: now},
		{ID: demoUserID, Email: demoEmail, Name: "Demo", PasswordHash: hash, Role: userdomain.RoleClient, CreatedAt: now, UpdatedAt: now},
	} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed: user %s: %v", u.Email, err)
		}
	}

	domains := domainsrepo.NewPostgresRepository(conn)
	if err := domains.Create(ctx, &domainsdomain.Domain{
		ID: demoDomainID, Name: "demo.example.com", OwnerID: demoUserID, CreatedAt: now,
	}); err != nil {
		log.Fatalf("seed: domain: %v", err)
	}

	pages := pagesrepo.NewPostgresRepository(conn)
	if err := pages.Create(ctx, &pagesdomain.Page{
		ID: demoPageID, DomainID: demoDomainID, AuthorID: demoUserID,
		Title: "Home", Slug: "demo-home", Content: "Welcome to the demo site.",
		Hierarchy: 1, UpdatedAt: now,
	}); err != nil {
		log.Fatalf("seed: page: %v", err)
	}

	sections := sectionsrepo.NewPostgresRepository(conn)
	for _, s := range []*sectionsdomain.Section{
		{ID: demoSection1, PageID: demoPageID, Title: "Hero", Content: "Big welcome banner.", Position: 1},
		{ID: demoSection2, PageID: demoPageID, Title: "About", Content: "Who we are.", Position: 2},
	} {
		if err := sections.Create(ctx, s); err != nil {
			log.Fatalf("seed: section %s: %v", s.Title, err)
		}
	}

	media := mediarepo.NewPostgresRepository(conn)
	if err := media.Create(ctx, &mediadomain.Media{
		ID: demoMediaID, SectionID: demoSection1, UploaderID: demoUserID,
		FileURL: "/uploads/demo-hero.png", AltText: "Hero banner", Type: mediadomain.TypeImage,
	}); err != nil {
		log.Fatalf("seed: media: %v", err)
	}

	seo := seorepo.NewPostgresRepository(conn)
	if err := seo.Upsert(ctx, &seodomain.Record{
		ID: demoSEOID, DomainID: demoDomainID,
		MetaTitle: "Demo Site", MetaDescription: "A seeded demo site.",
		Keywords: "demo,example", OGImageURL: "/uploads/demo-hero.png",
	}); err != nil {
		log.Fatalf("seed: seo: %v", err)
	}

	log.Println("seed: done")
}
