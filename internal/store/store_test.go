// Package store tests are integration tests that require a running
// PostgreSQL instance. They skip automatically when the database is
// unreachable.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"

	"folio/internal/database"
	"folio/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "folio")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "folio")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

// testDB connects, migrates, and wipes all tables so each test starts
// from a clean slate.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	_, err = db.Exec(`TRUNCATE comments, project_technologies, post_tags,
		projects, posts, technologies, tags, categories, media, users CASCADE`)
	if err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()
	u, err := NewUserStore(db).Create("test-"+uuid.NewString()+"@example.com", "password123", "Test Author")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

func createTestCategory(t *testing.T, db *sql.DB, kind models.CategoryKind, name, slug string) *models.Category {
	t.Helper()
	c, err := NewCategoryStore(db).Create(&models.Category{Kind: kind, Name: name, Slug: slug})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	return c
}

func createTestPost(t *testing.T, db *sql.DB, p *models.Post) *models.Post {
	t.Helper()
	created, err := NewPostStore(db).Create(p)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return created
}
