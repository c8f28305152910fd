package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gosimple/slug"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bilguun-dev/courseware-api/config"
	"github.com/bilguun-dev/courseware-api/pkg/helpers"
)

// Seeds an admin account plus one published course with a free-preview
// first episode, so a fresh install has something to click on.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "admin12345"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, 'ADMIN')
		ON CONFLICT (email) DO UPDATE SET role = 'ADMIN'
		RETURNING id
	`, email, hash, "Administrator").Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	title := "Introduction to Web Development"
	var courseID string
	err = db.QueryRow(`
		INSERT INTO courses (title, slug, description, category, price, fake_enrollment_bonus, discount_percent, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		ON CONFLICT (slug) DO UPDATE SET updated_at = now()
		RETURNING id
	`, title, slug.Make(title), "Build your first website from scratch.", "web", int64(100000), 150, 20).Scan(&courseID)
	if err != nil {
		log.Fatalf("failed to seed course: %v", err)
	}
	fmt.Printf("seeded course: id=%s slug=%s\n", courseID, slug.Make(title))

	episodes := []struct {
		title   string
		preview bool
	}{
		{"Welcome and Setup", true},
		{"HTML Basics", false},
		{"CSS Fundamentals", false},
	}
	for i, ep := range episodes {
		if _, err := db.Exec(`
			INSERT INTO episodes (course_id, title, position, is_free_preview, video_url)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM episodes WHERE course_id = $1 AND title = $2)
		`, courseID, ep.title, i+1, ep.preview, ""); err != nil {
			log.Fatalf("failed to seed episode %q: %v", ep.title, err)
		}
	}
	fmt.Printf("seeded %d episodes\n", len(episodes))
}
