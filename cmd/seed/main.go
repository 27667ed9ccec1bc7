package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/helliomastic/Movie-Final-Recom/config"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "password123"
	name := "Catalog Admin"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", id, email, password)

	movies := []struct {
		title, description, image, genre, director, releaseDate string
		rating                                                  float64
	}{
		{"The Lighthouse Run", "Two smugglers race the tide along a collapsing causeway.", "lighthouse-run.jpg", "Thriller", "M. Okafor", "2019-08-02", 7.4},
		{"Paper Planets", "An astronomer fakes a discovery and has to live with it.", "paper-planets.jpg", "Drama", "L. Carvalho", "2021-03-19", 8.1},
		{"Glasshouse Avenue", "A heist crew takes a job inside a building made of glass.", "glasshouse-avenue.jpg", "Crime", "S. Brandt", "2017-11-10", 6.9},
	}
	for _, m := range movies {
		var mid int64
		err := db.QueryRow(`
			INSERT INTO movies (title, description, image, genre, director, release_date, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, m.title, m.description, m.image, m.genre, m.director, m.releaseDate, m.rating).Scan(&mid)
		if err != nil {
			log.Fatalf("failed to seed movie %q: %v", m.title, err)
		}
		fmt.Printf("seeded movie: id=%d title=%s\n", mid, m.title)
	}
}
