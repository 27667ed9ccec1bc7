package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"
	"github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
)

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func (r *MovieRepository) Create(m *entity.Movie) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO movies (title, description, image, genre, director, release_date, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, m.Title, m.Description, m.Image, m.Genre, m.Director, m.ReleaseDate, m.Rating)

	return row.Scan(&m.ID, &m.CreatedAt)
}

func (r *MovieRepository) GetByID(id int64) (*entity.Movie, error) {
	ctx := context.Background()
	m := &entity.Movie{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, image, genre, director, release_date, rating, created_at
		FROM movies
		WHERE id = $1
	`, id)

	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.Genre,
		&m.Director, &m.ReleaseDate, &m.Rating, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return m, nil
}

func (r *MovieRepository) List() ([]*entity.Movie, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, image, genre, director, release_date, rating, created_at
		FROM movies
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Movie, 0)
	for rows.Next() {
		m := &entity.Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.Genre,
			&m.Director, &m.ReleaseDate, &m.Rating, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.MovieRepository = (*MovieRepository)(nil)
