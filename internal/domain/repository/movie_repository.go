package repository

import "github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"

// MovieRepository defines the interface for catalog database operations.
type MovieRepository interface {
	// Create inserts the movie and fills ID/CreatedAt.
	Create(m *entity.Movie) error
	GetByID(id int64) (*entity.Movie, error)
	// List returns all movies in insertion order.
	List() ([]*entity.Movie, error)
}
