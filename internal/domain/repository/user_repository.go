package repository

import "github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts the user and fills ID/CreatedAt. Returns ErrDuplicateEmail
	// when the email is already taken.
	Create(u *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
