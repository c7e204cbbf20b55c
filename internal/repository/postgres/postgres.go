package postgres

import (
	"database/sql"

	"civdef-inventory-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ItemRepository
	repository.RequestRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		ItemRepository:    NewItemRepository(db),
		RequestRepository: NewRequestRepository(db),
		UserRepository:    NewUserRepository(db),
	}
}
