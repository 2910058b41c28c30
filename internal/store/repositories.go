package store

import "github.com/MKhiriev/go-membership/internal/logger"

// Repositories groups every repository built on one [DB].
type Repositories struct {
	Transactor             Transactor
	UserRepository         UserRepository
	ProfileRepository      ProfileRepository
	EmailAddressRepository EmailAddressRepository
	TaskRepository         TaskRepository
	TokenRepository        TokenRepository
	CatalogRepository      CatalogRepository
}

// NewRepositories wires all repositories to db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Transactor:             db,
		UserRepository:         NewUserRepository(db, log),
		ProfileRepository:      NewProfileRepository(db, log),
		EmailAddressRepository: NewEmailAddressRepository(db, log),
		TaskRepository:         NewTaskRepository(db, log),
		TokenRepository:        NewTokenRepository(db, log),
		CatalogRepository:      NewCatalogRepository(db, log),
	}
}
