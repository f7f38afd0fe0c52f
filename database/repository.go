package database

type Repository struct {
	db   *DB
	live *liveQueries
}

func NewRepository(db *DB) *Repository {
	return &Repository{
		db:   db,
		live: newLiveQueries(),
	}
}
