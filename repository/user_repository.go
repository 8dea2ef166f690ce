package repository

import (
	"buysell_server/database"
	"buysell_server/lib"
	"buysell_server/structs/tables"
	"context"

	"github.com/uptrace/bun"
)

type userRepository struct {
	db bun.IDB
}

func NewUserRepository(db bun.IDB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx bun.IDB) UserRepository {
	return &userRepository{db: tx}
}

// FindByEmail returns nil, nil when no user has the address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*tables.User, error) {
	return database.Query[tables.User](r.db).Where("u.email", email).First(ctx)
}

// Save inserts the user. A taken email surfaces as lib.ErrConflict.
func (r *userRepository) Save(ctx context.Context, user *tables.User) error {
	_, err := database.Query[tables.User](r.db).Returning("id", "created_at").Insert(ctx, user)
	return lib.MapPgError(err)
}
