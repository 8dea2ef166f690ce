package repository

import (
	"buysell_server/database"
	"buysell_server/structs/tables"
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/MonkyMars/gecho"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "desk", escapeLike("desk"))
}

// openTestDB connects to TEST_DATABASE_URL, migrates and empties the schema.
// Tests that need Postgres are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sqldb, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel((*tables.ProductCity)(nil))
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.MigrateSQL(sqldb, gecho.NewDefaultLogger()))

	_, err = db.ExecContext(context.Background(),
		"TRUNCATE product_cities, images, products, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return &database.DB{DB: db}
}

func createUser(t *testing.T, db bun.IDB, email string) *tables.User {
	t.Helper()

	user := &tables.User{Email: email, Name: "Test", PasswordHash: "x", Active: true, Roles: []string{tables.RoleUser}}
	require.NoError(t, NewUserRepository(db).Save(context.Background(), user))
	return user
}

func createCity(t *testing.T, db bun.IDB, name string) tables.GermanCity {
	t.Helper()

	city := &tables.GermanCity{CityName: name}
	require.NoError(t, NewCityRepository(db).Save(context.Background(), city))
	return *city
}
