package services

import (
	"buysell_server/repository"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

func testLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
}

// fakeTx runs fn directly and records how often a transaction was opened.
type fakeTx struct {
	calls int
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	f.calls++
	return fn(ctx, nil)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindAll(ctx context.Context) ([]tables.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tables.Product), args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (*tables.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*tables.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) FindByTitle(ctx context.Context, title string) ([]tables.Product, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]tables.Product), args.Error(1)
}

func (m *mockProductRepo) SearchByCity(ctx context.Context, cityID int64) ([]tables.Product, error) {
	args := m.Called(ctx, cityID)
	return args.Get(0).([]tables.Product), args.Error(1)
}

func (m *mockProductRepo) SearchByKeyword(ctx context.Context, keyword string) ([]tables.Product, error) {
	args := m.Called(ctx, keyword)
	return args.Get(0).([]tables.Product), args.Error(1)
}

func (m *mockProductRepo) SearchByKeywordAndCity(ctx context.Context, keyword string, cityID int64) ([]tables.Product, error) {
	args := m.Called(ctx, keyword, cityID)
	return args.Get(0).([]tables.Product), args.Error(1)
}

func (m *mockProductRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, product *tables.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *tables.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) SetPreviewImage(ctx context.Context, productID, imageID int64) error {
	return m.Called(ctx, productID, imageID).Error(0)
}

func (m *mockProductRepo) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) WithTx(bun.IDB) repository.ProductRepository {
	return m
}

type mockCityRepo struct {
	mock.Mock
}

func (m *mockCityRepo) FindAll(ctx context.Context) ([]tables.GermanCity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tables.GermanCity), args.Error(1)
}

func (m *mockCityRepo) FindByID(ctx context.Context, id int64) (*tables.GermanCity, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*tables.GermanCity)
	return c, args.Error(1)
}

func (m *mockCityRepo) Save(ctx context.Context, city *tables.GermanCity) error {
	return m.Called(ctx, city).Error(0)
}

func (m *mockCityRepo) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*tables.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*tables.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, user *tables.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) WithTx(bun.IDB) repository.UserRepository {
	return m
}

// testArgonParams keeps argon2 cheap in unit tests.
var testArgonParams = structs.ArgonParams{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16}

// stubHasher prefixes the plaintext so tests can assert on the stored hash.
type stubHasher struct{}

func (stubHasher) Encode(plain string) (string, error) { return "hashed:" + plain, nil }

func (stubHasher) Matches(plain, encoded string) (bool, error) {
	return encoded == "hashed:"+plain, nil
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcomeEmail(ctx context.Context, user *tables.User) error {
	return m.Called(ctx, user).Error(0)
}
