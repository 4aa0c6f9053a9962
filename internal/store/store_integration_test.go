package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/sugrobov/storefront/internal/catalog"
	serrors "github.com/sugrobov/storefront/internal/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "STOREFRONT_SKIP_INTEGRATION_TESTS"

// PgStoreSuite runs the CatalogStore contract against a real PostgreSQL
// instance and checks that the SQL twin agrees with the in-memory twin
// on every inclusion decision.
type PgStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	store       *PgStore
	memStore    *MemoryStore
	logger      *slog.Logger
	ctx         context.Context
}

func (s *PgStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "storefront"
	dbUser := "user"
	dbPassword := "password"

	// 1. Start a PostgreSQL container and wait for it to be ready.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		// ICU collation so ILIKE case-folds Cyrillic product names
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_INITDB_ARGS": "--locale-provider=icu --icu-locale=ru-RU",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	// 2. Get the connection string from the container
	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 3. Create a new pgxpool instance using the connection string
	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	// 4. Database migration
	wd, _ := os.Getwd()
	migrationsPath := filepath.Join(wd, "..", "..", "migrations")
	sourceURL := "file://" + migrationsPath
	m, err := migrate.New(sourceURL, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		require.NoError(s.T(), err, "Failed to apply migrations")
	}
	s.logger.Info("Migrations applied")

	// 5. Seed the synthetic catalog into both twins
	products, categories := syntheticCatalog()
	s.seed(products, categories)
	s.store = NewPgStore(s.dbPool)
	s.memStore = NewMemoryStore(products, categories)
}

func (s *PgStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// seed inserts the synthetic catalog. Rows are inserted in ID order into
// a fresh database, so the generated identifiers line up with the
// fixture identifiers.
func (s *PgStoreSuite) seed(products []catalog.Product, categories []catalog.Category) {
	for _, c := range categories {
		_, err := s.dbPool.Exec(s.ctx, `INSERT INTO categories (name) VALUES ($1)`, c.Name)
		require.NoError(s.T(), err, "Failed to seed category")
	}
	for i := range products {
		p := &products[i]
		_, err := s.dbPool.Exec(s.ctx,
			`INSERT INTO products (name, category_id, price, discount_price, rating, stock, image, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.Name, p.CategoryID, p.Price, p.DiscountPrice, p.Rating, p.Stock, p.Image, p.Description)
		require.NoError(s.T(), err, "Failed to seed product")
	}
}

// Both twins must produce identical inclusion decisions for the fixed
// synthetic dataset across the whole filter contract.
func (s *PgStoreSuite) TestFindProducts_AgreesWithMemoryTwin() {
	for i, filter := range contractFilters() {
		s.Run(fmt.Sprintf("filter_%d", i), func() {
			query := ProductQuery{Filter: filter, Limit: 100}

			pgProducts, pgTotal, err := s.store.FindProducts(s.ctx, query)
			require.NoError(s.T(), err)
			memProducts, memTotal, err := s.memStore.FindProducts(s.ctx, query)
			require.NoError(s.T(), err)

			assert.Equal(s.T(), memTotal, pgTotal)
			require.Len(s.T(), pgProducts, len(memProducts))
			for j := range pgProducts {
				assert.Equal(s.T(), memProducts[j].ID, pgProducts[j].ID)
				assert.Equal(s.T(), memProducts[j].Name, pgProducts[j].Name)
				assert.Equal(s.T(), memProducts[j].Category, pgProducts[j].Category)
			}
		})
	}
}

func (s *PgStoreSuite) TestFindProducts_Pagination() {
	query := ProductQuery{Limit: 2}

	firstPage, total, err := s.store.FindProducts(s.ctx, query)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(5), total, "out-of-stock product is not counted")
	require.Len(s.T(), firstPage, 2)
	assert.Equal(s.T(), int64(1), firstPage[0].ID)

	query.Offset = 4
	lastPage, _, err := s.store.FindProducts(s.ctx, query)
	require.NoError(s.T(), err)
	require.Len(s.T(), lastPage, 1)
	assert.Equal(s.T(), int64(6), lastPage[0].ID)
}

func (s *PgStoreSuite) TestFindProductByID() {
	found, err := s.store.FindProductByID(s.ctx, 5)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Товар 5 из Аксессуары", found.Name)
	assert.Equal(s.T(), "Аксессуары", found.Category)

	_, err = s.store.FindProductByID(s.ctx, 4)
	assert.ErrorIs(s.T(), err, serrors.ErrProductNotFound, "out-of-stock product is not served")

	_, err = s.store.FindProductByID(s.ctx, 999)
	assert.ErrorIs(s.T(), err, serrors.ErrProductNotFound)
}

func (s *PgStoreSuite) TestFindCategories() {
	categories, err := s.store.FindCategories(s.ctx)
	require.NoError(s.T(), err)

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	assert.Equal(s.T(), []string{"Аксессуары", "Ноутбуки", "Смартфоны"}, names)
}

func TestPgStoreSuite(t *testing.T) {
	if os.Getenv(skipIntegrationTests) != "" {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(PgStoreSuite))
}
