package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/catalog"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/partner"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newSQLiteDB opens a migrated in-memory database. A single connection keeps
// every query on the same in-memory schema.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// newMockGormDB opens GORM over sqlmock with the postgres dialector
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

type seededOrder struct {
	customer *partner.Customer
	sku      *catalog.SKU
	order    *trade.Order
	lineID   uuid.UUID
}

// seedOrder stores a customer, a SKU and a one-line order for it
func seedOrder(t *testing.T, db *gorm.DB) seededOrder {
	t.Helper()
	ctx := t.Context()

	customer, err := partner.NewCustomer("Meera Iyer", "meera@example.com")
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(ctx, customer))

	sku, err := catalog.NewSKU("KURTA-GRN-M", "Kurta Green M", decimal.NewFromInt(1800))
	require.NoError(t, err)
	require.NoError(t, NewGormSKURepository(db).Save(ctx, sku))

	order, err := trade.NewOrder("ORD-2001", customer.ID)
	require.NoError(t, err)
	line, err := order.AddLine(sku.ID, 2, sku.Price)
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Create(ctx, order))

	return seededOrder{customer: customer, sku: sku, order: order, lineID: line.ID}
}
