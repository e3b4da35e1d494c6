package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a named in-memory SQLite database, isolated per test, and
// migrates the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	require.NoError(t, err)
	return db
}

func seedProducts(t *testing.T, db *gorm.DB) []models.Product {
	t.Helper()
	products := []models.Product{
		{Name: "Keyboard", Price: 35000, Stock: 10},
		{Name: "Mouse", Price: 20000, Stock: 25},
		{Name: "Monitor", Price: 150000, Stock: 5},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return products
}

func TestGORMOrderRepository_CreateWithItems(t *testing.T) {
	db := setupDB(t)
	products := seedProducts(t, db)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{
		UserID:        7,
		RecipientName: "Jordan Kim",
		TotalPrice:    90000,
		Status:        models.StatusPending,
		Items: []models.OrderItem{
			{ProductID: products[0].ID, Quantity: 2, Price: 35000},
			{ProductID: products[1].ID, Quantity: 1, Price: 20000},
		},
	}
	require.NoError(t, repo.Create(order))
	require.NotZero(t, order.ID)

	loaded, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(90000), loaded.TotalPrice)
	assert.Len(t, loaded.Items, 2)
	assert.Equal(t, order.ID, loaded.Items[0].OrderID)
}

func TestGORMOrderRepository_SnapshotPriceSurvivesCatalogEdit(t *testing.T) {
	db := setupDB(t)
	products := seedProducts(t, db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	order := &models.Order{
		UserID:     7,
		TotalPrice: 70000,
		Status:     models.StatusPending,
		Items:      []models.OrderItem{{ProductID: products[0].ID, Quantity: 2, Price: 35000}},
	}
	require.NoError(t, orderRepo.Create(order))

	// Raise the catalog price after the order exists.
	products[0].Price = 99000
	require.NoError(t, productRepo.Update(&products[0]))

	loaded, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(35000), loaded.Items[0].Price)
	assert.Equal(t, int64(70000), loaded.TotalPrice)
}

func TestGORMOrderRepository_MarkPaid_SecondCallLoses(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{UserID: 7, TotalPrice: 70000, Status: models.StatusPending}
	require.NoError(t, repo.Create(order))

	paid, err := repo.MarkPaid(order.ID)
	require.NoError(t, err)
	assert.True(t, paid)

	// The guard lives in the UPDATE itself: the second attempt matches no rows.
	paid, err = repo.MarkPaid(order.ID)
	require.NoError(t, err)
	assert.False(t, paid)

	loaded, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, loaded.Status)
}

func TestGORMOrderRepository_ListByUser_NewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	for i := 0; i < 3; i++ {
		order := &models.Order{
			UserID:     7,
			TotalPrice: int64(1000 * (i + 1)),
			Status:     models.StatusPending,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(order))
	}
	require.NoError(t, repo.Create(&models.Order{UserID: 99, TotalPrice: 5, Status: models.StatusPending}))

	orders, total, err := repo.ListByUser(7, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(3000), orders[0].TotalPrice)
	assert.Equal(t, int64(2000), orders[1].TotalPrice)
}

func TestGORMOrderRepository_ListAdmin_Filters(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	user := models.User{Username: "jordan", Email: "jordan@example.com", Name: "Jordan Kim", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, repo.Create(&models.Order{UserID: user.ID, RecipientName: "Jordan Kim", TotalPrice: 1000, Status: models.StatusPaid}))
	require.NoError(t, repo.Create(&models.Order{UserID: user.ID, RecipientName: "Casey Lee", TotalPrice: 2000, Status: models.StatusPending}))

	// Status filter.
	orders, total, err := repo.ListAdmin(repositories.AdminOrderFilter{Status: models.StatusPaid}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusPaid, orders[0].Status)

	// Search by recipient name.
	orders, total, err = repo.ListAdmin(repositories.AdminOrderFilter{Search: "Casey"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Casey Lee", orders[0].RecipientName)

	// Search by purchaser username matches both orders.
	_, total, err = repo.ListAdmin(repositories.AdminOrderFilter{Search: "jordan"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGORMOrderRepository_UpdateFulfillment_KeepsTrackingWhenOmitted(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{UserID: 7, TotalPrice: 1000, Status: models.StatusPaid}
	require.NoError(t, repo.Create(order))

	tracking := "1234567890"
	carrier := "CJ Logistics"
	require.NoError(t, repo.UpdateFulfillment(order.ID, models.StatusShipped, &tracking, &carrier))

	// A later status-only update must not wipe the tracking info.
	require.NoError(t, repo.UpdateFulfillment(order.ID, models.StatusDelivered, nil, nil))

	loaded, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, loaded.Status)
	require.NotNil(t, loaded.TrackingNumber)
	assert.Equal(t, "1234567890", *loaded.TrackingNumber)
	require.NotNil(t, loaded.Carrier)
	assert.Equal(t, "CJ Logistics", *loaded.Carrier)
}

func TestGORMCartRepository_DeleteItemsByProduct_LeavesOthers(t *testing.T) {
	db := setupDB(t)
	products := seedProducts(t, db)
	repo := repositories.NewGORMCartRepository(db)

	cart, err := repo.GetOrCreate(7)
	require.NoError(t, err)

	for _, p := range products {
		require.NoError(t, repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 1}))
	}

	// Prune the first two products; the third line must survive.
	require.NoError(t, repo.DeleteItemsByProduct(cart.ID, []uint{products[0].ID, products[1].ID}))

	items, err := repo.ListItems(cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, products[2].ID, items[0].ProductID)
}

func TestGORMCartRepository_GetOrCreate_IsLazyAndStable(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMCartRepository(db)

	_, err := repo.GetByUser(7)
	assert.True(t, apperrors.IsNotFound(err))

	first, err := repo.GetOrCreate(7)
	require.NoError(t, err)
	second, err := repo.GetOrCreate(7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGORMPaymentRepository_DuplicateKeyRejected(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMPaymentRepository(db)

	payment := &models.Payment{OrderID: 5, PaymentKey: "tgen_abc123", Method: "CARD", Amount: 70000, Status: "PAID"}
	require.NoError(t, repo.Create(payment))

	dup := &models.Payment{OrderID: 6, PaymentKey: "tgen_abc123", Method: "CARD", Amount: 70000, Status: "PAID"}
	assert.Error(t, repo.Create(dup))

	found, err := repo.GetByKey("tgen_abc123")
	require.NoError(t, err)
	assert.Equal(t, uint(5), found.OrderID)
}

func TestGormTransactionManager_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	manager := repositories.NewGormTransactionManager(db)

	order := &models.Order{UserID: 7, TotalPrice: 70000, Status: models.StatusPending}
	require.NoError(t, repositories.NewGORMOrderRepository(db).Create(order))

	err := manager.WithinTransaction(func(tx *repositories.TxRepositories) error {
		if err := tx.Payments.Create(&models.Payment{
			OrderID: order.ID, PaymentKey: "tgen_rollback", Method: "CARD", Amount: 70000, Status: "PAID",
		}); err != nil {
			return err
		}
		paid, err := tx.Orders.MarkPaid(order.ID)
		require.NoError(t, err)
		require.True(t, paid)
		return fmt.Errorf("forced failure")
	})
	require.Error(t, err)

	// Neither the payment nor the status change survived the rollback.
	_, err = repositories.NewGORMPaymentRepository(db).GetByKey("tgen_rollback")
	assert.True(t, apperrors.IsNotFound(err))

	loaded, err := repositories.NewGORMOrderRepository(db).GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, loaded.Status)
}
