package repositories

import "gorm.io/gorm"

// TxRepositories bundles the repositories that participate in the payment
// settlement transaction, each bound to the same database transaction.
type TxRepositories struct {
	Orders   OrderRepository
	Payments PaymentRepository
	Carts    CartRepository
}

// TransactionManager runs a function inside a single database transaction.
// Every repository handed to fn sees the same transaction; if fn returns an
// error, nothing it did takes effect.
type TransactionManager interface {
	WithinTransaction(fn func(tx *TxRepositories) error) error
}

// GormTransactionManager is a GORM implementation of TransactionManager.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager.
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{
		db: db,
	}
}

// WithinTransaction opens a transaction, rebinds the settlement repositories
// to it, and commits only when fn returns nil.
func (m *GormTransactionManager) WithinTransaction(fn func(tx *TxRepositories) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TxRepositories{
			Orders:   NewGORMOrderRepository(tx),
			Payments: NewGORMPaymentRepository(tx),
			Carts:    NewGORMCartRepository(tx),
		})
	})
}
