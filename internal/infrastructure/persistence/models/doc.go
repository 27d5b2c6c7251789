// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model carries a ToDomain and a
// FromDomain mapper used by the repositories.
//
// Structure:
//   - base.go: BaseModel and AggregateModel
//   - catalog.go: SKU
//   - partner.go: Customer
//   - trade.go: Order and OrderLine (with the embedded return state)
//   - qc.go: QC queue items and write-off logs
//   - inventory.go: inventory ledger entries
//   - outbox.go: transactional outbox
package models

// All returns every model, in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&SKUModel{},
		&CustomerModel{},
		&OrderModel{},
		&OrderLineModel{},
		&QCQueueItemModel{},
		&WriteOffLogModel{},
		&InventoryTransactionModel{},
		&OutboxEntryModel{},
	}
}
