package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/qc"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
)

// QCQueueItemModel is the persistence model for QC queue items
type QCQueueItemModel struct {
	AggregateModel
	SKUID          uuid.UUID  `gorm:"column:sku_id;type:uuid;not null;index"`
	Quantity       int        `gorm:"not null"`
	ReturnLineID   *uuid.UUID `gorm:"type:uuid;index"`
	Condition      string     `gorm:"type:varchar(32)"`
	Status         string     `gorm:"type:varchar(20);not null;default:pending;index:idx_qc_items_status_created,priority:1"`
	Comments       string     `gorm:"type:text"`
	WriteOffReason string     `gorm:"type:varchar(32)"`
	ProcessedAt    *time.Time
	ProcessedBy    string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (QCQueueItemModel) TableName() string {
	return "qc_queue_items"
}

// ToDomain converts the persistence model to a domain QueueItem
func (m *QCQueueItemModel) ToDomain() *qc.QueueItem {
	return &qc.QueueItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SKUID:             m.SKUID,
		Quantity:          m.Quantity,
		ReturnLineID:      m.ReturnLineID,
		Condition:         m.Condition,
		Status:            qc.ItemStatus(m.Status),
		Comments:          m.Comments,
		WriteOffReason:    qc.WriteOffReason(m.WriteOffReason),
		ProcessedAt:       m.ProcessedAt,
		ProcessedBy:       m.ProcessedBy,
	}
}

// FromDomain populates the persistence model from a domain QueueItem
func (m *QCQueueItemModel) FromDomain(item *qc.QueueItem) {
	m.FromDomainAggregateRoot(item.BaseAggregateRoot)
	m.SKUID = item.SKUID
	m.Quantity = item.Quantity
	m.ReturnLineID = item.ReturnLineID
	m.Condition = item.Condition
	m.Status = string(item.Status)
	m.Comments = item.Comments
	m.WriteOffReason = string(item.WriteOffReason)
	m.ProcessedAt = item.ProcessedAt
	m.ProcessedBy = item.ProcessedBy
}

// QCQueueItemModelFromDomain creates a new persistence model from a domain QueueItem
func QCQueueItemModelFromDomain(item *qc.QueueItem) *QCQueueItemModel {
	m := &QCQueueItemModel{}
	m.FromDomain(item)
	return m
}

// WriteOffLogModel is the persistence model for the write-off audit log
type WriteOffLogModel struct {
	BaseModel
	SKUID       uuid.UUID  `gorm:"column:sku_id;type:uuid;not null;index"`
	Quantity    int        `gorm:"not null"`
	Reason      string     `gorm:"type:varchar(32);not null"`
	QueueItemID *uuid.UUID `gorm:"type:uuid;index"`
	Notes       string     `gorm:"type:text"`
	Actor       string     `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (WriteOffLogModel) TableName() string {
	return "write_off_logs"
}

// ToDomain converts the persistence model to a domain WriteOffLog
func (m *WriteOffLogModel) ToDomain() *qc.WriteOffLog {
	return &qc.WriteOffLog{
		BaseEntity:  shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		SKUID:       m.SKUID,
		Quantity:    m.Quantity,
		Reason:      qc.WriteOffReason(m.Reason),
		QueueItemID: m.QueueItemID,
		Notes:       m.Notes,
		Actor:       m.Actor,
	}
}

// WriteOffLogModelFromDomain creates a new persistence model from a domain WriteOffLog
func WriteOffLogModelFromDomain(l *qc.WriteOffLog) *WriteOffLogModel {
	m := &WriteOffLogModel{
		SKUID:       l.SKUID,
		Quantity:    l.Quantity,
		Reason:      string(l.Reason),
		QueueItemID: l.QueueItemID,
		Notes:       l.Notes,
		Actor:       l.Actor,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}
