package trade

// ReasonCategory classifies why the customer returned the item
type ReasonCategory string

const (
	ReasonFitSize        ReasonCategory = "fit_size"
	ReasonProductQuality ReasonCategory = "product_quality"
	ReasonColourMismatch ReasonCategory = "colour_mismatch"
	ReasonWrongItem      ReasonCategory = "wrong_item"
	ReasonChangedMind    ReasonCategory = "changed_mind"
	ReasonDeliveryIssue  ReasonCategory = "delivery_issue"
	ReasonOther          ReasonCategory = "other"
)

// IsValid checks if the category is known
func (c ReasonCategory) IsValid() bool {
	switch c {
	case ReasonFitSize, ReasonProductQuality, ReasonColourMismatch, ReasonWrongItem,
		ReasonChangedMind, ReasonDeliveryIssue, ReasonOther:
		return true
	}
	return false
}

// ReasonCategories lists every known category
func ReasonCategories() []ReasonCategory {
	return []ReasonCategory{
		ReasonFitSize, ReasonProductQuality, ReasonColourMismatch, ReasonWrongItem,
		ReasonChangedMind, ReasonDeliveryIssue, ReasonOther,
	}
}

// Condition is the state of the goods recorded at receipt
type Condition string

const (
	ConditionGood      Condition = "good"
	ConditionUsed      Condition = "used"
	ConditionDamaged   Condition = "damaged"
	ConditionWrongItem Condition = "wrong_item"
)

// IsValid checks if the condition is known
func (c Condition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionUsed, ConditionDamaged, ConditionWrongItem:
		return true
	}
	return false
}

// PickupType is how the goods travel back
type PickupType string

const (
	PickupScheduled    PickupType = "scheduled"
	PickupCustomerShip PickupType = "customer_shipped"
)

// IsValid checks if the pickup type is known
func (p PickupType) IsValid() bool {
	return p == PickupScheduled || p == PickupCustomerShip
}

// RefundMethod is how money is returned to the customer
type RefundMethod string

const (
	RefundPaymentLink  RefundMethod = "payment_link"
	RefundBankTransfer RefundMethod = "bank_transfer"
	RefundStoreCredit  RefundMethod = "store_credit"
)

// IsValid checks if the refund method is known. Empty means not yet chosen.
func (m RefundMethod) IsValid() bool {
	switch m {
	case "", RefundPaymentLink, RefundBankTransfer, RefundStoreCredit:
		return true
	}
	return false
}

// QCResult is the inspection outcome stamped on the line by the QC cascade
type QCResult string

const (
	QCResultNone       QCResult = ""
	QCResultApproved   QCResult = "approved"
	QCResultWrittenOff QCResult = "written_off"
)
