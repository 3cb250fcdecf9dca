package model

// PointsTransaction is one additive entry in a user's XP ledger. Reference is
// unique ("attempt:<id>", "goal:<id>", ...) so a retried award inserts nothing.
// swagger:model PointsTransaction
type PointsTransaction struct {
	BaseModel

	UserID    uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Points    int    `json:"points"`
	Reason    string `gorm:"size:255" json:"reason"`
	Reference string `gorm:"size:100;uniqueIndex" json:"reference"`
}

func (PointsTransaction) TableName() string {
	return "points_transactions"
}
