package model

import "time"

// DiscountUsage is append-only: one row per redemption of an institution code
// on a Shopify order. Written by the order webhook, never updated or deleted.
type DiscountUsage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InstitutionId  uint      `gorm:"not null;index" json:"institutionId"`
	OrderId        string    `gorm:"not null" json:"orderId"`
	DiscountAmount int64     `gorm:"not null" json:"discountAmount"` // cents
	UsedAt         time.Time `gorm:"not null" json:"usedAt"`

	Institution Institution `gorm:"foreignKey:InstitutionId;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type CreateDiscountUsageInput struct {
	InstitutionId  uint   `json:"institutionId" validate:"required"`
	OrderId        string `json:"orderId" validate:"required"`
	DiscountAmount int64  `json:"discountAmount" validate:"gte=0"`
}

type DashboardStats struct {
	ActiveInstitutions int64 `json:"activeInstitutions"`
	TotalDiscountCodes int64 `json:"totalDiscountCodes"`
	TotalFreeShipments int64 `json:"totalFreeShipments"`
	TotalSavings       int64 `json:"totalSavings"` // whole currency units
}

type ActivityEntry struct {
	Type        string    `json:"type"` // institution / usage
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      bool      `json:"status"`
}
