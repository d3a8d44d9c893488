package model

type Institution struct {
	DTO
	Name               string   `gorm:"not null" json:"name"`
	Email              string   `gorm:"not null" json:"email"`
	Code               string   `gorm:"uniqueIndex;not null" json:"code"`
	IsActive           bool     `gorm:"not null;default:true" json:"isActive"`
	ShopifyDiscountId  *string  `json:"shopifyDiscountId"`
	ShopifyPageUrl     *string  `json:"shopifyPageUrl"`
	LogoUrl            *string  `json:"logoUrl"`
	AllowedCollections []string `gorm:"serializer:json" json:"allowedCollections"`
	AllowedProducts    []string `gorm:"serializer:json" json:"allowedProducts"`
	RestrictToProducts bool     `gorm:"not null;default:false" json:"restrictToProducts"`
}

type Institutions []Institution

type CreateInstitutionInput struct {
	Name               string   `json:"name" validate:"required,min=2,max=200"`
	Email              string   `json:"email" validate:"required,email"`
	ShopifyPageUrl     *string  `json:"shopifyPageUrl" validate:"omitempty,url"`
	AllowedCollections []string `json:"allowedCollections" validate:"omitempty,dive,min=1"`
	AllowedProducts    []string `json:"allowedProducts" validate:"omitempty,dive,min=1"`
	RestrictToProducts bool     `json:"restrictToProducts"`
}

type UpdateInstitutionInput struct {
	Name               *string   `json:"name" validate:"omitempty,min=2,max=200"`
	Email              *string   `json:"email" validate:"omitempty,email"`
	IsActive           *bool     `json:"isActive" validate:"omitempty"`
	ShopifyPageUrl     *string   `json:"shopifyPageUrl" validate:"omitempty,url"`
	AllowedCollections *[]string `json:"allowedCollections" validate:"omitempty"`
	AllowedProducts    *[]string `json:"allowedProducts" validate:"omitempty"`
	RestrictToProducts *bool     `json:"restrictToProducts" validate:"omitempty"`
}

// InstitutionUpdate is the storage-level partial update. Code and
// ShopifyDiscountId are only set through the lifecycle service, which keeps
// the remote discount in sync.
type InstitutionUpdate struct {
	Name               *string
	Email              *string
	IsActive           *bool
	Code               *string
	ShopifyDiscountId  **string
	ShopifyPageUrl     *string
	LogoUrl            *string
	AllowedCollections *[]string
	AllowedProducts    *[]string
	RestrictToProducts *bool
}

type InstitutionFilter struct {
	Pagination
	SearchKey string `json:"searchKey"`
	IsActive  *bool  `json:"isActive"`
}
