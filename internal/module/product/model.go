package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry order lines point at. Orders copy the unit
// price at placement time, so editing a product never rewrites history.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `json:"name" gorm:"not null"`
	Category    string          `json:"category" gorm:"index"`
	ModelNumber string          `json:"model_number" gorm:"uniqueIndex;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null"`
	ImageURL    string          `json:"image_url"`
	Active      bool            `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the database table name.
func (Product) TableName() string {
	return "products"
}
