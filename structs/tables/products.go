package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel  `bun:"table:products,alias:p"`
	ID             int64        `bun:"id,pk,autoincrement" json:"id"`
	Title          string       `bun:"title,notnull" json:"title"`
	Description    string       `bun:"description,notnull" json:"description"`
	Price          int64        `bun:"price,notnull" json:"price"` // stored in cents
	UserID         int64        `bun:"user_id,notnull" json:"user_id"`
	PreviewImageID *int64       `bun:"preview_image_id" json:"preview_image_id,omitempty"`
	CreatedAt      time.Time    `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	User           *User        `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Images         []Image      `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
	Cities         []GermanCity `bun:"m2m:product_cities,join:Product=City" json:"cities,omitempty"`
}

// PreviewImage returns the image flagged as preview, or nil.
func (p *Product) PreviewImage() *Image {
	for i := range p.Images {
		if p.Images[i].PreviewImage {
			return &p.Images[i]
		}
	}
	return nil
}

// Image is owned by exactly one product and removed with it.
type Image struct {
	bun.BaseModel    `bun:"table:images,alias:img"`
	ID               int64  `bun:"id,pk,autoincrement" json:"id"`
	Name             string `bun:"name,notnull" json:"name"`
	OriginalFileName string `bun:"original_file_name,notnull" json:"original_file_name"`
	ContentType      string `bun:"content_type,notnull" json:"content_type"`
	Size             int64  `bun:"size,notnull" json:"size"`
	Bytes            []byte `bun:"bytes,type:bytea" json:"-"`
	PreviewImage     bool   `bun:"is_preview_image,notnull" json:"is_preview_image"`
	ProductID        int64  `bun:"product_id,notnull" json:"product_id"`
}

// ProductCity is the join row between products and german_cities.
type ProductCity struct {
	bun.BaseModel `bun:"table:product_cities,alias:pc"`
	ProductID     int64       `bun:"product_id,pk"`
	Product       *Product    `bun:"rel:belongs-to,join:product_id=id"`
	CityID        int64       `bun:"city_id,pk"`
	City          *GermanCity `bun:"rel:belongs-to,join:city_id=id"`
}
