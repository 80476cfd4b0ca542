package domain

import "time"

// ProductLike records one customer's like on a product. One row per
// (product, user) pair.
type ProductLike struct {
	ID        int64     `json:"id,string"`
	ProductID int64     `gorm:"index:idx_like_product_user,unique" json:"product_id,string"`
	UserID    int64     `gorm:"index:idx_like_product_user,unique" json:"user_id,string"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ProductLike) TableName() string {
	return "product_like"
}

// ProductFavorite bookmarks a product on a customer's favorites list.
type ProductFavorite struct {
	ID        int64     `json:"id,string"`
	ProductID int64     `gorm:"index:idx_fav_product_user,unique" json:"product_id,string"`
	UserID    int64     `gorm:"index:idx_fav_product_user,unique" json:"user_id,string"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ProductFavorite) TableName() string {
	return "product_favorite"
}

// ProductComment is a customer comment on a product page.
type ProductComment struct {
	ID        int64     `json:"id,string"`
	ProductID int64     `gorm:"index" json:"product_id,string"`
	UserID    int64     `gorm:"index" json:"user_id,string"`
	Username  string    `json:"username"`
	Body      string    `gorm:"size:1024" json:"body" form:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (ProductComment) TableName() string {
	return "product_comment"
}
