package domain

import "time"

type Product struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Slug        string        `bson:"slug" json:"slug"`
	Price       Price         `bson:"price" json:"price"`
	Categories  []CategoryRef `bson:"category_ids" json:"categories"`
	Tags        []string      `bson:"tags" json:"tags"`
	Comments    []Comment     `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

// Price carries both tiers; which one applies is decided per cart line
// by the pricing package.
type Price struct {
	Retail    float64 `bson:"retail" json:"retail"`
	Wholesale float64 `bson:"wholesale" json:"wholesale"`
}

type CategoryRef struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
}

type Comment struct {
	Text string    `bson:"text" json:"text"`
	Date time.Time `bson:"date" json:"date"`
}

// ProductPatch is a partial update: nil fields are left untouched.
type ProductPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Retail      *float64  `json:"retail,omitempty"`
	Wholesale   *float64  `json:"wholesale,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

func (p ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Retail == nil &&
		p.Wholesale == nil && p.Tags == nil
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Tag      string
	Category string
	PriceLT  *float64
	PriceGT  *float64
}
