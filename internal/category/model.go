package category

type Category struct {
	ID            string         `json:"id" validate:"required"`
	Name          string         `json:"name" validate:"required"`
	Slug          string         `json:"slug,omitempty"`
	Subcategories []*Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}
