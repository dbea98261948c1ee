package seller

type File struct {
	Name    string
	Content []byte
}

// Application is the "become a seller" form.
type Application struct {
	StoreName   string `json:"store_name" validate:"required,max=100"`
	OwnerName   string `json:"owner_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,phone"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"max=1000"`
	Website     string `json:"website" validate:"omitempty,url"`
	Logo        *File  `json:"logo"`
	Documents   []File `json:"documents" validate:"min=1"`
}

type Submission struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status"`
}
