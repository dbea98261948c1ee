package review

import "time"

type Review struct {
	ID        string    `json:"id" validate:"required"`
	ProductID string    `json:"product_id,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateInput struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type likeResponse struct {
	Likes int `json:"likes"`
}

// Summary is the aggregate shown next to a product.
type Summary struct {
	Count   int
	Average float64
}

func Summarize(reviews []Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return Summary{Count: len(reviews), Average: float64(total) / float64(len(reviews))}
}
