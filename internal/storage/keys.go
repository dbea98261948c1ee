package storage

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyCart         = "cart"
	KeyQuickBuy     = "buy_now"
	KeyDiscountCode = "discount_code"
	KeyLastOrder    = "last_order"
)
