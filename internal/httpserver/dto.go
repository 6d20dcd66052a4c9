package httpserver

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsAdmin      bool   `json:"isAdmin"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type OrderItemRef struct {
	ISBN string `json:"isbn"`
}

type PlaceOrderRequest struct {
	Address string         `json:"address"`
	Items   []OrderItemRef `json:"items"`
}

type PlaceOrderResponse struct {
	Message string `json:"message"`
	OrderID uint   `json:"order_id"`
	Items   int    `json:"items"`
}

type CartRequest struct {
	ISBN string `json:"isbn"`
}

type ReviewRequest struct {
	Rating int `json:"rating"`
}

type UpdateBookRequest struct {
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

type CreateBookRequest struct {
	ISBN      string   `json:"isbn"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Year      int      `json:"year"`
	Publisher string   `json:"publisher"`
	ImageURL  string   `json:"image_url"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
}
