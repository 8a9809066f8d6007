package model

// Restaurant is immutable reference data owned by the catalog.
type Restaurant struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	CuisineType           string  `json:"cuisine_type"`
	ImageURL              string  `json:"image_url"`
	AverageRating         float64 `json:"average_rating"` // 0–5
	EstimatedDeliveryTime string  `json:"estimated_delivery_time"`
	Location              string  `json:"location"`
}

// PlatformPrice is one delivery platform's offer for a restaurant.  Total is
// authoritative as supplied by the catalog; it is not recomputed from the
// other fields.
type PlatformPrice struct {
	Platform    string  `json:"platform"`
	BasePrice   float64 `json:"base_price"`
	DeliveryFee float64 `json:"delivery_fee"`
	ServiceFee  float64 `json:"service_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// ComponentSum is base price plus fees plus tax.
func (p PlatformPrice) ComponentSum() float64 {
	return p.BasePrice + p.DeliveryFee + p.ServiceFee + p.Tax
}
