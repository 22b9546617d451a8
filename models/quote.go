package models

// RoomLineItem is one row of the room-price breakdown shown to the customer.
type RoomLineItem struct {
	Room       string  `json:"room"`
	Count      int     `json:"count"`
	UnitRate   float64 `json:"unit_rate"`
	Multiplier float64 `json:"multiplier"`
	Total      float64 `json:"total"`
}

// Quote is a full price breakdown for a prospective booking.
type Quote struct {
	BasePrice      float64        `json:"base_price"`
	RoomPrice      float64        `json:"room_price"`
	RoomBreakdown  []RoomLineItem `json:"room_breakdown,omitempty"`
	ALaCarteTotal  float64        `json:"a_la_carte_total"`
	ALaCarteItems  []ALaCarteItem `json:"a_la_carte_items,omitempty"`
	Subtotal       float64        `json:"subtotal"`
	DiscountAmount float64        `json:"discount_amount"`
	TotalAmount    float64        `json:"total_amount"`
	EstimatedHours float64        `json:"estimated_hours"`
	PromoCode      string         `json:"promo_code,omitempty"`
}
