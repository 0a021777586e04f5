package model

import (
	"strings"

	"gorm.io/gorm"
)

type Cafe struct {
	gorm.Model
	Name         string `json:"name" gorm:"size:300;not null"`
	MapURL       string `json:"map_url" gorm:"column:map_url;size:300;not null"`
	ImgURL       string `json:"img_url" gorm:"column:img_url;size:300;not null"`
	Location     string `json:"location" gorm:"size:300;not null;index"`
	HasSockets   bool   `json:"has_sockets" gorm:"not null"`
	HasToilet    bool   `json:"has_toilet" gorm:"not null"`
	HasWifi      bool   `json:"has_wifi" gorm:"not null"`
	CanTakeCalls bool   `json:"can_take_calls" gorm:"not null"`
	Seats        string `json:"seats" gorm:"size:300;not null"`
	CoffeePrice  string `json:"coffee_price" gorm:"size:300"`
}

func (Cafe) TableName() string {
	return "cafe"
}

// FormatPrice prefixes price with the currency symbol unless it already
// carries it.
func FormatPrice(symbol, price string) string {
	price = strings.TrimSpace(price)
	if strings.HasPrefix(price, symbol) {
		return price
	}
	return symbol + price
}

// BarePrice strips the currency symbol, for pre-filling forms.
func BarePrice(symbol, price string) string {
	return strings.TrimPrefix(price, symbol)
}
