package pricing

import "maidly/models"

// TieredPrice is a size-tiered unit price for one à-la-carte service: the low
// price applies when the house-size band's upper bound is at or below the
// threshold, the high price otherwise. Open-ended "+" bands always take the
// high tier.
type TieredPrice struct {
	ThresholdSqFt int
	LowPrice      float64
	HighPrice     float64
}

// Config carries every pricing table the calculator reads. Tables are plain
// data injected at construction so tests can swap fixtures without touching
// package state.
type Config struct {
	// BasePrices maps house-size band -> per-visit base price.
	BasePrices map[string]float64
	// DefaultBand prices unknown or missing bands. Fallback, not an error.
	DefaultBand       string
	OneTimeSurcharge  float64
	BooleanRoomRates  map[string]float64
	CountRoomRates    map[string]float64
	// FrequencyMultipliers scale the room subtotal. All 1.0 today; the hook
	// exists for differential recurring pricing.
	FrequencyMultipliers map[models.Frequency]float64
	// TieredALaCarte maps service name -> size-tiered unit price.
	TieredALaCarte map[string]TieredPrice
	// BaseDurationHours maps house-size band -> base job hours.
	BaseDurationHours map[string]float64
	// PerALaCarteHours is added per à-la-carte line item.
	PerALaCarteHours float64
}

// Room table keys. Boolean rooms contribute their rate once when selected;
// count rooms contribute rate times count.
const (
	RoomDiningRoom    = "dining_room"
	RoomKitchen       = "kitchen"
	RoomLivingRoom    = "living_room"
	RoomMediaRoom     = "media_room"
	RoomGameRoom      = "game_room"
	RoomOffice        = "office"
	RoomBedrooms      = "bedrooms"
	RoomBathrooms     = "bathrooms"
	RoomHalfBathrooms = "half_bathrooms"
)

// DefaultConfig returns the production pricing tables.
func DefaultConfig() Config {
	return Config{
		BasePrices: map[string]float64{
			"1000-1500": 35,
			"1500-2000": 40,
			"2000-2500": 45,
			"2500-3000": 50,
			"3000-3500": 55,
			"3500-4000": 60,
			"4000-5000": 65,
			"5000+":     75,
		},
		DefaultBand:      "1000-1500",
		OneTimeSurcharge: 75,
		BooleanRoomRates: map[string]float64{
			RoomDiningRoom: 10,
			RoomKitchen:    20,
			RoomLivingRoom: 15,
			RoomMediaRoom:  10,
			RoomGameRoom:   10,
			RoomOffice:     10,
		},
		CountRoomRates: map[string]float64{
			RoomBedrooms:      10,
			RoomBathrooms:     15,
			RoomHalfBathrooms: 8,
		},
		FrequencyMultipliers: map[models.Frequency]float64{
			models.FrequencyOneTime:     1.0,
			models.FrequencyWeekly:      1.0,
			models.FrequencyBiWeekly:    1.0,
			models.FrequencyEvery3Weeks: 1.0,
			models.FrequencyMonthly:     1.0,
		},
		TieredALaCarte: map[string]TieredPrice{
			"Dust Baseboards":       {ThresholdSqFt: 2500, LowPrice: 20, HighPrice: 30},
			"Dust Shutters":         {ThresholdSqFt: 2500, LowPrice: 25, HighPrice: 35},
			"Hand-Clean Baseboards": {ThresholdSqFt: 2500, LowPrice: 35, HighPrice: 50},
		},
		BaseDurationHours: map[string]float64{
			"1000-1500": 2,
			"1500-2000": 2.5,
			"2000-2500": 3,
			"2500-3000": 3.5,
			"3000-3500": 4,
			"3500-4000": 4.5,
			"4000-5000": 5,
			"5000+":     6,
		},
		PerALaCarteHours: 0.5,
	}
}
