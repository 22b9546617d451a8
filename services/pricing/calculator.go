package pricing

import (
	"math"
	"strconv"
	"strings"

	"maidly/models"
)

// Calculator computes price quotes and duration estimates. It is pure: no
// side effects, no I/O, safe for concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a Calculator over the given tables.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// BasePrice looks up the per-visit base price for a house-size band and adds
// the one-time surcharge for non-recurring cleans. An unrecognized band
// prices at the default (smallest) tier.
func (c *Calculator) BasePrice(houseSize string, frequency models.Frequency) float64 {
	price, ok := c.cfg.BasePrices[houseSize]
	if !ok {
		price = c.cfg.BasePrices[c.cfg.DefaultBand]
	}
	if frequency == models.FrequencyOneTime {
		price += c.cfg.OneTimeSurcharge
	}
	return price
}

// RoomPrice sums the room contributions: boolean rooms at their flat rate,
// count rooms at rate times count, scaled by the frequency multiplier.
func (c *Calculator) RoomPrice(rooms models.RoomSelection, frequency models.Frequency) float64 {
	total := 0.0
	for _, item := range c.RoomBreakdown(rooms, frequency) {
		total += item.Total
	}
	return total
}

// RoomBreakdown returns the per-room line items behind RoomPrice, for display.
func (c *Calculator) RoomBreakdown(rooms models.RoomSelection, frequency models.Frequency) []models.RoomLineItem {
	mult := c.frequencyMultiplier(frequency)

	boolRooms := []struct {
		name    string
		present bool
	}{
		{RoomDiningRoom, rooms.DiningRoom},
		{RoomKitchen, rooms.Kitchen},
		{RoomLivingRoom, rooms.LivingRoom},
		{RoomMediaRoom, rooms.MediaRoom},
		{RoomGameRoom, rooms.GameRoom},
		{RoomOffice, rooms.Office},
	}
	countRooms := []struct {
		name  string
		count int
	}{
		{RoomBedrooms, rooms.Bedrooms},
		{RoomBathrooms, rooms.Bathrooms},
		{RoomHalfBathrooms, rooms.HalfBathrooms},
	}

	var items []models.RoomLineItem
	for _, r := range boolRooms {
		if !r.present {
			continue
		}
		rate := c.cfg.BooleanRoomRates[r.name]
		items = append(items, models.RoomLineItem{
			Room:       r.name,
			Count:      1,
			UnitRate:   rate,
			Multiplier: mult,
			Total:      rate * mult,
		})
	}
	for _, r := range countRooms {
		if r.count <= 0 {
			continue
		}
		rate := c.cfg.CountRoomRates[r.name]
		items = append(items, models.RoomLineItem{
			Room:       r.name,
			Count:      r.count,
			UnitRate:   rate,
			Multiplier: mult,
			Total:      rate * float64(r.count) * mult,
		})
	}
	return items
}

// ALaCarteUnitPrice resolves the unit price for one à-la-carte service. Most
// services carry a static catalog price; services in the tier table price by
// the house-size band instead.
func (c *Calculator) ALaCarteUnitPrice(service models.Service, houseSize string) float64 {
	if tier, ok := c.cfg.TieredALaCarte[service.Name]; ok {
		upper, openEnded := parseBandUpperBound(houseSize)
		if openEnded || upper > tier.ThresholdSqFt {
			return tier.HighPrice
		}
		return tier.LowPrice
	}
	if service.Price != nil {
		return *service.Price
	}
	return 0
}

// EstimatedDurationHours returns the job length: base hours for the band plus
// a fixed increment per à-la-carte line item, rounded up to the next whole
// hour unless already integral.
func (c *Calculator) EstimatedDurationHours(houseSize string, aLaCarteCount int) float64 {
	base, ok := c.cfg.BaseDurationHours[houseSize]
	if !ok {
		base = c.cfg.BaseDurationHours[c.cfg.DefaultBand]
	}
	hours := base + c.cfg.PerALaCarteHours*float64(aLaCarteCount)
	return math.Ceil(hours)
}

// Bands exposes the configured house-size bands and their base prices.
// The returned map is a copy; mutating it cannot alter the injected tables.
func (c *Calculator) Bands() map[string]float64 {
	bands := make(map[string]float64, len(c.cfg.BasePrices))
	for band, price := range c.cfg.BasePrices {
		bands[band] = price
	}
	return bands
}

func (c *Calculator) frequencyMultiplier(frequency models.Frequency) float64 {
	if mult, ok := c.cfg.FrequencyMultipliers[frequency]; ok {
		return mult
	}
	return 1.0
}

// parseBandUpperBound extracts the upper square footage from a band string
// like "2000-2500". Bands with a trailing "+" are open-ended.
func parseBandUpperBound(band string) (upper int, openEnded bool) {
	band = strings.TrimSpace(band)
	if strings.HasSuffix(band, "+") {
		return 0, true
	}
	parts := strings.Split(band, "-")
	n, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return 0, false
	}
	return n, false
}
