package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"maidly/models"
	"maidly/utils"
)

// Quote computes the full price breakdown for a prospective booking without
// any side effects. Supplying a promo code validates it (validation only, no
// ledger writes) and folds the discount into the totals.
func (e *DefaultEngine) Quote(ctx context.Context, in models.QuoteInput) (*models.Quote, error) {
	quote, _, err := e.buildQuote(ctx, in)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (e *DefaultEngine) buildQuote(ctx context.Context, in models.QuoteInput) (*models.Quote, *models.PromoCode, error) {
	logger := utils.GetLogger()

	if _, known := e.knownBand(in.HouseSize); !known {
		// Unknown bands price at the smallest tier. Soft-fail kept for
		// compatibility; logged so product can see how often it happens.
		logger.Warn("unrecognized house-size band, pricing at default tier",
			zap.String("houseSize", in.HouseSize))
	}

	basePrice := e.Pricing.BasePrice(in.HouseSize, in.Frequency)
	roomBreakdown := e.Pricing.RoomBreakdown(in.Rooms, in.Frequency)
	roomPrice := 0.0
	for _, item := range roomBreakdown {
		roomPrice += item.Total
	}

	items, aLaCarteTotal, err := e.resolveALaCarte(ctx, in.ALaCarte, in.HouseSize)
	if err != nil {
		return nil, nil, err
	}

	subtotal := basePrice + roomPrice + aLaCarteTotal

	quote := &models.Quote{
		BasePrice:      basePrice,
		RoomPrice:      roomPrice,
		RoomBreakdown:  roomBreakdown,
		ALaCarteTotal:  aLaCarteTotal,
		ALaCarteItems:  items,
		Subtotal:       subtotal,
		TotalAmount:    subtotal,
		EstimatedHours: e.Pricing.EstimatedDurationHours(in.HouseSize, len(items)),
	}

	if in.PromoCode == "" {
		return quote, nil, nil
	}

	result, err := e.Promo.Validate(ctx, in.PromoCode, in.CustomerID, subtotal)
	if err != nil {
		return nil, nil, fmt.Errorf("promo validation failed: %w", err)
	}
	if !result.Valid {
		return nil, nil, NewBookingError(CodeInvalidPromoCode, result.Message)
	}

	quote.PromoCode = result.Promo.Code
	quote.DiscountAmount = result.Discount
	quote.TotalAmount = result.FinalAmount
	return quote, result.Promo, nil
}

// resolveALaCarte turns service references into priced line items. Unit
// prices come from the calculator so size-tiered services resolve correctly.
func (e *DefaultEngine) resolveALaCarte(ctx context.Context, reqs []models.ALaCarteRequest, houseSize string) ([]models.ALaCarteItem, float64, error) {
	if len(reqs) == 0 {
		return nil, 0, nil
	}

	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ServiceID)
	}
	services, err := e.Services.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load a-la-carte services: %w", err)
	}
	byID := make(map[string]models.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	var items []models.ALaCarteItem
	total := 0.0
	for _, req := range reqs {
		svc, ok := byID[req.ServiceID]
		if !ok {
			return nil, 0, fmt.Errorf("unknown a-la-carte service %s", req.ServiceID)
		}
		qty := req.Quantity
		if qty < 1 {
			qty = 1
		}
		unit := e.Pricing.ALaCarteUnitPrice(svc, houseSize)
		items = append(items, models.ALaCarteItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Quantity:  qty,
			UnitPrice: unit,
		})
		total += unit * float64(qty)
	}
	return items, total, nil
}

func (e *DefaultEngine) knownBand(houseSize string) (string, bool) {
	if _, ok := e.Pricing.Bands()[houseSize]; ok {
		return houseSize, true
	}
	return "", false
}
