package businessflow

import (
	"context"
	"strings"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/pricing"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

// QuoteFlow answers public buyback quote lookups from the published offers.
type QuoteFlow struct {
	pricingRepo repository.PricingRecordRepository
}

func NewQuoteFlow(pricingRepo repository.PricingRecordRepository) *QuoteFlow {
	return &QuoteFlow{pricingRepo: pricingRepo}
}

func (f *QuoteFlow) GetQuote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	grade := pricing.Grade(strings.ToLower(req.Grade))
	valid := false
	for _, known := range pricing.Grades {
		if grade == known {
			valid = true
			break
		}
	}
	if !valid {
		return nil, NewBusinessError("INVALID_GRADE", "unknown condition grade", ErrInvalidGrade)
	}

	record, err := f.pricingRepo.ByNaturalKey(ctx, models.NaturalKey{
		Model:   req.Model,
		Network: req.Network,
	})
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to look up pricing record", err)
	}
	if record == nil || !utils.IsTrue(record.IsActive) {
		return nil, NewBusinessError("RECORD_NOT_FOUND", "pricing record not found", ErrPricingRecordNotFound)
	}

	offer := pricing.GradePrices{
		Swap: record.OfferSwap,
		A:    record.OfferA,
		B:    record.OfferB,
		C:    record.OfferC,
		D:    record.OfferD,
		DOA:  record.OfferDOA,
	}.Get(grade)
	if offer == nil {
		return nil, NewBusinessError("QUOTE_NOT_AVAILABLE", "no offer available for this device", ErrQuoteNotAvailable)
	}

	return &dto.QuoteResponse{
		Model:       record.Model,
		Network:     record.Network,
		Grade:       string(grade),
		Offer:       *offer,
		LastUpdated: record.LastUpdated,
	}, nil
}
