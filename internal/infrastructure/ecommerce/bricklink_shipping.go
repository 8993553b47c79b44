package ecommerce

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
)

// ShippingProfileRepository lists the store's available shipping methods.
type ShippingProfileRepository struct {
	api    StoreAPI
	logger *zap.Logger
}

var _ integration.ShippingProfileRepository = (*ShippingProfileRepository)(nil)

func NewShippingProfileRepository(api StoreAPI, log *zap.Logger) *ShippingProfileRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &ShippingProfileRepository{api: api, logger: log.Named("shipping")}
}

func (r *ShippingProfileRepository) GetShippingProfiles(ctx context.Context) ([]integration.ShippingProfile, error) {
	ctx, span := telemetry.StartRepositorySpan(ctx, "shipping_profiles", "list")
	defer span.End()

	methods, err := fetch[[]bricklink.ShippingMethod](ctx, r.api, "settings/shipping_methods", nil)
	if err != nil {
		logger.WithLogger(ctx, r.logger).Error("Failed to fetch shipping methods", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("%w: list shipping methods: %w", integration.ErrOperationFailed, err)
	}

	profiles := make([]integration.ShippingProfile, 0, len(methods))
	for _, m := range methods {
		if !m.IsAvailable {
			continue
		}
		profiles = append(profiles, integration.ShippingProfile{
			ID:   strconv.FormatInt(m.MethodID, 10),
			Name: m.Name,
		})
	}
	return profiles, nil
}
