package pricing

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Event topics published by the pricing services.
const (
	EventPriceUpdated     = "materialprice.updated"
	EventRepriceCompleted = "reprice.completed"
)

// PriceStore maintains the per-material reference prices. Setting a price
// never touches products; propagation is a separate, operator-triggered step
// so a bulk rewrite can be previewed and confirmed first.
type PriceStore struct {
	prices MaterialPriceRepository
	bus    EventBus.Bus
}

// NewPriceStore creates the reference price service.
func NewPriceStore(prices MaterialPriceRepository, bus EventBus.Bus) *PriceStore {
	return &PriceStore{prices: prices, bus: bus}
}

// Get returns the current record for a material, ErrPriceNotFound if unset.
func (s *PriceStore) Get(ctx context.Context, material string) (*domain.MaterialPrice, error) {
	if !domain.ValidMaterial(material) {
		return nil, ErrUnknownMaterial
	}
	mp, err := s.prices.GetByMaterial(ctx, material)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPriceNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query material price")
	}
	return mp, nil
}

// List returns every stored material price.
func (s *PriceStore) List(ctx context.Context) ([]domain.MaterialPrice, error) {
	prices, err := s.prices.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list material prices")
	}
	return prices, nil
}

// GetGoldKarat returns the stored per-gram gold price at one karat.
func (s *PriceStore) GetGoldKarat(ctx context.Context, karat string) (domain.CurrencyAmount, error) {
	if !ScalableKarat(karat) {
		return domain.CurrencyAmount{}, ErrUnknownKarat
	}
	mp, err := s.Get(ctx, domain.MaterialGold)
	if err != nil {
		return domain.CurrencyAmount{}, err
	}
	amount, ok := mp.GoldKaratPrices[karat]
	if !ok {
		return domain.CurrencyAmount{}, ErrPriceNotFound
	}
	return amount, nil
}

// Set replaces a material's reference price. For gold the karat seeds the
// full karat table and the flat price mirrors the karat-21 entry; for silver
// and diamond the karat is ignored and the price is stored as-is.
func (s *PriceStore) Set(ctx context.Context, material, karat string, price domain.CurrencyAmount, updatedBy string) (*domain.MaterialPrice, error) {
	if !domain.ValidMaterial(material) {
		return nil, ErrUnknownMaterial
	}
	if price.Usd < 0 || price.Syp < 0 {
		return nil, ErrNegativePrice
	}

	mp, err := s.prices.GetByMaterial(ctx, material)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		mp = &domain.MaterialPrice{ID: common.UUIDint64(), Material: material, CreatedAt: time.Now()}
	case err != nil:
		return nil, errors.Wrap(err, "query material price")
	}

	if material == domain.MaterialGold {
		if karat == "" {
			return nil, ErrKaratRequired
		}
		table, err := ScaleKaratTable(karat, price)
		if err != nil {
			return nil, err
		}
		mp.GoldKaratPrices = table
		mp.PricePerGram = table[Karat21]
	} else {
		mp.PricePerGram = price
	}

	mp.UpdatedBy = updatedBy
	mp.LastUpdated = time.Now()

	if err := s.prices.Save(ctx, mp); err != nil {
		return nil, errors.Wrap(err, "save material price")
	}

	zap.L().Info("material price updated",
		zap.String("material", material),
		zap.String("karat", karat),
		zap.Float64("usd", mp.PricePerGram.Usd),
		zap.Float64("syp", mp.PricePerGram.Syp),
		zap.String("updated_by", updatedBy))

	if s.bus != nil {
		s.bus.Publish(EventPriceUpdated, mp)
	}
	return mp, nil
}
