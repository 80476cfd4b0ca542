package pricing

import (
	"context"
	"sort"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/pkg/metrics"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SkippedProduct reports one product left untouched by a bulk reprice.
type SkippedProduct struct {
	ProductID int64  `json:"product_id,string"`
	Reason    string `json:"reason"`
}

// RepriceResult is the outcome of repricing one material. A partially failed
// batch is the expected steady state: skipped products are reported, never
// retried automatically.
type RepriceResult struct {
	Material string           `json:"material"`
	Updated  []int64          `json:"updated"`
	Skipped  []SkippedProduct `json:"skipped,omitempty"`
}

// UpdatedCount returns the number of successfully repriced products.
func (r *RepriceResult) UpdatedCount() int {
	return len(r.Updated)
}

// AllRepriceResult is the outcome of repricing every material in the store.
type AllRepriceResult struct {
	TotalUpdated   int              `json:"total_updated"`
	MaterialsCount int              `json:"materials_count"`
	Results        []*RepriceResult `json:"results"`
}

// Repricer re-applies the current reference price to stored products.
// Product writes within one material run concurrently on a shared worker
// pool; each write is independent and idempotent for a fixed price snapshot,
// so re-running after a partial failure is always safe.
type Repricer struct {
	prices   MaterialPriceRepository
	products ProductRepository
	pool     *ants.Pool
	bus      EventBus.Bus
}

// NewRepricer creates a bulk repricer. pool may be nil, in which case
// products are processed inline.
func NewRepricer(prices MaterialPriceRepository, products ProductRepository, pool *ants.Pool, bus EventBus.Bus) *Repricer {
	return &Repricer{prices: prices, products: products, pool: pool, bus: bus}
}

// Reprice recomputes gram and total prices for every product of a material
// from the material's current reference price. Fails fast when no reference
// price exists; a single product's failure only skips that product.
func (r *Repricer) Reprice(ctx context.Context, material string) (*RepriceResult, error) {
	if !domain.ValidMaterial(material) {
		return nil, ErrUnknownMaterial
	}

	mp, err := r.prices.GetByMaterial(ctx, material)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPriceNotFound
		}
		return nil, errors.Wrap(err, "query material price")
	}

	products, err := r.products.FindByMaterial(ctx, material)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}

	result := &RepriceResult{Material: material, Updated: []int64{}}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, p := range products {
		p := p
		wg.Add(1)
		task := func() {
			defer wg.Done()
			Recalculate(p, mp)
			if err := r.products.Save(ctx, p); err != nil {
				zap.L().Warn("bulk reprice: product skipped",
					zap.Int64("product_id", p.ID),
					zap.String("material", material),
					zap.Error(err))
				mu.Lock()
				result.Skipped = append(result.Skipped, SkippedProduct{ProductID: p.ID, Reason: err.Error()})
				mu.Unlock()
				return
			}
			mu.Lock()
			result.Updated = append(result.Updated, p.ID)
			mu.Unlock()
		}
		if r.pool != nil {
			if err := r.pool.Submit(task); err != nil {
				task()
			}
		} else {
			task()
		}
	}
	wg.Wait()

	sort.Slice(result.Updated, func(i, j int) bool { return result.Updated[i] < result.Updated[j] })
	sort.Slice(result.Skipped, func(i, j int) bool { return result.Skipped[i].ProductID < result.Skipped[j].ProductID })

	metrics.CounterAdd(metrics.MetricRepriceRuns, 1)
	metrics.CounterAdd(metrics.MetricRepricedProducts, float64(len(result.Updated)))

	zap.L().Info("bulk reprice completed",
		zap.String("material", material),
		zap.Int("updated", len(result.Updated)),
		zap.Int("skipped", len(result.Skipped)))

	if r.bus != nil {
		r.bus.Publish(EventRepriceCompleted, result)
	}
	return result, nil
}

// RepriceOne refreshes a single product's price snapshot from its material's
// current reference price.
func (r *Repricer) RepriceOne(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "query product")
	}

	mp, err := r.prices.GetByMaterial(ctx, p.Material)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPriceNotFound
		}
		return nil, errors.Wrap(err, "query material price")
	}

	Recalculate(p, mp)
	if err := r.products.Save(ctx, p); err != nil {
		return nil, errors.Wrap(err, "save product")
	}
	metrics.CounterAdd(metrics.MetricRepricedProducts, 1)
	return p, nil
}

// RepriceAll runs Reprice for every material present in the store, one
// material at a time; concurrency stays within each material batch.
func (r *Repricer) RepriceAll(ctx context.Context) (*AllRepriceResult, error) {
	prices, err := r.prices.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list material prices")
	}

	all := &AllRepriceResult{Results: []*RepriceResult{}}
	for _, mp := range prices {
		result, err := r.Reprice(ctx, mp.Material)
		if err != nil {
			zap.L().Error("bulk reprice failed for material",
				zap.String("material", mp.Material), zap.Error(err))
			continue
		}
		all.TotalUpdated += result.UpdatedCount()
		all.MaterialsCount++
		all.Results = append(all.Results, result)
	}
	return all, nil
}
