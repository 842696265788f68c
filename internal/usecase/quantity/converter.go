// Package quantity converts between fuel litres and currency amounts for one
// composer session.
package quantity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/pkg/token"
	"fleet-console/internal/usecase/draftstore"
	"fleet-console/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var (
	ErrFuelTypeUnset  = errs.New("fuel type is not selected")
	ErrNegativeAmount = errs.New("amount cannot be negative")
	ErrNegativeLitres = errs.New("litres cannot be negative")
)

const (
	amountKey         = "amount-to-litres"
	msgConvertFailed  = "Could not update the quantity for this amount"
	msgSelectFuelType = "Select a fuel type first"
)

// Conversion is the outcome of SetAmount.
type Conversion struct {
	// Estimate is the local amount/unit-price estimate, nil without a cached price.
	Estimate *int
	Quantity int
	Applied  bool
}

type Converter struct {
	store    *draftstore.Store
	pricing  shared.FuelPricing
	clock    clock.Clock
	debounce time.Duration
	logger   *slog.Logger

	seq    *token.Sequencer
	primes singleflight.Group

	mu     sync.RWMutex
	prices map[request.FuelType]decimal.Decimal
}

func NewConverter(
	store *draftstore.Store,
	pricing shared.FuelPricing,
	clk clock.Clock,
	cfg config.ComposerConfig,
	logger *slog.Logger,
) *Converter {
	return &Converter{
		store:    store,
		pricing:  pricing,
		clock:    clk,
		debounce: cfg.ConversionDebounce,
		logger:   logger,
		seq:      token.NewSequencer(),
		prices:   make(map[request.FuelType]decimal.Decimal),
	}
}

// SelectFuelType switches the draft to ft, drops every cached price and primes
// the cache for ft. Priming failures are logged only.
func (c *Converter) SelectFuelType(ctx context.Context, ft request.FuelType) error {
	if !ft.IsValid() {
		return errs.Mark(request.ErrInvalidFuelType, errs.ErrValidation)
	}
	c.seq.Invalidate(amountKey)
	c.store.SetFuelType(ft)

	c.mu.Lock()
	c.prices = make(map[request.FuelType]decimal.Decimal)
	c.mu.Unlock()

	c.prime(ctx, ft)
	return nil
}

func (c *Converter) prime(ctx context.Context, ft request.FuelType) {
	v, err, collapsed := c.primes.Do(ft.String(), func() (any, error) {
		return c.pricing.FuelPricingDetail(ctx, ft, decimal.NewFromInt(1))
	})
	if err != nil {
		c.logger.Warn("unit price priming failed", "fuel_type", ft, "error", err)
		return
	}
	if collapsed {
		c.logger.Debug("unit price priming collapsed", "fuel_type", ft)
	}
	c.remember(ft, v.(shared.FuelQuote))
}

// remember caches the unit price of ft if ft is still the selected type.
func (c *Converter) remember(ft request.FuelType, q shared.FuelQuote) {
	price, ok := q.UnitPrice(ft)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store.Snapshot().Fuel.Type != ft {
		return
	}
	c.prices[ft] = price
}

// UnitPrice returns the cached per-litre price of ft.
func (c *Converter) UnitPrice(ft request.FuelType) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[ft]
	return p, ok
}

// SetLitres sets the quantity and, when the unit price is known, the amount.
// No network call is made.
func (c *Converter) SetLitres(litres int) (decimal.Decimal, bool, error) {
	if litres < 0 {
		return decimal.Zero, false, errs.Mark(ErrNegativeLitres, errs.ErrValidation)
	}
	c.seq.Invalidate(amountKey)
	c.store.SetQuantity(litres)

	amount, ok := c.EstimateAmount(litres)
	if ok {
		c.store.SetAmount(amount)
	}
	return amount, ok, nil
}

// SetAmount stores amount with a local litre estimate, then asks the backend
// for the authoritative quantity once input has paused. On failure the
// previous quantity stays.
func (c *Converter) SetAmount(ctx context.Context, amount decimal.Decimal) (Conversion, error) {
	if amount.IsNegative() {
		return Conversion{}, errs.Mark(ErrNegativeAmount, errs.ErrValidation)
	}
	ft := c.store.Snapshot().Fuel.Type
	if !ft.IsValid() {
		c.store.SetFieldError(request.KeyFuelType, msgSelectFuelType)
		return Conversion{}, errs.Mark(ErrFuelTypeUnset, errs.ErrValidation)
	}

	tok := c.seq.Next(amountKey)
	var result Conversion
	c.seq.Guard(tok, func() {
		c.store.SetAmount(amount)
		if est, ok := c.EstimateLitres(amount); ok {
			result.Estimate = &est
			c.store.SetQuantityEstimate(&est)
		}
	})

	select {
	case <-c.clock.After(c.debounce):
	case <-ctx.Done():
		return result, ctx.Err()
	}
	if !c.seq.IsLatest(tok) {
		return result, nil
	}

	quote, err := c.pricing.FuelPricingDetail(ctx, ft, amount)
	if err != nil {
		c.logger.Warn("amount conversion failed", "fuel_type", ft, "amount", amount.String(), "error", err)
		c.seq.Guard(tok, func() {
			c.store.SetQuantityEstimate(nil)
			c.store.Notify(request.KeyQuantity, msgConvertFailed)
		})
		return result, nil
	}

	litres := int(quote.Litres.Round(0).IntPart())
	c.seq.Guard(tok, func() {
		c.store.Update(func(d *request.Draft) {
			if d.Fuel.Type != ft {
				return
			}
			d.Fuel.Quantity = litres
			d.Fuel.QuantityEstimate = nil
			result.Quantity = litres
			result.Applied = true
		})
	})
	if result.Applied {
		c.store.ClearFieldError(request.KeyQuantity)
		c.remember(ft, quote)
	} else {
		c.logger.Debug("discarded superseded conversion", "fuel_type", ft, "gen", tok.Gen)
	}
	return result, nil
}

// EstimateLitres is round(amount / unit price) for the selected fuel type.
func (c *Converter) EstimateLitres(amount decimal.Decimal) (int, bool) {
	price, ok := c.UnitPrice(c.store.Snapshot().Fuel.Type)
	if !ok {
		return 0, false
	}
	return int(amount.Div(price).Round(0).IntPart()), true
}

// EstimateAmount is litres × unit price for the selected fuel type.
func (c *Converter) EstimateAmount(litres int) (decimal.Decimal, bool) {
	price, ok := c.UnitPrice(c.store.Snapshot().Fuel.Type)
	if !ok {
		return decimal.Zero, false
	}
	return price.Mul(decimal.NewFromInt(int64(litres))), true
}
