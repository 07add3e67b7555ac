package registry

import (
	"context"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const priceListCacheKey = "price-list"

// dbPriceSource reads the wholesale price list from Postgres, caching it
// briefly so the nearby lookup does not hammer the database on every
// position update.
type dbPriceSource struct {
	db    *gorm.DB
	cache *gocache.Cache
}

func (p *dbPriceSource) GetAll(ctx context.Context) ([]models.PriceEntry, error) {
	if cached, found := p.cache.Get(priceListCacheKey); found {
		if entries, ok := cached.([]models.PriceEntry); ok {
			return entries, nil
		}
	}

	var records []models.PetrolPrice
	err := p.db.WithContext(ctx).
		Preload("PriceAndType").
		Order("station_name asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("fetching price list: %w", err)
	}

	entries := make([]models.PriceEntry, 0, len(records))
	for _, rec := range records {
		prices := make([]models.FuelPrice, 0, len(rec.PriceAndType))
		for _, pt := range rec.PriceAndType {
			prices = append(prices, models.FuelPrice{
				ID:    pt.ID,
				Type:  pt.Type,
				Price: pt.Price,
			})
		}
		entries = append(entries, models.PriceEntry{
			ID:           rec.ID,
			StationName:  rec.StationName,
			PriceAndType: prices,
		})
	}

	p.cache.SetDefault(priceListCacheKey, entries)
	log.Debug().Int("count", len(entries)).Msg("Price list loaded from database")
	return entries, nil
}

// invalidate drops the cached list after a price mutation.
func (p *dbPriceSource) invalidate() {
	p.cache.Delete(priceListCacheKey)
}
