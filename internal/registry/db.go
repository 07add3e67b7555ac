package registry

import (
	"fmt"
	"time"

	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	defaultConnectRetries = 30
	connectRetryWait      = 2 * time.Second
)

// Open connects to Postgres and migrates the registry schema. The
// connection is retried because the database may still be starting when
// the server comes up in a container.
func Open(dsn string) (*gorm.DB, error) {
	return open(dsn, defaultConnectRetries)
}

func open(dsn string, retries int) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < retries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", retries).Msg("Waiting for database")
		time.Sleep(connectRetryWait)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Station{},
		&models.PetrolPrice{},
		&models.PriceAndType{},
		&models.Vendor{},
		&models.Ad{},
		&models.Order{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	log.Info().Msg("Database connected and migrated")
	return db, nil
}
