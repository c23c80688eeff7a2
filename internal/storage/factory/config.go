package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/es"
	"github.com/DjordjeVuckovic/media-placements/internal/storage/pg"
	"github.com/DjordjeVuckovic/media-placements/pkg/stringsutil"
)

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	// Es is nil when no search index is configured.
	Es *es.ClientConfig
}

func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Warn("STORAGE_TYPE is not set, falling back to in-memory storage")
		storageType = storage.InMem
	}
	if storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.PG, storage.InMem})
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	var esCfg *es.ClientConfig
	addresses := stringsutil.SplitTrim(os.Getenv("ES_ADDRESSES"), ",")
	if len(addresses) > 0 {
		esCfg = &es.ClientConfig{
			Addresses: addresses,
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if esCfg.IndexName == "" {
			esCfg.IndexName = "media_placements"
		}
	}

	return &StorageConfig{
		Type: storageType,
		Pg:   pgCfg,
		Es:   esCfg,
	}, nil
}

func (c *StorageConfig) String() string {
	parts := []string{"type=" + string(c.Type)}
	if c.Es != nil {
		parts = append(parts, "es="+strings.Join(c.Es.Addresses, ","), "index="+c.Es.IndexName)
	}
	return strings.Join(parts, " ")
}
