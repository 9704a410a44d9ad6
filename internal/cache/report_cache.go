// Package cache keeps hot dashboard reads off the database. The latest
// report is the most requested object in the system; it changes only when a
// compute run lands, so the service invalidates on write.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salespilot/backoffice/internal/models"
)

const (
	latestReportKey = "report:latest"
	latestReportTTL = 5 * time.Minute
)

// ErrMiss is returned when the cache holds nothing usable.
var ErrMiss = errors.New("cache miss")

type ReportCache struct {
	rdb *redis.Client
}

func NewReportCache(rdb *redis.Client) *ReportCache {
	return &ReportCache{rdb: rdb}
}

func (c *ReportCache) GetLatest(ctx context.Context) (models.Report, error) {
	data, err := c.rdb.Get(ctx, latestReportKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Report{}, ErrMiss
	}
	if err != nil {
		return models.Report{}, err
	}
	var rep models.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return models.Report{}, ErrMiss
	}
	return rep, nil
}

func (c *ReportCache) SetLatest(ctx context.Context, rep models.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, latestReportKey, data, latestReportTTL).Err()
}

func (c *ReportCache) InvalidateLatest(ctx context.Context) error {
	return c.rdb.Del(ctx, latestReportKey).Err()
}
