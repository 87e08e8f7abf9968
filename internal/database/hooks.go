package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
)

const startTimeKey = "metrics:start_time"

// RegisterMetricsHooks records the duration and outcome of every statement
func RegisterMetricsHooks(db *gorm.DB, collector *metrics.Metrics) error {
	cb := db.Callback()

	hooks := []struct {
		op     string
		before func(string) error
		after  func(string) error
	}{
		{
			op:     "create",
			before: func(name string) error { return cb.Create().Before("gorm:create").Register(name, markStart) },
			after: func(name string) error {
				return cb.Create().After("gorm:create").Register(name, record(collector, "insert"))
			},
		},
		{
			op:     "query",
			before: func(name string) error { return cb.Query().Before("gorm:query").Register(name, markStart) },
			after: func(name string) error {
				return cb.Query().After("gorm:query").Register(name, record(collector, "select"))
			},
		},
		{
			op:     "update",
			before: func(name string) error { return cb.Update().Before("gorm:update").Register(name, markStart) },
			after: func(name string) error {
				return cb.Update().After("gorm:update").Register(name, record(collector, "update"))
			},
		},
		{
			op:     "delete",
			before: func(name string) error { return cb.Delete().Before("gorm:delete").Register(name, markStart) },
			after: func(name string) error {
				return cb.Delete().After("gorm:delete").Register(name, record(collector, "delete"))
			},
		},
	}

	for _, h := range hooks {
		if err := h.before("duration:" + h.op); err != nil {
			return errors.Wrapf(err, "failed to register %s duration hook", h.op)
		}
		if err := h.after("metrics:" + h.op); err != nil {
			return errors.Wrapf(err, "failed to register %s metrics hook", h.op)
		}
	}
	return nil
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func record(collector *metrics.Metrics, queryType string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		var elapsed time.Duration
		if start, ok := db.InstanceGet(startTimeKey); ok {
			elapsed = time.Since(start.(time.Time))
		}
		name := "db_" + queryType
		collector.RecordTimer(name, elapsed.Milliseconds())
		if db.Error != nil && !IsRecordNotFoundError(db.Error) {
			collector.RecordError(name)
			return
		}
		collector.RecordSuccess(name)
	}
}
