package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Ping checks that the pool can still reach the database within 5s.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close shuts the pool down. Safe to call more than once.
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}

	log.Info().Msg("[DATABASE] Closing connection pool")
	db.Pool.Close()
	db.Pool = nil
}

// PoolStats is a snapshot of the pool counters used for monitoring.
type PoolStats struct {
	AcquiredConns        int32
	IdleConns            int32
	TotalConns           int32
	MaxConns             int32
	AcquireCount         int64
	AcquireDuration      time.Duration
	CanceledAcquireCount int64
}

// AvgAcquireDuration is the mean time spent waiting for a connection.
func (s *PoolStats) AvgAcquireDuration() time.Duration {
	if s.AcquireCount == 0 {
		return 0
	}
	return s.AcquireDuration / time.Duration(s.AcquireCount)
}

// Utilization is the share of MaxConns currently acquired, in percent.
func (s *PoolStats) Utilization() float64 {
	if s.MaxConns == 0 {
		return 0
	}
	return float64(s.AcquiredConns) / float64(s.MaxConns) * 100
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:        raw.AcquiredConns(),
		IdleConns:            raw.IdleConns(),
		TotalConns:           raw.TotalConns(),
		MaxConns:             raw.MaxConns(),
		AcquireCount:         raw.AcquireCount(),
		AcquireDuration:      raw.AcquireDuration(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
	}, nil
}

// MonitorPoolHealth logs a warning whenever the pool looks saturated. It
// blocks until ctx is done; run it in its own goroutine.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				log.Warn().Err(err).Msg("[MONITOR] Failed to get pool stats")
				continue
			}

			if u := stats.Utilization(); u > 80 {
				log.Warn().
					Float64("utilization_pct", u).
					Int32("acquired", stats.AcquiredConns).
					Int32("max", stats.MaxConns).
					Msg("[MONITOR] High pool utilization")
			}

			if avg := stats.AvgAcquireDuration(); avg > 100*time.Millisecond {
				log.Warn().Dur("avg_acquire", avg).Msg("[MONITOR] High acquire latency")
			}

		case <-ctx.Done():
			log.Debug().Msg("[MONITOR] Stopping pool health monitoring")
			return
		}
	}
}
