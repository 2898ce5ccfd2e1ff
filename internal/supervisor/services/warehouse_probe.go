// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/metrics"
)

// Warehouse is the part of *database.DB the probe needs.
type Warehouse interface {
	Ping(ctx context.Context) error
	Backend() string
	CircuitState() string
}

// Probe defaults.
const (
	DefaultProbeInterval = time.Minute
	defaultProbeTimeout  = 10 * time.Second
)

// WarehouseProbe pings the warehouse every interval. It logs when health
// changes and refreshes the app_uptime_seconds gauge on every tick.
type WarehouseProbe struct {
	warehouse Warehouse
	interval  time.Duration
	timeout   time.Duration
	started   time.Time

	// state: 0 unknown, 1 healthy, 2 unhealthy
	state atomic.Int32
}

const (
	probeUnknown int32 = iota
	probeHealthy
	probeUnhealthy
)

// NewWarehouseProbe creates a probe. A non-positive interval uses DefaultProbeInterval.
func NewWarehouseProbe(warehouse Warehouse, interval time.Duration) *WarehouseProbe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &WarehouseProbe{
		warehouse: warehouse,
		interval:  interval,
		timeout:   min(defaultProbeTimeout, interval),
		started:   time.Now(),
	}
}

// Serve implements suture.Service.
func (p *WarehouseProbe) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

// Healthy reports the result of the last ping. False before the first one.
func (p *WarehouseProbe) Healthy() bool {
	return p.state.Load() == probeHealthy
}

func (p *WarehouseProbe) probe(ctx context.Context) {
	metrics.AppUptime.Set(time.Since(p.started).Seconds())

	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	err := p.warehouse.Ping(pctx)
	cancel()
	if ctx.Err() != nil {
		return
	}

	next := probeHealthy
	if err != nil {
		next = probeUnhealthy
	}
	if prev := p.state.Swap(next); prev == next {
		return
	}

	log := logging.WithComponent(p.String())
	if err != nil {
		log.Warn().
			Err(err).
			Str("backend", p.warehouse.Backend()).
			Str("circuit", p.warehouse.CircuitState()).
			Msg("Warehouse unreachable")
		return
	}
	log.Info().
		Str("backend", p.warehouse.Backend()).
		Str("circuit", p.warehouse.CircuitState()).
		Msg("Warehouse reachable")
}

// String implements fmt.Stringer for suture logs.
func (p *WarehouseProbe) String() string {
	return "warehouse-probe"
}
