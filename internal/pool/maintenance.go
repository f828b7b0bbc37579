package pool

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// maintain 后台维护：淘汰过期连接、把空闲补到下限、按排队情况伸缩
// 所有动作都是尽力而为，失败了记日志等下个周期再试
func (p *Pool) maintain(ctx context.Context) {
	defer close(p.maintDone)

	// 启动先预热到 MinConnections
	p.ensureMin(ctx)

	ticker := time.NewTicker(p.cfg.MaintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.evictExpired()
			if p.cfg.AdaptiveSizing {
				p.adapt(ctx)
			} else {
				p.ensureMin(ctx)
			}
		}
	}
}

// evictExpired 关掉寿命或空闲超标的连接
func (p *Pool) evictExpired() {
	now := time.Now()

	p.mu.Lock()
	var expired []*pooledConn
	kept := p.idle[:0]
	for _, pc := range p.idle {
		if pc.expired(p.cfg.MaxLifetime, p.cfg.IdleTimeout, now) {
			pc.state = stateClosed
			expired = append(expired, pc)
			continue
		}
		kept = append(kept, pc)
	}
	p.idle = kept
	p.closedTotal += uint64(len(expired))
	p.mu.Unlock()

	for _, pc := range expired {
		if err := pc.raw.Close(); err != nil {
			p.logger.Warn("关闭过期连接失败", slog.Any("err", err))
		}
	}
	if len(expired) > 0 {
		p.logger.Debug("淘汰过期连接", slog.Int("count", len(expired)))
	}
}

// ensureMin 把连接总数补到 MinConnections
func (p *Pool) ensureMin(ctx context.Context) {
	p.mu.Lock()
	need := p.cfg.MinConnections - p.totalLocked()
	if max := p.cfg.MaxConnections - p.totalLocked(); need > max {
		need = max
	}
	p.mu.Unlock()
	if need <= 0 {
		return
	}

	var eg errgroup.Group
	for i := 0; i < need; i++ {
		eg.Go(func() error {
			dctx, cancel := context.WithTimeout(ctx, p.cfg.ConnectionTimeout)
			defer cancel()
			raw, err := p.cfg.Factory(dctx)
			if err != nil {
				return err
			}

			p.mu.Lock()
			if p.closed || p.totalLocked() >= p.cfg.MaxConnections {
				p.mu.Unlock()
				return raw.Close()
			}
			pc := newPooledConn(raw)
			pc.state = stateIdle
			p.idle = append(p.idle, pc)
			p.opened++
			p.mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		p.logger.Warn("预热连接失败", slog.Any("err", err))
	}
}

// adapt 按上个周期的排队水位伸缩
// 出现过排队就往上补，连续两个周期风平浪静就把多余的空闲关掉
func (p *Pool) adapt(ctx context.Context) {
	p.mu.Lock()
	highWater := p.waitHighWater
	p.waitHighWater = 0
	if highWater > 0 {
		p.calmTicks = 0
	} else {
		p.calmTicks++
	}
	shrink := p.calmTicks >= 2
	p.mu.Unlock()

	if highWater > 0 {
		p.ensureMin(ctx)
		return
	}
	if !shrink {
		return
	}

	// 收缩到 MinConnections，从最老的空闲开始关
	p.mu.Lock()
	surplus := p.totalLocked() - p.cfg.MinConnections
	if surplus > len(p.idle) {
		surplus = len(p.idle)
	}
	var victims []*pooledConn
	if surplus > 0 {
		victims = p.idle[:surplus]
		p.idle = p.idle[surplus:]
		for _, pc := range victims {
			pc.state = stateClosed
		}
		p.closedTotal += uint64(len(victims))
	}
	p.mu.Unlock()

	for _, pc := range victims {
		if err := pc.raw.Close(); err != nil {
			p.logger.Warn("收缩连接失败", slog.Any("err", err))
		}
	}
	if len(victims) > 0 {
		p.logger.Debug("按需收缩空闲连接", slog.Int("count", len(victims)))
	}
}
