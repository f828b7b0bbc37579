package pool

import (
	"context"
	"time"
)

// state 池内连接的生命周期状态
type state int

const (
	stateIdle state = iota
	stateLeased
	stateValidating
	stateClosed
)

// pooledConn 物理连接加上池关心的元数据
type pooledConn struct {
	raw Conn

	state state

	createdAt  time.Time
	lastUsedAt time.Time
}

func newPooledConn(raw Conn) *pooledConn {
	now := time.Now()
	return &pooledConn{
		raw:        raw,
		state:      stateLeased,
		createdAt:  now,
		lastUsedAt: now,
	}
}

// expired 寿命或空闲时长超标
func (pc *pooledConn) expired(maxLifetime, idleTimeout time.Duration, now time.Time) bool {
	if maxLifetime > 0 && now.Sub(pc.createdAt) >= maxLifetime {
		return true
	}
	if idleTimeout > 0 && now.Sub(pc.lastUsedAt) >= idleTimeout {
		return true
	}
	return false
}

// validate 用测试语句或者 PING 校验连接还活着
func (pc *pooledConn) validate(ctx context.Context, testQuery string) error {
	if testQuery != "" {
		return pc.raw.Query(ctx, testQuery)
	}
	return pc.raw.Ping(ctx)
}
