package pool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/meoying/mysqlclient/internal/errs"
)

// Pool 并发安全的连接池
// 所有状态由一把锁保护，任何网络 IO 都在锁外做
type Pool struct {
	cfg    Config
	logger *slog.Logger

	mu sync.Mutex
	// idle 后进先出，栈顶是最新归还的，用于新鲜度旁路
	idle       []*pooledConn
	leased     int
	validating int
	// waiters 严格先来先服务
	waiters []*waiter
	closed  bool

	opened      uint64
	closedTotal uint64

	// waitHighWater 本个维护周期内排队长度的最高水位
	waitHighWater int
	// calmTicks 连续没有排队的维护周期数
	calmTicks int

	maintCancel context.CancelFunc
	maintDone   chan struct{}
}

// waiter 每个排队者一个容量为 1 的信箱
// 收到连接就直接用，收到 nil 表示有名额空出来了，回去重试
type waiter struct {
	ch chan *pooledConn
}

// Lease 一次租借，用完通过 Pool.Put 归还
type Lease struct {
	pc *pooledConn
}

// Conn 租到的物理连接
func (l *Lease) Conn() Conn {
	return l.pc.raw
}

// Stats 池的瞬时快照
type Stats struct {
	Idle       int
	Leased     int
	Validating int
	Waiting    int
	Opened     uint64
	Closed     uint64
}

// New 创建连接池并启动维护协程
// cfg.Factory 必须注入，配置校验由调用方先做
func New(cfg Config) (*Pool, error) {
	if cfg.Factory == nil {
		return nil, fmt.Errorf("没有注入连接工厂")
	}
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		cfg:         cfg,
		logger:      cfg.Logger,
		maintCancel: cancel,
		maintDone:   make(chan struct{}),
	}
	go p.maintain(ctx)
	return p, nil
}

// Get 租借一条连接
// 顺序：新鲜空闲直接用 → 校验最老的空闲 → 没到上限就新建 → 排队
func (p *Pool) Get(ctx context.Context) (*Lease, error) {
	timeout := time.NewTimer(p.cfg.ConnectionTimeout)
	defer timeout.Stop()

	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return nil, errs.ErrPoolClosed
		}

		// 新鲜度旁路：刚归还的连接跳过校验
		if n := len(p.idle); n > 0 {
			top := p.idle[n-1]
			if time.Since(top.lastUsedAt) <= p.cfg.AliveBypassWindow {
				p.idle = p.idle[:n-1]
				top.state = stateLeased
				p.leased++
				p.mu.Unlock()
				return &Lease{pc: top}, nil
			}

			// 校验最老的空闲连接
			oldest := p.idle[0]
			p.idle = p.idle[1:]
			oldest.state = stateValidating
			p.validating++
			p.mu.Unlock()

			// 校验用独立的超时，调用方的 ctx 已经过期不代表连接坏了
			vctx, cancel := context.WithTimeout(context.Background(), p.cfg.ValidationTimeout)
			err := oldest.validate(vctx, p.cfg.ConnectionTestQuery)
			cancel()

			p.mu.Lock()
			p.validating--
			if err == nil {
				oldest.state = stateLeased
				p.leased++
				p.mu.Unlock()
				return &Lease{pc: oldest}, nil
			}
			// 校验失败在池内消化，关掉之后接着找下一条
			oldest.state = stateClosed
			p.closedTotal++
			p.mu.Unlock()
			_ = oldest.raw.Close()
			p.logger.Debug("连接校验失败，已淘汰",
				slog.Any("err", fmt.Errorf("%w：%w", errs.ErrConnValidation, err)))
			continue
		}

		// 没到上限就新建，名额先占住再出锁做 IO
		if p.totalLocked() < p.cfg.MaxConnections {
			p.leased++
			p.mu.Unlock()

			raw, err := p.cfg.Factory(ctx)

			p.mu.Lock()
			if err != nil {
				p.leased--
				p.wakeLocked()
				p.mu.Unlock()
				return nil, err
			}
			p.opened++
			p.mu.Unlock()
			return &Lease{pc: newPooledConn(raw)}, nil
		}

		// 排队，先来先服务
		w := &waiter{ch: make(chan *pooledConn, 1)}
		p.waiters = append(p.waiters, w)
		if len(p.waiters) > p.waitHighWater {
			p.waitHighWater = len(p.waiters)
		}
		p.mu.Unlock()

		select {
		case pc, ok := <-w.ch:
			if !ok {
				return nil, errs.ErrPoolClosed
			}
			if pc != nil {
				return &Lease{pc: pc}, nil
			}
			// 有名额空出来了，回去从头再试
			continue
		case <-ctx.Done():
			p.abandonWait(w)
			return nil, fmt.Errorf("%w：%w", errs.ErrPoolTimeout, ctx.Err())
		case <-timeout.C:
			p.abandonWait(w)
			return nil, fmt.Errorf("%w，等待超过 %s", errs.ErrPoolTimeout, p.cfg.ConnectionTimeout)
		}
	}
}

// Put 归还连接，broken 为真或池已关闭时直接关掉
func (p *Pool) Put(l *Lease, broken bool) {
	pc := l.pc
	p.mu.Lock()
	p.leased--

	if broken || p.closed {
		pc.state = stateClosed
		p.closedTotal++
		p.wakeLocked()
		p.mu.Unlock()
		_ = pc.raw.Close()
		return
	}

	pc.lastUsedAt = time.Now()

	// 有人在排队就直接交接，不经过空闲栈
	// 信箱容量为 1，锁内发送不会阻塞；放弃等待的一方以此判断交接是否已完成
	if len(p.waiters) > 0 {
		w := p.waiters[0]
		p.waiters = p.waiters[1:]
		pc.state = stateLeased
		p.leased++
		w.ch <- pc
		p.mu.Unlock()
		return
	}

	pc.state = stateIdle
	p.idle = append(p.idle, pc)
	p.mu.Unlock()
}

// Close 停掉维护协程并关闭所有空闲连接
// 租出去的连接在归还时关闭，排队者全部收到池已关闭
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	waiters := p.waiters
	p.waiters = nil
	p.mu.Unlock()

	p.maintCancel()
	<-p.maintDone

	for _, w := range waiters {
		close(w.ch)
	}

	var err error
	for _, pc := range idle {
		pc.state = stateClosed
		err = multierr.Append(err, pc.raw.Close())
	}
	p.mu.Lock()
	p.closedTotal += uint64(len(idle))
	p.mu.Unlock()
	return err
}

// Stats 当前快照
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Idle:       len(p.idle),
		Leased:     p.leased,
		Validating: p.validating,
		Waiting:    len(p.waiters),
		Opened:     p.opened,
		Closed:     p.closedTotal,
	}
}

// totalLocked 调用方必须持有锁
func (p *Pool) totalLocked() int {
	return len(p.idle) + p.leased + p.validating
}

// wakeLocked 名额空出来了，叫醒队头回去重试，调用方必须持有锁
func (p *Pool) wakeLocked() {
	if len(p.waiters) == 0 {
		return
	}
	w := p.waiters[0]
	p.waiters = p.waiters[1:]
	w.ch <- nil
}

// abandonWait 排队者放弃等待
// 可能跟交接赛跑：已经被人塞了连接的话要负责还回去
func (p *Pool) abandonWait(w *waiter) {
	p.mu.Lock()
	for i, cand := range p.waiters {
		if cand == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			p.mu.Unlock()
			return
		}
	}
	p.mu.Unlock()

	// 不在队列里说明已经被交接或者唤醒了
	select {
	case pc := <-w.ch:
		if pc != nil {
			p.Put(&Lease{pc: pc}, false)
			return
		}
		// 收到的是名额信号，不能丢，转交给下一个排队者
		p.mu.Lock()
		p.wakeLocked()
		p.mu.Unlock()
	default:
	}
}
