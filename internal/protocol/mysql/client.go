package mysql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/pool"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/connection"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/parser"
)

// Client 对外的门面，内部是连接池加原生协议实现
// 并发安全，同一个 Client 可以被多个 goroutine 共用
type Client struct {
	pool   *pool.Pool
	logger *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Result 一次执行的结果
// 查询填 Columns 和 Rows（nil 单元是 NULL），更新填后两个字段
type Result struct {
	Columns []string
	Rows    [][][]byte

	AffectedRows uint64
	LastInsertID uint64
}

func NewClient(cfg pool.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置非法：%w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Factory == nil {
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		connCfg := connection.Config{
			User:         cfg.User,
			Password:     cfg.Password,
			Database:     cfg.Database,
			Charset:      cfg.Charset,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			Logger:       logger,
		}
		cfg.Factory = func(ctx context.Context) (pool.Conn, error) {
			mc, err := connection.Dial(ctx, addr, connCfg)
			if err != nil {
				return nil, err
			}
			return &pooledAdapter{conn: mc}, nil
		}
	}

	p, err := pool.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{pool: p, logger: logger}, nil
}

// Ping 从池里借一条连接做存活探测
func (c *Client) Ping(ctx context.Context) error {
	return c.withConn(ctx, func(mc *connection.Conn) error {
		return mc.Ping(ctx)
	})
}

// Query 文本协议执行一条 SQL
func (c *Client) Query(ctx context.Context, sql string) (*Result, error) {
	var result *Result
	err := c.withConn(ctx, func(mc *connection.Conn) error {
		rs, err := mc.Query(ctx, sql)
		if err != nil {
			return err
		}
		result = toResult(rs)
		return nil
	})
	return result, err
}

// Execute 预处理后用二进制协议执行
// 每次都是 prepare、execute、close 三步，语句复用不在这一层做
func (c *Client) Execute(ctx context.Context, sql string, args ...any) (*Result, error) {
	params := make([]packet.Parameter, 0, len(args))
	for _, arg := range args {
		param, err := toParameter(arg)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}

	var result *Result
	err := c.withConn(ctx, func(mc *connection.Conn) error {
		prepared, err := mc.Prepare(ctx, sql)
		if err != nil {
			return err
		}
		if int(prepared.NumParams) != len(params) {
			// 语句已经在服务端了，关掉再报错
			_ = mc.StmtClose(ctx, prepared.StatementID)
			return fmt.Errorf("参数个数不匹配，语句要 %d 个，传了 %d 个",
				prepared.NumParams, len(params))
		}

		rs, err := mc.Execute(ctx, prepared.StatementID, params)
		// 执行失败语句句柄也不能留在服务端
		closeErr := mc.StmtClose(ctx, prepared.StatementID)
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
		result = toResult(rs)
		return nil
	})
	return result, err
}

// Statistics 服务端统计信息
func (c *Client) Statistics(ctx context.Context) (string, error) {
	var stats string
	err := c.withConn(ctx, func(mc *connection.Conn) error {
		var err error
		stats, err = mc.Statistics(ctx)
		return err
	})
	return stats, err
}

// Stats 池的瞬时快照
func (c *Client) Stats() pool.Stats {
	return c.pool.Stats()
}

func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.pool.Close()
	})
	return c.closeErr
}

func (c *Client) withConn(ctx context.Context, fn func(mc *connection.Conn) error) error {
	lease, err := c.pool.Get(ctx)
	if err != nil {
		return err
	}
	adapter := lease.Conn().(*pooledAdapter)
	err = fn(adapter.conn)
	c.pool.Put(lease, isFatal(err))
	return err
}

// isFatal 传输层坏了连接就不能回池，服务端报错不影响连接本身
func isFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errs.ErrServerError) {
		return false
	}
	return errors.Is(err, errs.ErrInvalidConn) ||
		errors.Is(err, errs.ErrPktSync) ||
		errors.Is(err, errs.ErrPktTooLarge) ||
		errors.Is(err, errs.ErrMalformedPacket) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

func toResult(rs *connection.Resultset) *Result {
	return &Result{
		Columns: slice.Map(rs.Columns, func(idx int, src *parser.ColumnDefinition41) string {
			return src.Name()
		}),
		Rows:         rs.Rows,
		AffectedRows: rs.AffectedRows,
		LastInsertID: rs.LastInsertID,
	}
}

// toParameter 把 Go 值翻译成执行报文里的参数
func toParameter(arg any) (packet.Parameter, error) {
	switch v := arg.(type) {
	case nil:
		return packet.NullParameter(), nil
	case int8:
		return packet.Int8Parameter(v), nil
	case int16:
		return packet.Int16Parameter(v), nil
	case int32:
		return packet.Int32Parameter(v), nil
	case int:
		return packet.Int64Parameter(int64(v)), nil
	case int64:
		return packet.Int64Parameter(v), nil
	case uint64:
		return packet.Uint64Parameter(v), nil
	case float32:
		return packet.Float32Parameter(v), nil
	case float64:
		return packet.Float64Parameter(v), nil
	case bool:
		return packet.BoolParameter(v), nil
	case string:
		return packet.StringParameter(v), nil
	case []byte:
		return packet.BytesParameter(v), nil
	case time.Time:
		return packet.DateTimeParameter(v), nil
	default:
		return packet.Parameter{}, fmt.Errorf("不支持的参数类型 %T", arg)
	}
}

// pooledAdapter 把物理连接适配成池认识的样子
type pooledAdapter struct {
	conn *connection.Conn
}

func (a *pooledAdapter) Ping(ctx context.Context) error {
	return a.conn.Ping(ctx)
}

func (a *pooledAdapter) Query(ctx context.Context, sql string) error {
	_, err := a.conn.Query(ctx, sql)
	return err
}

func (a *pooledAdapter) Close() error {
	return a.conn.Quit()
}
