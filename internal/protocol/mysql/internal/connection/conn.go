package connection

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"time"

	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/charset"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// Config 建立一条物理连接需要的全部信息
type Config struct {
	User     string
	Password string
	// Database 非空时握手阶段直接选库
	Database string

	// Charset 字符集名称，例如 utf8mb4，转成该字符集的默认 collation 下发
	// 和 CharacterSet 同时设置时以 CharacterSet 为准
	Charset string

	// CharacterSet 握手响应里带的 collation id，零值用 utf8mb4_general_ci
	CharacterSet uint8

	// MultiStatements 是否允许一条 COM_QUERY 里带多条语句
	MultiStatements bool

	// TLSConfig 非 nil 时要求走 TLS，服务端不支持就握手失败
	TLSConfig *tls.Config

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger *slog.Logger
}

// Conn 代表了到 MySQL 的一个客户端连接
// 非并发安全，同一时刻只能有一个命令在途，由连接池保证独占
type Conn struct {
	conn net.Conn
	cfg  Config

	// sequence 每个命令周期重置为 0，之后双向每个报文加一
	sequence uint8

	// capabilities 握手协商的结果，双方能力集的交集，之后不再变化
	capabilities flags.CapabilityFlags

	connectionID  uint32
	serverVersion string

	logger *slog.Logger

	closed bool
}

// Dial 建立 TCP 连接并完成握手和鉴权
func Dial(ctx context.Context, addr string, cfg Config) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	conn := NewConn(nc, cfg)
	if err := conn.Handshake(ctx); err != nil {
		_ = nc.Close()
		return nil, err
	}
	return conn, nil
}

func NewConn(nc net.Conn, cfg Config) *Conn {
	if cfg.CharacterSet == 0 && cfg.Charset != "" {
		// 超出一个字节的 collation 编号没法在握手响应里表达，当不认识处理
		if id := charset.DefaultCollationFor(cfg.Charset); id > 0 && id < 256 {
			cfg.CharacterSet = uint8(id)
		}
	}
	if cfg.CharacterSet == 0 {
		cfg.CharacterSet = uint8(packet.CharSetUtf8mb4GeneralCi)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Conn{
		conn:   nc,
		cfg:    cfg,
		logger: logger,
	}
}

func (mc *Conn) Close() error {
	mc.closed = true
	return mc.conn.Close()
}

// Quit 发送 COM_QUIT 之后关闭，服务端不回包
func (mc *Conn) Quit() error {
	mc.resetSequence()
	_ = mc.writeCommand(packet.CmdQuit)
	return mc.Close()
}

// Capabilities 本次会话协商出的能力集
func (mc *Conn) Capabilities() flags.CapabilityFlags {
	return mc.capabilities
}

func (mc *Conn) ConnectionID() uint32 {
	return mc.connectionID
}

func (mc *Conn) ServerVersion() string {
	return mc.serverVersion
}

// resetSequence 新的命令周期从 0 开始编号
func (mc *Conn) resetSequence() {
	mc.sequence = 0
}

// applyDeadlines ctx 的截止时间比配置的超时更早时以 ctx 为准
func (mc *Conn) applyDeadlines(ctx context.Context) error {
	now := time.Now()

	var readDeadline, writeDeadline time.Time
	if mc.cfg.ReadTimeout > 0 {
		readDeadline = now.Add(mc.cfg.ReadTimeout)
	}
	if mc.cfg.WriteTimeout > 0 {
		writeDeadline = now.Add(mc.cfg.WriteTimeout)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if readDeadline.IsZero() || deadline.Before(readDeadline) {
			readDeadline = deadline
		}
		if writeDeadline.IsZero() || deadline.Before(writeDeadline) {
			writeDeadline = deadline
		}
	}

	if err := mc.conn.SetReadDeadline(readDeadline); err != nil {
		return err
	}
	return mc.conn.SetWriteDeadline(writeDeadline)
}
