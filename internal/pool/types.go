//go:generate mockgen -source=./types.go -destination=mocks/conn.mock.go -package=mocks
package pool

import "context"

// Conn 池管理的物理连接
// 池本身不关心命令语义，只负责生命周期，具体实现由工厂注入
type Conn interface {
	// Ping 存活探测，校验用
	Ping(ctx context.Context) error
	// Query 执行校验语句，配置了 ConnectionTestQuery 时替代 Ping
	Query(ctx context.Context, sql string) error
	// Close 关闭物理连接
	Close() error
}

// Factory 创建一条完成握手的连接
type Factory func(ctx context.Context) (Conn, error)
