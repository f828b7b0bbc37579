package pool

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Config 连接池配置
// 连接参数由上层用来构造 Factory，池自己只用池行为相关的字段
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// Charset 字符集名称，例如 utf8mb4，留空用服务端默认
	Charset string

	// MinConnections 维护协程会把空闲连接补到这个数量
	MinConnections int
	// MaxConnections 硬上限，任何状态的连接加起来都不会超过
	MaxConnections int

	// ConnectionTimeout 拿不到连接时排队等待的上限
	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	// ValidationTimeout 单次校验的上限
	ValidationTimeout time.Duration

	// IdleTimeout 空闲超过这个时长的连接会被维护协程关掉，零值不淘汰
	IdleTimeout time.Duration
	// MaxLifetime 连接从创建起的总寿命，零值不限制
	MaxLifetime time.Duration

	// MaintenanceInterval 维护协程的工作周期
	MaintenanceInterval time.Duration

	// AliveBypassWindow 刚用过的连接在这个窗口内直接复用，不再校验
	AliveBypassWindow time.Duration

	// ConnectionTestQuery 校验语句，留空就用 COM_PING
	ConnectionTestQuery string

	// AdaptiveSizing 按排队情况收缩和扩张空闲连接数
	AdaptiveSizing bool

	Logger *slog.Logger

	// Factory 由上层注入，创建完成握手的连接
	Factory Factory
}

const (
	defaultMaxConnections      = 10
	defaultConnectionTimeout   = 5 * time.Second
	defaultValidationTimeout   = time.Second
	defaultMaintenanceInterval = 30 * time.Second
	defaultAliveBypassWindow   = time.Second
)

// Validate 一次性把所有配置问题都报出来
func (c *Config) Validate() error {
	var result error
	if c.Host == "" {
		result = multierror.Append(result, fmt.Errorf("host 不能为空"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("port 非法：%d", c.Port))
	}
	if c.User == "" {
		result = multierror.Append(result, fmt.Errorf("user 不能为空"))
	}
	if c.MinConnections < 0 {
		result = multierror.Append(result, fmt.Errorf("MinConnections 不能为负：%d", c.MinConnections))
	}
	if c.MaxConnections < 0 {
		result = multierror.Append(result, fmt.Errorf("MaxConnections 不能为负：%d", c.MaxConnections))
	}
	if c.MaxConnections > 0 && c.MinConnections > c.MaxConnections {
		result = multierror.Append(result,
			fmt.Errorf("MinConnections %d 大于 MaxConnections %d", c.MinConnections, c.MaxConnections))
	}
	for name, d := range map[string]time.Duration{
		"ConnectionTimeout":   c.ConnectionTimeout,
		"ReadTimeout":         c.ReadTimeout,
		"WriteTimeout":        c.WriteTimeout,
		"ValidationTimeout":   c.ValidationTimeout,
		"IdleTimeout":         c.IdleTimeout,
		"MaxLifetime":         c.MaxLifetime,
		"MaintenanceInterval": c.MaintenanceInterval,
		"AliveBypassWindow":   c.AliveBypassWindow,
	} {
		if d < 0 {
			result = multierror.Append(result, fmt.Errorf("%s 不能为负：%s", name, d))
		}
	}
	return result
}

// withDefaults 返回填好缺省值的副本
func (c Config) withDefaults() Config {
	if c.MaxConnections == 0 {
		c.MaxConnections = defaultMaxConnections
	}
	if c.ConnectionTimeout == 0 {
		c.ConnectionTimeout = defaultConnectionTimeout
	}
	if c.ValidationTimeout == 0 {
		c.ValidationTimeout = defaultValidationTimeout
	}
	if c.MaintenanceInterval == 0 {
		c.MaintenanceInterval = defaultMaintenanceInterval
	}
	if c.AliveBypassWindow == 0 {
		c.AliveBypassWindow = defaultAliveBypassWindow
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
