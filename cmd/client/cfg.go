package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/meoying/mysqlclient/internal/pool"
)

type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`

	Pool PoolConfig `yaml:"pool"`
}

type PoolConfig struct {
	MinConnections      int           `yaml:"minConnections"`
	MaxConnections      int           `yaml:"maxConnections"`
	ConnectionTimeout   time.Duration `yaml:"connectionTimeout"`
	IdleTimeout         time.Duration `yaml:"idleTimeout"`
	MaxLifetime         time.Duration `yaml:"maxLifetime"`
	MaintenanceInterval time.Duration `yaml:"maintenanceInterval"`
	ConnectionTestQuery string        `yaml:"connectionTestQuery"`
	AdaptiveSizing      bool          `yaml:"adaptiveSizing"`
}

func (c Config) toPoolConfig() pool.Config {
	return pool.Config{
		Host:                c.Host,
		Port:                c.Port,
		User:                c.User,
		Password:            c.Password,
		Database:            c.Database,
		Charset:             c.Charset,
		MinConnections:      c.Pool.MinConnections,
		MaxConnections:      c.Pool.MaxConnections,
		ConnectionTimeout:   c.Pool.ConnectionTimeout,
		IdleTimeout:         c.Pool.IdleTimeout,
		MaxLifetime:         c.Pool.MaxLifetime,
		MaintenanceInterval: c.Pool.MaintenanceInterval,
		ConnectionTestQuery: c.Pool.ConnectionTestQuery,
		AdaptiveSizing:      c.Pool.AdaptiveSizing,
	}
}

// parseDSN 兼容 user:pass@tcp(host:port)/db 这种大家最熟的写法
func parseDSN(dsn string) (pool.Config, error) {
	dcfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return pool.Config{}, fmt.Errorf("解析 DSN 失败 %w", err)
	}
	host, portStr, err := net.SplitHostPort(dcfg.Addr)
	if err != nil {
		return pool.Config{}, fmt.Errorf("解析 DSN 里的地址失败 %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return pool.Config{}, fmt.Errorf("解析 DSN 里的端口失败 %w", err)
	}
	return pool.Config{
		Host:              host,
		Port:              port,
		User:              dcfg.User,
		Password:          dcfg.Passwd,
		Database:          dcfg.DBName,
		ConnectionTimeout: dcfg.Timeout,
		ReadTimeout:       dcfg.ReadTimeout,
		WriteTimeout:      dcfg.WriteTimeout,
	}, nil
}
