package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/meoying/mysqlclient/internal/pool"
	"github.com/meoying/mysqlclient/internal/protocol/mysql"
)

func main() {
	cfile := pflag.String("config",
		"", "配置文件路径")
	dsn := pflag.String("dsn",
		"", "形如 user:pass@tcp(127.0.0.1:3306)/db 的连接串，和 --config 二选一")
	query := pflag.String("query",
		"", "连上之后要执行的 SQL，不传就只做连通性检查")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var pcfg pool.Config
	var err error
	switch {
	case *dsn != "":
		pcfg, err = parseDSN(*dsn)
		if err != nil {
			panic(err)
		}
	case *cfile != "":
		viper.SetConfigType("yaml")
		viper.SetConfigFile(*cfile)
		err = viper.ReadInConfig()
		if err != nil {
			panic(fmt.Errorf("初始化读取配置文件失败 %w", err))
		}
		var cfg Config
		err = viper.Unmarshal(&cfg)
		if err != nil {
			panic(fmt.Errorf("解析配置文件失败 %w", err))
		}
		pcfg = cfg.toPoolConfig()
	default:
		panic("必须指定 --config 或者 --dsn")
	}
	pcfg.Logger = logger

	client, err := mysql.NewClient(pcfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	if err = client.Ping(ctx); err != nil {
		panic(err)
	}
	logger.Info("连接成功", slog.String("host", pcfg.Host), slog.Int("port", pcfg.Port))

	if *query == "" {
		return
	}
	res, err := client.Query(ctx, *query)
	if err != nil {
		panic(err)
	}
	if len(res.Columns) == 0 {
		logger.Info("执行成功",
			slog.Uint64("affectedRows", res.AffectedRows),
			slog.Uint64("lastInsertId", res.LastInsertID))
		return
	}
	fmt.Println(strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell == nil {
				cells = append(cells, "NULL")
				continue
			}
			cells = append(cells, string(cell))
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}
