package connection

import (
	"bytes"
	"context"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/builder"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/parser"
)

// Resultset 一次命令的执行结果
// 查询类命令填 Columns 和 Rows，更新类命令填 AffectedRows 和 LastInsertID
// Rows 里的 nil 单元表示 NULL
type Resultset struct {
	Columns []*parser.ColumnDefinition41
	Rows    [][][]byte

	AffectedRows uint64
	LastInsertID uint64
	Warnings     uint16
}

// PrepareResult COM_STMT_PREPARE 的结果
type PrepareResult struct {
	StatementID uint32
	NumColumns  uint16
	NumParams   uint16
}

// Query 文本协议执行一条 SQL
func (mc *Conn) Query(ctx context.Context, sql string) (*Resultset, error) {
	if err := mc.beginCommand(ctx); err != nil {
		return nil, err
	}
	if err := mc.writePacket(builder.NewCommandWithPayload(packet.CmdQuery, sql).Build()); err != nil {
		return nil, err
	}
	return mc.readResultset(false)
}

// Prepare 预处理一条 SQL，参数定义和列定义只消费不保留
func (mc *Conn) Prepare(ctx context.Context, sql string) (*PrepareResult, error) {
	if err := mc.beginCommand(ctx); err != nil {
		return nil, err
	}
	if err := mc.writePacket(builder.NewCommandWithPayload(packet.CmdStmtPrepare, sql).Build()); err != nil {
		return nil, err
	}

	payload, err := mc.readPacket()
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 && payload[0] == 0xFF {
		return nil, mc.parseERR(payload)
	}

	var ok parser.StmtPrepareOK
	if err = ok.Parse(payload); err != nil {
		return nil, err
	}

	// 后面跟 num_params 个参数定义和 num_columns 个列定义，
	// 旧路径上每一段还各有一个 EOF
	if err = mc.skipDefinitions(int(ok.NumParams())); err != nil {
		return nil, err
	}
	if err = mc.skipDefinitions(int(ok.NumColumns())); err != nil {
		return nil, err
	}

	return &PrepareResult{
		StatementID: ok.StatementID(),
		NumColumns:  ok.NumColumns(),
		NumParams:   ok.NumParams(),
	}, nil
}

// Execute 二进制协议执行预处理语句
func (mc *Conn) Execute(ctx context.Context, statementID uint32, params []packet.Parameter) (*Resultset, error) {
	if err := mc.beginCommand(ctx); err != nil {
		return nil, err
	}
	if err := mc.writePacket(builder.NewExecuteStmtPacket(statementID, params).Build()); err != nil {
		return nil, err
	}
	return mc.readResultset(true)
}

// StmtClose 关闭预处理语句，服务端不回包
func (mc *Conn) StmtClose(ctx context.Context, statementID uint32) error {
	if err := mc.beginCommand(ctx); err != nil {
		return err
	}
	return mc.writePacket(builder.NewCloseStmtPacket(statementID).Build())
}

// Ping 连接存活探测
func (mc *Conn) Ping(ctx context.Context) error {
	if err := mc.beginCommand(ctx); err != nil {
		return err
	}
	if err := mc.writeCommand(packet.CmdPing); err != nil {
		return err
	}
	_, err := mc.readOK()
	return err
}

// InitDB 切换默认库
func (mc *Conn) InitDB(ctx context.Context, database string) error {
	if err := mc.beginCommand(ctx); err != nil {
		return err
	}
	if err := mc.writePacket(builder.NewCommandWithPayload(packet.CmdInitDB, database).Build()); err != nil {
		return err
	}
	_, err := mc.readOK()
	return err
}

// ResetConnection 重置会话状态，比逐项清理省事
func (mc *Conn) ResetConnection(ctx context.Context) error {
	if err := mc.beginCommand(ctx); err != nil {
		return err
	}
	if err := mc.writeCommand(packet.CmdResetConnection); err != nil {
		return err
	}
	_, err := mc.readOK()
	return err
}

// SetOption 开关多语句能力，应答是 EOF 或者 OK
func (mc *Conn) SetOption(ctx context.Context, option uint16) error {
	if err := mc.beginCommand(ctx); err != nil {
		return err
	}
	if err := mc.writePacket(builder.NewSetOptionPacket(option).Build()); err != nil {
		return err
	}
	payload, err := mc.readPacket()
	if err != nil {
		return err
	}
	if len(payload) > 0 && payload[0] == 0xFF {
		return mc.parseERR(payload)
	}
	return nil
}

// Statistics 服务端的人类可读统计信息，应答就是一段裸文本
func (mc *Conn) Statistics(ctx context.Context) (string, error) {
	if err := mc.beginCommand(ctx); err != nil {
		return "", err
	}
	if err := mc.writeCommand(packet.CmdStatistics); err != nil {
		return "", err
	}
	payload, err := mc.readPacket()
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (mc *Conn) beginCommand(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mc.closed {
		return errs.ErrInvalidConn
	}
	if err := mc.applyDeadlines(ctx); err != nil {
		return err
	}
	mc.resetSequence()
	return nil
}

func (mc *Conn) writeCommand(cmd packet.Cmd) error {
	return mc.writePacket(builder.NewCommand(cmd).Build())
}

// readResultset 命令应答的三岔路口：ERR、OK、结果集
func (mc *Conn) readResultset(binary bool) (*Resultset, error) {
	payload, err := mc.readPacket()
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w，命令应答为空", errs.ErrMalformedPacket)
	}

	switch payload[0] {
	case 0xFF:
		return nil, mc.parseERR(payload)
	case 0x00:
		ok := parser.NewOKPacket(mc.capabilities)
		if err = ok.Parse(payload); err != nil {
			return nil, err
		}
		return &Resultset{
			AffectedRows: ok.AffectedRows(),
			LastInsertID: ok.LastInsertID(),
			Warnings:     ok.Warnings(),
		}, nil
	}

	// int<lenenc>	column_count
	columnCount, _, err := parser.ParseLengthEncodedInteger(bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	columns, err := mc.readColumnDefinitions(int(columnCount))
	if err != nil {
		return nil, err
	}
	rows, err := mc.readRows(columns, binary)
	if err != nil {
		return nil, err
	}
	return &Resultset{Columns: columns, Rows: rows}, nil
}

func (mc *Conn) readColumnDefinitions(count int) ([]*parser.ColumnDefinition41, error) {
	columns := make([]*parser.ColumnDefinition41, 0, count)
	for i := 0; i < count; i++ {
		payload, err := mc.readPacket()
		if err != nil {
			return nil, err
		}
		var col parser.ColumnDefinition41
		if err = col.Parse(payload); err != nil {
			return nil, err
		}
		columns = append(columns, &col)
	}

	// DEPRECATE_EOF 之前列定义后面还有一个 EOF
	if !mc.capabilities.Has(flags.ClientDeprecateEOF) {
		payload, err := mc.readPacket()
		if err != nil {
			return nil, err
		}
		eof := parser.NewEOFPacket(mc.capabilities)
		if err = eof.Parse(payload); err != nil {
			return nil, err
		}
	}
	return columns, nil
}

func (mc *Conn) readRows(columns []*parser.ColumnDefinition41, binary bool) ([][][]byte, error) {
	var rows [][][]byte
	for {
		payload, err := mc.readPacket()
		if err != nil {
			return nil, err
		}
		if len(payload) == 0 {
			return nil, fmt.Errorf("%w，结果集行为空", errs.ErrMalformedPacket)
		}

		if payload[0] == 0xFF {
			return nil, mc.parseERR(payload)
		}
		// 结束标记：旧路径是 EOF，DEPRECATE_EOF 下是 0xFE 开头的 OK
		if payload[0] == 0xFE && len(payload) < 9 {
			return rows, nil
		}

		var cells [][]byte
		if binary {
			r := parser.NewBinaryRow(columns)
			if err = r.Parse(payload); err != nil {
				return nil, err
			}
			cells = r.Cells()
		} else {
			r := parser.NewTextRow(len(columns))
			if err = r.Parse(payload); err != nil {
				return nil, err
			}
			cells = r.Cells()
		}
		rows = append(rows, cells)
	}
}

// skipDefinitions 预处理应答里跟着的定义包只消费不使用
func (mc *Conn) skipDefinitions(count int) error {
	if count == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		if _, err := mc.readPacket(); err != nil {
			return err
		}
	}
	if !mc.capabilities.Has(flags.ClientDeprecateEOF) {
		if _, err := mc.readPacket(); err != nil {
			return err
		}
	}
	return nil
}

func (mc *Conn) readOK() (*parser.OKPacket, error) {
	payload, err := mc.readPacket()
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 && payload[0] == 0xFF {
		return nil, mc.parseERR(payload)
	}
	ok := parser.NewOKPacket(mc.capabilities)
	if err = ok.Parse(payload); err != nil {
		return nil, err
	}
	return ok, nil
}

func (mc *Conn) parseERR(payload []byte) error {
	e := parser.NewERRPacket(mc.capabilities)
	if err := e.Parse(payload); err != nil {
		return err
	}
	return e.ToError()
}
