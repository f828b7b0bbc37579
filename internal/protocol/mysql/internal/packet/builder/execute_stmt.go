package builder

import (
	"encoding/binary"

	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// ExecuteStmtPacket COM_STMT_EXECUTE 执行预处理语句
// 参数按二进制协议编码，NULL 参数只在位图里置位，不贡献 value 字节
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_execute.html
type ExecuteStmtPacket struct {
	statementID uint32
	parameters  []packet.Parameter

	// Flags 游标类型，目前只用 CURSOR_TYPE_NO_CURSOR
	Flags byte
	// IterationCount 协议要求恒为 1
	IterationCount uint32
	// NewParamsBindFlag 本次执行是否携带参数类型，首次执行必须为 1
	NewParamsBindFlag byte
}

func NewExecuteStmtPacket(statementID uint32, parameters []packet.Parameter) *ExecuteStmtPacket {
	return &ExecuteStmtPacket{
		statementID:       statementID,
		parameters:        parameters,
		Flags:             byte(packet.CURSOR_TYPE_NO_CURSOR),
		IterationCount:    1,
		NewParamsBindFlag: 1,
	}
}

func (b *ExecuteStmtPacket) Build() []byte {
	p := make([]byte, 4, 32+len(b.parameters)*16)

	// int<1>	status	COM_STMT_EXECUTE
	p = append(p, packet.CmdStmtExecute.Byte())

	// int<4>	statement_id	预处理返回的语句 id
	p = binary.LittleEndian.AppendUint32(p, b.statementID)

	// int<1>	flags	游标类型
	p = append(p, b.Flags)

	// int<4>	iteration_count	恒为 1
	p = binary.LittleEndian.AppendUint32(p, b.IterationCount)

	if len(b.parameters) == 0 {
		return p
	}

	// binary<var>	null_bitmap	(参数个数 + 7) / 8 个字节，位图在 value 区之前
	nullBitmap := make([]byte, (len(b.parameters)+7)/8)
	for i, param := range b.parameters {
		if param.IsNull() {
			nullBitmap[i/8] |= 1 << (uint(i) % 8)
		}
	}
	p = append(p, nullBitmap...)

	// int<1>	new_params_bind_flag	携带参数类型的标记
	p = append(p, b.NewParamsBindFlag)

	if b.NewParamsBindFlag == 1 {
		// 每个参数两个字节：类型 + 无符号标记
		for _, param := range b.parameters {
			tb := param.TypeBytes()
			p = append(p, tb[0], tb[1])
		}
	}

	// binary<var>	parameter_values	NULL 参数被跳过
	for _, param := range b.parameters {
		p = param.AppendValue(p)
	}

	return p
}
