package builder

import (
	"encoding/binary"

	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// 命令阶段的简单报文，payload 就是一个命令字节加上可选的参数
// 前四个字节留给 SetHeader 填充
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_command_phase.html

// Command 不带参数的命令，比如 COM_QUIT、COM_PING、COM_STATISTICS
type Command struct {
	cmd packet.Cmd
}

func NewCommand(cmd packet.Cmd) *Command {
	return &Command{cmd: cmd}
}

func (b *Command) Build() []byte {
	p := make([]byte, 4, 5)
	// int<1>	command	命令字节
	p = append(p, b.cmd.Byte())
	return p
}

// CommandWithPayload 命令字节后面直接跟 string<EOF> 参数的命令
// COM_QUERY、COM_INIT_DB、COM_STMT_PREPARE 都是这个形状
type CommandWithPayload struct {
	cmd     packet.Cmd
	payload string
}

func NewCommandWithPayload(cmd packet.Cmd, payload string) *CommandWithPayload {
	return &CommandWithPayload{cmd: cmd, payload: payload}
}

func (b *CommandWithPayload) Build() []byte {
	p := make([]byte, 4, 5+len(b.payload))
	// int<1>	command	命令字节
	p = append(p, b.cmd.Byte())
	// string<EOF>	参数一直到报文结束
	p = append(p, b.payload...)
	return p
}

// CloseStmtPacket COM_STMT_CLOSE 关闭预处理语句，服务端不回包
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_close.html
type CloseStmtPacket struct {
	statementID uint32
}

func NewCloseStmtPacket(statementID uint32) *CloseStmtPacket {
	return &CloseStmtPacket{statementID: statementID}
}

func (b *CloseStmtPacket) Build() []byte {
	p := make([]byte, 4, 9)
	// int<1>	command	COM_STMT_CLOSE
	p = append(p, packet.CmdStmtClose.Byte())
	// int<4>	statement_id	要关闭的语句
	p = binary.LittleEndian.AppendUint32(p, b.statementID)
	return p
}

// SetOptionPacket COM_SET_OPTION 开关多语句能力
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_set_option.html
type SetOptionPacket struct {
	option uint16
}

func NewSetOptionPacket(option uint16) *SetOptionPacket {
	return &SetOptionPacket{option: option}
}

func (b *SetOptionPacket) Build() []byte {
	p := make([]byte, 4, 7)
	// int<1>	command	COM_SET_OPTION
	p = append(p, packet.CmdSetOption.Byte())
	// int<2>	option_operation	MYSQL_OPTION_MULTI_STATEMENTS_ON/OFF
	p = binary.LittleEndian.AppendUint16(p, b.option)
	return p
}
