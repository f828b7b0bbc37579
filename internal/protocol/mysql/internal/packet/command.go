package packet

// Cmd 命令报文 payload 的第一个字节
// https://dev.mysql.com/doc/dev/mysql-server/latest/my__command_8h.html
type Cmd byte

func (c Cmd) Byte() byte {
	return byte(c)
}

const (
	CmdQuit Cmd = iota + 1
	CmdInitDB
	CmdQuery
	CmdFieldList
	CmdCreateDB
	CmdDropDB
	CmdRefresh
	CmdShutdown
	CmdStatistics
	CmdProcessInfo
	CmdConnect
	CmdProcessKill
	CmdDebug
	CmdPing
	CmdTime
	CmdDelayedInsert
	CmdChangeUser
	CmdBinlogDump
	CmdTableDump
	CmdConnectOut
	CmdRegisterSlave
	CmdStmtPrepare
	CmdStmtExecute
	CmdStmtSendLongData
	CmdStmtClose
	CmdStmtReset
	CmdSetOption
	CmdStmtFetch
	CmdDaemon
	CmdBinlogDumpGtid
	CmdResetConnection
)

// IsValid 命令是协议的封闭枚举，不认识的命令字节按格式错误处理
func (c Cmd) IsValid() bool {
	return c >= CmdQuit && c <= CmdResetConnection
}
