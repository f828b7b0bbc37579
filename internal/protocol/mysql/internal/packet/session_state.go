package packet

// SessionState OK 报文里会话状态变更条目的类型字节
// https://dev.mysql.com/doc/dev/mysql-server/latest/mysql__com_8h.html#a1c6cf2629b0bda6da6788a25725d6b7f
type SessionState byte

const (
	// SessionTrackSystemVariables 系统变量变了
	SessionTrackSystemVariables SessionState = iota
	// SessionTrackSchema 当前库变了
	SessionTrackSchema
	// SessionTrackStateChange 会话状态有没有变化的总开关
	SessionTrackStateChange
	// SessionTrackGtids 事务提交产生的 GTID
	SessionTrackGtids
	// SessionTrackTransactionCharacteristics 事务特征
	SessionTrackTransactionCharacteristics
	// SessionTrackTransactionState 事务状态
	SessionTrackTransactionState
)
