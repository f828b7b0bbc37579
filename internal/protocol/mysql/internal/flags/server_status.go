package flags

// ServerStatus 服务器状态位，OK/EOF 包里用两个字节传输
// https://dev.mysql.com/doc/dev/mysql-server/latest/mysql__com_8h.html#a1d854e841086925be1883e4d7b4e8cad
type ServerStatus uint16

func (s ServerStatus) Has(flag ServerStatusFlag) bool {
	return Has(uint16(s), uint16(flag))
}

func (s ServerStatus) Union(flag ServerStatusFlag) ServerStatus {
	return ServerStatus(Union(uint16(s), uint16(flag)))
}

func (s ServerStatus) Decode() []ServerStatusFlag {
	return Decode(ServerStatusFlag(s), knownServerStatusFlags)
}

func EncodeServerStatus(set []ServerStatusFlag) ServerStatus {
	return ServerStatus(Encode(set))
}

// AsUint16 协议中固定用两个字节传输
func (s ServerStatus) AsUint16() uint16 {
	return uint16(s)
}

// ServerStatusFlag 单个状态位，位编号 0-14
// 位 2 并没有定义
type ServerStatusFlag uint16

const (
	ServerStatusInTrans            ServerStatusFlag = 1
	ServerStatusAutoCommit         ServerStatusFlag = 2
	ServerMoreResultsExists        ServerStatusFlag = 8
	ServerQueryNoGoodIndexUsed     ServerStatusFlag = 16
	ServerQueryNoIndexUsed         ServerStatusFlag = 32
	ServerStatusCursorExists       ServerStatusFlag = 64
	ServerStatusLastRowSent        ServerStatusFlag = 128
	ServerStatusDBDropped          ServerStatusFlag = 256
	ServerStatusNoBackSlashEscapes ServerStatusFlag = 512
	ServerStatusMetadataChanged    ServerStatusFlag = 1024
	ServerQueryWasSlow             ServerStatusFlag = 2048
	ServerPsOutParams              ServerStatusFlag = 4096
	ServerStatusInTransReadOnly    ServerStatusFlag = 8192
	ServerSessionStateChanged      ServerStatusFlag = 16384
)

var knownServerStatusFlags = []ServerStatusFlag{
	ServerStatusInTrans,
	ServerStatusAutoCommit,
	ServerMoreResultsExists,
	ServerQueryNoGoodIndexUsed,
	ServerQueryNoIndexUsed,
	ServerStatusCursorExists,
	ServerStatusLastRowSent,
	ServerStatusDBDropped,
	ServerStatusNoBackSlashEscapes,
	ServerStatusMetadataChanged,
	ServerQueryWasSlow,
	ServerPsOutParams,
	ServerStatusInTransReadOnly,
	ServerSessionStateChanged,
}
