package flags

// CapabilityFlags 能力标记的集合
// 客户端在握手时告诉服务端它支持什么样的功能特性，
// 服务端同样带来自己的一份，两者按位与之后作为本次会话固定的能力集
// https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__capabilities__flags.html
type CapabilityFlags uint32

func (flags CapabilityFlags) Has(flag CapabilityFlag) bool {
	return Has(uint32(flags), uint32(flag))
}

// Union 返回追加了 flag 的新集合，原集合不变
func (flags CapabilityFlags) Union(flag CapabilityFlag) CapabilityFlags {
	return CapabilityFlags(Union(uint32(flags), uint32(flag)))
}

// Intersect 握手协商：双方能力集的交集，整个会话期间只计算一次
func (flags CapabilityFlags) Intersect(other CapabilityFlags) CapabilityFlags {
	return flags & other
}

// Decode 拆出已知的能力标记，未知位被丢弃
func (flags CapabilityFlags) Decode() []CapabilityFlag {
	return Decode(CapabilityFlag(flags), knownCapabilityFlags)
}

// EncodeCapability 把标记集合编码回原始整数
func EncodeCapability(set []CapabilityFlag) CapabilityFlags {
	return CapabilityFlags(Encode(set))
}

// CapabilityFlag 单个能力标记，位编号 0-31
type CapabilityFlag uint32

const (
	ClientLongPassword CapabilityFlag = 1 << iota
	ClientFoundRows
	ClientLongFlag
	ClientConnectWithDB
	ClientNoSchema
	ClientCompress
	ClientODBC
	ClientLocalFiles
	ClientIgnoreSpace
	ClientProtocol41
	ClientInteractive
	ClientSSL
	ClientIgnoreSigpipe
	ClientTransactions
	ClientReserved
	ClientSecureConnection
	ClientMultiStatements
	ClientMultiResults
	ClientPSMultiResults
	ClientPluginAuth
	ClientConnectAttrs
	ClientPluginAuthLenencClientData
	ClientCanHandleExpiredPasswords
	ClientSessionTrack
	ClientDeprecateEOF
	ClientOptionalResultsetMetadata
	ClientZstdCompressionAlgorithm
	ClientQueryAttributes
	ClientMultiFactorAuthentication
	ClientCapabilityExtension
	ClientSSLVerifyServerCert
	ClientRememberOptions
)

var knownCapabilityFlags = []CapabilityFlag{
	ClientLongPassword,
	ClientFoundRows,
	ClientLongFlag,
	ClientConnectWithDB,
	ClientNoSchema,
	ClientCompress,
	ClientODBC,
	ClientLocalFiles,
	ClientIgnoreSpace,
	ClientProtocol41,
	ClientInteractive,
	ClientSSL,
	ClientIgnoreSigpipe,
	ClientTransactions,
	ClientReserved,
	ClientSecureConnection,
	ClientMultiStatements,
	ClientMultiResults,
	ClientPSMultiResults,
	ClientPluginAuth,
	ClientConnectAttrs,
	ClientPluginAuthLenencClientData,
	ClientCanHandleExpiredPasswords,
	ClientSessionTrack,
	ClientDeprecateEOF,
	ClientOptionalResultsetMetadata,
	ClientZstdCompressionAlgorithm,
	ClientQueryAttributes,
	ClientMultiFactorAuthentication,
	ClientCapabilityExtension,
	ClientSSLVerifyServerCert,
	ClientRememberOptions,
}
