package builder

import (
	"encoding/binary"

	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/encoding"
)

// HandshakeResponse41Packet 客户端对 Handshake 的应答
// 这里写进去的 clientFlags 必须是和服务端能力集求交之后的结果，
// 发出去之后整个会话都按这份能力集走
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_response.html
type HandshakeResponse41Packet struct {
	clientFlags flags.CapabilityFlags

	CharacterSet   uint8
	Username       string
	AuthResponse   []byte
	Database       string
	AuthPluginName string
}

func NewHandshakeResponse41Packet(clientFlags flags.CapabilityFlags) *HandshakeResponse41Packet {
	return &HandshakeResponse41Packet{clientFlags: clientFlags}
}

func (b *HandshakeResponse41Packet) Build() []byte {
	p := make([]byte, 4, 64+len(b.Username)+len(b.AuthResponse)+len(b.Database))

	// int<4>	client_flag	协商后的能力集
	p = binary.LittleEndian.AppendUint32(p, uint32(b.clientFlags))

	// int<4>	max_packet_size	客户端能接收的最大报文长度
	p = binary.LittleEndian.AppendUint32(p, packet.MaxPacketSize)

	// int<1>	character_set	本连接使用的 collation id 的低 8 位
	p = append(p, b.CharacterSet)

	// string[23]	filler	全零填充
	p = append(p, make([]byte, 23)...)

	// string<NUL>	username	登录用户名
	p = append(p, encoding.NullTerminatedString(b.Username)...)

	if b.clientFlags.Has(flags.ClientPluginAuthLenencClientData) {
		// string<length encoded>	auth_response	认证插件算出来的应答
		p = append(p, encoding.LengthEncodeBinary(b.AuthResponse)...)
	} else {
		// int<1>	auth_response_length + string[n]	auth_response
		p = append(p, byte(len(b.AuthResponse)))
		p = append(p, b.AuthResponse...)
	}

	if b.clientFlags.Has(flags.ClientConnectWithDB) {
		// string<NUL>	database	连接建立后默认选中的库
		p = append(p, encoding.NullTerminatedString(b.Database)...)
	}

	if b.clientFlags.Has(flags.ClientPluginAuth) {
		// string<NUL>	client_plugin_name	认证插件名
		p = append(p, encoding.NullTerminatedString(b.AuthPluginName)...)
	}

	return p
}
