package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// HandshakeV10 服务端在 TCP 建连后主动发来的问候报文
// 客户端从这里拿到能力集、认证插件和 scramble
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_v10.html
type HandshakeV10 struct {
	baseParser

	protocolVersion uint8
	serverVersion   string
	connectionID    uint32
	// authPluginData 完整的 scramble，part1 的 8 字节加 part2 的 12 字节
	authPluginData []byte
	capabilities   flags.CapabilityFlags
	characterSet   uint8
	statusFlags    flags.ServerStatus
	authPluginName string
}

// Parse payload 不含 4 字节报文头
func (h *HandshakeV10) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)

	// int<1>	protocol version	Always 10
	version, err := h.ParseFixedLengthInteger(buf, 1)
	if err != nil {
		return err
	}
	if version < packet.MinProtocolVersion {
		return fmt.Errorf("%w，协议版本 %d 低于最低要求 %d",
			errs.ErrMalformedPacket, version, packet.MinProtocolVersion)
	}
	h.protocolVersion = uint8(version)

	// string<NUL>	server version
	if h.serverVersion, err = h.ParseNullTerminatedString(buf); err != nil {
		return err
	}

	// int<4>	thread id	a.k.a. connection id
	connID, err := h.ParseFixedLengthInteger(buf, 4)
	if err != nil {
		return err
	}
	h.connectionID = uint32(connID)

	// string[8]	auth-plugin-data-part-1
	part1 := make([]byte, 8)
	if n, _ := buf.Read(part1); n != 8 {
		return fmt.Errorf("%w，scramble 第一段不完整", errs.ErrMalformedPacket)
	}
	h.authPluginData = part1

	// int<1>	filler	0x00
	if _, err = h.ParseFixedLengthInteger(buf, 1); err != nil {
		return err
	}

	// int<2>	capability_flags_1	低 16 位
	capLow, err := h.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}

	// int<1>	character_set
	cs, err := h.ParseFixedLengthInteger(buf, 1)
	if err != nil {
		return err
	}
	h.characterSet = uint8(cs)

	// int<2>	status_flags
	status, err := h.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}
	h.statusFlags = flags.ServerStatus(status)

	// int<2>	capability_flags_2	高 16 位
	capHigh, err := h.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}
	h.capabilities = flags.CapabilityFlags(capLow | capHigh<<16)

	// int<1>	auth_plugin_data_len，没有 PLUGIN_AUTH 时是常量 0x00
	authDataLen, err := h.ParseFixedLengthInteger(buf, 1)
	if err != nil {
		return err
	}

	// string[10]	reserved	全零
	if n, _ := buf.Read(make([]byte, 10)); n != 10 {
		return fmt.Errorf("%w，保留区不完整", errs.ErrMalformedPacket)
	}

	if h.capabilities.Has(flags.ClientSecureConnection) {
		// auth-plugin-data-part-2	$len=MAX(13, auth_plugin_data_len - 8)
		// 最后一个字节是 0x00 结束符，不属于 scramble
		part2Len := int(authDataLen) - 8
		if part2Len < 13 {
			part2Len = 13
		}
		part2 := make([]byte, part2Len)
		if n, _ := buf.Read(part2); n != part2Len {
			return fmt.Errorf("%w，scramble 第二段不完整", errs.ErrMalformedPacket)
		}
		h.authPluginData = append(h.authPluginData, part2[:part2Len-1]...)
	}

	if h.capabilities.Has(flags.ClientPluginAuth) {
		// string<NUL>	auth_plugin_name
		if h.authPluginName, err = h.ParseNullTerminatedString(buf); err != nil {
			return err
		}
	}

	return nil
}

func (h *HandshakeV10) ProtocolVersion() uint8 {
	return h.protocolVersion
}

func (h *HandshakeV10) ServerVersion() string {
	return h.serverVersion
}

func (h *HandshakeV10) ConnectionID() uint32 {
	return h.connectionID
}

// AuthPluginData 完整的 20 字节 scramble
func (h *HandshakeV10) AuthPluginData() []byte {
	return h.authPluginData
}

func (h *HandshakeV10) Capabilities() flags.CapabilityFlags {
	return h.capabilities
}

func (h *HandshakeV10) CharacterSet() uint8 {
	return h.characterSet
}

func (h *HandshakeV10) StatusFlags() flags.ServerStatus {
	return h.statusFlags
}

func (h *HandshakeV10) AuthPluginName() string {
	return h.authPluginName
}
