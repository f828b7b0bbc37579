package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
)

// EOFPacket 结果集分段之间的标记报文，头字节 0xFE 且长度小于 9
// DEPRECATE_EOF 协商开启后服务端改发 OK 报文，这里只在旧路径上用
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_eof_packet.html
type EOFPacket struct {
	baseParser

	capabilities flags.CapabilityFlags

	warnings    uint16
	statusFlags flags.ServerStatus
}

func NewEOFPacket(capabilities flags.CapabilityFlags) *EOFPacket {
	return &EOFPacket{capabilities: capabilities}
}

// Parse payload 不含 4 字节报文头
func (e *EOFPacket) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)

	header, err := buf.ReadByte()
	if err != nil || header != 0xFE {
		return fmt.Errorf("%w，EOF 报文的头字节是 %#x", errs.ErrMalformedPacket, header)
	}

	if e.capabilities.Has(flags.ClientProtocol41) {
		// int<2>	warnings
		warnings, err := e.ParseFixedLengthInteger(buf, 2)
		if err != nil {
			return err
		}
		e.warnings = uint16(warnings)

		// int<2>	status_flags
		status, err := e.ParseFixedLengthInteger(buf, 2)
		if err != nil {
			return err
		}
		e.statusFlags = flags.ServerStatus(status)
	}
	return nil
}

func (e *EOFPacket) Warnings() uint16 {
	return e.warnings
}

func (e *EOFPacket) StatusFlags() flags.ServerStatus {
	return e.statusFlags
}
