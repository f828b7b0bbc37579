package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// OKPacket 服务端的成功应答
// DEPRECATE_EOF 协商开启后，0xFE 开头且长度小于 9 的报文也按 OK 解析
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_ok_packet.html
type OKPacket struct {
	baseParser

	capabilities flags.CapabilityFlags

	header           byte
	affectedRows     uint64
	lastInsertID     uint64
	statusFlags      flags.ServerStatus
	warnings         uint16
	info             string
	sessionStateInfo []byte
}

func NewOKPacket(capabilities flags.CapabilityFlags) *OKPacket {
	return &OKPacket{capabilities: capabilities}
}

// Parse payload 不含 4 字节报文头
func (o *OKPacket) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)

	header, err := buf.ReadByte()
	if err != nil {
		return fmt.Errorf("%w，OK 报文为空", errs.ErrMalformedPacket)
	}
	if header != 0x00 && header != 0xFE {
		return fmt.Errorf("%w，OK 报文的头字节是 %#x", errs.ErrMalformedPacket, header)
	}
	o.header = header

	// int<lenenc>	affected_rows
	if o.affectedRows, _, err = o.ParseLengthEncodedInteger(buf); err != nil {
		return err
	}

	// int<lenenc>	last_insert_id
	if o.lastInsertID, _, err = o.ParseLengthEncodedInteger(buf); err != nil {
		return err
	}

	switch {
	case o.capabilities.Has(flags.ClientProtocol41):
		// int<2>	status_flags + int<2>	warnings
		status, err := o.ParseFixedLengthInteger(buf, 2)
		if err != nil {
			return err
		}
		o.statusFlags = flags.ServerStatus(status)
		warnings, err := o.ParseFixedLengthInteger(buf, 2)
		if err != nil {
			return err
		}
		o.warnings = uint16(warnings)
	case o.capabilities.Has(flags.ClientTransactions):
		// int<2>	status_flags
		status, err := o.ParseFixedLengthInteger(buf, 2)
		if err != nil {
			return err
		}
		o.statusFlags = flags.ServerStatus(status)
	}

	if o.capabilities.Has(flags.ClientSessionTrack) {
		// string<lenenc>	info，末尾可以整体缺省
		if buf.Len() > 0 {
			if o.info, err = o.ParseLengthEncodedString(buf); err != nil {
				return err
			}
		}
		if o.statusFlags.Has(flags.ServerSessionStateChanged) && buf.Len() > 0 {
			// string<lenenc>	session state info
			// 内部结构不拆解，原样保留给上层
			if o.sessionStateInfo, err = o.ParseVariableLengthBinary(buf); err != nil {
				return err
			}
		}
		return nil
	}

	// string<EOF>	info
	o.info = buf.String()
	return nil
}

func (o *OKPacket) AffectedRows() uint64 {
	return o.affectedRows
}

func (o *OKPacket) LastInsertID() uint64 {
	return o.lastInsertID
}

func (o *OKPacket) StatusFlags() flags.ServerStatus {
	return o.statusFlags
}

func (o *OKPacket) Warnings() uint16 {
	return o.warnings
}

func (o *OKPacket) Info() string {
	return o.info
}

// SessionStateInfo 未解析的会话状态变更数据
func (o *OKPacket) SessionStateInfo() []byte {
	return o.sessionStateInfo
}

// SessionStateChange 一条会话状态变更
// Data 的内部结构随 Type 不同而不同，这里不再往下拆
type SessionStateChange struct {
	Type packet.SessionState
	Data []byte
}

// SessionStateChanges 把会话状态数据拆成一条条变更
// 格式是 type int<1> 加 data string<lenenc> 的重复
func (o *OKPacket) SessionStateChanges() ([]SessionStateChange, error) {
	buf := bytes.NewBuffer(o.sessionStateInfo)
	var changes []SessionStateChange
	for buf.Len() > 0 {
		typ, err := buf.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w，会话状态条目缺类型字节", errs.ErrMalformedPacket)
		}
		data, err := o.ParseVariableLengthBinary(buf)
		if err != nil {
			return nil, err
		}
		changes = append(changes, SessionStateChange{
			Type: packet.SessionState(typ),
			Data: data,
		})
	}
	return changes, nil
}
