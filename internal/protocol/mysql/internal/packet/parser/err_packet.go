package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
)

// ERRPacket 服务端的错误应答，头字节固定 0xFF
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_err_packet.html
type ERRPacket struct {
	baseParser

	capabilities flags.CapabilityFlags

	errorCode    uint16
	sqlState     string
	errorMessage string
}

func NewERRPacket(capabilities flags.CapabilityFlags) *ERRPacket {
	return &ERRPacket{capabilities: capabilities}
}

// Parse payload 不含 4 字节报文头
func (e *ERRPacket) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)

	header, err := buf.ReadByte()
	if err != nil || header != 0xFF {
		return fmt.Errorf("%w，ERR 报文的头字节是 %#x", errs.ErrMalformedPacket, header)
	}

	// int<2>	error_code
	code, err := e.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}
	e.errorCode = uint16(code)

	if e.capabilities.Has(flags.ClientProtocol41) {
		// string[1]	sql_state_marker	固定 '#'
		// string[5]	sql_state
		state := make([]byte, 6)
		if n, _ := buf.Read(state); n != 6 {
			return fmt.Errorf("%w，SQL state 不完整", errs.ErrMalformedPacket)
		}
		e.sqlState = string(state[1:])
	}

	// string<EOF>	error_message
	e.errorMessage = buf.String()
	return nil
}

func (e *ERRPacket) ErrorCode() uint16 {
	return e.errorCode
}

func (e *ERRPacket) SQLState() string {
	return e.sqlState
}

func (e *ERRPacket) ErrorMessage() string {
	return e.errorMessage
}

// ToError 转成可以返回给调用方的错误
func (e *ERRPacket) ToError() error {
	return fmt.Errorf("%w，错误码 %d (%s)：%s",
		errs.ErrServerError, e.errorCode, e.sqlState, e.errorMessage)
}
