package parser

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
)

type baseParser struct{}

// ParseLengthEncodedInteger 解析 Length-Encoded Integer
// 第二个返回值表述Integer使用n个字节来表示
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_dt_integers.html#sect_protocol_basic_dt_int_le
func (p *baseParser) ParseLengthEncodedInteger(buf *bytes.Buffer) (uint64, int, error) {
	firstByte, err := buf.ReadByte()
	if err != nil {
		return 0, 0, fmt.Errorf("%w，读取 int<lenenc> 前缀失败", errs.ErrMalformedPacket)
	}
	switch {
	case firstByte < 0xFB:
		// [0, 251)	编码方式 1-byte integer
		return uint64(firstByte), 1, nil
	case firstByte == 0xFC:
		// [251, 2^16) 编码方式 0xFC + 2-byte integer
		var num uint16
		if err := binary.Read(buf, binary.LittleEndian, &num); err != nil {
			return 0, 0, fmt.Errorf("%w，int<lenenc> 的 2 字节主体不完整", errs.ErrMalformedPacket)
		}
		return uint64(num), 2, nil
	case firstByte == 0xFD:
		// [2^16, 2^24) 编码方式	0xFD + 3-byte integer
		b := make([]byte, 3)
		if err := binary.Read(buf, binary.LittleEndian, b); err != nil {
			return 0, 0, fmt.Errorf("%w，int<lenenc> 的 3 字节主体不完整", errs.ErrMalformedPacket)
		}
		var result uint64
		result |= uint64(b[0])
		result |= uint64(b[1]) << 8
		result |= uint64(b[2]) << 16
		return result, 3, nil
	case firstByte == 0xFE:
		var num uint64
		// [2^24, 2^64)	编码方式 0xFE + 8-byte integer
		if err := binary.Read(buf, binary.LittleEndian, &num); err != nil {
			return 0, 0, fmt.Errorf("%w，int<lenenc> 的 8 字节主体不完整", errs.ErrMalformedPacket)
		}
		return num, 8, nil
	default:
		return 0, 0, fmt.Errorf("%w，非法的 int<lenenc> 前缀 %d", errs.ErrMalformedPacket, firstByte)
	}
}

// ParseLengthEncodedString 解析 Length-Encoded String
func (p *baseParser) ParseLengthEncodedString(buf *bytes.Buffer) (string, error) {
	strBytes, err := p.ParseVariableLengthBinary(buf)
	if err != nil {
		return "", err
	}
	return string(strBytes), nil
}

// ParseVariableLengthBinary 解析 Variable-Length Binary
func (p *baseParser) ParseVariableLengthBinary(buf *bytes.Buffer) ([]byte, error) {
	binLength, _, err := p.ParseLengthEncodedInteger(buf)
	if err != nil {
		return nil, err
	}

	binBytes := make([]byte, binLength)
	if n, _ := buf.Read(binBytes); uint64(n) != binLength {
		return nil, fmt.Errorf("%w，声明长度 %d 实际只剩 %d", errs.ErrMalformedPacket, binLength, n)
	}

	return binBytes, nil
}

// ParseLengthEncodedInteger 包外也要解析结果集首包里的列数
func ParseLengthEncodedInteger(buf *bytes.Buffer) (uint64, int, error) {
	var p baseParser
	return p.ParseLengthEncodedInteger(buf)
}

// ParseNullTerminatedString 解析以 0x00 结尾的字符串
func (p *baseParser) ParseNullTerminatedString(buf *bytes.Buffer) (string, error) {
	str, err := buf.ReadString(0x00)
	if err != nil {
		return "", fmt.Errorf("%w，string<NUL> 没有结束符", errs.ErrMalformedPacket)
	}
	return str[:len(str)-1], nil
}

// ParseFixedLengthInteger 解析小端的 int<n>
func (p *baseParser) ParseFixedLengthInteger(buf *bytes.Buffer, byteSize int) (uint64, error) {
	b := make([]byte, byteSize)
	if n, _ := buf.Read(b); n != byteSize {
		return 0, fmt.Errorf("%w，int<%d> 不完整", errs.ErrMalformedPacket, byteSize)
	}
	var result uint64
	for i := 0; i < byteSize; i++ {
		result |= uint64(b[i]) << (8 * i)
	}
	return result, nil
}
