package encoding

import "encoding/binary"

// 协议里两种基础的整数编码
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_dt_integers.html

// FixedLengthInteger 小端编码指定长度的整数
// byteSize 的合法取值 1,2,3,4,6,8
func FixedLengthInteger(value uint64, byteSize int) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, value)
	return b[:byteSize]
}

// LengthEncodeInteger 对数字进行 int<lenenc> 编码
func LengthEncodeInteger(value uint64) []byte {
	// 最坏情况 1 字节前缀 + 8 字节数字
	b := make([]byte, 0, 9)
	switch {
	case value < 0xFB:
		// [0, 251)	1-byte integer
		b = append(b, byte(value))
	case value <= 0xFFFF:
		// [251, 2^16) 0xFC + 2-byte integer
		b = append(b, 0xFC)
		b = append(b, FixedLengthInteger(value, 2)...)
	case value <= 0xFFFFFF:
		// [2^16, 2^24) 0xFD + 3-byte integer
		b = append(b, 0xFD)
		b = append(b, FixedLengthInteger(value, 3)...)
	default:
		// [2^24, 2^64) 0xFE + 8-byte integer
		b = append(b, 0xFE)
		b = append(b, FixedLengthInteger(value, 8)...)
	}
	return b
}

// LengthEncodeString 对字符串进行 string<lenenc> 编码
// 长度以 int<lenenc> 形式作为前缀，后面跟原始内容
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_dt_strings.html#sect_protocol_basic_dt_string_le
func LengthEncodeString(str string) []byte {
	return append(LengthEncodeInteger(uint64(len(str))), []byte(str)...)
}

// LengthEncodeBinary 与 LengthEncodeString 相同，只是针对字节切片
func LengthEncodeBinary(data []byte) []byte {
	return append(LengthEncodeInteger(uint64(len(data))), data...)
}

// NullTerminatedString Strings that are terminated by a 00 byte.
func NullTerminatedString(str string) []byte {
	return append([]byte(str), 0x00)
}
