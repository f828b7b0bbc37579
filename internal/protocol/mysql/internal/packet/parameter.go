package packet

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/encoding"
)

// Parameter 预处理语句执行时绑定的一个参数
// 在构造 COM_STMT_EXECUTE 报文的时候创建，执行返回后就丢弃
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_binary_resultset.html#sect_protocol_binary_resultset_row_value
type Parameter struct {
	// Type 写进报文 type 区的线上类型
	Type MySQLType
	// Unsigned 为真时 type 区的第二个字节是 0x80
	Unsigned bool
	// Literal 字面量形式，只用于日志和调试，不参与执行
	Literal string

	// value 区的编码，NULL 参数为 nil，不产生任何 value 字节
	encoded []byte
}

// IsNull NULL 参数只在 NULL 位图里置位
func (p Parameter) IsNull() bool {
	return p.encoded == nil && p.Type == MySQLTypeNULL
}

// AppendValue 把编码好的值追加到 execute 报文的 value 区
// 对合法参数永远不会失败，越界的值属于调用方要提前拦截的前置条件
func (p Parameter) AppendValue(dst []byte) []byte {
	return append(dst, p.encoded...)
}

// TypeBytes 参数在 type 区占用的两个字节
func (p Parameter) TypeBytes() [2]byte {
	if p.Unsigned {
		return [2]byte{byte(p.Type), 0x80}
	}
	return [2]byte{byte(p.Type), 0x00}
}

func NullParameter() Parameter {
	return Parameter{Type: MySQLTypeNULL, Literal: "NULL"}
}

func Int8Parameter(v int8) Parameter {
	return Parameter{
		Type:    MySQLTypeTiny,
		Literal: fmt.Sprintf("%d", v),
		encoded: encoding.FixedLengthInteger(uint64(uint8(v)), 1),
	}
}

func Int16Parameter(v int16) Parameter {
	return Parameter{
		Type:    MySQLTypeShort,
		Literal: fmt.Sprintf("%d", v),
		encoded: encoding.FixedLengthInteger(uint64(uint16(v)), 2),
	}
}

func Int32Parameter(v int32) Parameter {
	return Parameter{
		Type:    MySQLTypeLong,
		Literal: fmt.Sprintf("%d", v),
		encoded: encoding.FixedLengthInteger(uint64(uint32(v)), 4),
	}
}

func Int64Parameter(v int64) Parameter {
	return Parameter{
		Type:    MySQLTypeLongLong,
		Literal: fmt.Sprintf("%d", v),
		encoded: encoding.FixedLengthInteger(uint64(v), 8),
	}
}

func Uint64Parameter(v uint64) Parameter {
	return Parameter{
		Type:     MySQLTypeLongLong,
		Unsigned: true,
		Literal:  fmt.Sprintf("%d", v),
		encoded:  encoding.FixedLengthInteger(v, 8),
	}
}

func Float32Parameter(v float32) Parameter {
	return Parameter{
		Type:    MySQLTypeFloat,
		Literal: fmt.Sprintf("%v", v),
		encoded: encoding.FixedLengthInteger(uint64(math.Float32bits(v)), 4),
	}
}

func Float64Parameter(v float64) Parameter {
	return Parameter{
		Type:    MySQLTypeDouble,
		Literal: fmt.Sprintf("%v", v),
		encoded: encoding.FixedLengthInteger(math.Float64bits(v), 8),
	}
}

func BoolParameter(v bool) Parameter {
	if v {
		return Parameter{Type: MySQLTypeTiny, Literal: "1", encoded: []byte{0x01}}
	}
	return Parameter{Type: MySQLTypeTiny, Literal: "0", encoded: []byte{0x00}}
}

func StringParameter(v string) Parameter {
	return Parameter{
		Type:    MySQLTypeString,
		Literal: "'" + strings.ReplaceAll(v, "'", "''") + "'",
		encoded: encoding.LengthEncodeString(v),
	}
}

func BytesParameter(v []byte) Parameter {
	if v == nil {
		return NullParameter()
	}
	return Parameter{
		Type:    MySQLTypeBlob,
		Literal: fmt.Sprintf("x'%x'", v),
		encoded: encoding.LengthEncodeBinary(v),
	}
}

// DecimalParameter DECIMAL 以文本形式传输
func DecimalParameter(v string) Parameter {
	return Parameter{
		Type:    MySQLTypeNewDecimal,
		Literal: v,
		encoded: encoding.LengthEncodeString(v),
	}
}

// 时间类的编码按长度区分
// 长度字节由哪些子字段非零决定，每一档单独列出来方便逐档测试
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_binary_resultset.html#sect_protocol_binary_resultset_row_value

func DateTimeParameter(t time.Time) Parameter {
	return temporalParameter(MySQLTypeDatetime, t)
}

func TimestampParameter(t time.Time) Parameter {
	return temporalParameter(MySQLTypeTimestamp, t)
}

func DateParameter(t time.Time) Parameter {
	p := Parameter{
		Type:    MySQLTypeDate,
		Literal: "'" + t.Format(time.DateOnly) + "'",
	}
	// Go 的 time.Time 表示不了 0000-00-00，零值就代表全零日期
	if t.IsZero() {
		p.encoded = []byte{0}
		return p
	}
	year, month, day := t.Date()
	b := make([]byte, 0, 5)
	b = append(b, 4)
	b = append(b, encoding.FixedLengthInteger(uint64(year), 2)...)
	b = append(b, byte(month), byte(day))
	p.encoded = b
	return p
}

func temporalParameter(typ MySQLType, t time.Time) Parameter {
	p := Parameter{
		Type:    typ,
		Literal: "'" + t.Format("2006-01-02 15:04:05.000000") + "'",
	}
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	micro := t.Nanosecond() / int(time.Microsecond)

	clockZero := hour == 0 && minute == 0 && second == 0

	// 长度判定表：0 / 4 / 7 / 11
	var length byte
	switch {
	case t.IsZero():
		// Go 的 time.Time 表示不了 0000-00-00，零值就代表全零
		length = 0
	case clockZero && micro == 0:
		length = 4
	case micro == 0:
		length = 7
	default:
		length = 11
	}

	b := make([]byte, 0, 12)
	b = append(b, length)
	if length >= 4 {
		b = append(b, encoding.FixedLengthInteger(uint64(year), 2)...)
		b = append(b, byte(month), byte(day))
	}
	if length >= 7 {
		b = append(b, byte(hour), byte(minute), byte(second))
	}
	if length == 11 {
		b = append(b, encoding.FixedLengthInteger(uint64(micro), 4)...)
	}
	p.encoded = b
	return p
}

// TimeParameter TIME 类型，字段都取自当天内的偏移
// 符号位和天数按协议保留，固定写 0
func TimeParameter(hour, minute, second, micro int) Parameter {
	p := Parameter{
		Type:    MySQLTypeTime,
		Literal: fmt.Sprintf("'%02d:%02d:%02d.%06d'", hour, minute, second, micro),
	}

	clockZero := hour == 0 && minute == 0 && second == 0

	// 长度判定表：0 / 8 / 12
	var length byte
	switch {
	case clockZero && micro == 0:
		length = 0
	case micro == 0:
		length = 8
	default:
		length = 12
	}

	b := make([]byte, 0, 13)
	b = append(b, length)
	if length >= 8 {
		// is_negative(1) + days(4)
		b = append(b, 0)
		b = append(b, encoding.FixedLengthInteger(0, 4)...)
		b = append(b, byte(hour), byte(minute), byte(second))
	}
	if length == 12 {
		b = append(b, encoding.FixedLengthInteger(uint64(micro), 4)...)
	}
	p.encoded = b
	return p
}
