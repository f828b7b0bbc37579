package parser

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// BinaryRow 二进制协议的结果集行，预处理语句执行返回的就是这种
// 为了让上层拿到和文本协议一致的数据，所有值都还原成文本形式
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_binary_resultset.html#sect_protocol_binary_resultset_row
type BinaryRow struct {
	baseParser

	columns []*ColumnDefinition41
	cells   [][]byte
}

func NewBinaryRow(columns []*ColumnDefinition41) *BinaryRow {
	return &BinaryRow{columns: columns}
}

// Parse payload 不含 4 字节报文头
func (r *BinaryRow) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)

	header, err := buf.ReadByte()
	if err != nil || header != 0x00 {
		return fmt.Errorf("%w，二进制行的头字节是 %#x", errs.ErrMalformedPacket, header)
	}

	// NULL 位图，位编号从 2 开始，前两位是保留位
	bitmapLen := (len(r.columns) + 7 + 2) / 8
	nullBitmap := make([]byte, bitmapLen)
	if n, _ := buf.Read(nullBitmap); n != bitmapLen {
		return fmt.Errorf("%w，NULL 位图不完整", errs.ErrMalformedPacket)
	}

	r.cells = make([][]byte, 0, len(r.columns))
	for i, col := range r.columns {
		pos := i + 2
		if nullBitmap[pos/8]&(1<<(uint(pos)%8)) != 0 {
			r.cells = append(r.cells, nil)
			continue
		}
		cell, err := r.parseValue(buf, col)
		if err != nil {
			return err
		}
		r.cells = append(r.cells, cell)
	}
	return nil
}

// Cells nil 表示 NULL
func (r *BinaryRow) Cells() [][]byte {
	return r.cells
}

func (r *BinaryRow) parseValue(buf *bytes.Buffer, col *ColumnDefinition41) ([]byte, error) {
	switch col.Type() {
	case packet.MySQLTypeTiny:
		return r.parseInteger(buf, 1, col.IsUnsigned())
	case packet.MySQLTypeShort, packet.MySQLTypeYear:
		return r.parseInteger(buf, 2, col.IsUnsigned())
	case packet.MySQLTypeLong, packet.MySQLTypeInt24:
		return r.parseInteger(buf, 4, col.IsUnsigned())
	case packet.MySQLTypeLongLong:
		return r.parseInteger(buf, 8, col.IsUnsigned())
	case packet.MySQLTypeFloat:
		v, err := r.ParseFixedLengthInteger(buf, 4)
		if err != nil {
			return nil, err
		}
		f := math.Float32frombits(uint32(v))
		return strconv.AppendFloat(nil, float64(f), 'f', -1, 32), nil
	case packet.MySQLTypeDouble:
		v, err := r.ParseFixedLengthInteger(buf, 8)
		if err != nil {
			return nil, err
		}
		return strconv.AppendFloat(nil, math.Float64frombits(v), 'f', -1, 64), nil
	case packet.MySQLTypeDate, packet.MySQLTypeDatetime, packet.MySQLTypeTimestamp:
		return r.parseTemporal(buf, col.Type())
	case packet.MySQLTypeTime:
		return r.parseTime(buf)
	default:
		// DECIMAL、字符串和 BLOB 一族都是 string<lenenc>
		return r.ParseVariableLengthBinary(buf)
	}
}

func (r *BinaryRow) parseInteger(buf *bytes.Buffer, byteSize int, unsigned bool) ([]byte, error) {
	v, err := r.ParseFixedLengthInteger(buf, byteSize)
	if err != nil {
		return nil, err
	}
	if unsigned {
		return strconv.AppendUint(nil, v, 10), nil
	}
	// 补符号位再当成有符号数
	shift := uint(64 - byteSize*8)
	return strconv.AppendInt(nil, int64(v<<shift)>>shift, 10), nil
}

// parseTemporal DATE/DATETIME/TIMESTAMP，长度字节 0/4/7/11
func (r *BinaryRow) parseTemporal(buf *bytes.Buffer, typ packet.MySQLType) ([]byte, error) {
	length, err := buf.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w，时间值缺少长度字节", errs.ErrMalformedPacket)
	}

	var year, micro uint64
	var month, day, hour, minute, second byte
	if length >= 4 {
		if year, err = r.ParseFixedLengthInteger(buf, 2); err != nil {
			return nil, err
		}
		if month, err = buf.ReadByte(); err != nil {
			return nil, err
		}
		if day, err = buf.ReadByte(); err != nil {
			return nil, err
		}
	}
	if length >= 7 {
		if hour, err = buf.ReadByte(); err != nil {
			return nil, err
		}
		if minute, err = buf.ReadByte(); err != nil {
			return nil, err
		}
		if second, err = buf.ReadByte(); err != nil {
			return nil, err
		}
	}
	if length >= 11 {
		if micro, err = r.ParseFixedLengthInteger(buf, 4); err != nil {
			return nil, err
		}
	}

	if typ == packet.MySQLTypeDate {
		return []byte(fmt.Sprintf("%04d-%02d-%02d", year, month, day)), nil
	}
	if length == 11 {
		return []byte(fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%06d",
			year, month, day, hour, minute, second, micro)), nil
	}
	return []byte(fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		year, month, day, hour, minute, second)), nil
}

// parseTime TIME，长度字节 0/8/12
func (r *BinaryRow) parseTime(buf *bytes.Buffer) ([]byte, error) {
	length, err := buf.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w，时间值缺少长度字节", errs.ErrMalformedPacket)
	}
	if length == 0 {
		return []byte("00:00:00"), nil
	}

	negative, err := buf.ReadByte()
	if err != nil {
		return nil, err
	}
	days, err := r.ParseFixedLengthInteger(buf, 4)
	if err != nil {
		return nil, err
	}
	hour, err := buf.ReadByte()
	if err != nil {
		return nil, err
	}
	minute, err := buf.ReadByte()
	if err != nil {
		return nil, err
	}
	second, err := buf.ReadByte()
	if err != nil {
		return nil, err
	}
	var micro uint64
	if length == 12 {
		if micro, err = r.ParseFixedLengthInteger(buf, 4); err != nil {
			return nil, err
		}
	}

	sign := ""
	if negative == 1 {
		sign = "-"
	}
	totalHours := days*24 + uint64(hour)
	if length == 12 {
		return []byte(fmt.Sprintf("%s%02d:%02d:%02d.%06d",
			sign, totalHours, minute, second, micro)), nil
	}
	return []byte(fmt.Sprintf("%s%02d:%02d:%02d", sign, totalHours, minute, second)), nil
}
