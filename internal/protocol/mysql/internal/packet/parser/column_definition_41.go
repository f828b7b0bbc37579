package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// ColumnDefinition41 结果集里每一列的元数据
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_column_definition.html
type ColumnDefinition41 struct {
	baseParser

	catalog      string
	schema       string
	table        string
	orgTable     string
	name         string
	orgName      string
	characterSet uint16
	columnLength uint32
	columnType   packet.MySQLType
	columnFlags  flags.ColumnFlags
	decimals     uint8
}

// Parse payload 不含 4 字节报文头
func (c *ColumnDefinition41) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)
	var err error

	// string<lenenc>	catalog	固定是 def
	if c.catalog, err = c.ParseLengthEncodedString(buf); err != nil {
		return err
	}
	// string<lenenc>	schema
	if c.schema, err = c.ParseLengthEncodedString(buf); err != nil {
		return err
	}
	// string<lenenc>	table	别名
	if c.table, err = c.ParseLengthEncodedString(buf); err != nil {
		return err
	}
	// string<lenenc>	org_table	物理表名
	if c.orgTable, err = c.ParseLengthEncodedString(buf); err != nil {
		return err
	}
	// string<lenenc>	name	列的别名
	if c.name, err = c.ParseLengthEncodedString(buf); err != nil {
		return err
	}
	// string<lenenc>	org_name	物理列名
	if c.orgName, err = c.ParseLengthEncodedString(buf); err != nil {
		return err
	}

	// int<lenenc>	length of fixed length fields	固定是 0x0c
	fixedLen, _, err := c.ParseLengthEncodedInteger(buf)
	if err != nil {
		return err
	}
	if fixedLen != 0x0c {
		return fmt.Errorf("%w，列定义固定区长度是 %d", errs.ErrMalformedPacket, fixedLen)
	}

	// int<2>	character_set	collation id
	cs, err := c.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}
	c.characterSet = uint16(cs)

	// int<4>	column_length
	length, err := c.ParseFixedLengthInteger(buf, 4)
	if err != nil {
		return err
	}
	c.columnLength = uint32(length)

	// int<1>	type
	typ, err := c.ParseFixedLengthInteger(buf, 1)
	if err != nil {
		return err
	}
	c.columnType = packet.MySQLType(typ)

	// int<2>	flags
	colFlags, err := c.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}
	c.columnFlags = flags.ColumnFlags(colFlags)

	// int<1>	decimals
	decimals, err := c.ParseFixedLengthInteger(buf, 1)
	if err != nil {
		return err
	}
	c.decimals = uint8(decimals)

	return nil
}

func (c *ColumnDefinition41) Name() string {
	return c.name
}

func (c *ColumnDefinition41) Schema() string {
	return c.schema
}

func (c *ColumnDefinition41) Table() string {
	return c.table
}

func (c *ColumnDefinition41) OrgTable() string {
	return c.orgTable
}

func (c *ColumnDefinition41) OrgName() string {
	return c.orgName
}

// CharacterSet 列的 collation id
func (c *ColumnDefinition41) CharacterSet() uint16 {
	return c.characterSet
}

func (c *ColumnDefinition41) ColumnLength() uint32 {
	return c.columnLength
}

func (c *ColumnDefinition41) Type() packet.MySQLType {
	return c.columnType
}

func (c *ColumnDefinition41) Flags() flags.ColumnFlags {
	return c.columnFlags
}

func (c *ColumnDefinition41) Decimals() uint8 {
	return c.decimals
}

// IsUnsigned 二进制行解码整数列时要区分符号
func (c *ColumnDefinition41) IsUnsigned() bool {
	return c.columnFlags.Has(flags.UnsignedFlag)
}
