package parser

import (
	"bytes"
)

// TextRow 文本协议的结果集行，每个单元都是 string<lenenc>
// NULL 单元用单独的 0xFB 标记
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_row.html
type TextRow struct {
	baseParser

	columnCount int
	cells       [][]byte
}

func NewTextRow(columnCount int) *TextRow {
	return &TextRow{columnCount: columnCount}
}

// Parse payload 不含 4 字节报文头
func (r *TextRow) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)
	r.cells = make([][]byte, 0, r.columnCount)
	for i := 0; i < r.columnCount; i++ {
		if buf.Len() > 0 && buf.Bytes()[0] == 0xFB {
			// NULL 单元，消耗掉标记字节
			_, _ = buf.ReadByte()
			r.cells = append(r.cells, nil)
			continue
		}
		cell, err := r.ParseVariableLengthBinary(buf)
		if err != nil {
			return err
		}
		r.cells = append(r.cells, cell)
	}
	return nil
}

// Cells nil 表示 NULL
func (r *TextRow) Cells() [][]byte {
	return r.cells
}
