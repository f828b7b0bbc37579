package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
)

// StmtPrepareOK COM_STMT_PREPARE 的首包应答
// 后面还会跟 numParams 个参数定义和 numColumns 个列定义
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_stmt_prepare.html#sect_protocol_com_stmt_prepare_response_ok
type StmtPrepareOK struct {
	baseParser

	statementID  uint32
	numColumns   uint16
	numParams    uint16
	warningCount uint16
}

// Parse payload 不含 4 字节报文头
func (s *StmtPrepareOK) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)

	// int<1>	status	固定 0x00
	status, err := buf.ReadByte()
	if err != nil || status != 0x00 {
		return fmt.Errorf("%w，预处理应答的状态字节是 %#x", errs.ErrMalformedPacket, status)
	}

	// int<4>	statement_id
	stmtID, err := s.ParseFixedLengthInteger(buf, 4)
	if err != nil {
		return err
	}
	s.statementID = uint32(stmtID)

	// int<2>	num_columns
	numColumns, err := s.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}
	s.numColumns = uint16(numColumns)

	// int<2>	num_params
	numParams, err := s.ParseFixedLengthInteger(buf, 2)
	if err != nil {
		return err
	}
	s.numParams = uint16(numParams)

	// int<1>	reserved_1	filler
	if _, err = buf.ReadByte(); err != nil {
		return fmt.Errorf("%w，预处理应答缺少填充字节", errs.ErrMalformedPacket)
	}

	// int<2>	warning_count	末尾可以缺省
	if buf.Len() >= 2 {
		warnings, err := s.ParseFixedLengthInteger(buf, 2)
		if err != nil {
			return err
		}
		s.warningCount = uint16(warnings)
	}
	return nil
}

func (s *StmtPrepareOK) StatementID() uint32 {
	return s.statementID
}

func (s *StmtPrepareOK) NumColumns() uint16 {
	return s.numColumns
}

func (s *StmtPrepareOK) NumParams() uint16 {
	return s.numParams
}

func (s *StmtPrepareOK) WarningCount() uint16 {
	return s.warningCount
}
