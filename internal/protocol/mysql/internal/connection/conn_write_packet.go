package connection

import (
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/builder"
)

// writePacket 写入一个逻辑报文
// 注意：
// 1. 你需要在 data 里面预留出来四个字节的头部字段
// 2. 超过 MaxPacketSize 的 payload 会被拆成多个最大长度的报文，
// 最后跟一个短报文（可能为空）作为结束标记，sequence 逐个递增
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_packets.html#sect_protocol_basic_packets_sending_mt_16mb
func (mc *Conn) writePacket(data []byte) error {
	pktLen := len(data) - 4
	for {
		size := pktLen
		if size >= packet.MaxPacketSize {
			size = packet.MaxPacketSize
		}

		frame, err := builder.NewSetHeader(mc.sequence, data[:4+size]).Build()
		if err != nil {
			return err
		}

		n, err := mc.conn.Write(frame)
		if err != nil {
			return fmt.Errorf("%w，写入数据失败，原因 %w", errs.ErrInvalidConn, err)
		}
		if n != len(frame) {
			return fmt.Errorf("%w，未写入足够数据，预期写入：%d，实际写入：%d",
				errs.ErrInvalidConn, len(frame), n)
		}
		mc.sequence++

		if size < packet.MaxPacketSize {
			return nil
		}

		// 已经发出去的末尾四个字节复用为下一个报文的头部
		data = data[size:]
		pktLen -= size
	}
}
