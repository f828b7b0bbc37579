package connection

import (
	"fmt"
	"io"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// readPacket 读取一个完整报文，已经去除了头部字段，只剩下 payload 字段
// 长度达到 MaxPacketSize 的报文会和后续报文拼接，直到遇到一个短报文为止
func (mc *Conn) readPacket() ([]byte, error) {
	var prevData []byte
	for {
		// 读取头部的四个字节，其中三个字节是长度，一个字节是 sequence
		data := make([]byte, 4)
		if _, err := io.ReadFull(mc.conn, data); err != nil {
			return nil, fmt.Errorf("%w，读取报文头部失败 %w", errs.ErrInvalidConn, err)
		}

		// packet length [24 bit]
		pktLen := int(uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16)

		// check packet sync [8 bit]
		if data[3] != mc.sequence {
			_ = mc.Close()
			return nil, fmt.Errorf("%w，预期 %d 实际 %d", errs.ErrPktSync, mc.sequence, data[3])
		}
		mc.sequence++

		// packets with length 0 terminate a previous packet which is a
		// multiple of (2^24)-1 bytes long
		if pktLen == 0 {
			// 没有前置报文时就是一个合法的空 payload，
			// 比如空密码时的 auth switch 应答
			if prevData == nil {
				return []byte{}, nil
			}
			return prevData, nil
		}

		// read packet body [pktLen bytes]
		body := make([]byte, pktLen)
		if _, err := io.ReadFull(mc.conn, body); err != nil {
			return nil, fmt.Errorf("%w，读取报文体失败 %w", errs.ErrInvalidConn, err)
		}

		// return data if this was the last packet
		if pktLen < packet.MaxPacketSize {
			// zero allocations for non-split packets
			if prevData == nil {
				return body, nil
			}
			return append(prevData, body...), nil
		}
		prevData = append(prevData, body...)
	}
}
