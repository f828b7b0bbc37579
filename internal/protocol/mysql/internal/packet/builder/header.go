package builder

import (
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
)

// SetHeader 在预留的头部四个字节里填上长度和 sequence
// 只处理单个报文，超过 MaxPacketSize 的载荷由连接层先拆包再逐个调用
type SetHeader struct {
	sequence uint8
	payload  []byte
}

func NewSetHeader(sequence uint8, payload []byte) *SetHeader {
	return &SetHeader{sequence: sequence, payload: payload}
}

func (b *SetHeader) Build() ([]byte, error) {
	packetLength := len(b.payload) - 4
	if packetLength > packet.MaxPacketSize {
		return nil, fmt.Errorf("%w，最大长度 %d，报文长度 %d",
			errs.ErrPktTooLarge, packet.MaxPacketSize, packetLength)
	}
	b.payload[0] = byte(packetLength)
	b.payload[1] = byte(packetLength >> 8)
	b.payload[2] = byte(packetLength >> 16)
	b.payload[3] = b.sequence
	return b.payload, nil
}
