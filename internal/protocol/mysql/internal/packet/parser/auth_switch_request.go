package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqlclient/internal/errs"
)

// AuthSwitchRequest 服务端要求客户端换一个鉴权插件
// 头字节 0xFE，和 EOF 靠报文长度区分
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_auth_switch_request.html
type AuthSwitchRequest struct {
	baseParser

	pluginName string
	// pluginData 新的 scramble，结尾的 0x00 已经去掉
	pluginData []byte
}

// Parse payload 不含 4 字节报文头
func (a *AuthSwitchRequest) Parse(payload []byte) error {
	buf := bytes.NewBuffer(payload)

	header, err := buf.ReadByte()
	if err != nil || header != 0xFE {
		return fmt.Errorf("%w，auth switch 的头字节是 %#x", errs.ErrMalformedPacket, header)
	}

	// string<NUL>	plugin name
	if a.pluginName, err = a.ParseNullTerminatedString(buf); err != nil {
		return err
	}

	// string<EOF>	plugin provided data
	a.pluginData = buf.Bytes()
	if n := len(a.pluginData); n > 0 && a.pluginData[n-1] == 0x00 {
		a.pluginData = a.pluginData[:n-1]
	}
	return nil
}

func (a *AuthSwitchRequest) PluginName() string {
	return a.pluginName
}

func (a *AuthSwitchRequest) PluginData() []byte {
	return a.pluginData
}
