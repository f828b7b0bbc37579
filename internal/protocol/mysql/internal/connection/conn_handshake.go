package connection

import (
	"context"
	"crypto/tls"
	"fmt"

	perrors "github.com/pkg/errors"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/builder"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet/parser"
)

const authPluginNativePassword = "mysql_native_password"

// Handshake 完成连接阶段：读服务端问候、协商能力集、鉴权
// 在 mysql 协议中，建立了 TCP 连接之后由服务端先发问候报文，
// 客户端应答并完成鉴权之后才进入命令阶段
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase.html
func (mc *Conn) Handshake(ctx context.Context) error {
	if err := mc.applyDeadlines(ctx); err != nil {
		return err
	}

	// 问候报文的 sequence 是 0
	mc.resetSequence()
	payload, err := mc.readPacket()
	if err != nil {
		return perrors.Wrap(err, "读取服务端问候失败")
	}

	var greeting parser.HandshakeV10
	if err = greeting.Parse(payload); err != nil {
		return perrors.Wrap(err, "解析服务端问候失败")
	}
	mc.connectionID = greeting.ConnectionID()
	mc.serverVersion = greeting.ServerVersion()

	// 协商只发生一次，之后整个会话都用这份交集
	candidate := mc.candidateCapabilities()
	mc.capabilities = candidate.Intersect(greeting.Capabilities())

	if err = mc.checkRequiredCapabilities(greeting.Capabilities()); err != nil {
		return err
	}

	if mc.cfg.TLSConfig != nil {
		if err = mc.upgradeTLS(); err != nil {
			return perrors.Wrap(err, "TLS 升级失败")
		}
	}

	authResponse := scramblePassword(greeting.AuthPluginData(), []byte(mc.cfg.Password))

	resp := builder.NewHandshakeResponse41Packet(mc.capabilities)
	resp.CharacterSet = mc.cfg.CharacterSet
	resp.Username = mc.cfg.User
	resp.AuthResponse = authResponse
	resp.Database = mc.cfg.Database
	resp.AuthPluginName = authPluginNativePassword
	if err = mc.writePacket(resp.Build()); err != nil {
		return perrors.Wrap(err, "发送握手响应失败")
	}

	return mc.readAuthResult(greeting.AuthPluginName())
}

// candidateCapabilities 客户端这一侧想要的能力集，按配置增减
func (mc *Conn) candidateCapabilities() flags.CapabilityFlags {
	candidate := flags.EncodeCapability([]flags.CapabilityFlag{
		flags.ClientLongPassword,
		flags.ClientLongFlag,
		flags.ClientProtocol41,
		flags.ClientTransactions,
		flags.ClientSecureConnection,
		flags.ClientMultiResults,
		flags.ClientPluginAuth,
		flags.ClientPluginAuthLenencClientData,
		flags.ClientSessionTrack,
		flags.ClientDeprecateEOF,
	})
	if mc.cfg.Database != "" {
		candidate = candidate.Union(flags.ClientConnectWithDB)
	}
	if mc.cfg.MultiStatements {
		candidate = candidate.Union(flags.ClientMultiStatements)
	}
	if mc.cfg.TLSConfig != nil {
		candidate = candidate.Union(flags.ClientSSL)
	}
	return candidate
}

// checkRequiredCapabilities 缺了就没法继续的能力
func (mc *Conn) checkRequiredCapabilities(server flags.CapabilityFlags) error {
	required := []flags.CapabilityFlag{
		flags.ClientProtocol41,
		flags.ClientSecureConnection,
		flags.ClientPluginAuth,
	}
	if mc.cfg.TLSConfig != nil {
		required = append(required, flags.ClientSSL)
	}
	for _, flag := range required {
		if !server.Has(flag) {
			return fmt.Errorf("%w，缺少 %#x", errs.ErrCapabilityMismatch, uint32(flag))
		}
	}
	return nil
}

// upgradeTLS 先发一个只有握手响应前 32 字节的 SSLRequest，再切换到 TLS
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_ssl_request.html
func (mc *Conn) upgradeTLS() error {
	request := builder.NewHandshakeResponse41Packet(mc.capabilities).Build()
	// client_flag + max_packet_size + character_set + filler
	if err := mc.writePacket(request[:4+32]); err != nil {
		return err
	}
	tlsConn := tls.Client(mc.conn, mc.cfg.TLSConfig)
	if err := tlsConn.Handshake(); err != nil {
		return err
	}
	mc.conn = tlsConn
	return nil
}

// readAuthResult 鉴权的三种结局：OK、ERR、auth switch
// auth switch 只支持换回 mysql_native_password，换别的插件直接报错
func (mc *Conn) readAuthResult(serverPlugin string) error {
	payload, err := mc.readPacket()
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return fmt.Errorf("%w，鉴权应答为空", errs.ErrMalformedPacket)
	}

	switch payload[0] {
	case 0x00:
		return nil
	case 0xFF:
		e := parser.NewERRPacket(mc.capabilities)
		if err := e.Parse(payload); err != nil {
			return err
		}
		return fmt.Errorf("%w，错误码 %d：%s", errs.ErrAuthFailure, e.ErrorCode(), e.ErrorMessage())
	case 0xFE:
		return mc.handleAuthSwitch(payload)
	default:
		return fmt.Errorf("%w，插件 %s 要求额外的鉴权数据", errs.ErrAuthFailure, serverPlugin)
	}
}

// handleAuthSwitch 服务端要求换插件重新鉴权
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_auth_switch_request.html
func (mc *Conn) handleAuthSwitch(payload []byte) error {
	var req parser.AuthSwitchRequest
	if err := req.Parse(payload); err != nil {
		return err
	}
	if req.PluginName() != authPluginNativePassword {
		return fmt.Errorf("%w，不支持的鉴权插件 %s", errs.ErrAuthFailure, req.PluginName())
	}

	token := scramblePassword(req.PluginData(), []byte(mc.cfg.Password))
	data := make([]byte, 4, 4+len(token))
	data = append(data, token...)
	if err := mc.writePacket(data); err != nil {
		return err
	}

	result, err := mc.readPacket()
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return fmt.Errorf("%w，鉴权应答为空", errs.ErrMalformedPacket)
	}
	switch result[0] {
	case 0x00:
		return nil
	case 0xFF:
		e := parser.NewERRPacket(mc.capabilities)
		if err := e.Parse(result); err != nil {
			return err
		}
		return fmt.Errorf("%w，错误码 %d：%s", errs.ErrAuthFailure, e.ErrorCode(), e.ErrorMessage())
	default:
		return fmt.Errorf("%w，鉴权应答无法识别", errs.ErrAuthFailure)
	}
}
