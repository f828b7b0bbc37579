package connection

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readFrame 对端以原始字节读一个报文，返回 sequence 和 payload
func readFrame(t *testing.T, c net.Conn) (uint8, []byte) {
	t.Helper()
	header := make([]byte, 4)
	_, err := readFull(c, header)
	require.NoError(t, err)
	pktLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)
	body := make([]byte, pktLen)
	_, err = readFull(c, body)
	require.NoError(t, err)
	return header[3], body
}

func readFull(c net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := c.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeFrame 对端以原始字节写一个报文
func writeFrame(t *testing.T, c net.Conn, sequence uint8, payload []byte) {
	t.Helper()
	frame := make([]byte, 0, 4+len(payload))
	frame = append(frame,
		byte(len(payload)), byte(len(payload)>>8), byte(len(payload)>>16), sequence)
	frame = append(frame, payload...)
	_, err := c.Write(frame)
	require.NoError(t, err)
}

func TestConn_报文读写来回(t *testing.T) {
	sizes := []int{0, 1, packet.MaxPacketSize - 1, packet.MaxPacketSize + 100}
	names := []string{"空载荷", "一个字节", "最大单包", "跨包"}

	for i, size := range sizes {
		t.Run(names[i], func(t *testing.T) {
			client, server := net.Pipe()
			defer func() {
				_ = client.Close()
				_ = server.Close()
			}()

			payload := bytes.Repeat([]byte{0xAB}, size)

			writer := NewConn(client, Config{})
			reader := NewConn(server, Config{})

			errCh := make(chan error, 1)
			go func() {
				data := make([]byte, 4, 4+size)
				data = append(data, payload...)
				errCh <- writer.writePacket(data)
			}()

			got, err := reader.readPacket()
			require.NoError(t, err)
			require.NoError(t, <-errCh)
			assert.Equal(t, payload, got)
			// 双方的 sequence 同步推进
			assert.Equal(t, writer.sequence, reader.sequence)
		})
	}
}

func TestNewConn_字符集解析(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantSet uint8
	}{
		{name: "缺省 utf8mb4_general_ci", cfg: Config{}, wantSet: 45},
		{name: "按名称找默认排序规则", cfg: Config{Charset: "latin1"}, wantSet: 8},
		{name: "别名也认", cfg: Config{Charset: "utf8"}, wantSet: 33},
		{name: "不认识的名称回退缺省", cfg: Config{Charset: "no-such"}, wantSet: 45},
		{name: "显式编号优先", cfg: Config{Charset: "latin1", CharacterSet: 63}, wantSet: 63},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := net.Pipe()
			defer func() {
				_ = client.Close()
				_ = server.Close()
			}()
			mc := NewConn(client, tt.cfg)
			assert.Equal(t, tt.wantSet, mc.cfg.CharacterSet)
		})
	}
}

func TestConn_readPacket_乱序(t *testing.T) {
	client, server := net.Pipe()
	defer func() {
		_ = client.Close()
		_ = server.Close()
	}()

	go func() {
		// 不能用 writeFrame：对端检测到乱序后只读头部就关闭连接，
		// 写入会报错，而此时测试可能已经结束，不能再调用 t 的断言方法
		_, _ = server.Write([]byte{0x01, 0x00, 0x00, 5, 0x00})
	}()

	mc := NewConn(client, Config{})
	_, err := mc.readPacket()
	assert.ErrorIs(t, err, errs.ErrPktSync)
}

// buildGreeting 最小可用的 HandshakeV10 payload
func buildGreeting(capabilities flags.CapabilityFlags, scramble []byte) []byte {
	p := []byte{0x0a}
	p = append(p, "8.4.0"...)
	p = append(p, 0x00)
	p = append(p, 0x07, 0x00, 0x00, 0x00)
	p = append(p, scramble[:8]...)
	p = append(p, 0x00)
	p = append(p, byte(capabilities), byte(capabilities>>8))
	p = append(p, 0xFF)
	p = append(p, 0x02, 0x00)
	p = append(p, byte(capabilities>>16), byte(capabilities>>24))
	p = append(p, 21)
	p = append(p, make([]byte, 10)...)
	p = append(p, scramble[8:]...)
	p = append(p, 0x00)
	p = append(p, "mysql_native_password"...)
	p = append(p, 0x00)
	return p
}

func serverCapabilities() flags.CapabilityFlags {
	return flags.EncodeCapability([]flags.CapabilityFlag{
		flags.ClientLongPassword,
		flags.ClientProtocol41,
		flags.ClientTransactions,
		flags.ClientSecureConnection,
		flags.ClientPluginAuth,
		flags.ClientPluginAuthLenencClientData,
		flags.ClientConnectWithDB,
		flags.ClientDeprecateEOF,
		flags.ClientSessionTrack,
	})
}

func TestConn_Handshake(t *testing.T) {
	client, server := net.Pipe()
	defer func() {
		_ = client.Close()
		_ = server.Close()
	}()

	scramble := bytes.Repeat([]byte{0x01}, 20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		writeFrame(t, server, 0, buildGreeting(serverCapabilities(), scramble))

		seq, resp := readFrame(t, server)
		assert.Equal(t, uint8(1), seq)
		// 响应里的能力集必须是双方的交集
		negotiated := flags.CapabilityFlags(
			uint32(resp[0]) | uint32(resp[1])<<8 | uint32(resp[2])<<16 | uint32(resp[3])<<24)
		assert.True(t, negotiated.Has(flags.ClientProtocol41))
		assert.True(t, negotiated.Has(flags.ClientDeprecateEOF))
		// 服务端没有的能力不会出现
		assert.False(t, negotiated.Has(flags.ClientMultiStatements))
		// username 从第 33 字节开始
		assert.Equal(t, append([]byte("root"), 0), resp[32:37])

		// OK
		writeFrame(t, server, 2, []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00})
	}()

	mc := NewConn(client, Config{User: "root", Password: "secret", Database: "test_db"})
	require.NoError(t, mc.Handshake(context.Background()))
	<-done

	assert.Equal(t, uint32(7), mc.ConnectionID())
	assert.Equal(t, "8.4.0", mc.ServerVersion())
	assert.True(t, mc.Capabilities().Has(flags.ClientConnectWithDB))
}

func TestConn_Handshake_鉴权失败(t *testing.T) {
	client, server := net.Pipe()
	defer func() {
		_ = client.Close()
		_ = server.Close()
	}()

	scramble := bytes.Repeat([]byte{0x01}, 20)
	go func() {
		writeFrame(t, server, 0, buildGreeting(serverCapabilities(), scramble))
		_, _ = readFrame(t, server)
		errPayload := []byte{0xFF, 0x15, 0x04, '#'}
		errPayload = append(errPayload, "28000"...)
		errPayload = append(errPayload, "Access denied"...)
		writeFrame(t, server, 2, errPayload)
	}()

	mc := NewConn(client, Config{User: "root", Password: "bad"})
	err := mc.Handshake(context.Background())
	assert.ErrorIs(t, err, errs.ErrAuthFailure)
}

func TestConn_Handshake_auth_switch(t *testing.T) {
	client, server := net.Pipe()
	defer func() {
		_ = client.Close()
		_ = server.Close()
	}()

	oldScramble := bytes.Repeat([]byte{0x01}, 20)
	newScramble := bytes.Repeat([]byte{0x02}, 20)
	go func() {
		writeFrame(t, server, 0, buildGreeting(serverCapabilities(), oldScramble))
		_, _ = readFrame(t, server)

		switchReq := []byte{0xFE}
		switchReq = append(switchReq, "mysql_native_password"...)
		switchReq = append(switchReq, 0x00)
		switchReq = append(switchReq, newScramble...)
		switchReq = append(switchReq, 0x00)
		writeFrame(t, server, 2, switchReq)

		seq, token := readFrame(t, server)
		assert.Equal(t, uint8(3), seq)
		// 用新 scramble 重算的 token
		assert.Equal(t, scramblePassword(newScramble, []byte("secret")), token)

		writeFrame(t, server, 4, []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00})
	}()

	mc := NewConn(client, Config{User: "root", Password: "secret"})
	require.NoError(t, mc.Handshake(context.Background()))
}

// handshaken 返回一条已经协商完的连接和对端
func handshaken(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	mc := NewConn(client, Config{User: "root"})
	mc.capabilities = flags.EncodeCapability([]flags.CapabilityFlag{
		flags.ClientProtocol41,
		flags.ClientDeprecateEOF,
	})
	return mc, server
}

func TestConn_Ping(t *testing.T) {
	mc, server := handshaken(t)
	go func() {
		seq, payload := readFrame(t, server)
		assert.Equal(t, uint8(0), seq)
		assert.Equal(t, []byte{0x0e}, payload)
		writeFrame(t, server, 1, []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00})
	}()
	assert.NoError(t, mc.Ping(context.Background()))
}

func TestConn_Query_结果集(t *testing.T) {
	mc, server := handshaken(t)
	go func() {
		_, payload := readFrame(t, server)
		assert.Equal(t, append([]byte{0x03}, "SELECT id FROM t"...), payload)

		// column_count = 1
		writeFrame(t, server, 1, []byte{0x01})
		writeFrame(t, server, 2, buildColumnDefinition("id"))
		// 两行，第二行是 NULL
		writeFrame(t, server, 3, []byte{0x01, '1'})
		writeFrame(t, server, 4, []byte{0xFB})
		// DEPRECATE_EOF 下的结束 OK
		writeFrame(t, server, 5, []byte{0xFE, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00})
	}()

	rs, err := mc.Query(context.Background(), "SELECT id FROM t")
	require.NoError(t, err)
	require.Len(t, rs.Columns, 1)
	assert.Equal(t, "id", rs.Columns[0].Name())
	assert.Equal(t, [][][]byte{{[]byte("1")}, {nil}}, rs.Rows)
}

func TestConn_Query_更新语句(t *testing.T) {
	mc, server := handshaken(t)
	go func() {
		_, _ = readFrame(t, server)
		// OK：affected_rows=3 last_insert_id=7
		writeFrame(t, server, 1, []byte{0x00, 0x03, 0x07, 0x02, 0x00, 0x00, 0x00})
	}()

	rs, err := mc.Query(context.Background(), "DELETE FROM t")
	require.NoError(t, err)
	assert.Empty(t, rs.Columns)
	assert.Equal(t, uint64(3), rs.AffectedRows)
	assert.Equal(t, uint64(7), rs.LastInsertID)
}

func TestConn_Query_服务端报错(t *testing.T) {
	mc, server := handshaken(t)
	go func() {
		_, _ = readFrame(t, server)
		errPayload := []byte{0xFF, 0x48, 0x04, '#'}
		errPayload = append(errPayload, "HY000"...)
		errPayload = append(errPayload, "No tables used"...)
		writeFrame(t, server, 1, errPayload)
	}()

	_, err := mc.Query(context.Background(), "SELECT")
	assert.ErrorIs(t, err, errs.ErrServerError)
	assert.Contains(t, err.Error(), "No tables used")
}

func TestConn_PrepareExecute(t *testing.T) {
	mc, server := handshaken(t)
	go func() {
		// COM_STMT_PREPARE
		_, payload := readFrame(t, server)
		assert.Equal(t, byte(0x16), payload[0])
		prepareOK := []byte{
			0x00,
			0x09, 0x00, 0x00, 0x00, // statement_id = 9
			0x01, 0x00, // num_columns
			0x01, 0x00, // num_params
			0x00,
			0x00, 0x00,
		}
		writeFrame(t, server, 1, prepareOK)
		// 参数定义和列定义各一个
		writeFrame(t, server, 2, buildColumnDefinition("?"))
		writeFrame(t, server, 3, buildColumnDefinition("id"))

		// COM_STMT_EXECUTE
		_, payload = readFrame(t, server)
		assert.Equal(t, byte(0x17), payload[0])
		assert.Equal(t, []byte{0x09, 0x00, 0x00, 0x00}, payload[1:5])

		writeFrame(t, server, 1, []byte{0x01})
		writeFrame(t, server, 2, buildColumnDefinition("id"))
		// 二进制行：header 0x00 + 位图 + int32
		writeFrame(t, server, 3, []byte{0x00, 0x00, 0x05, 0x00, 0x00, 0x00})
		writeFrame(t, server, 4, []byte{0xFE, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00})

		// COM_STMT_CLOSE，不回包
		_, payload = readFrame(t, server)
		assert.Equal(t, byte(0x19), payload[0])
	}()

	ctx := context.Background()
	prepared, err := mc.Prepare(ctx, "SELECT id FROM t WHERE id = ?")
	require.NoError(t, err)
	assert.Equal(t, uint32(9), prepared.StatementID)
	assert.Equal(t, uint16(1), prepared.NumParams)

	rs, err := mc.Execute(ctx, prepared.StatementID, []packet.Parameter{packet.Int32Parameter(5)})
	require.NoError(t, err)
	assert.Equal(t, [][][]byte{{[]byte("5")}}, rs.Rows)

	require.NoError(t, mc.StmtClose(ctx, prepared.StatementID))
}

func TestConn_命令超时(t *testing.T) {
	mc, server := handshaken(t)
	mc.cfg.ReadTimeout = 50 * time.Millisecond
	go func() {
		// 读走请求但是不应答
		_, _ = readFrame(t, server)
	}()
	err := mc.Ping(context.Background())
	assert.ErrorIs(t, err, errs.ErrInvalidConn)
}

// buildColumnDefinition 类型固定是 MYSQL_TYPE_LONG
func buildColumnDefinition(name string) []byte {
	var p []byte
	for _, s := range []string{"def", "test_db", "t", "t", name, name} {
		p = append(p, byte(len(s)))
		p = append(p, s...)
	}
	p = append(p, 0x0c)
	p = append(p, 45, 0)
	p = append(p, 11, 0, 0, 0)
	p = append(p, byte(packet.MySQLTypeLong))
	p = append(p, 0, 0)
	p = append(p, 0)
	p = append(p, 0, 0)
	return p
}
