//go:build e2e

package mysql

import (
	"context"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/meoying/mysqlclient/internal/pool"
)

// 测试前先启动本地 MySQL
// docker run -e MYSQL_ROOT_PASSWORD=root -p 13306:3306 mysql:8.4
type ClientE2ETestSuite struct {
	suite.Suite
	client *Client
}

func TestClientE2E(t *testing.T) {
	suite.Run(t, new(ClientE2ETestSuite))
}

func (s *ClientE2ETestSuite) SetupSuite() {
	c, err := NewClient(pool.Config{
		Host:           "127.0.0.1",
		Port:           13306,
		User:           "root",
		Password:       "root",
		MaxConnections: 4,
	})
	require.NoError(s.T(), err)
	s.client = c

	ctx := context.Background()
	_, err = c.Query(ctx, "CREATE DATABASE IF NOT EXISTS client_e2e")
	require.NoError(s.T(), err)
	_, err = c.Query(ctx, "CREATE TABLE IF NOT EXISTS client_e2e.order_tab("+
		"id BIGINT PRIMARY KEY, buyer VARCHAR(128), amount DOUBLE)")
	require.NoError(s.T(), err)
}

func (s *ClientE2ETestSuite) TearDownSuite() {
	if s.client == nil {
		return
	}
	_, _ = s.client.Query(context.Background(), "DROP DATABASE IF EXISTS client_e2e")
	_ = s.client.Close()
}

func (s *ClientE2ETestSuite) TearDownTest() {
	_, err := s.client.Query(context.Background(), "TRUNCATE TABLE client_e2e.order_tab")
	require.NoError(s.T(), err)
}

func (s *ClientE2ETestSuite) TestPing() {
	require.NoError(s.T(), s.client.Ping(context.Background()))
}

func (s *ClientE2ETestSuite) TestQuery() {
	t := s.T()
	ctx := context.Background()

	res, err := s.client.Query(ctx,
		"INSERT INTO client_e2e.order_tab(id, buyer, amount) VALUES (1, 'tom', 12.5), (2, 'jerry', 3)")
	require.NoError(t, err)
	assert.Equal(t, res.AffectedRows, uint64(2))

	res, err = s.client.Query(ctx,
		"SELECT id, buyer FROM client_e2e.order_tab ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, res.Columns, []string{"id", "buyer"})
	assert.Equal(t, res.Rows, [][][]byte{
		{[]byte("1"), []byte("tom")},
		{[]byte("2"), []byte("jerry")},
	})
}

func (s *ClientE2ETestSuite) TestExecute() {
	t := s.T()
	ctx := context.Background()

	res, err := s.client.Execute(ctx,
		"INSERT INTO client_e2e.order_tab(id, buyer, amount) VALUES (?, ?, ?)",
		int64(7), "lucy", 99.5)
	require.NoError(t, err)
	assert.Equal(t, res.AffectedRows, uint64(1))

	res, err = s.client.Execute(ctx,
		"SELECT buyer, amount FROM client_e2e.order_tab WHERE id = ?", int64(7))
	require.NoError(t, err)
	assert.Equal(t, res.Rows, [][][]byte{{[]byte("lucy"), []byte("99.5")}})
}

func (s *ClientE2ETestSuite) TestServerError() {
	_, err := s.client.Query(context.Background(), "SELECT * FROM client_e2e.no_such_tab")
	require.Error(s.T(), err)
	// 报错之后连接还能继续用
	require.NoError(s.T(), s.client.Ping(context.Background()))
}
