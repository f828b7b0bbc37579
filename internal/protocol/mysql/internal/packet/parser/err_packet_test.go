package parser

import (
	"testing"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestERRPacket_Parse(t *testing.T) {
	t.Run("带 SQL state", func(t *testing.T) {
		payload := []byte{0xFF, 0x48, 0x04} // 1096
		payload = append(payload, '#')
		payload = append(payload, "HY000"...)
		payload = append(payload, "No tables used"...)

		e := NewERRPacket(flags.CapabilityFlags(flags.ClientProtocol41))
		require.NoError(t, e.Parse(payload))
		assert.Equal(t, uint16(1096), e.ErrorCode())
		assert.Equal(t, "HY000", e.SQLState())
		assert.Equal(t, "No tables used", e.ErrorMessage())
		assert.ErrorIs(t, e.ToError(), errs.ErrServerError)
	})

	t.Run("没有 PROTOCOL_41 就没有 SQL state", func(t *testing.T) {
		payload := []byte{0xFF, 0x48, 0x04}
		payload = append(payload, "No tables used"...)

		e := NewERRPacket(0)
		require.NoError(t, e.Parse(payload))
		assert.Equal(t, uint16(1096), e.ErrorCode())
		assert.Empty(t, e.SQLState())
		assert.Equal(t, "No tables used", e.ErrorMessage())
	})

	t.Run("头字节不是 0xFF", func(t *testing.T) {
		e := NewERRPacket(0)
		assert.ErrorIs(t, e.Parse([]byte{0x00}), errs.ErrMalformedPacket)
	})
}

func TestEOFPacket_Parse(t *testing.T) {
	t.Run("PROTOCOL_41 带警告数和状态", func(t *testing.T) {
		e := NewEOFPacket(flags.CapabilityFlags(flags.ClientProtocol41))
		require.NoError(t, e.Parse([]byte{0xFE, 0x01, 0x00, 0x02, 0x00}))
		assert.Equal(t, uint16(1), e.Warnings())
		assert.True(t, e.StatusFlags().Has(flags.ServerStatusAutoCommit))
	})

	t.Run("头字节不是 0xFE", func(t *testing.T) {
		e := NewEOFPacket(0)
		assert.ErrorIs(t, e.Parse([]byte{0x00}), errs.ErrMalformedPacket)
	})
}
