package parser

import (
	"testing"

	"github.com/meoying/mysqlclient/internal/errs"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/flags"
	"github.com/meoying/mysqlclient/internal/protocol/mysql/internal/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKPacket_Parse(t *testing.T) {
	protocol41 := flags.CapabilityFlags(flags.ClientProtocol41)

	tests := []struct {
		name             string
		capabilities     flags.CapabilityFlags
		payload          []byte
		wantAffectedRows uint64
		wantLastInsertID uint64
		wantStatus       flags.ServerStatus
		wantWarnings     uint16
		wantInfo         string
	}{
		{
			name:         "普通 OK",
			capabilities: protocol41,
			payload: []byte{
				0x00,       // header
				0x01,       // affected_rows
				0x02,       // last_insert_id
				0x02, 0x00, // status_flags
				0x00, 0x00, // warnings
			},
			wantAffectedRows: 1,
			wantLastInsertID: 2,
			wantStatus:       flags.ServerStatus(flags.ServerStatusAutoCommit),
		},
		{
			name:         "DEPRECATE_EOF 下 0xFE 开头也是 OK",
			capabilities: protocol41.Union(flags.ClientDeprecateEOF),
			payload: []byte{
				0xFE,
				0x00,
				0x00,
				0x02, 0x00,
				0x01, 0x00,
			},
			wantStatus:   flags.ServerStatus(flags.ServerStatusAutoCommit),
			wantWarnings: 1,
		},
		{
			name:         "affected_rows 用多字节 lenenc",
			capabilities: protocol41,
			payload: []byte{
				0x00,
				0xFC, 0x10, 0x27, // 10000
				0x00,
				0x02, 0x00,
				0x00, 0x00,
			},
			wantAffectedRows: 10000,
			wantStatus:       flags.ServerStatus(flags.ServerStatusAutoCommit),
		},
		{
			name:         "带 info 的 OK",
			capabilities: protocol41,
			payload: append([]byte{
				0x00, 0x03, 0x00, 0x02, 0x00, 0x00, 0x00,
			}, "Rows matched: 3"...),
			wantAffectedRows: 3,
			wantStatus:       flags.ServerStatus(flags.ServerStatusAutoCommit),
			wantInfo:         "Rows matched: 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := NewOKPacket(tt.capabilities)
			require.NoError(t, ok.Parse(tt.payload))
			assert.Equal(t, tt.wantAffectedRows, ok.AffectedRows())
			assert.Equal(t, tt.wantLastInsertID, ok.LastInsertID())
			assert.Equal(t, tt.wantStatus, ok.StatusFlags())
			assert.Equal(t, tt.wantWarnings, ok.Warnings())
			assert.Equal(t, tt.wantInfo, ok.Info())
		})
	}
}

func TestOKPacket_Parse_会话状态原样保留(t *testing.T) {
	capabilities := flags.CapabilityFlags(flags.ClientProtocol41).
		Union(flags.ClientSessionTrack)

	stateInfo := []byte{0x00, 0x0f}
	payload := []byte{
		0x00,
		0x00,
		0x00,
		0x00, 0x40, // SERVER_SESSION_STATE_CHANGED
		0x00, 0x00,
		0x00, // info 空串
	}
	payload = append(payload, byte(len(stateInfo)))
	payload = append(payload, stateInfo...)

	ok := NewOKPacket(capabilities)
	require.NoError(t, ok.Parse(payload))
	assert.True(t, ok.StatusFlags().Has(flags.ServerSessionStateChanged))
	assert.Equal(t, stateInfo, ok.SessionStateInfo())
}

func TestOKPacket_SessionStateChanges(t *testing.T) {
	capabilities := flags.CapabilityFlags(flags.ClientProtocol41).
		Union(flags.ClientSessionTrack)

	// 两条变更：当前库切到 test，系统变量 autocommit=ON
	var stateInfo []byte
	stateInfo = append(stateInfo, byte(packet.SessionTrackSchema))
	stateInfo = append(stateInfo, 0x05, 0x04, 't', 'e', 's', 't')
	sysVar := []byte{0x0a, 'a', 'u', 't', 'o', 'c', 'o', 'm', 'm', 'i', 't'}
	stateInfo = append(stateInfo, byte(packet.SessionTrackSystemVariables))
	stateInfo = append(stateInfo, byte(len(sysVar)))
	stateInfo = append(stateInfo, sysVar...)

	payload := []byte{
		0x00,
		0x00,
		0x00,
		0x00, 0x40,
		0x00, 0x00,
		0x00,
	}
	payload = append(payload, byte(len(stateInfo)))
	payload = append(payload, stateInfo...)

	ok := NewOKPacket(capabilities)
	require.NoError(t, ok.Parse(payload))

	changes, err := ok.SessionStateChanges()
	require.NoError(t, err)
	assert.Equal(t, []SessionStateChange{
		{Type: packet.SessionTrackSchema, Data: []byte{0x04, 't', 'e', 's', 't'}},
		{Type: packet.SessionTrackSystemVariables, Data: sysVar},
	}, changes)
}

func TestOKPacket_Parse_非法头字节(t *testing.T) {
	ok := NewOKPacket(flags.CapabilityFlags(flags.ClientProtocol41))
	assert.ErrorIs(t, ok.Parse([]byte{0x01}), errs.ErrMalformedPacket)
}
