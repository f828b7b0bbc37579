package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityFlags_Decode(t *testing.T) {
	tests := []struct {
		name string
		raw  CapabilityFlags
		want []CapabilityFlag
	}{
		{
			name: "空集合",
			raw:  0,
			want: []CapabilityFlag{},
		},
		{
			name: "典型的客户端能力集",
			raw: CapabilityFlags(ClientProtocol41 | ClientPluginAuth | ClientDeprecateEOF),
			want: []CapabilityFlag{
				ClientProtocol41, ClientPluginAuth, ClientDeprecateEOF,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.Decode())
		})
	}
}

// 解码再编码，对已知位必须是恒等变换
func TestCapabilityFlags_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  []CapabilityFlag
	}{
		{name: "单个标记", set: []CapabilityFlag{ClientSSL}},
		{
			name: "协商常用组合",
			set: []CapabilityFlag{
				ClientLongPassword, ClientProtocol41, ClientTransactions,
				ClientMultiStatements, ClientMultiResults, ClientPluginAuth,
				ClientConnectAttrs, ClientSessionTrack, ClientDeprecateEOF,
				ClientQueryAttributes,
			},
		},
		{name: "全部已知标记", set: knownCapabilityFlags},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := EncodeCapability(tt.set)
			assert.Equal(t, tt.set, raw.Decode())
		})
	}
}

// Decode 不允许出现 raw 里没有的位，也不允许漏掉 raw 里的已知位
func TestCapabilityFlags_DecodeOnlySetBits(t *testing.T) {
	raws := []CapabilityFlags{0, 1, 0xFFFF, 0xDFFF_FFFF, 0xFFFF_FFFF}
	for _, raw := range raws {
		for _, f := range raw.Decode() {
			assert.True(t, raw.Has(f))
		}
		for _, f := range knownCapabilityFlags {
			if raw.Has(f) {
				assert.Contains(t, raw.Decode(), f)
			}
		}
	}
}

func TestCapabilityFlags_Intersect(t *testing.T) {
	client := EncodeCapability([]CapabilityFlag{ClientProtocol41, ClientSSL, ClientDeprecateEOF})
	server := EncodeCapability([]CapabilityFlag{ClientProtocol41, ClientDeprecateEOF, ClientCompress})
	got := client.Intersect(server)
	assert.True(t, got.Has(ClientProtocol41))
	assert.True(t, got.Has(ClientDeprecateEOF))
	assert.False(t, got.Has(ClientSSL))
	assert.False(t, got.Has(ClientCompress))
}

func TestServerStatus_Decode(t *testing.T) {
	tests := []struct {
		name string
		raw  ServerStatus
		want []ServerStatusFlag
	}{
		{
			name: "自动提交",
			raw:  ServerStatus(ServerStatusAutoCommit),
			want: []ServerStatusFlag{ServerStatusAutoCommit},
		},
		{
			name: "事务中且还有结果集",
			raw:  ServerStatus(ServerStatusInTrans | ServerMoreResultsExists),
			want: []ServerStatusFlag{ServerStatusInTrans, ServerMoreResultsExists},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.Decode())
			assert.Equal(t, tt.raw, EncodeServerStatus(tt.raw.Decode()))
		})
	}
}

// 列标志域里存在没有布尔含义的位（两个 2 位子字段和保留位）
// 这些位经过 Decode 再 Encode 会被丢弃，但原始整数本身不会被修改
func TestColumnFlags_UnknownBitsDropped(t *testing.T) {
	raw := ColumnFlags(NotNullFlag|AutoIncrementFlag) | 1<<fieldStorageMediaShift | 1<<28
	assert.Equal(t,
		ColumnFlags(NotNullFlag|AutoIncrementFlag),
		EncodeColumn(raw.Decode()))
	// raw 没有被动过
	assert.Equal(t, uint8(1), raw.StorageMedia())
}

func TestColumnFlags_SubFields(t *testing.T) {
	tests := []struct {
		name             string
		raw              ColumnFlags
		wantStorageMedia uint8
		wantColumnFormat uint8
	}{
		{name: "全零", raw: 0},
		{
			name:             "子字段取值不影响布尔标记",
			raw:              ColumnFlags(NotNullFlag) | 2<<fieldStorageMediaShift | 3<<fieldColumnFormatShift,
			wantStorageMedia: 2,
			wantColumnFormat: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStorageMedia, tt.raw.StorageMedia())
			assert.Equal(t, tt.wantColumnFormat, tt.raw.ColumnFormat())
			// 子字段的位不会被当成布尔标记解码出来
			for _, f := range tt.raw.Decode() {
				assert.NotZero(t, uint32(f)&^uint32(fieldStorageMediaMask|fieldColumnFormatMask))
			}
		})
	}
}
