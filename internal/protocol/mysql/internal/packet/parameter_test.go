package packet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateTimeParameter(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want []byte
	}{
		{
			name: "全零只有零长度标记",
			time: time.Time{},
			want: []byte{0},
		},
		{
			name: "只有日期部分",
			time: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
			// 2023 = 0x07E7
			want: []byte{4, 0xE7, 0x07, 2, 10},
		},
		{
			name: "日期加时间，没有微秒",
			time: time.Date(2023, 2, 10, 10, 0, 0, 0, time.UTC),
			want: []byte{7, 0xE7, 0x07, 2, 10, 10, 0, 0},
		},
		{
			name: "带微秒",
			time: time.Date(2023, 2, 10, 10, 0, 0, 123456000, time.UTC),
			// 123456 = 0x0001E240
			want: []byte{11, 0xE7, 0x07, 2, 10, 10, 0, 0, 0x40, 0xE2, 0x01, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DateTimeParameter(tt.time)
			assert.Equal(t, tt.want, p.AppendValue(nil))
			assert.Equal(t, MySQLTypeDatetime, p.Type)
		})
	}
}

func TestTimestampParameter(t *testing.T) {
	p := TimestampParameter(time.Date(2023, 2, 10, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, MySQLTypeTimestamp, p.Type)
	assert.Equal(t, []byte{7, 0xE7, 0x07, 2, 10, 10, 0, 0}, p.AppendValue(nil))
}

func TestDateParameter(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want []byte
	}{
		{name: "全零", time: time.Time{}, want: []byte{0}},
		{
			name: "正常日期",
			time: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
			want: []byte{4, 0xE7, 0x07, 2, 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateParameter(tt.time).AppendValue(nil))
		})
	}
}

func TestTimeParameter(t *testing.T) {
	tests := []struct {
		name                         string
		hour, minute, second, micro int
		want                         []byte
	}{
		{
			name: "全零",
			want: []byte{0},
		},
		{
			name: "没有微秒是 8 字节",
			hour: 10, minute: 30, second: 15,
			want: []byte{8, 0, 0, 0, 0, 0, 10, 30, 15},
		},
		{
			name: "带微秒是 12 字节",
			hour: 10, minute: 30, second: 15, micro: 123456,
			want: []byte{12, 0, 0, 0, 0, 0, 10, 30, 15, 0x40, 0xE2, 0x01, 0x00},
		},
		{
			name: "只有微秒非零也要走 12 字节",
			micro: 1,
			want:  []byte{12, 0, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x00, 0x00, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := TimeParameter(tt.hour, tt.minute, tt.second, tt.micro)
			assert.Equal(t, tt.want, p.AppendValue(nil))
		})
	}
}

func TestNumericParameters(t *testing.T) {
	tests := []struct {
		name     string
		param    Parameter
		wantType MySQLType
		wantVal  []byte
	}{
		{name: "int8", param: Int8Parameter(-1), wantType: MySQLTypeTiny, wantVal: []byte{0xFF}},
		{name: "int16", param: Int16Parameter(258), wantType: MySQLTypeShort, wantVal: []byte{0x02, 0x01}},
		{name: "int32", param: Int32Parameter(1), wantType: MySQLTypeLong, wantVal: []byte{1, 0, 0, 0}},
		{
			name: "int64", param: Int64Parameter(-2), wantType: MySQLTypeLongLong,
			wantVal: []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "uint64 设置无符号标记", param: Uint64Parameter(1), wantType: MySQLTypeLongLong,
			wantVal: []byte{1, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "float64", param: Float64Parameter(1.0), wantType: MySQLTypeDouble,
			wantVal: []byte{0, 0, 0, 0, 0, 0, 0xF0, 0x3F},
		},
		{name: "bool", param: BoolParameter(true), wantType: MySQLTypeTiny, wantVal: []byte{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.param.Type)
			assert.Equal(t, tt.wantVal, tt.param.AppendValue(nil))
		})
	}
}

func TestStringAndNullParameters(t *testing.T) {
	s := StringParameter("abc")
	assert.Equal(t, []byte{3, 'a', 'b', 'c'}, s.AppendValue(nil))
	assert.Equal(t, "'abc'", s.Literal)

	n := NullParameter()
	assert.True(t, n.IsNull())
	// NULL 参数不贡献任何 value 字节
	assert.Len(t, n.AppendValue(nil), 0)

	u := Uint64Parameter(1)
	assert.Equal(t, [2]byte{byte(MySQLTypeLongLong), 0x80}, u.TypeBytes())
	assert.Equal(t, [2]byte{byte(MySQLTypeLongLong), 0x00}, Int64Parameter(1).TypeBytes())
}
