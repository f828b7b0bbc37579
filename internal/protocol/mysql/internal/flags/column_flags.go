package flags

// ColumnFlags 列定义包里的标志位
// https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__column__definition__flags.html
type ColumnFlags uint32

func (flags ColumnFlags) Has(flag ColumnFlag) bool {
	return Has(uint32(flags), uint32(flag))
}

func (flags ColumnFlags) Union(flag ColumnFlag) ColumnFlags {
	return ColumnFlags(Union(uint32(flags), uint32(flag)))
}

func (flags ColumnFlags) Decode() []ColumnFlag {
	return Decode(ColumnFlag(flags), knownColumnFlags)
}

func EncodeColumn(set []ColumnFlag) ColumnFlags {
	return ColumnFlags(Encode(set))
}

// StorageMedia 位 22-23 不是布尔标记，而是一个 2 位的小整数字段
// 具体取值的含义跟服务端版本相关，这里只做掩码提取，不猜测语义
func (flags ColumnFlags) StorageMedia() uint8 {
	return uint8((flags & fieldStorageMediaMask) >> fieldStorageMediaShift)
}

// ColumnFormat 位 24-25，同 StorageMedia 一样按 2 位整数字段处理
func (flags ColumnFlags) ColumnFormat() uint8 {
	return uint8((flags & fieldColumnFormatMask) >> fieldColumnFormatShift)
}

// ColumnFlag 单个列标志位
type ColumnFlag uint32

const (
	NotNullFlag       ColumnFlag = 1 << 0
	PriKeyFlag        ColumnFlag = 1 << 1
	UniqueKeyFlag     ColumnFlag = 1 << 2
	MultipleKeyFlag   ColumnFlag = 1 << 3
	BlobFlag          ColumnFlag = 1 << 4
	UnsignedFlag      ColumnFlag = 1 << 5
	ZerofillFlag      ColumnFlag = 1 << 6
	BinaryFlag        ColumnFlag = 1 << 7
	EnumFlag          ColumnFlag = 1 << 8
	AutoIncrementFlag ColumnFlag = 1 << 9
	TimestampFlag     ColumnFlag = 1 << 10
	SetFlag           ColumnFlag = 1 << 11
	NoDefaultValue    ColumnFlag = 1 << 12
	OnUpdateNowFlag   ColumnFlag = 1 << 13
	PartKeyFlag       ColumnFlag = 1 << 14
	NumFlag           ColumnFlag = 1 << 15
	UniqueFlag        ColumnFlag = 1 << 16
	BinCmpFlag        ColumnFlag = 1 << 17
	GetFixedFields    ColumnFlag = 1 << 18
	FieldInPartFunc   ColumnFlag = 1 << 19
	FieldInAddIndex   ColumnFlag = 1 << 20
	FieldIsRenamed    ColumnFlag = 1 << 21
	FieldIsDropped    ColumnFlag = 1 << 26
	ExplicitNullFlag  ColumnFlag = 1 << 27
	NotSecondaryFlag  ColumnFlag = 1 << 29
	FieldIsInvisible  ColumnFlag = 1 << 30
)

// 两个 2 位子字段的掩码，不在 knownColumnFlags 里
const (
	fieldStorageMediaShift            = 22
	fieldStorageMediaMask  ColumnFlags = 3 << fieldStorageMediaShift
	fieldColumnFormatShift            = 24
	fieldColumnFormatMask  ColumnFlags = 3 << fieldColumnFormatShift
)

var knownColumnFlags = []ColumnFlag{
	NotNullFlag,
	PriKeyFlag,
	UniqueKeyFlag,
	MultipleKeyFlag,
	BlobFlag,
	UnsignedFlag,
	ZerofillFlag,
	BinaryFlag,
	EnumFlag,
	AutoIncrementFlag,
	TimestampFlag,
	SetFlag,
	NoDefaultValue,
	OnUpdateNowFlag,
	PartKeyFlag,
	NumFlag,
	UniqueFlag,
	BinCmpFlag,
	GetFixedFields,
	FieldInPartFunc,
	FieldInAddIndex,
	FieldIsRenamed,
	FieldIsDropped,
	ExplicitNullFlag,
	NotSecondaryFlag,
	FieldIsInvisible,
}
