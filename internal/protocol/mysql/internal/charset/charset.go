package charset

// 字符集与排序规则的静态表
// 表在进程启动时构建一次，之后只读，所以可以在所有连接之间无锁共享
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_character_set.html

// Charset 一个字符集的描述
type Charset struct {
	// Name 规范名称，例如 utf8mb4
	Name string
	// DefaultCollation 该字符集默认排序规则的编号
	DefaultCollation uint16
	// Mblen 单个字符最多占用的字节数，1/2/3/4
	Mblen int
	// IsDefault 是否是服务端的默认字符集
	IsDefault bool
	// MinVersion 最低支持的服务端版本，空串表示一直都有
	MinVersion string
	// Aliases 已知别名，例如 utf8 是 utf8mb3 的别名
	Aliases []string
}

// Collation 一个排序规则
// 编号同时标识了字符集和比较规则，握手和列元数据里传的都是这个编号
type Collation struct {
	// ID 编号，目前观测到的取值范围是 1-323，稀疏
	ID uint16
	// Name 名称，例如 utf8mb4_general_ci
	Name string
	// Charset 所属字符集的规范名称
	Charset string
	// IsDefault 是否是所属字符集的默认排序规则
	IsDefault bool
}

var (
	// collationByID 按编号索引，O(1) 查找
	collationByID = make(map[uint16]Collation, len(collations))
	// charsetByName 规范名和别名都会进来
	charsetByName = make(map[string]Charset, len(charsets))
)

func init() {
	for _, c := range collations {
		collationByID[c.ID] = c
	}
	for _, cs := range charsets {
		charsetByName[cs.Name] = cs
		for _, alias := range cs.Aliases {
			charsetByName[alias] = cs
		}
	}
}

// CharsetForCollation 根据排序规则编号找到所属字符集
// 编号不认识时第二个返回值是 false，永远不会 panic
func CharsetForCollation(id uint16) (Charset, bool) {
	c, ok := collationByID[id]
	if !ok {
		return Charset{}, false
	}
	cs, ok := charsetByName[c.Charset]
	return cs, ok
}

// CollationForID 按编号查排序规则
func CollationForID(id uint16) (Collation, bool) {
	c, ok := collationByID[id]
	return c, ok
}

// MblenFor 字符集单字符最大字节数
// 不认识的字符集返回 0，调用方按防御性的方式去分配缓冲
func MblenFor(name string) int {
	cs, ok := charsetByName[name]
	if !ok {
		return 0
	}
	return cs.Mblen
}

// DefaultCollationFor 字符集默认排序规则的编号，不认识返回 0
func DefaultCollationFor(name string) uint16 {
	cs, ok := charsetByName[name]
	if !ok {
		return 0
	}
	return cs.DefaultCollation
}
