package flags

// unsigned 三个标志位域共用的底层整数约束
// Capability 和 ColumnDefinition 用 32 位，ServerStatus 用 16 位
type unsigned interface {
	~uint16 | ~uint32 | ~uint64
}

// Has 判断 raw 中是否设置了 flag 对应的位
func Has[T unsigned](raw, flag T) bool {
	return raw&flag != 0
}

// Union 返回设置了 flag 之后的值，raw 本身不会被修改
func Union[T unsigned](raw, flag T) T {
	return raw | flag
}

// Decode 把 raw 拆成已知标志位的集合
// 未知位会被忽略，也就是说 Encode(Decode(raw)) == raw & 已知位掩码
func Decode[T unsigned](raw T, known []T) []T {
	res := make([]T, 0, len(known))
	for _, f := range known {
		if raw&f != 0 {
			res = append(res, f)
		}
	}
	return res
}

// Encode 把标志位集合编码回整数，等价于逐个按位或
func Encode[T unsigned](set []T) T {
	var raw T
	for _, f := range set {
		raw |= f
	}
	return raw
}
