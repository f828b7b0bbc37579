package charset

// 数据来源是 information_schema.character_sets 和 collations
// 只收录了常见字符集，编号空洞是 MySQL 本身就有的

var charsets = []Charset{
	{Name: "big5", DefaultCollation: 1, Mblen: 2},
	{Name: "dec8", DefaultCollation: 3, Mblen: 1},
	{Name: "cp850", DefaultCollation: 4, Mblen: 1},
	{Name: "hp8", DefaultCollation: 6, Mblen: 1},
	{Name: "koi8r", DefaultCollation: 7, Mblen: 1},
	{Name: "latin1", DefaultCollation: 8, Mblen: 1},
	{Name: "latin2", DefaultCollation: 9, Mblen: 1},
	{Name: "swe7", DefaultCollation: 10, Mblen: 1},
	{Name: "ascii", DefaultCollation: 11, Mblen: 1},
	{Name: "ujis", DefaultCollation: 12, Mblen: 3},
	{Name: "sjis", DefaultCollation: 13, Mblen: 2},
	{Name: "hebrew", DefaultCollation: 16, Mblen: 1},
	{Name: "tis620", DefaultCollation: 18, Mblen: 1},
	{Name: "euckr", DefaultCollation: 19, Mblen: 2},
	{Name: "koi8u", DefaultCollation: 22, Mblen: 1},
	{Name: "gb2312", DefaultCollation: 24, Mblen: 2},
	{Name: "greek", DefaultCollation: 25, Mblen: 1},
	{Name: "cp1250", DefaultCollation: 26, Mblen: 1},
	{Name: "gbk", DefaultCollation: 28, Mblen: 2},
	{Name: "latin5", DefaultCollation: 30, Mblen: 1},
	{Name: "armscii8", DefaultCollation: 32, Mblen: 1},
	{Name: "utf8mb3", DefaultCollation: 33, Mblen: 3, Aliases: []string{"utf8"}},
	{Name: "ucs2", DefaultCollation: 35, Mblen: 2},
	{Name: "cp866", DefaultCollation: 36, Mblen: 1},
	{Name: "keybcs2", DefaultCollation: 37, Mblen: 1},
	{Name: "macce", DefaultCollation: 38, Mblen: 1},
	{Name: "macroman", DefaultCollation: 39, Mblen: 1},
	{Name: "cp852", DefaultCollation: 40, Mblen: 1},
	{Name: "latin7", DefaultCollation: 41, Mblen: 1},
	{Name: "cp1251", DefaultCollation: 51, Mblen: 1},
	{Name: "utf16", DefaultCollation: 54, Mblen: 4},
	{Name: "utf16le", DefaultCollation: 56, Mblen: 4},
	{Name: "cp1256", DefaultCollation: 57, Mblen: 1},
	{Name: "cp1257", DefaultCollation: 59, Mblen: 1},
	{Name: "utf32", DefaultCollation: 60, Mblen: 4},
	{Name: "binary", DefaultCollation: 63, Mblen: 1},
	{Name: "geostd8", DefaultCollation: 92, Mblen: 1},
	{Name: "cp932", DefaultCollation: 95, Mblen: 2},
	{Name: "eucjpms", DefaultCollation: 97, Mblen: 3},
	{Name: "gb18030", DefaultCollation: 248, Mblen: 4, MinVersion: "5.7.4"},
	// 8.0 之后服务端默认是 utf8mb4/utf8mb4_0900_ai_ci
	{Name: "utf8mb4", DefaultCollation: 255, Mblen: 4, IsDefault: true},
}

var collations = []Collation{
	{ID: 1, Name: "big5_chinese_ci", Charset: "big5", IsDefault: true},
	{ID: 2, Name: "latin2_czech_cs", Charset: "latin2"},
	{ID: 3, Name: "dec8_swedish_ci", Charset: "dec8", IsDefault: true},
	{ID: 4, Name: "cp850_general_ci", Charset: "cp850", IsDefault: true},
	{ID: 5, Name: "latin1_german1_ci", Charset: "latin1"},
	{ID: 6, Name: "hp8_english_ci", Charset: "hp8", IsDefault: true},
	{ID: 7, Name: "koi8r_general_ci", Charset: "koi8r", IsDefault: true},
	{ID: 8, Name: "latin1_swedish_ci", Charset: "latin1", IsDefault: true},
	{ID: 9, Name: "latin2_general_ci", Charset: "latin2", IsDefault: true},
	{ID: 10, Name: "swe7_swedish_ci", Charset: "swe7", IsDefault: true},
	{ID: 11, Name: "ascii_general_ci", Charset: "ascii", IsDefault: true},
	{ID: 12, Name: "ujis_japanese_ci", Charset: "ujis", IsDefault: true},
	{ID: 13, Name: "sjis_japanese_ci", Charset: "sjis", IsDefault: true},
	{ID: 16, Name: "hebrew_general_ci", Charset: "hebrew", IsDefault: true},
	{ID: 18, Name: "tis620_thai_ci", Charset: "tis620", IsDefault: true},
	{ID: 19, Name: "euckr_korean_ci", Charset: "euckr", IsDefault: true},
	{ID: 22, Name: "koi8u_general_ci", Charset: "koi8u", IsDefault: true},
	{ID: 24, Name: "gb2312_chinese_ci", Charset: "gb2312", IsDefault: true},
	{ID: 25, Name: "greek_general_ci", Charset: "greek", IsDefault: true},
	{ID: 26, Name: "cp1250_general_ci", Charset: "cp1250", IsDefault: true},
	{ID: 28, Name: "gbk_chinese_ci", Charset: "gbk", IsDefault: true},
	{ID: 30, Name: "latin5_turkish_ci", Charset: "latin5", IsDefault: true},
	{ID: 32, Name: "armscii8_general_ci", Charset: "armscii8", IsDefault: true},
	{ID: 33, Name: "utf8mb3_general_ci", Charset: "utf8mb3", IsDefault: true},
	{ID: 35, Name: "ucs2_general_ci", Charset: "ucs2", IsDefault: true},
	{ID: 36, Name: "cp866_general_ci", Charset: "cp866", IsDefault: true},
	{ID: 37, Name: "keybcs2_general_ci", Charset: "keybcs2", IsDefault: true},
	{ID: 38, Name: "macce_general_ci", Charset: "macce", IsDefault: true},
	{ID: 39, Name: "macroman_general_ci", Charset: "macroman", IsDefault: true},
	{ID: 40, Name: "cp852_general_ci", Charset: "cp852", IsDefault: true},
	{ID: 41, Name: "latin7_general_ci", Charset: "latin7", IsDefault: true},
	{ID: 45, Name: "utf8mb4_general_ci", Charset: "utf8mb4"},
	{ID: 46, Name: "utf8mb4_bin", Charset: "utf8mb4"},
	{ID: 47, Name: "latin1_bin", Charset: "latin1"},
	{ID: 51, Name: "cp1251_general_ci", Charset: "cp1251", IsDefault: true},
	{ID: 54, Name: "utf16_general_ci", Charset: "utf16", IsDefault: true},
	{ID: 56, Name: "utf16le_general_ci", Charset: "utf16le", IsDefault: true},
	{ID: 57, Name: "cp1256_general_ci", Charset: "cp1256", IsDefault: true},
	{ID: 59, Name: "cp1257_general_ci", Charset: "cp1257", IsDefault: true},
	{ID: 60, Name: "utf32_general_ci", Charset: "utf32", IsDefault: true},
	{ID: 63, Name: "binary", Charset: "binary", IsDefault: true},
	{ID: 83, Name: "utf8mb3_bin", Charset: "utf8mb3"},
	{ID: 87, Name: "gbk_bin", Charset: "gbk"},
	{ID: 92, Name: "geostd8_general_ci", Charset: "geostd8", IsDefault: true},
	{ID: 95, Name: "cp932_japanese_ci", Charset: "cp932", IsDefault: true},
	{ID: 97, Name: "eucjpms_japanese_ci", Charset: "eucjpms", IsDefault: true},
	{ID: 224, Name: "utf8mb4_unicode_ci", Charset: "utf8mb4"},
	{ID: 246, Name: "utf8mb4_unicode_520_ci", Charset: "utf8mb4"},
	{ID: 248, Name: "gb18030_chinese_ci", Charset: "gb18030", IsDefault: true},
	{ID: 255, Name: "utf8mb4_0900_ai_ci", Charset: "utf8mb4", IsDefault: true},
	{ID: 305, Name: "utf8mb4_0900_as_ci", Charset: "utf8mb4"},
	{ID: 309, Name: "utf8mb4_0900_bin", Charset: "utf8mb4"},
	{ID: 323, Name: "utf8mb4_bg_0900_as_cs", Charset: "utf8mb4"},
}
