package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Substr 按 rune 截取，避免截断多字节字符
func Substr(s string, start int, length int) string {
	runes := []rune(s)
	strLen := utf8.RuneCountInString(s)

	if start < 0 || start >= strLen || length <= 0 {
		return ""
	}

	end := start + length
	if end > strLen {
		end = strLen
	}

	return string(runes[start:end])
}

// IsBlank 判断内容是否为空或仅含空白字符
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func ConvertInt64SliceToStringSlice(arr []int64) []string {
	res := make([]string, 0, len(arr))
	for _, id := range arr {
		res = append(res, strconv.FormatInt(id, 10))
	}

	return res
}
