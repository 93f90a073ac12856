// Package datetime 提供了统一的时间格式化与解析工具.
package datetime

import "time"

// 标准格式布局.
const (
	LayoutDateTime = "2006-01-02 15:04:05"
	LayoutDate     = "2006-01-02"
)

// FormatTime 将时间格式化为标准字符串 "YYYY-MM-DD HH:MM:SS".
func FormatTime(t time.Time) string {
	return t.Format(LayoutDateTime)
}

// FormatDate 将时间格式化为标准日期字符串 "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(LayoutDate)
}

// ParseTime 解析形如 "YYYY-MM-DD HH:MM:SS" 的时间字符串.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(LayoutDateTime, s)
}

// ParseDate 解析形如 "YYYY-MM-DD" 的日期字符串.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(LayoutDate, s)
}

// FormatUnix 将 Unix 秒时间戳按 UTC 格式化为标准字符串.
func FormatUnix(sec int64) string {
	return FormatTime(time.Unix(sec, 0).UTC())
}
