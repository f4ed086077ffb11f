package slotengine

import (
	"fmt"
	"time"
)

// ParseClock 将 HH:MM 格式的时间解析为自零点起的分钟数
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("时间 %q 的格式错误", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock 将自零点起的分钟数格式化为 HH:MM
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DayOfWeek 计算 YYYY-MM-DD 日期对应的星期（0 为周日，6 为周六）。
// 日期按自然日历处理，不做任何时区换算。
func DayOfWeek(date string) (int32, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("日期 %q 的格式错误", date)
	}
	return int32(d.Weekday()), nil
}
