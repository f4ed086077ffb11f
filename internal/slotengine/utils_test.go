package slotengine

import "testing"

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"16:30", 990},
		{"23:59", 1439},
	}

	for _, c := range cases {
		got, err := ParseClock(c.input)
		if err != nil {
			t.Errorf("解析 %q 出错: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("解析 %q: got %d, want %d", c.input, got, c.want)
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, input := range []string{"", "9:0:0", "25:00", "09:60", "morning"} {
		if _, err := ParseClock(input); err == nil {
			t.Errorf("解析 %q 应当返回错误", input)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{990, "16:30"},
		{1439, "23:59"},
	}

	for _, c := range cases {
		if got := FormatClock(c.input); got != c.want {
			t.Errorf("格式化 %d: got %q, want %q", c.input, got, c.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, input := range []string{"08:15", "12:00", "18:45"} {
		minutes, err := ParseClock(input)
		if err != nil {
			t.Fatalf("解析 %q 出错: %v", input, err)
		}
		if got := FormatClock(minutes); got != input {
			t.Errorf("往返转换 %q: got %q", input, got)
		}
	}
}

func TestDayOfWeek(t *testing.T) {
	cases := []struct {
		date string
		want int32
	}{
		{"2025-08-31", 0}, // 周日
		{"2025-09-01", 1}, // 周一
		{"2025-09-06", 6}, // 周六
	}

	for _, c := range cases {
		got, err := DayOfWeek(c.date)
		if err != nil {
			t.Errorf("计算 %q 的星期出错: %v", c.date, err)
			continue
		}
		if got != c.want {
			t.Errorf("计算 %q 的星期: got %d, want %d", c.date, got, c.want)
		}
	}
}

func TestDayOfWeek_Invalid(t *testing.T) {
	for _, date := range []string{"", "2025/09/01", "2025-13-01", "09-01-2025"} {
		if _, err := DayOfWeek(date); err == nil {
			t.Errorf("计算 %q 的星期应当返回错误", date)
		}
	}
}
