package slotengine

import (
	"testing"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func weeklyEntry(dayOfWeek int32, startTime, endTime string, isActive bool) *domain.WeeklyScheduleEntry {
	return &domain.WeeklyScheduleEntry{
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		IsActive:  isActive,
	}
}

func override(date string, kind domain.OverrideKind, status domain.OverrideStatus, startTime, endTime string) *domain.ScheduleOverride {
	return &domain.ScheduleOverride{
		Date:      date,
		Kind:      kind,
		Status:    status,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func appointment(startTime, endTime string, durationMinutes int32, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

// 2025-09-01 是周一，2025-08-31 是周日，下面的测试都围绕这两天展开

func TestResolveWorkingInterval_WeeklyEntry(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "09:00", "17:00", true),
	}

	interval, ok, err := ResolveWorkingInterval("2025-09-01", entries, nil)
	if err != nil {
		t.Fatalf("解析出诊窗口出错: %v", err)
	}
	if !ok {
		t.Fatal("周一应当出诊")
	}
	if interval.Start != 9*60 || interval.End != 17*60 {
		t.Errorf("出诊窗口错误: got [%d, %d)", interval.Start, interval.End)
	}
}

func TestResolveWorkingInterval_NoEntryForDay(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "09:00", "17:00", true),
	}

	// 周日没有排班
	_, ok, err := ResolveWorkingInterval("2025-08-31", entries, nil)
	if err != nil {
		t.Fatalf("解析出诊窗口出错: %v", err)
	}
	if ok {
		t.Error("没有排班的日期不应当出诊")
	}
}

func TestResolveWorkingInterval_InactiveEntryIgnored(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "09:00", "17:00", false),
	}

	_, ok, err := ResolveWorkingInterval("2025-09-01", entries, nil)
	if err != nil {
		t.Fatalf("解析出诊窗口出错: %v", err)
	}
	if ok {
		t.Error("未生效的排班不应当参与计算")
	}
}

func TestResolveWorkingInterval_DuplicateEntriesLastWins(t *testing.T) {
	// 同一个星期存在多条生效排班时取插入顺序最后的一条
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "09:00", "17:00", true),
		weeklyEntry(1, "14:00", "18:00", true),
	}

	interval, ok, err := ResolveWorkingInterval("2025-09-01", entries, nil)
	if err != nil {
		t.Fatalf("解析出诊窗口出错: %v", err)
	}
	if !ok {
		t.Fatal("周一应当出诊")
	}
	if interval.Start != 14*60 || interval.End != 18*60 {
		t.Errorf("应当取最后一条排班: got [%d, %d)", interval.Start, interval.End)
	}
}

func TestResolveWorkingInterval_ApprovedLeave(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "09:00", "17:00", true),
	}
	overrides := []*domain.ScheduleOverride{
		override("2025-09-01", domain.OverrideKindLeave, domain.OverrideStatusApproved, "", ""),
	}

	_, ok, err := ResolveWorkingInterval("2025-09-01", entries, overrides)
	if err != nil {
		t.Fatalf("解析出诊窗口出错: %v", err)
	}
	if ok {
		t.Error("审批通过的请假应当使当天停诊")
	}
}

func TestResolveWorkingInterval_PendingOverrideIgnored(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "09:00", "17:00", true),
	}
	overrides := []*domain.ScheduleOverride{
		override("2025-09-01", domain.OverrideKindLeave, domain.OverrideStatusPending, "", ""),
		override("2025-09-01", domain.OverrideKindShiftChange, domain.OverrideStatusDeclined, "10:00", "12:00"),
	}

	interval, ok, err := ResolveWorkingInterval("2025-09-01", entries, overrides)
	if err != nil {
		t.Fatalf("解析出诊窗口出错: %v", err)
	}
	if !ok {
		t.Fatal("未通过审批的申请不应当影响出诊")
	}
	if interval.Start != 9*60 || interval.End != 17*60 {
		t.Errorf("出诊窗口应当来自每周排班: got [%d, %d)", interval.Start, interval.End)
	}
}

func TestResolveWorkingInterval_ShiftChangeBeatsLeave(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "09:00", "17:00", true),
	}

	// 调班的优先级高于请假，与插入顺序无关
	orders := [][]*domain.ScheduleOverride{
		{
			override("2025-09-01", domain.OverrideKindLeave, domain.OverrideStatusApproved, "", ""),
			override("2025-09-01", domain.OverrideKindShiftChange, domain.OverrideStatusApproved, "14:00", "16:00"),
		},
		{
			override("2025-09-01", domain.OverrideKindShiftChange, domain.OverrideStatusApproved, "14:00", "16:00"),
			override("2025-09-01", domain.OverrideKindLeave, domain.OverrideStatusApproved, "", ""),
		},
	}

	for _, overrides := range orders {
		interval, ok, err := ResolveWorkingInterval("2025-09-01", entries, overrides)
		if err != nil {
			t.Fatalf("解析出诊窗口出错: %v", err)
		}
		if !ok {
			t.Fatal("调班应当覆盖请假")
		}
		if interval.Start != 14*60 || interval.End != 16*60 {
			t.Errorf("出诊窗口应当来自调班: got [%d, %d)", interval.Start, interval.End)
		}
	}
}

func TestResolveWorkingInterval_ShiftChangeWithoutWeeklyEntry(t *testing.T) {
	// 即使当天没有每周排班，审批通过的调班也应当生效
	overrides := []*domain.ScheduleOverride{
		override("2025-08-31", domain.OverrideKindShiftChange, domain.OverrideStatusApproved, "10:00", "12:00"),
	}

	interval, ok, err := ResolveWorkingInterval("2025-08-31", nil, overrides)
	if err != nil {
		t.Fatalf("解析出诊窗口出错: %v", err)
	}
	if !ok {
		t.Fatal("调班应当独立于每周排班生效")
	}
	if interval.Start != 10*60 || interval.End != 12*60 {
		t.Errorf("出诊窗口错误: got [%d, %d)", interval.Start, interval.End)
	}
}

func TestResolveWorkingInterval_DegenerateWindow(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		weeklyEntry(1, "17:00", "09:00", true),
	}

	_, ok, err := ResolveWorkingInterval("2025-09-01", entries, nil)
	if err != nil {
		t.Fatalf("退化窗口不应当返回错误: %v", err)
	}
	if ok {
		t.Error("退化窗口应当按不出诊处理")
	}
}

func TestResolveWorkingInterval_InvalidDate(t *testing.T) {
	if _, _, err := ResolveWorkingInterval("2025/09/01", nil, nil); err == nil {
		t.Error("非法日期应当返回错误")
	}
}

func TestGenerateSlots(t *testing.T) {
	// 09:00-17:00 按 30 分钟切分应当得到 16 个时段
	slots, err := GenerateSlots(Interval{Start: 9 * 60, End: 17 * 60}, 30)
	if err != nil {
		t.Fatalf("切分时段出错: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("时段数量错误: got %d, want 16", len(slots))
	}
	if slots[0].Start != 9*60 {
		t.Errorf("第一个时段应当从 09:00 开始: got %d", slots[0].Start)
	}
	if slots[15].Start != 16*60+30 || slots[15].End != 17*60 {
		t.Errorf("最后一个时段应当是 16:30-17:00: got [%d, %d)", slots[15].Start, slots[15].End)
	}

	// 相邻时段应当首尾相接
	for i := 1; i < len(slots); i++ {
		if slots[i].Start != slots[i-1].End {
			t.Errorf("第 %d 个时段与前一个不相接", i)
		}
	}
}

func TestGenerateSlots_PartialSlotDropped(t *testing.T) {
	// 10:00-11:30 按 45 分钟切分，10:45-11:30 恰好收尾保留，再往后放不下
	slots, err := GenerateSlots(Interval{Start: 10 * 60, End: 11*60 + 30}, 45)
	if err != nil {
		t.Fatalf("切分时段出错: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("时段数量错误: got %d, want 2", len(slots))
	}
	if slots[0].Start != 10*60 || slots[1].Start != 10*60+45 {
		t.Errorf("时段起点错误: got %d 和 %d", slots[0].Start, slots[1].Start)
	}
	if slots[1].End != 11*60+30 {
		t.Errorf("最后一个时段应当恰好在 11:30 收尾: got %d", slots[1].End)
	}
}

func TestGenerateSlots_Count(t *testing.T) {
	// 时段数量应当等于窗口长度除以时段长度向下取整
	cases := []struct {
		start    int
		end      int
		duration int32
		want     int
	}{
		{9 * 60, 12 * 60, 20, 9},
		{9 * 60, 12*60 + 10, 20, 9},
		{9 * 60, 9*60 + 10, 20, 0},
	}

	for _, c := range cases {
		slots, err := GenerateSlots(Interval{Start: c.start, End: c.end}, c.duration)
		if err != nil {
			t.Fatalf("切分时段出错: %v", err)
		}
		if len(slots) != c.want {
			t.Errorf("窗口 [%d, %d) 按 %d 分钟切分: got %d, want %d", c.start, c.end, c.duration, len(slots), c.want)
		}
	}
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	for _, duration := range []int32{0, -30} {
		if _, err := GenerateSlots(Interval{Start: 9 * 60, End: 17 * 60}, duration); err != ErrInvalidSlotDuration {
			t.Errorf("时段长度 %d 应当返回 ErrInvalidSlotDuration: got %v", duration, err)
		}
	}
}

func TestFilterAvailable_BookedSlotExcluded(t *testing.T) {
	slots, _ := GenerateSlots(Interval{Start: 9 * 60, End: 10 * 60}, 30)
	appointments := []*domain.Appointment{
		appointment("09:00", "09:30", 30, domain.AppointmentStatusPending),
	}

	available := FilterAvailable(slots, appointments)
	if len(available) != 1 {
		t.Fatalf("可约时段数量错误: got %d, want 1", len(available))
	}
	if available[0].Start != 9*60+30 {
		t.Errorf("09:30 的时段应当保留: got %d", available[0].Start)
	}
}

func TestFilterAvailable_CancelledAppointmentIgnored(t *testing.T) {
	slots, _ := GenerateSlots(Interval{Start: 9 * 60, End: 10 * 60}, 30)
	appointments := []*domain.Appointment{
		appointment("09:00", "09:30", 30, domain.AppointmentStatusCancelled),
	}

	available := FilterAvailable(slots, appointments)
	if len(available) != 2 {
		t.Errorf("已取消的预约不应当占用时段: got %d, want 2", len(available))
	}
}

func TestFilterAvailable_CompletedAppointmentOccupies(t *testing.T) {
	slots, _ := GenerateSlots(Interval{Start: 9 * 60, End: 10 * 60}, 30)
	appointments := []*domain.Appointment{
		appointment("09:30", "10:00", 30, domain.AppointmentStatusCompleted),
	}

	available := FilterAvailable(slots, appointments)
	if len(available) != 1 || available[0].Start != 9*60 {
		t.Errorf("已完成的预约仍然占用时段: got %v", available)
	}
}

func TestFilterAvailable_OverlapNotJustExactStart(t *testing.T) {
	// 一条 60 分钟的历史预约应当同时挡掉 09:00 和 09:30 两个 30 分钟时段
	slots, _ := GenerateSlots(Interval{Start: 9 * 60, End: 11 * 60}, 30)
	appointments := []*domain.Appointment{
		appointment("09:00", "10:00", 60, domain.AppointmentStatusConfirmed),
	}

	available := FilterAvailable(slots, appointments)
	if len(available) != 2 {
		t.Fatalf("可约时段数量错误: got %d, want 2", len(available))
	}
	if available[0].Start != 10*60 || available[1].Start != 10*60+30 {
		t.Errorf("按区间重叠过滤后应当剩下 10:00 和 10:30: got %v", available)
	}
}

func TestFilterAvailable_EndFallbackToDuration(t *testing.T) {
	// 结束时间缺失时按开始时间加时长推算
	slots, _ := GenerateSlots(Interval{Start: 9 * 60, End: 10 * 60}, 30)
	appointments := []*domain.Appointment{
		appointment("09:00", "", 30, domain.AppointmentStatusPending),
	}

	available := FilterAvailable(slots, appointments)
	if len(available) != 1 || available[0].Start != 9*60+30 {
		t.Errorf("结束时间缺失的预约应当按时长占用时段: got %v", available)
	}
}

func TestFilterAvailable_UnparsableStartSkipped(t *testing.T) {
	slots, _ := GenerateSlots(Interval{Start: 9 * 60, End: 10 * 60}, 30)
	appointments := []*domain.Appointment{
		appointment("morning", "09:30", 30, domain.AppointmentStatusPending),
	}

	available := FilterAvailable(slots, appointments)
	if len(available) != 2 {
		t.Errorf("无法解析的预约记录应当被跳过: got %d, want 2", len(available))
	}
}
