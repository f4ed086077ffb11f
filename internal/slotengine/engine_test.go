package slotengine

import (
	"encoding/json"
	"testing"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func newTestEngine(durationMinutes int32, entries []*domain.WeeklyScheduleEntry, overrides []*domain.ScheduleOverride, appointments []*domain.Appointment) *Engine {
	doctor := &domain.DoctorProfile{
		SlotDurationMinutes: durationMinutes,
	}
	return New(doctor, entries, overrides, appointments)
}

func TestEngine_AvailableSlots(t *testing.T) {
	engine := newTestEngine(30,
		[]*domain.WeeklyScheduleEntry{weeklyEntry(1, "09:00", "17:00", true)},
		nil,
		[]*domain.Appointment{appointment("09:00", "09:30", 30, domain.AppointmentStatusPending)},
	)

	slots, err := engine.AvailableSlots("2025-09-01")
	if err != nil {
		t.Fatalf("计算可约时段出错: %v", err)
	}
	if len(slots) != 15 {
		t.Fatalf("可约时段数量错误: got %d, want 15", len(slots))
	}
	// 09:00 已被预约，第一个可约时段应当是 09:30
	if slots[0].Start != 9*60+30 {
		t.Errorf("第一个可约时段错误: got %d", slots[0].Start)
	}
}

func TestEngine_AvailableSlots_LeaveDay(t *testing.T) {
	engine := newTestEngine(30,
		[]*domain.WeeklyScheduleEntry{weeklyEntry(1, "09:00", "17:00", true)},
		[]*domain.ScheduleOverride{override("2025-09-01", domain.OverrideKindLeave, domain.OverrideStatusApproved, "", "")},
		nil,
	)

	slots, err := engine.AvailableSlots("2025-09-01")
	if err != nil {
		t.Fatalf("计算可约时段出错: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("请假当天应当返回空列表: got %d 个时段", len(slots))
	}
}

func TestEngine_AvailableSlots_Idempotent(t *testing.T) {
	engine := newTestEngine(20,
		[]*domain.WeeklyScheduleEntry{weeklyEntry(1, "08:30", "12:00", true)},
		nil,
		[]*domain.Appointment{appointment("08:50", "09:10", 20, domain.AppointmentStatusConfirmed)},
	)

	// 相同输入重复计算应当得到完全一致的结果
	first, err := engine.AvailableSlots("2025-09-01")
	if err != nil {
		t.Fatalf("计算可约时段出错: %v", err)
	}
	second, err := engine.AvailableSlots("2025-09-01")
	if err != nil {
		t.Fatalf("计算可约时段出错: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("两次计算的时段数量不一致: %d 和 %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("第 %d 个时段不一致: %v 和 %v", i, first[i], second[i])
		}
	}
}

func TestEngine_AvailableSlots_InvalidDuration(t *testing.T) {
	engine := newTestEngine(0,
		[]*domain.WeeklyScheduleEntry{weeklyEntry(1, "09:00", "17:00", true)},
		nil,
		nil,
	)

	if _, err := engine.AvailableSlots("2025-09-01"); err != ErrInvalidSlotDuration {
		t.Errorf("时段长度非法应当返回 ErrInvalidSlotDuration: got %v", err)
	}
}

func TestEngine_IsAvailable(t *testing.T) {
	engine := newTestEngine(30,
		[]*domain.WeeklyScheduleEntry{weeklyEntry(1, "09:00", "17:00", true)},
		nil,
		[]*domain.Appointment{appointment("09:00", "09:30", 30, domain.AppointmentStatusPending)},
	)

	cases := []struct {
		startTime string
		want      bool
	}{
		{"09:00", false}, // 已被预约
		{"09:30", true},
		{"09:15", false}, // 不在时段边界上
		{"17:00", false}, // 超出出诊窗口
	}

	for _, c := range cases {
		got, err := engine.IsAvailable("2025-09-01", c.startTime)
		if err != nil {
			t.Errorf("判断 %q 是否可约出错: %v", c.startTime, err)
			continue
		}
		if got != c.want {
			t.Errorf("判断 %q 是否可约: got %v, want %v", c.startTime, got, c.want)
		}
	}
}

func TestEngine_IsAvailable_InvalidStartTime(t *testing.T) {
	engine := newTestEngine(30,
		[]*domain.WeeklyScheduleEntry{weeklyEntry(1, "09:00", "17:00", true)},
		nil,
		nil,
	)

	if _, err := engine.IsAvailable("2025-09-01", "morning"); err == nil {
		t.Error("非法的开始时间应当返回错误")
	}
}

func TestSlot_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Slot{Start: 9 * 60, End: 9*60 + 30})
	if err != nil {
		t.Fatalf("序列化时段出错: %v", err)
	}

	want := `{"startTime":"09:00","endTime":"09:30"}`
	if string(data) != want {
		t.Errorf("序列化结果错误: got %s, want %s", data, want)
	}
}
