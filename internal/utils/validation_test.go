package utils

import (
	"testing"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

func TestValidateWeeklySchedule(t *testing.T) {
	entries := []*domain.WeeklyScheduleEntry{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 2, StartTime: "08:30", EndTime: "12:00", IsActive: true},
		{DayOfWeek: 2, StartTime: "13:30", EndTime: "17:30", IsActive: false},
	}

	if err := ValidateWeeklySchedule(entries); err != nil {
		t.Errorf("合法的排班不应当返回错误: %v", err)
	}
}

func TestValidateWeeklySchedule_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		entries []*domain.WeeklyScheduleEntry
	}{
		{
			"星期超出范围",
			[]*domain.WeeklyScheduleEntry{{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00", IsActive: true}},
		},
		{
			"开始时间格式错误",
			[]*domain.WeeklyScheduleEntry{{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00", IsActive: true}},
		},
		{
			"结束时间不晚于开始时间",
			[]*domain.WeeklyScheduleEntry{{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00", IsActive: true}},
		},
		{
			"同一个星期存在多条生效排班",
			[]*domain.WeeklyScheduleEntry{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
				{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsActive: true},
			},
		},
	}

	for _, c := range cases {
		if err := ValidateWeeklySchedule(c.entries); err == nil {
			t.Errorf("%s: 应当返回错误", c.name)
		}
	}
}

func TestValidateOverrideWindow(t *testing.T) {
	if err := ValidateOverrideWindow(domain.OverrideKindLeave, "", ""); err != nil {
		t.Errorf("不携带窗口的请假应当合法: %v", err)
	}
	if err := ValidateOverrideWindow(domain.OverrideKindShiftChange, "10:00", "12:00"); err != nil {
		t.Errorf("携带合法窗口的调班应当合法: %v", err)
	}
}

func TestValidateOverrideWindow_Invalid(t *testing.T) {
	cases := []struct {
		name      string
		kind      domain.OverrideKind
		startTime string
		endTime   string
	}{
		{"请假携带窗口", domain.OverrideKindLeave, "10:00", "12:00"},
		{"调班缺少窗口", domain.OverrideKindShiftChange, "", ""},
		{"调班开始时间格式错误", domain.OverrideKindShiftChange, "10am", "12:00"},
		{"调班结束时间不晚于开始时间", domain.OverrideKindShiftChange, "12:00", "10:00"},
		{"不支持的类型", domain.OverrideKind("HOLIDAY"), "", ""},
	}

	for _, c := range cases {
		if err := ValidateOverrideWindow(c.kind, c.startTime, c.endTime); err == nil {
			t.Errorf("%s: 应当返回错误", c.name)
		}
	}
}

func TestValidateStatusTransition(t *testing.T) {
	allowed := []struct {
		from domain.AppointmentStatus
		to   domain.AppointmentStatus
	}{
		{domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed},
		{domain.AppointmentStatusPending, domain.AppointmentStatusCancelled},
		{domain.AppointmentStatusConfirmed, domain.AppointmentStatusCompleted},
		{domain.AppointmentStatusConfirmed, domain.AppointmentStatusCancelled},
	}
	for _, c := range allowed {
		if err := ValidateStatusTransition(c.from, c.to); err != nil {
			t.Errorf("从 %s 到 %s 应当被允许: %v", c.from, c.to, err)
		}
	}

	denied := []struct {
		from domain.AppointmentStatus
		to   domain.AppointmentStatus
	}{
		{domain.AppointmentStatusPending, domain.AppointmentStatusCompleted},
		{domain.AppointmentStatusCompleted, domain.AppointmentStatusCancelled},
		{domain.AppointmentStatusCancelled, domain.AppointmentStatusPending},
		{domain.AppointmentStatusCancelled, domain.AppointmentStatusConfirmed},
		{domain.AppointmentStatusConfirmed, domain.AppointmentStatusPending},
	}
	for _, c := range denied {
		if err := ValidateStatusTransition(c.from, c.to); err == nil {
			t.Errorf("从 %s 到 %s 应当被拒绝", c.from, c.to)
		}
	}

	if err := ValidateStatusTransition(domain.AppointmentStatus("UNKNOWN"), domain.AppointmentStatusConfirmed); err == nil {
		t.Error("未知状态应当返回错误")
	}
}
