package utils

import (
	"fmt"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"github.com/medisync-dev/hospital-manager/backend/internal/slotengine"
)

// ValidateWeeklySchedule 检查一组每周排班是否合法：
// 时间格式正确、开始时间早于结束时间、同一个星期最多只有一条生效记录。
func ValidateWeeklySchedule(entries []*domain.WeeklyScheduleEntry) error {
	activeDays := make(map[int32]bool)

	for i, entry := range entries {
		if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
			return fmt.Errorf("第 %d 条排班的星期必须在 0 到 6 之间", i+1)
		}

		start, err := slotengine.ParseClock(entry.StartTime)
		if err != nil {
			return fmt.Errorf("第 %d 条排班的开始时间格式错误", i+1)
		}
		end, err := slotengine.ParseClock(entry.EndTime)
		if err != nil {
			return fmt.Errorf("第 %d 条排班的结束时间格式错误", i+1)
		}
		if start >= end {
			return fmt.Errorf("第 %d 条排班的结束时间必须晚于开始时间", i+1)
		}

		if entry.IsActive {
			if activeDays[entry.DayOfWeek] {
				return fmt.Errorf("星期 %d 存在多条生效的排班", entry.DayOfWeek)
			}
			activeDays[entry.DayOfWeek] = true
		}
	}

	return nil
}

// ValidateOverrideWindow 检查调班申请携带的时间窗口：
// 请假不允许携带窗口，调班必须携带合法窗口。
func ValidateOverrideWindow(kind domain.OverrideKind, startTime, endTime string) error {
	switch kind {
	case domain.OverrideKindLeave:
		if startTime != "" || endTime != "" {
			return fmt.Errorf("请假申请不需要填写时间窗口")
		}
	case domain.OverrideKindShiftChange:
		start, err := slotengine.ParseClock(startTime)
		if err != nil {
			return fmt.Errorf("调班的开始时间格式错误")
		}
		end, err := slotengine.ParseClock(endTime)
		if err != nil {
			return fmt.Errorf("调班的结束时间格式错误")
		}
		if start >= end {
			return fmt.Errorf("调班的结束时间必须晚于开始时间")
		}
	default:
		return fmt.Errorf("不支持的调班类型 %s", kind)
	}

	return nil
}

// 预约状态机：PENDING -> {CONFIRMED, CANCELLED}，CONFIRMED -> {COMPLETED, CANCELLED}，
// COMPLETED 和 CANCELLED 为终态。
var allowedTransitions = map[domain.AppointmentStatus][]domain.AppointmentStatus{
	domain.AppointmentStatusPending:   {domain.AppointmentStatusConfirmed, domain.AppointmentStatusCancelled},
	domain.AppointmentStatusConfirmed: {domain.AppointmentStatusCompleted, domain.AppointmentStatusCancelled},
	domain.AppointmentStatusCompleted: {},
	domain.AppointmentStatusCancelled: {},
}

func ValidateStatusTransition(from, to domain.AppointmentStatus) error {
	targets, ok := allowedTransitions[from]
	if !ok {
		return fmt.Errorf("未知的预约状态 %s", from)
	}

	for _, target := range targets {
		if target == to {
			return nil
		}
	}

	return fmt.Errorf("预约不允许从 %s 流转到 %s", from, to)
}
