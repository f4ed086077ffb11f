package slotengine

import (
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

// ResolveWorkingInterval 计算医生在 date 当天的生效出诊窗口。
// 优先级从高到低为：
//  1. 审批通过的 SHIFT_CHANGE 调班（使用调班携带的新窗口）
//  2. 审批通过的 LEAVE 请假（全天停诊）
//  3. 当天星期对应的生效每周排班
//
// 三者都不存在时表示当天不出诊。窗口退化（开始时间不早于结束时间）时
// 同样按不出诊处理而不是报错，因为调用方总是先查看时段列表再决定是否可约。
// entries 和 overrides 应当按插入顺序排列，出现重复记录时取最后一条。
func ResolveWorkingInterval(date string, entries []*domain.WeeklyScheduleEntry, overrides []*domain.ScheduleOverride) (Interval, bool, error) {
	dayOfWeek, err := DayOfWeek(date)
	if err != nil {
		return Interval{}, false, err
	}

	// 找出当天最后一条审批通过的调班和请假
	var shiftChange *domain.ScheduleOverride
	var leave *domain.ScheduleOverride
	for _, o := range overrides {
		if o.Date != date || o.Status != domain.OverrideStatusApproved {
			continue
		}
		switch o.Kind {
		case domain.OverrideKindShiftChange:
			shiftChange = o
		case domain.OverrideKindLeave:
			leave = o
		}
	}

	if shiftChange != nil {
		return intervalFromWindow(shiftChange.StartTime, shiftChange.EndTime)
	}
	if leave != nil {
		return Interval{}, false, nil
	}

	// 没有生效的调班申请，回落到每周排班
	var entry *domain.WeeklyScheduleEntry
	for _, e := range entries {
		if e.DayOfWeek == dayOfWeek && e.IsActive {
			entry = e
		}
	}
	if entry == nil {
		return Interval{}, false, nil
	}

	return intervalFromWindow(entry.StartTime, entry.EndTime)
}

func intervalFromWindow(startTime, endTime string) (Interval, bool, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Interval{}, false, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Interval{}, false, err
	}
	if start >= end {
		// 退化窗口按当天不出诊处理
		return Interval{}, false, nil
	}
	return Interval{Start: start, End: end}, true, nil
}

// GenerateSlots 将出诊窗口按固定长度切分成时段序列。
// 从窗口起点开始，每 durationMinutes 分钟产生一个时段，
// 恰好在窗口结束时刻收尾的时段会被保留，越过结束时刻的不会。
func GenerateSlots(interval Interval, durationMinutes int32) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidSlotDuration
	}

	duration := int(durationMinutes)
	slots := make([]Slot, 0, (interval.End-interval.Start)/duration)
	for start := interval.Start; start+duration <= interval.End; start += duration {
		slots = append(slots, Slot{Start: start, End: start + duration})
	}

	return slots, nil
}

// FilterAvailable 去掉与现有预约冲突的时段。
// CANCELLED 的预约不占用时段，其余状态（包括 COMPLETED）都占用。
// 这里按真实的区间重叠来判断冲突而不是只比较开始时间，
// 以便容忍人工调班或导入数据导致的时段长度不一致。
func FilterAvailable(slots []Slot, appointments []*domain.Appointment) []Slot {
	type window struct {
		start int
		end   int
	}

	occupied := make([]window, 0, len(appointments))
	for _, a := range appointments {
		if a.Status == domain.AppointmentStatusCancelled {
			continue
		}
		start, err := ParseClock(a.StartTime)
		if err != nil {
			// 无法解析的预约记录无法定位到时间轴上，跳过
			continue
		}
		end, err := ParseClock(a.EndTime)
		if err != nil || end <= start {
			end = start + int(a.DurationMinutes)
		}
		occupied = append(occupied, window{start: start, end: end})
	}

	available := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		conflict := false
		for _, w := range occupied {
			if w.start < slot.End && slot.Start < w.end {
				conflict = true
				break
			}
		}
		if !conflict {
			available = append(available, slot)
		}
	}

	return available
}
