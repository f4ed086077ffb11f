package slotengine

import (
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
)

// Engine 基于已经从存储中取出的记录计算某个医生的可预约时段，
// 本身不访问任何外部资源，对同样的输入总是给出同样的输出。
type Engine struct {
	doctor       *domain.DoctorProfile
	entries      []*domain.WeeklyScheduleEntry
	overrides    []*domain.ScheduleOverride
	appointments []*domain.Appointment
}

func New(doctor *domain.DoctorProfile, entries []*domain.WeeklyScheduleEntry, overrides []*domain.ScheduleOverride, appointments []*domain.Appointment) *Engine {
	return &Engine{
		doctor:       doctor,
		entries:      entries,
		overrides:    overrides,
		appointments: appointments,
	}
}

// AvailableSlots 依次执行窗口解析、时段切分和冲突过滤，
// 医生当天不出诊时返回空列表而不是错误。
func (e *Engine) AvailableSlots(date string) ([]Slot, error) {
	interval, ok, err := ResolveWorkingInterval(date, e.entries, e.overrides)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Slot{}, nil
	}

	slots, err := GenerateSlots(interval, e.doctor.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	return FilterAvailable(slots, e.appointments), nil
}

// IsAvailable 判断以 startTime 开始的时段当前是否仍然可约，
// 预约提交时必须基于最新的存储记录重新调用，不能依赖此前展示给用户的时段列表。
func (e *Engine) IsAvailable(date string, startTime string) (bool, error) {
	slots, err := e.AvailableSlots(date)
	if err != nil {
		return false, err
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if slot.Start == start {
			return true, nil
		}
	}
	return false, nil
}
