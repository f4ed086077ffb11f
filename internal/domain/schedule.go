package domain

import "time"

// WeeklyScheduleEntry 表示医生每周固定的出诊时间。
// 同一个医生在同一个 dayOfWeek 上最多只应存在一条生效的记录，
// 数据库会尽量保证这一点，但解析可用时段时仍需容忍重复记录（取插入顺序最后的一条）。
type WeeklyScheduleEntry struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctorID"`
	DayOfWeek int32     `json:"dayOfWeek"` // 0 (周日) 到 6 (周六)
	StartTime string    `json:"startTime"` // HH:MM
	EndTime   string    `json:"endTime"`   // HH:MM
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
