package domain

import "time"

type OverrideKind string

const (
	OverrideKindLeave       OverrideKind = "LEAVE"        // 全天停诊，不携带时间窗口
	OverrideKindShiftChange OverrideKind = "SHIFT_CHANGE" // 当天改用新的出诊时间窗口
)

type OverrideStatus string

const (
	OverrideStatusPending  OverrideStatus = "PENDING"
	OverrideStatusApproved OverrideStatus = "APPROVED"
	OverrideStatusDeclined OverrideStatus = "DECLINED"
)

// ScheduleOverride 表示医生针对某个具体日期的调班申请，
// 只有审批通过（APPROVED）的记录才会影响可用时段的计算。
type ScheduleOverride struct {
	ID        int64          `json:"id"`
	DoctorID  int64          `json:"doctorID"`
	Date      string         `json:"date"` // YYYY-MM-DD
	Kind      OverrideKind   `json:"kind"`
	StartTime string         `json:"startTime"` // HH:MM，仅 SHIFT_CHANGE 使用
	EndTime   string         `json:"endTime"`   // HH:MM，仅 SHIFT_CHANGE 使用
	Reason    string         `json:"reason"`
	Status    OverrideStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Version   int32          `json:"-"`
}
