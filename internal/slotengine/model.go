package slotengine

import (
	"encoding/json"
	"errors"
)

// ErrInvalidSlotDuration 表示医生档案上的时段长度不是正数，
// 属于数据完整性问题，调用方应当直接上报而不是重试。
var ErrInvalidSlotDuration = errors.New("医生的时段长度配置不合法")

// Interval 表示医生在某一天的生效出诊窗口，左闭右开，
// 单位为自零点起的分钟数。
type Interval struct {
	Start int
	End   int
}

// Slot 表示一个可预约的时段 [Start, Start+duration)，
// 完整地落在当天的生效出诊窗口内。
type Slot struct {
	Start int
	End   int
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}{
		StartTime: FormatClock(s.Start),
		EndTime:   FormatClock(s.End),
	})
}
