package model

import (
	"strings"
	"time"
)

// DaysOfWeek 一周上课日位掩码，持久化为 SMALLINT。
// 位值与周日起始的星期序号对应：Sunday=1, Monday=2, ... Saturday=64。
type DaysOfWeek uint16

const (
	NoDays    DaysOfWeek = 0
	Sunday    DaysOfWeek = 1
	Monday    DaysOfWeek = 2
	Tuesday   DaysOfWeek = 4
	Wednesday DaysOfWeek = 8
	Thursday  DaysOfWeek = 16
	Friday    DaysOfWeek = 32
	Saturday  DaysOfWeek = 64

	// WeekDays 周一至周五，学年默认上课日
	WeekDays = Monday | Tuesday | Wednesday | Thursday | Friday
	// AllDays 一周七天
	AllDays = WeekDays | Sunday | Saturday
)

// FromWeekday 将 time.Weekday 转为对应位
func FromWeekday(wd time.Weekday) DaysOfWeek {
	return DaysOfWeek(1) << uint(wd)
}

// Runs 判断指定星期是否为上课日
func (d DaysOfWeek) Runs(wd time.Weekday) bool {
	return d&FromWeekday(wd) != 0
}

// RunsOn 判断指定日期是否为上课日
func (d DaysOfWeek) RunsOn(day time.Time) bool {
	return d.Runs(day.Weekday())
}

// IsEmpty 无任何上课日
func (d DaysOfWeek) IsEmpty() bool {
	return d == NoDays
}

// Add 合并上课日
func (d DaysOfWeek) Add(wd time.Weekday) DaysOfWeek {
	return d | FromWeekday(wd)
}

// displayOrder 展示顺序固定为周一开头（与周视图一致）
var displayOrder = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Weekdays 按周一开头的展示顺序返回所有上课日
func (d DaysOfWeek) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 0, 7)
	for _, wd := range displayOrder {
		if d.Runs(wd) {
			out = append(out, wd)
		}
	}
	return out
}

// Names 按展示顺序返回小写星期全名（表单勾选值）
func (d DaysOfWeek) Names() []string {
	out := make([]string, 0, 7)
	for _, wd := range d.Weekdays() {
		out = append(out, strings.ToLower(wd.String()))
	}
	return out
}

// String 形如 "Mon, Wed, Fri"，空掩码返回 "None"
func (d DaysOfWeek) String() string {
	if d.IsEmpty() {
		return "None"
	}
	parts := make([]string, 0, 7)
	for _, wd := range d.Weekdays() {
		parts = append(parts, wd.String()[:3])
	}
	return strings.Join(parts, ", ")
}

var dayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDayNames 从表单多选框的小写星期名解析位掩码，未知名称忽略
func ParseDayNames(names []string) DaysOfWeek {
	d := NoDays
	for _, name := range names {
		if wd, ok := dayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			d = d.Add(wd)
		}
	}
	return d
}

// [自证通过] internal/model/days_of_week.go
