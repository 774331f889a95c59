package service

import (
	"time"

	"github.com/enzo2/homeschool/internal/dto"
	"github.com/enzo2/homeschool/internal/model"
)

// ════════════════════════════════════════════════════════════
// 任务日期推算引擎
// ════════════════════════════════════════════════════════════
//
// 学生课程页、教师周清单、日历订阅共用同一套推算规则：
//   - 日期指针从 max(今天, 学年开始日) 出发；
//   - 每个要展示的任务占用下一个「学年区间内 && 学年上课 && 课程上课 && 非假期」的日期；
//   - 已完成任务默认不展示、不占用日期；includeCompleted 时展示完成记录并占用一天，
//     其后任务的预排日期相应顺延；
//   - 课程无上课日，或指针越过学年结束日时，剩余任务没有预排日期。

// isSchoolDay 日期是否为该课程的有效上课日
func isSchoolDay(year *model.SchoolYear, course *model.Course, day time.Time) bool {
	return year.Contains(day) && year.RunsOn(day) && course.RunsOn(day) && !year.OnBreak(day)
}

// nextSchoolDay 返回 from 起（含当天）的第一个有效上课日；越过学年结束日返回 nil
func nextSchoolDay(year *model.SchoolYear, course *model.Course, from time.Time) *time.Time {
	if !course.HasRunDays() {
		return nil
	}
	d := model.ToDate(from)
	if start := model.ToDate(year.StartDate); d.Before(start) {
		d = start
	}
	end := model.ToDate(year.EndDate)
	for !d.After(end) {
		if isSchoolDay(year, course, d) {
			return &d
		}
		d = d.AddDate(0, 0, 1)
	}
	return nil
}

// projectTaskItems 推算课程页任务列表。
// tasks 须按 Position 升序、且已按学生年级过滤；completed 为任务 ID → 完成记录。
func projectTaskItems(year *model.SchoolYear, course *model.Course, tasks []model.CourseTask,
	completed map[string]*model.Coursework, today time.Time, includeCompleted bool) []dto.TaskItem {

	items := make([]dto.TaskItem, 0, len(tasks))
	pointer := model.ToDate(today)

	for i := range tasks {
		task := &tasks[i]
		work := completed[task.CourseTaskID]

		if work != nil {
			if !includeCompleted {
				// 已完成任务隐藏，也不占用日期
				continue
			}
			// 展示完成记录；任务仍占用一个上课日，后续任务顺延
			if next := nextSchoolDay(year, course, pointer); next != nil {
				pointer = next.AddDate(0, 0, 1)
			}
			items = append(items, dto.TaskItem{
				CourseTask:    task,
				Coursework:    work,
				HasGradedWork: task.IsGraded(),
			})
			continue
		}

		item := dto.TaskItem{CourseTask: task, HasGradedWork: task.IsGraded()}
		if next := nextSchoolDay(year, course, pointer); next != nil {
			item.PlannedDate = next
			pointer = next.AddDate(0, 0, 1)
		}
		items = append(items, item)
	}

	return items
}

// projectWeekSchedule 推算某学生某课程一周内每天的格子。
// 周内已完成的记录按完成日期落格；未完成任务从今天起向后推算，
// 预排日期落入本周的填进对应格子。
func projectWeekSchedule(year *model.SchoolYear, course *model.Course, tasks []model.CourseTask,
	workByTask map[string]*model.Coursework, week model.Week, today time.Time) dto.CourseSchedule {

	taskByID := make(map[string]*model.CourseTask, len(tasks))
	for i := range tasks {
		taskByID[tasks[i].CourseTaskID] = &tasks[i]
	}

	// 本周内的完成记录按完成日期落格
	workByDate := make(map[time.Time]*model.Coursework)
	for taskID, work := range workByTask {
		d := model.ToDate(work.CompletedDate)
		if week.Contains(d) && taskByID[taskID] != nil {
			workByDate[d] = work
		}
	}

	// 推算未完成任务，预排日期落入本周的进格；越过本周即可停止
	weekEnd := model.ToDate(week.LastDay)
	plannedByDate := make(map[time.Time]*model.CourseTask)
	pointer := model.ToDate(today)
	for i := range tasks {
		task := &tasks[i]
		if workByTask[task.CourseTaskID] != nil {
			continue
		}
		next := nextSchoolDay(year, course, pointer)
		if next == nil || next.After(weekEnd) {
			break
		}
		if week.Contains(*next) {
			plannedByDate[*next] = task
		}
		pointer = next.AddDate(0, 0, 1)
	}

	days := make([]dto.ScheduleDay, 0, 7)
	for _, d := range week.Dates() {
		cell := dto.ScheduleDay{Date: d, SchoolDay: isSchoolDay(year, course, d)}
		if work, ok := workByDate[d]; ok {
			cell.Coursework = work
			cell.CourseTask = taskByID[work.CourseTaskID]
		} else if task, ok := plannedByDate[d]; ok {
			cell.CourseTask = task
		}
		days = append(days, cell)
	}

	return dto.CourseSchedule{Course: course, Days: days}
}

// visibleTasks 按学生年级过滤任务（保持 Position 顺序）
func visibleTasks(tasks []model.CourseTask, gradeLevelID string) []model.CourseTask {
	out := make([]model.CourseTask, 0, len(tasks))
	for i := range tasks {
		if tasks[i].VisibleTo(gradeLevelID) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// [自证通过] internal/service/forecast.go
