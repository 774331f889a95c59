package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/enzo2/homeschool/internal/model"
	"github.com/enzo2/homeschool/internal/repository"
)

// ── 共享内存数据 ──

// testStore 各 mock 仓储共享的内存数据。
// 外键关系按真实表结构维护，GetForSchool 一类跨表租户过滤
// 沿相同的关联链（课程 → 年级 → 学年 → 学校）解析。
type testStore struct {
	users       map[string]*model.User
	schools     map[string]*model.School
	years       map[string]*model.SchoolYear
	breaks      map[string]*model.SchoolBreak
	levels      map[string]*model.GradeLevel
	courses     map[string]*model.Course
	tasks       map[string]*model.CourseTask
	works       map[string]*model.GradedWork
	students    map[string]*model.Student
	enrollments map[string]*model.Enrollment
	coursework  map[string]*model.Coursework
	grades      map[string]*model.Grade
	checklists  map[string][]string // schoolYearID → 被排除课程 ID

	// 插入顺序，对应真实仓储里 created_at ASC 的排序
	levelOrder  []string
	courseOrder []string

	courseLevels map[string][]string // courseID → gradeLevelIDs
}

func newTestStore() *testStore {
	return &testStore{
		users:        make(map[string]*model.User),
		schools:      make(map[string]*model.School),
		years:        make(map[string]*model.SchoolYear),
		breaks:       make(map[string]*model.SchoolBreak),
		levels:       make(map[string]*model.GradeLevel),
		courses:      make(map[string]*model.Course),
		tasks:        make(map[string]*model.CourseTask),
		works:        make(map[string]*model.GradedWork),
		students:     make(map[string]*model.Student),
		enrollments:  make(map[string]*model.Enrollment),
		coursework:   make(map[string]*model.Coursework),
		grades:       make(map[string]*model.Grade),
		checklists:   make(map[string][]string),
		courseLevels: make(map[string][]string),
	}
}

// newTestRepo 以共享内存数据构建仓储聚合。
// BeginTx 依赖真实数据库连接，事务路径由 repository 包的集成测试覆盖。
func newTestRepo() (*repository.Repository, *testStore) {
	st := newTestStore()
	return &repository.Repository{
		User:        &mockUserRepo{st: st},
		School:      &mockSchoolRepo{st: st},
		SchoolYear:  &mockSchoolYearRepo{st: st},
		SchoolBreak: &mockSchoolBreakRepo{st: st},
		GradeLevel:  &mockGradeLevelRepo{st: st},
		Course:      &mockCourseRepo{st: st},
		CourseTask:  &mockCourseTaskRepo{st: st},
		Student:     &mockStudentRepo{st: st},
		Enrollment:  &mockEnrollmentRepo{st: st},
		Coursework:  &mockCourseworkRepo{st: st},
		Grade:       &mockGradeRepo{st: st},
		Checklist:   &mockChecklistRepo{st: st},
	}, st
}

// date 构造 UTC 零点日期
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ── 关联链解析 ──

func (st *testStore) yearSchool(yearID string) string {
	if y, ok := st.years[yearID]; ok {
		return y.SchoolID
	}
	return ""
}

func (st *testStore) levelSchool(levelID string) string {
	if l, ok := st.levels[levelID]; ok {
		return st.yearSchool(l.SchoolYearID)
	}
	return ""
}

func (st *testStore) courseSchool(courseID string) string {
	for _, levelID := range st.courseLevels[courseID] {
		return st.levelSchool(levelID)
	}
	return ""
}

func (st *testStore) courseYear(courseID string) string {
	for _, levelID := range st.courseLevels[courseID] {
		if l, ok := st.levels[levelID]; ok {
			return l.SchoolYearID
		}
	}
	return ""
}

func (st *testStore) maxPosition(courseID string) int {
	max := -1
	for _, t := range st.tasks {
		if t.CourseID == courseID && t.Position > max {
			max = t.Position
		}
	}
	return max
}

// ── 测试数据构造 ──

// addUser 建立账号与名下学校（School 按 GetByID 的预加载挂在账号上）
func (st *testStore) addUser(email string) *model.User {
	user := &model.User{
		UserID:   fmt.Sprintf("user-%d", len(st.users)+1),
		Email:    email,
		Name:     "Test Parent",
		Timezone: "UTC",
	}
	school := &model.School{
		SchoolID: fmt.Sprintf("school-%d", len(st.schools)+1),
		UserID:   user.UserID,
	}
	user.School = school
	st.users[user.UserID] = user
	st.schools[school.SchoolID] = school
	return user
}

func (st *testStore) addYear(school *model.School, start, end time.Time, days model.DaysOfWeek) *model.SchoolYear {
	year := &model.SchoolYear{
		SchoolYearID: fmt.Sprintf("year-%d", len(st.years)+1),
		SchoolID:     school.SchoolID,
		StartDate:    start,
		EndDate:      end,
		Days:         days,
	}
	st.years[year.SchoolYearID] = year
	return year
}

func (st *testStore) addBreak(year *model.SchoolYear, description string, start, end time.Time) *model.SchoolBreak {
	brk := &model.SchoolBreak{
		SchoolBreakID: fmt.Sprintf("break-%d", len(st.breaks)+1),
		SchoolYearID:  year.SchoolYearID,
		Description:   description,
		StartDate:     start,
		EndDate:       end,
	}
	st.breaks[brk.SchoolBreakID] = brk
	year.Breaks = append(year.Breaks, *brk)
	return brk
}

func (st *testStore) addLevel(year *model.SchoolYear, name string) *model.GradeLevel {
	level := &model.GradeLevel{
		GradeLevelID: fmt.Sprintf("level-%d", len(st.levels)+1),
		SchoolYearID: year.SchoolYearID,
		Name:         name,
	}
	st.levels[level.GradeLevelID] = level
	st.levelOrder = append(st.levelOrder, level.GradeLevelID)
	year.GradeLevels = append(year.GradeLevels, *level)
	return level
}

func (st *testStore) addCourse(name string, days model.DaysOfWeek, levels ...*model.GradeLevel) *model.Course {
	course := &model.Course{
		CourseID:            fmt.Sprintf("course-%d", len(st.courses)+1),
		Name:                name,
		Days:                days,
		DefaultTaskDuration: 30,
		IsActive:            true,
	}
	ids := make([]string, 0, len(levels))
	for _, level := range levels {
		ids = append(ids, level.GradeLevelID)
		course.GradeLevels = append(course.GradeLevels, *level)
	}
	st.courses[course.CourseID] = course
	st.courseOrder = append(st.courseOrder, course.CourseID)
	st.courseLevels[course.CourseID] = ids
	return course
}

// addTask 追加课程任务；gradeLevelID 非空则任务限定年级，graded 则挂评分标记
func (st *testStore) addTask(course *model.Course, description, gradeLevelID string, graded bool) *model.CourseTask {
	task := &model.CourseTask{
		CourseTaskID: fmt.Sprintf("task-%d", len(st.tasks)+1),
		CourseID:     course.CourseID,
		Description:  description,
		Duration:     course.DefaultTaskDuration,
		Position:     st.maxPosition(course.CourseID) + 1,
	}
	if gradeLevelID != "" {
		id := gradeLevelID
		task.GradeLevelID = &id
	}
	st.tasks[task.CourseTaskID] = task
	if graded {
		work := &model.GradedWork{
			GradedWorkID: fmt.Sprintf("work-%d", len(st.works)+1),
			CourseTaskID: task.CourseTaskID,
		}
		st.works[work.GradedWorkID] = work
		task.GradedWork = work
	}
	return task
}

func (st *testStore) addStudent(school *model.School, firstName, lastName string) *model.Student {
	student := &model.Student{
		StudentID: fmt.Sprintf("student-%d", len(st.students)+1),
		SchoolID:  school.SchoolID,
		FirstName: firstName,
		LastName:  lastName,
	}
	st.students[student.StudentID] = student
	return student
}

func (st *testStore) enroll(student *model.Student, level *model.GradeLevel) *model.Enrollment {
	enrollment := &model.Enrollment{
		EnrollmentID: fmt.Sprintf("enroll-%d", len(st.enrollments)+1),
		StudentID:    student.StudentID,
		GradeLevelID: level.GradeLevelID,
	}
	st.enrollments[enrollment.EnrollmentID] = enrollment
	return enrollment
}

func (st *testStore) complete(student *model.Student, task *model.CourseTask, day time.Time) *model.Coursework {
	work := &model.Coursework{
		CourseworkID:  fmt.Sprintf("cw-%d", len(st.coursework)+1),
		StudentID:     student.StudentID,
		CourseTaskID:  task.CourseTaskID,
		CompletedDate: day,
	}
	st.coursework[work.CourseworkID] = work
	return work
}

func (st *testStore) addGrade(student *model.Student, work *model.GradedWork, score int) *model.Grade {
	grade := &model.Grade{
		GradeID:      fmt.Sprintf("grade-%d", len(st.grades)+1),
		StudentID:    student.StudentID,
		GradedWorkID: work.GradedWorkID,
		Score:        score,
	}
	st.grades[grade.GradeID] = grade
	return grade
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	st *testStore
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.st.users)+1)
	}
	m.st.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.st.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.st.users[user.UserID] = user
	return nil
}

// ── Mock SchoolRepository ──

type mockSchoolRepo struct {
	st *testStore
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	if school.SchoolID == "" {
		school.SchoolID = fmt.Sprintf("school-%d", len(m.st.schools)+1)
	}
	m.st.schools[school.SchoolID] = school
	if owner, ok := m.st.users[school.UserID]; ok {
		owner.School = school
	}
	return nil
}

func (m *mockSchoolRepo) GetByUserID(_ context.Context, userID string) (*model.School, error) {
	for _, s := range m.st.schools {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SchoolYearRepository ──

type mockSchoolYearRepo struct {
	st *testStore
}

func (m *mockSchoolYearRepo) Create(_ context.Context, year *model.SchoolYear) error {
	if year.SchoolYearID == "" {
		year.SchoolYearID = fmt.Sprintf("year-%d", len(m.st.years)+1)
	}
	m.st.years[year.SchoolYearID] = year
	return nil
}

func (m *mockSchoolYearRepo) GetForSchool(_ context.Context, id, schoolID string) (*model.SchoolYear, error) {
	if y, ok := m.st.years[id]; ok && y.SchoolID == schoolID {
		return y, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolYearRepo) ListBySchool(_ context.Context, schoolID string) ([]model.SchoolYear, error) {
	var years []model.SchoolYear
	for _, y := range m.st.years {
		if y.SchoolID == schoolID {
			years = append(years, *y)
		}
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].StartDate.After(years[j].StartDate)
	})
	return years, nil
}

func (m *mockSchoolYearRepo) GetForDate(_ context.Context, schoolID string, day time.Time) (*model.SchoolYear, error) {
	for _, y := range m.st.years {
		if y.SchoolID == schoolID && y.Contains(day) {
			return y, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolYearRepo) GetCurrent(_ context.Context, schoolID string, today time.Time) (*model.SchoolYear, error) {
	for _, y := range m.st.years {
		if y.SchoolID == schoolID && y.Contains(today) {
			return y, nil
		}
	}
	var next *model.SchoolYear
	for _, y := range m.st.years {
		if y.SchoolID != schoolID || !y.StartDate.After(today) {
			continue
		}
		if next == nil || y.StartDate.Before(next.StartDate) {
			next = y
		}
	}
	if next == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return next, nil
}

// ── Mock SchoolBreakRepository ──

type mockSchoolBreakRepo struct {
	st *testStore
}

func (m *mockSchoolBreakRepo) Create(_ context.Context, brk *model.SchoolBreak) error {
	if brk.SchoolBreakID == "" {
		brk.SchoolBreakID = fmt.Sprintf("break-%d", len(m.st.breaks)+1)
	}
	m.st.breaks[brk.SchoolBreakID] = brk
	// 学年上的 Breaks 预加载同步可见
	if year, ok := m.st.years[brk.SchoolYearID]; ok {
		year.Breaks = append(year.Breaks, *brk)
	}
	return nil
}

func (m *mockSchoolBreakRepo) ListByYear(_ context.Context, schoolYearID string) ([]model.SchoolBreak, error) {
	var breaks []model.SchoolBreak
	for _, b := range m.st.breaks {
		if b.SchoolYearID == schoolYearID {
			breaks = append(breaks, *b)
		}
	}
	sort.Slice(breaks, func(i, j int) bool {
		return breaks[i].StartDate.Before(breaks[j].StartDate)
	})
	return breaks, nil
}

// ── Mock GradeLevelRepository ──

type mockGradeLevelRepo struct {
	st *testStore
}

func (m *mockGradeLevelRepo) Create(_ context.Context, level *model.GradeLevel) error {
	if level.GradeLevelID == "" {
		level.GradeLevelID = fmt.Sprintf("level-%d", len(m.st.levels)+1)
	}
	m.st.levels[level.GradeLevelID] = level
	m.st.levelOrder = append(m.st.levelOrder, level.GradeLevelID)
	if year, ok := m.st.years[level.SchoolYearID]; ok {
		year.GradeLevels = append(year.GradeLevels, *level)
	}
	return nil
}

func (m *mockGradeLevelRepo) GetForSchool(_ context.Context, id, schoolID string) (*model.GradeLevel, error) {
	if l, ok := m.st.levels[id]; ok && m.st.levelSchool(id) == schoolID {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeLevelRepo) ListByYear(_ context.Context, schoolYearID string) ([]model.GradeLevel, error) {
	var levels []model.GradeLevel
	for _, id := range m.st.levelOrder {
		if l := m.st.levels[id]; l.SchoolYearID == schoolYearID {
			levels = append(levels, *l)
		}
	}
	return levels, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	st *testStore
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course, gradeLevelIDs []string) error {
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("course-%d", len(m.st.courses)+1)
	}
	for _, id := range gradeLevelIDs {
		if l, ok := m.st.levels[id]; ok {
			course.GradeLevels = append(course.GradeLevels, *l)
		}
	}
	m.st.courses[course.CourseID] = course
	m.st.courseOrder = append(m.st.courseOrder, course.CourseID)
	m.st.courseLevels[course.CourseID] = append([]string(nil), gradeLevelIDs...)
	return nil
}

func (m *mockCourseRepo) GetForSchool(_ context.Context, id, schoolID string) (*model.Course, error) {
	if c, ok := m.st.courses[id]; ok && m.st.courseSchool(id) == schoolID {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByGradeLevel(_ context.Context, gradeLevelID string) ([]model.Course, error) {
	var courses []model.Course
	for _, id := range m.st.courseOrder {
		course := m.st.courses[id]
		if !course.IsActive {
			continue
		}
		for _, levelID := range m.st.courseLevels[id] {
			if levelID == gradeLevelID {
				courses = append(courses, *course)
				break
			}
		}
	}
	return courses, nil
}

func (m *mockCourseRepo) ListByYear(_ context.Context, schoolYearID string) ([]model.Course, error) {
	var courses []model.Course
	for _, id := range m.st.courseOrder {
		if m.st.courseYear(id) == schoolYearID {
			courses = append(courses, *m.st.courses[id])
		}
	}
	return courses, nil
}

// ── Mock CourseTaskRepository ──

type mockCourseTaskRepo struct {
	st *testStore
}

func (m *mockCourseTaskRepo) Create(_ context.Context, task *model.CourseTask) error {
	if task.CourseTaskID == "" {
		task.CourseTaskID = fmt.Sprintf("task-%d", len(m.st.tasks)+1)
	}
	m.st.tasks[task.CourseTaskID] = task
	return nil
}

func (m *mockCourseTaskRepo) GetForSchool(_ context.Context, id, schoolID string) (*model.CourseTask, error) {
	task, ok := m.st.tasks[id]
	if !ok || m.st.courseSchool(task.CourseID) != schoolID {
		return nil, gorm.ErrRecordNotFound
	}
	t := *task
	t.Course = m.st.courses[task.CourseID]
	return &t, nil
}

func (m *mockCourseTaskRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseTask, error) {
	var tasks []model.CourseTask
	for _, task := range m.st.tasks {
		if task.CourseID != courseID {
			continue
		}
		t := *task
		if t.GradeLevelID != nil {
			t.GradeLevel = m.st.levels[*t.GradeLevelID]
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Position < tasks[j].Position })
	return tasks, nil
}

func (m *mockCourseTaskRepo) ListByCourseForGradeLevel(_ context.Context, courseID, gradeLevelID string) ([]model.CourseTask, error) {
	var tasks []model.CourseTask
	for _, task := range m.st.tasks {
		if task.CourseID != courseID {
			continue
		}
		if task.GradeLevelID != nil && (gradeLevelID == "" || *task.GradeLevelID != gradeLevelID) {
			continue
		}
		tasks = append(tasks, *task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Position < tasks[j].Position })
	return tasks, nil
}

func (m *mockCourseTaskRepo) MaxPosition(_ context.Context, courseID string) (int, error) {
	return m.st.maxPosition(courseID), nil
}

func (m *mockCourseTaskRepo) CreateGradedWork(_ context.Context, work *model.GradedWork) error {
	if work.GradedWorkID == "" {
		work.GradedWorkID = fmt.Sprintf("work-%d", len(m.st.works)+1)
	}
	m.st.works[work.GradedWorkID] = work
	if task, ok := m.st.tasks[work.CourseTaskID]; ok {
		task.GradedWork = work
	}
	return nil
}

func (m *mockCourseTaskRepo) GetGradedWorkForSchool(_ context.Context, id, schoolID string) (*model.GradedWork, error) {
	work, ok := m.st.works[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	task, ok := m.st.tasks[work.CourseTaskID]
	if !ok || m.st.courseSchool(task.CourseID) != schoolID {
		return nil, gorm.ErrRecordNotFound
	}
	w := *work
	w.CourseTask = task
	return &w, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	st *testStore
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("student-%d", len(m.st.students)+1)
	}
	m.st.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetForSchool(_ context.Context, id, schoolID string) (*model.Student, error) {
	if s, ok := m.st.students[id]; ok && s.SchoolID == schoolID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListBySchool(_ context.Context, schoolID string) ([]model.Student, error) {
	var students []model.Student
	for _, s := range m.st.students {
		if s.SchoolID == schoolID {
			students = append(students, *s)
		}
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].FirstName != students[j].FirstName {
			return students[i].FirstName < students[j].FirstName
		}
		return students[i].LastName < students[j].LastName
	})
	return students, nil
}

func (m *mockStudentRepo) CountBySchool(_ context.Context, schoolID string) (int64, error) {
	var count int64
	for _, s := range m.st.students {
		if s.SchoolID == schoolID {
			count++
		}
	}
	return count, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	st *testStore
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.EnrollmentID == "" {
		enrollment.EnrollmentID = fmt.Sprintf("enroll-%d", len(m.st.enrollments)+1)
	}
	m.st.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) GetByStudentAndYear(_ context.Context, studentID, schoolYearID string) (*model.Enrollment, error) {
	for _, e := range m.st.enrollments {
		level, ok := m.st.levels[e.GradeLevelID]
		if !ok || e.StudentID != studentID || level.SchoolYearID != schoolYearID {
			continue
		}
		out := *e
		out.GradeLevel = level
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByYear(_ context.Context, schoolYearID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	for _, e := range m.st.enrollments {
		level, ok := m.st.levels[e.GradeLevelID]
		if !ok || level.SchoolYearID != schoolYearID {
			continue
		}
		out := *e
		out.Student = m.st.students[e.StudentID]
		out.GradeLevel = level
		enrollments = append(enrollments, out)
	}
	sort.Slice(enrollments, func(i, j int) bool {
		a, b := enrollments[i].Student, enrollments[j].Student
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.LastName < b.LastName
	})
	return enrollments, nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	for _, e := range m.st.enrollments {
		if e.StudentID != studentID {
			continue
		}
		out := *e
		out.GradeLevel = m.st.levels[e.GradeLevelID]
		enrollments = append(enrollments, out)
	}
	return enrollments, nil
}

func (m *mockEnrollmentRepo) CountByGradeLevel(_ context.Context, gradeLevelID string) (int64, error) {
	var count int64
	for _, e := range m.st.enrollments {
		if e.GradeLevelID == gradeLevelID {
			count++
		}
	}
	return count, nil
}

// ── Mock CourseworkRepository ──

type mockCourseworkRepo struct {
	st *testStore
}

func (m *mockCourseworkRepo) Create(_ context.Context, coursework *model.Coursework) error {
	if coursework.CourseworkID == "" {
		coursework.CourseworkID = fmt.Sprintf("cw-%d", len(m.st.coursework)+1)
	}
	m.st.coursework[coursework.CourseworkID] = coursework
	return nil
}

func (m *mockCourseworkRepo) Update(_ context.Context, coursework *model.Coursework) error {
	m.st.coursework[coursework.CourseworkID] = coursework
	return nil
}

func (m *mockCourseworkRepo) GetByStudentAndTask(_ context.Context, studentID, courseTaskID string) (*model.Coursework, error) {
	for _, w := range m.st.coursework {
		if w.StudentID == studentID && w.CourseTaskID == courseTaskID {
			return w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseworkRepo) DeleteByStudentAndTask(_ context.Context, studentID, courseTaskID string) error {
	for id, w := range m.st.coursework {
		if w.StudentID == studentID && w.CourseTaskID == courseTaskID {
			delete(m.st.coursework, id)
		}
	}
	return nil
}

func (m *mockCourseworkRepo) ListByStudentForCourse(_ context.Context, studentID, courseID string) ([]model.Coursework, error) {
	var works []model.Coursework
	for _, w := range m.st.coursework {
		task, ok := m.st.tasks[w.CourseTaskID]
		if ok && w.StudentID == studentID && task.CourseID == courseID {
			works = append(works, *w)
		}
	}
	return works, nil
}

func (m *mockCourseworkRepo) ListByStudentBetween(_ context.Context, studentID string, start, end time.Time) ([]model.Coursework, error) {
	var works []model.Coursework
	s, e := model.ToDate(start), model.ToDate(end)
	for _, w := range m.st.coursework {
		if w.StudentID != studentID {
			continue
		}
		d := model.ToDate(w.CompletedDate)
		if d.Before(s) || d.After(e) {
			continue
		}
		out := *w
		out.CourseTask = m.st.tasks[w.CourseTaskID]
		works = append(works, out)
	}
	return works, nil
}

func (m *mockCourseworkRepo) ListUngradedByStudent(_ context.Context, studentID string) ([]model.Coursework, error) {
	var works []model.Coursework
	for _, w := range m.st.coursework {
		if w.StudentID != studentID {
			continue
		}
		task, ok := m.st.tasks[w.CourseTaskID]
		if !ok || task.GradedWork == nil {
			continue
		}
		if m.hasGrade(studentID, task.GradedWork.GradedWorkID) {
			continue
		}
		out := *w
		t := *task
		t.Course = m.st.courses[task.CourseID]
		out.CourseTask = &t
		works = append(works, out)
	}
	sort.Slice(works, func(i, j int) bool {
		return works[i].CompletedDate.Before(works[j].CompletedDate)
	})
	return works, nil
}

func (m *mockCourseworkRepo) hasGrade(studentID, gradedWorkID string) bool {
	for _, g := range m.st.grades {
		if g.StudentID == studentID && g.GradedWorkID == gradedWorkID {
			return true
		}
	}
	return false
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	st *testStore
}

func (m *mockGradeRepo) Create(_ context.Context, grade *model.Grade) error {
	if grade.GradeID == "" {
		grade.GradeID = fmt.Sprintf("grade-%d", len(m.st.grades)+1)
	}
	m.st.grades[grade.GradeID] = grade
	return nil
}

func (m *mockGradeRepo) GetByStudentAndWork(_ context.Context, studentID, gradedWorkID string) (*model.Grade, error) {
	for _, g := range m.st.grades {
		if g.StudentID == studentID && g.GradedWorkID == gradedWorkID {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID string) ([]model.Grade, error) {
	var grades []model.Grade
	for _, g := range m.st.grades {
		if g.StudentID == studentID {
			grades = append(grades, *g)
		}
	}
	return grades, nil
}

// ── Mock ChecklistRepository ──

type mockChecklistRepo struct {
	st *testStore
}

func (m *mockChecklistRepo) ListByYear(_ context.Context, schoolYearID string) ([]model.Checklist, error) {
	ids := m.st.checklists[schoolYearID]
	items := make([]model.Checklist, 0, len(ids))
	for i, courseID := range ids {
		items = append(items, model.Checklist{
			ChecklistID:  fmt.Sprintf("chk-%d", i+1),
			SchoolYearID: schoolYearID,
			CourseID:     courseID,
			Course:       m.st.courses[courseID],
		})
	}
	return items, nil
}

func (m *mockChecklistRepo) ExcludedCourseIDs(_ context.Context, schoolYearID string) (map[string]bool, error) {
	excluded := make(map[string]bool)
	for _, id := range m.st.checklists[schoolYearID] {
		excluded[id] = true
	}
	return excluded, nil
}

func (m *mockChecklistRepo) ReplaceForYear(_ context.Context, schoolYearID string, courseIDs []string) error {
	m.st.checklists[schoolYearID] = append([]string(nil), courseIDs...)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
