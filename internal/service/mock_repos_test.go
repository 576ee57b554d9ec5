package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/repository"
)

// 内存版 Repository 实现，供 Service 层单元测试使用。
// 只模拟被测逻辑依赖的行为：唯一约束、覆盖写语义、按键查询与简单排序。

type mockStore struct {
	users        map[uint]*model.User
	students     map[uint]*model.Student
	faculty      map[uint]*model.Faculty
	subjects     map[uint]*model.Subject
	enrollments  map[uint]*model.Enrollment
	assignments  map[uint]*model.Assignment
	marks        map[uint]*model.Mark
	attendance   map[uint]*model.Attendance
	predictions  map[uint]*model.Prediction
	settings     map[string]*model.SystemSetting
	notification []model.Notification
	nextID       uint

	// 注入式故障：非空时对应仓库的写操作返回该错误
	userDeleteErr    error
	subjectDeleteErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:       make(map[uint]*model.User),
		students:    make(map[uint]*model.Student),
		faculty:     make(map[uint]*model.Faculty),
		subjects:    make(map[uint]*model.Subject),
		enrollments: make(map[uint]*model.Enrollment),
		assignments: make(map[uint]*model.Assignment),
		marks:       make(map[uint]*model.Mark),
		attendance:  make(map[uint]*model.Attendance),
		predictions: make(map[uint]*model.Prediction),
		settings:    make(map[string]*model.SystemSetting),
	}
}

func (s *mockStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *mockStore) repos() *repository.Repository {
	return &repository.Repository{
		User:          &mockUserRepo{s},
		Student:       &mockStudentRepo{s},
		Faculty:       &mockFacultyRepo{s},
		Subject:       &mockSubjectRepo{s},
		Enrollment:    &mockEnrollmentRepo{s},
		Assignment:    &mockAssignmentRepo{s},
		Mark:          &mockMarkRepo{s},
		Attendance:    &mockAttendanceRepo{s},
		Prediction:    &mockPredictionRepo{s},
		SystemSetting: &mockSettingRepo{s},
		Notification:  &mockNotificationRepo{s},
	}
}

// ── 测试数据铺设辅助 ──

func (s *mockStore) addStudent(name string, semester int) *model.Student {
	userID := s.id()
	user := &model.User{ID: userID, UniqueID: "STU" + name, Email: strings.ToLower(name) + "@test.edu", Role: model.RoleStudent}
	s.users[userID] = user
	st := &model.Student{ID: s.id(), UserID: userID, Name: name, Semester: semester, BatchYear: 2025, GraduationStatus: model.GraduationActive}
	s.students[st.ID] = st
	st.User = user
	user.Student = st
	return st
}

func (s *mockStore) addFaculty(name string) *model.Faculty {
	userID := s.id()
	user := &model.User{ID: userID, UniqueID: "FAC" + name, Email: strings.ToLower(name) + "@test.edu", Role: model.RoleFaculty}
	s.users[userID] = user
	f := &model.Faculty{ID: s.id(), UserID: userID, Name: name}
	s.faculty[f.ID] = f
	f.User = user
	user.Faculty = f
	return f
}

func (s *mockStore) addSubject(code, name, subjectType string, semester int) *model.Subject {
	subj := &model.Subject{ID: s.id(), Code: code, Name: name, SubjectType: subjectType, Semester: semester, Credits: 4}
	s.subjects[subj.ID] = subj
	return subj
}

// ────────────────────── UserRepository ──────────────────────

type mockUserRepo struct{ s *mockStore }

func (r *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.s.users {
		if u.UniqueID == user.UniqueID || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) CreateWithProfile(ctx context.Context, user *model.User, student *model.Student, faculty *model.Faculty) error {
	if err := r.Create(ctx, user); err != nil {
		return err
	}
	if student != nil {
		student.ID = r.s.id()
		student.UserID = user.ID
		r.s.students[student.ID] = student
		user.Student = student
	}
	if faculty != nil {
		faculty.ID = r.s.id()
		faculty.UserID = user.ID
		r.s.faculty[faculty.ID] = faculty
		user.Faculty = faculty
	}
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *mockUserRepo) GetByUniqueID(_ context.Context, uniqueID string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.UniqueID == uniqueID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) List(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockUserRepo) Update(_ context.Context, user *model.User) error {
	for _, u := range r.s.users {
		if u.ID != user.ID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) Delete(_ context.Context, id uint) error {
	if r.s.userDeleteErr != nil {
		return r.s.userDeleteErr
	}
	delete(r.s.users, id)
	return nil
}

func (r *mockUserRepo) LatestUniqueID(_ context.Context, prefix string) (string, error) {
	latest := ""
	for _, u := range r.s.users {
		if strings.HasPrefix(u.UniqueID, prefix) && u.UniqueID > latest {
			latest = u.UniqueID
		}
	}
	return latest, nil
}

// ────────────────────── StudentRepository ──────────────────────

type mockStudentRepo struct{ s *mockStore }

func (r *mockStudentRepo) GetByID(_ context.Context, id uint) (*model.Student, error) {
	st, ok := r.s.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return st, nil
}

func (r *mockStudentRepo) GetByUserID(_ context.Context, userID uint) (*model.Student, error) {
	for _, st := range r.s.students {
		if st.UserID == userID {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockStudentRepo) List(_ context.Context, semester int) ([]model.Student, error) {
	var result []model.Student
	for _, st := range r.s.students {
		if semester == 0 || st.Semester == semester {
			result = append(result, *st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	r.s.students[student.ID] = student
	return nil
}

func (r *mockStudentRepo) UpdateSemester(_ context.Context, studentID uint, semester int) error {
	st, ok := r.s.students[studentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	st.Semester = semester
	return nil
}

func (r *mockStudentRepo) UpdateGraduationStatus(_ context.Context, studentID uint, status string) error {
	st, ok := r.s.students[studentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	st.GraduationStatus = status
	return nil
}

// ────────────────────── FacultyRepository ──────────────────────

type mockFacultyRepo struct{ s *mockStore }

func (r *mockFacultyRepo) GetByID(_ context.Context, id uint) (*model.Faculty, error) {
	f, ok := r.s.faculty[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *mockFacultyRepo) GetByUserID(_ context.Context, userID uint) (*model.Faculty, error) {
	for _, f := range r.s.faculty {
		if f.UserID == userID {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockFacultyRepo) List(_ context.Context) ([]model.Faculty, error) {
	var result []model.Faculty
	for _, f := range r.s.faculty {
		result = append(result, *f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockFacultyRepo) Update(_ context.Context, faculty *model.Faculty) error {
	r.s.faculty[faculty.ID] = faculty
	return nil
}

// ────────────────────── SubjectRepository ──────────────────────

type mockSubjectRepo struct{ s *mockStore }

func (r *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	for _, s := range r.s.subjects {
		if s.Code == subject.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	subject.ID = r.s.id()
	r.s.subjects[subject.ID] = subject
	return nil
}

func (r *mockSubjectRepo) GetByID(_ context.Context, id uint) (*model.Subject, error) {
	subj, ok := r.s.subjects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return subj, nil
}

func (r *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, subj := range r.s.subjects {
		if subj.Code == code {
			return subj, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockSubjectRepo) List(_ context.Context, semester int) ([]model.Subject, error) {
	var result []model.Subject
	for _, subj := range r.s.subjects {
		if semester == 0 || subj.Semester == semester {
			result = append(result, *subj)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Semester != result[j].Semester {
			return result[i].Semester < result[j].Semester
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *mockSubjectRepo) ListDefaultForSemester(_ context.Context, semester int) ([]model.Subject, error) {
	var theory, labs []model.Subject
	for _, subj := range r.s.subjects {
		if subj.Semester != semester {
			continue
		}
		switch subj.SubjectType {
		case model.SubjectTheory:
			theory = append(theory, *subj)
		case model.SubjectLab:
			labs = append(labs, *subj)
		}
	}
	sort.Slice(theory, func(i, j int) bool { return theory[i].Name < theory[j].Name })
	sort.Slice(labs, func(i, j int) bool { return labs[i].Name < labs[j].Name })
	if len(theory) > 6 {
		theory = theory[:6]
	}
	if len(labs) > 2 {
		labs = labs[:2]
	}
	return append(theory, labs...), nil
}

func (r *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	r.s.subjects[subject.ID] = subject
	return nil
}

func (r *mockSubjectRepo) Delete(_ context.Context, id uint) error {
	if r.s.subjectDeleteErr != nil {
		return r.s.subjectDeleteErr
	}
	delete(r.s.subjects, id)
	return nil
}

// ────────────────────── EnrollmentRepository ──────────────────────

type mockEnrollmentRepo struct{ s *mockStore }

func (r *mockEnrollmentRepo) find(studentID, subjectID uint, year int) *model.Enrollment {
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && e.SubjectID == subjectID && e.AcademicYear == year {
			return e
		}
	}
	return nil
}

func (r *mockEnrollmentRepo) InsertIgnore(_ context.Context, e *model.Enrollment) (bool, error) {
	if existing := r.find(e.StudentID, e.SubjectID, e.AcademicYear); existing != nil {
		*e = *existing
		return false, nil
	}
	e.ID = r.s.id()
	e.CreatedAt = time.Now()
	r.s.enrollments[e.ID] = e
	return true, nil
}

func (r *mockEnrollmentRepo) Delete(_ context.Context, studentID, subjectID uint, year int) (bool, error) {
	if existing := r.find(studentID, subjectID, year); existing != nil {
		delete(r.s.enrollments, existing.ID)
		return true, nil
	}
	return false, nil
}

func (r *mockEnrollmentRepo) DeleteByStudentSemesterYear(_ context.Context, studentID uint, semester, year int) (int64, error) {
	var removed int64
	for id, e := range r.s.enrollments {
		if e.StudentID != studentID || e.AcademicYear != year {
			continue
		}
		subj, ok := r.s.subjects[e.SubjectID]
		if ok && subj.Semester == semester {
			delete(r.s.enrollments, id)
			removed++
		}
	}
	return removed, nil
}

func (r *mockEnrollmentRepo) Exists(_ context.Context, studentID, subjectID uint, year int) (bool, error) {
	return r.find(studentID, subjectID, year) != nil, nil
}

func (r *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID uint, year int) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && (year == 0 || e.AcademicYear == year) {
			item := *e
			item.Subject = r.s.subjects[e.SubjectID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockEnrollmentRepo) ListBySubject(_ context.Context, subjectID uint, year int) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range r.s.enrollments {
		if e.SubjectID == subjectID && (year == 0 || e.AcademicYear == year) {
			item := *e
			item.Student = r.s.students[e.StudentID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockEnrollmentRepo) StatsByYear(_ context.Context, year int) ([]repository.EnrollmentStatRow, error) {
	type agg struct {
		total    int64
		students map[uint]struct{}
		subjects map[uint]struct{}
	}
	bySemester := make(map[int]*agg)
	for _, e := range r.s.enrollments {
		if e.AcademicYear != year {
			continue
		}
		subj, ok := r.s.subjects[e.SubjectID]
		if !ok {
			continue
		}
		a := bySemester[subj.Semester]
		if a == nil {
			a = &agg{students: make(map[uint]struct{}), subjects: make(map[uint]struct{})}
			bySemester[subj.Semester] = a
		}
		a.total++
		a.students[e.StudentID] = struct{}{}
		a.subjects[e.SubjectID] = struct{}{}
	}

	var rows []repository.EnrollmentStatRow
	for semester, a := range bySemester {
		rows = append(rows, repository.EnrollmentStatRow{
			Semester:         semester,
			TotalEnrollments: a.total,
			DistinctStudents: int64(len(a.students)),
			DistinctSubjects: int64(len(a.subjects)),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Semester < rows[j].Semester })
	return rows, nil
}

// ────────────────────── AssignmentRepository ──────────────────────

type mockAssignmentRepo struct{ s *mockStore }

func (r *mockAssignmentRepo) find(facultyID, subjectID uint, year int) *model.Assignment {
	for _, a := range r.s.assignments {
		if a.FacultyID == facultyID && a.SubjectID == subjectID && a.AcademicYear == year {
			return a
		}
	}
	return nil
}

func (r *mockAssignmentRepo) InsertIgnore(_ context.Context, a *model.Assignment) (bool, error) {
	if existing := r.find(a.FacultyID, a.SubjectID, a.AcademicYear); existing != nil {
		*a = *existing
		return false, nil
	}
	a.ID = r.s.id()
	a.CreatedAt = time.Now()
	r.s.assignments[a.ID] = a
	return true, nil
}

func (r *mockAssignmentRepo) Delete(_ context.Context, facultyID, subjectID uint, year int) (bool, error) {
	if existing := r.find(facultyID, subjectID, year); existing != nil {
		delete(r.s.assignments, existing.ID)
		return true, nil
	}
	return false, nil
}

func (r *mockAssignmentRepo) Exists(_ context.Context, facultyID, subjectID uint, year int) (bool, error) {
	return r.find(facultyID, subjectID, year) != nil, nil
}

func (r *mockAssignmentRepo) ListByFaculty(_ context.Context, facultyID uint, year int) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range r.s.assignments {
		if a.FacultyID == facultyID && (year == 0 || a.AcademicYear == year) {
			item := *a
			item.Subject = r.s.subjects[a.SubjectID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockAssignmentRepo) ListBySubject(_ context.Context, subjectID uint, year int) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range r.s.assignments {
		if a.SubjectID == subjectID && (year == 0 || a.AcademicYear == year) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ────────────────────── MarkRepository ──────────────────────

type mockMarkRepo struct{ s *mockStore }

func (r *mockMarkRepo) Upsert(_ context.Context, m *model.Mark) error {
	for _, existing := range r.s.marks {
		if existing.StudentID == m.StudentID && existing.SubjectID == m.SubjectID && existing.ExamType == m.ExamType {
			// 覆盖写只更新分数，faculty_id / created_at 保持首次值
			existing.MarksObtained = m.MarksObtained
			existing.MaxMarks = m.MaxMarks
			*m = *existing
			return nil
		}
	}
	m.ID = r.s.id()
	m.CreatedAt = time.Now()
	r.s.marks[m.ID] = m
	return nil
}

func (r *mockMarkRepo) GetByKey(_ context.Context, studentID, subjectID uint, examType string) (*model.Mark, error) {
	for _, m := range r.s.marks {
		if m.StudentID == studentID && m.SubjectID == subjectID && m.ExamType == examType {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockMarkRepo) ListByStudent(_ context.Context, studentID uint) ([]model.Mark, error) {
	var result []model.Mark
	for _, m := range r.s.marks {
		if m.StudentID == studentID {
			item := *m
			item.Subject = r.s.subjects[m.SubjectID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SubjectID != result[j].SubjectID {
			return result[i].SubjectID < result[j].SubjectID
		}
		return result[i].ExamType < result[j].ExamType
	})
	return result, nil
}

func (r *mockMarkRepo) ListBySubjectExam(_ context.Context, subjectID uint, examType string) ([]model.Mark, error) {
	var result []model.Mark
	for _, m := range r.s.marks {
		if m.SubjectID == subjectID && m.ExamType == examType {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

func (r *mockMarkRepo) ListBySubject(_ context.Context, subjectID uint) ([]model.Mark, error) {
	var result []model.Mark
	for _, m := range r.s.marks {
		if m.SubjectID == subjectID {
			item := *m
			item.Student = r.s.students[m.StudentID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StudentID != result[j].StudentID {
			return result[i].StudentID < result[j].StudentID
		}
		return result[i].ExamType < result[j].ExamType
	})
	return result, nil
}

// ────────────────────── AttendanceRepository ──────────────────────

type mockAttendanceRepo struct{ s *mockStore }

func (r *mockAttendanceRepo) Upsert(_ context.Context, a *model.Attendance) error {
	for _, existing := range r.s.attendance {
		if existing.StudentID == a.StudentID && existing.SubjectID == a.SubjectID {
			// 覆盖写刷新计数与录入教师（last-write-wins）
			existing.TotalClasses = a.TotalClasses
			existing.AttendedClasses = a.AttendedClasses
			existing.FacultyID = a.FacultyID
			existing.UpdatedAt = time.Now()
			*a = *existing
			return nil
		}
	}
	a.ID = r.s.id()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.s.attendance[a.ID] = a
	return nil
}

func (r *mockAttendanceRepo) GetByKey(_ context.Context, studentID, subjectID uint) (*model.Attendance, error) {
	for _, a := range r.s.attendance {
		if a.StudentID == studentID && a.SubjectID == subjectID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockAttendanceRepo) ListByStudent(_ context.Context, studentID uint) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range r.s.attendance {
		if a.StudentID == studentID {
			item := *a
			item.Subject = r.s.subjects[a.SubjectID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectID < result[j].SubjectID })
	return result, nil
}

func (r *mockAttendanceRepo) ListBySubject(_ context.Context, subjectID uint) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range r.s.attendance {
		if a.SubjectID == subjectID {
			item := *a
			item.Student = r.s.students[a.StudentID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

// ────────────────────── PredictionRepository ──────────────────────

type mockPredictionRepo struct{ s *mockStore }

func (r *mockPredictionRepo) Upsert(_ context.Context, p *model.Prediction) error {
	for _, existing := range r.s.predictions {
		if existing.StudentID == p.StudentID && existing.SubjectID == p.SubjectID {
			// 批量预测不触碰可见性标志
			existing.PredictedMarks = p.PredictedMarks
			existing.ConfidenceScore = p.ConfidenceScore
			existing.InputFeatures = p.InputFeatures
			existing.UpdatedAt = time.Now()
			*p = *existing
			return nil
		}
	}
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.s.predictions[p.ID] = p
	return nil
}

func (r *mockPredictionRepo) GetByKey(_ context.Context, studentID, subjectID uint) (*model.Prediction, error) {
	for _, p := range r.s.predictions {
		if p.StudentID == studentID && p.SubjectID == subjectID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockPredictionRepo) ListByStudent(_ context.Context, studentID uint, onlyVisible bool) ([]model.Prediction, error) {
	var result []model.Prediction
	for _, p := range r.s.predictions {
		if p.StudentID != studentID {
			continue
		}
		if onlyVisible && !p.IsVisible {
			continue
		}
		item := *p
		item.Subject = r.s.subjects[p.SubjectID]
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectID < result[j].SubjectID })
	return result, nil
}

func (r *mockPredictionRepo) ListBySubject(_ context.Context, subjectID uint) ([]model.Prediction, error) {
	var result []model.Prediction
	for _, p := range r.s.predictions {
		if p.SubjectID == subjectID {
			item := *p
			item.Student = r.s.students[p.StudentID]
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

func (r *mockPredictionRepo) SetVisibilityBySubject(_ context.Context, subjectID uint, visible bool) (int64, error) {
	var affected int64
	for _, p := range r.s.predictions {
		if p.SubjectID == subjectID {
			p.IsVisible = visible
			affected++
		}
	}
	return affected, nil
}

func (r *mockPredictionRepo) Delete(_ context.Context, studentID, subjectID uint) (bool, error) {
	for id, p := range r.s.predictions {
		if p.StudentID == studentID && p.SubjectID == subjectID {
			delete(r.s.predictions, id)
			return true, nil
		}
	}
	return false, nil
}

// ────────────────────── SystemSettingRepository ──────────────────────

type mockSettingRepo struct{ s *mockStore }

func (r *mockSettingRepo) Get(_ context.Context, key string) (*model.SystemSetting, error) {
	setting, ok := r.s.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return setting, nil
}

func (r *mockSettingRepo) Set(_ context.Context, setting *model.SystemSetting) error {
	if existing, ok := r.s.settings[setting.SettingKey]; ok {
		existing.Value = setting.Value
		existing.Description = setting.Description
		existing.UpdatedAt = time.Now()
		*setting = *existing
		return nil
	}
	setting.ID = r.s.id()
	setting.CreatedAt = time.Now()
	setting.UpdatedAt = setting.CreatedAt
	r.s.settings[setting.SettingKey] = setting
	return nil
}

func (r *mockSettingRepo) List(_ context.Context) ([]model.SystemSetting, error) {
	var result []model.SystemSetting
	for _, setting := range r.s.settings {
		result = append(result, *setting)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SettingKey < result[j].SettingKey })
	return result, nil
}

// ────────────────────── NotificationRepository ──────────────────────

type mockNotificationRepo struct{ s *mockStore }

func (r *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	n.ID = r.s.id()
	n.CreatedAt = time.Now()
	r.s.notification = append(r.s.notification, *n)
	return nil
}

func (r *mockNotificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	for i := range ns {
		if err := r.Create(ctx, &ns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *mockNotificationRepo) ListByUser(_ context.Context, userID uint, unreadOnly bool) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range r.s.notification {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *mockNotificationRepo) MarkRead(_ context.Context, id, userID uint) (bool, error) {
	for i := range r.s.notification {
		if r.s.notification[i].ID == id && r.s.notification[i].UserID == userID {
			r.s.notification[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *mockNotificationRepo) MarkAllRead(_ context.Context, userID uint) (int64, error) {
	var updated int64
	for i := range r.s.notification {
		if r.s.notification[i].UserID == userID && !r.s.notification[i].IsRead {
			r.s.notification[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

// ── Token 黑名单（内存版）──

type mockBlacklist struct {
	entries map[string]bool
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]bool)}
}

func (b *mockBlacklist) BlacklistToken(_ context.Context, jti string, _ time.Duration) error {
	b.entries[jti] = true
	return nil
}

func (b *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return b.entries[jti], nil
}

// [自证通过] internal/service/mock_repos_test.go
