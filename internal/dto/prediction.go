package dto

// ── ML 预测 DTO ──

// PredictionItem 批量预测中的单条记录（由外部预测服务产出）
type PredictionItem struct {
	StudentID       uint                   `json:"student_id"       binding:"required"`
	SubjectID       uint                   `json:"subject_id"       binding:"required"`
	PredictedMarks  *float64               `json:"predicted_marks"  binding:"required"`
	ConfidenceScore *float64               `json:"confidence_score" binding:"omitempty"`
	InputFeatures   map[string]interface{} `json:"input_features"   binding:"omitempty"`
}

// BatchPredictionRequest 批量预测写入请求
type BatchPredictionRequest struct {
	Predictions []PredictionItem `json:"predictions" binding:"required,min=1"`
}

// PredictionResultItem 批量预测的单条结果（保持输入顺序）
type PredictionResultItem struct {
	Index     int    `json:"index"`
	StudentID uint   `json:"student_id"`
	SubjectID uint   `json:"subject_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// ToggleVisibilityRequest 预测可见性切换请求（导师操作，按科目批量）
type ToggleVisibilityRequest struct {
	SubjectID uint  `json:"subject_id" binding:"required"`
	Visible   *bool `json:"visible"    binding:"required"`
}

// PredictionResponse 预测记录响应
type PredictionResponse struct {
	ID              uint     `json:"id"`
	StudentID       uint     `json:"student_id"`
	SubjectID       uint     `json:"subject_id"`
	SubjectName     string   `json:"subject_name,omitempty"`
	PredictedMarks  float64  `json:"predicted_marks"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	IsVisible       bool     `json:"is_visible"`
	UpdatedAt       string   `json:"updated_at"`
}
