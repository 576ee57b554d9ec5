package dto

// ── 系统设置 / 通知 DTO ──

// SetSettingRequest 设置写入请求
type SetSettingRequest struct {
	Key         string  `json:"key"         binding:"required,min=1,max=50"`
	Value       string  `json:"value"       binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// SettingResponse 设置响应
type SettingResponse struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        uint   `json:"id"`
	NotifType string `json:"notif_type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
