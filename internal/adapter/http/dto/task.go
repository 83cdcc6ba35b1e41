package dto

type TaskItem struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Status      string   `json:"status"`
	StatusLabel string   `json:"status_label"`
	DueDate     *string  `json:"due_date,omitempty"`
	DueTime     *string  `json:"due_time,omitempty"`
	CreatedAt   string   `json:"created_at"`
	Highlight   string   `json:"highlight"`
	Tags        []uint64 `json:"tags"`
	TagNames    []string `json:"tags_names"`
}

// TaskForm is the non-JSON create/edit payload posted by the task pages.
// Tags arrive as one comma-separated string.
type TaskForm struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description" binding:"max=65535"`
	Status      string `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     string `form:"due_date" binding:"omitempty,datetime=2006-01-02"`
	DueTime     string `form:"due_time" binding:"omitempty,datetime=15:04"`
	TagsInput   string `form:"tags_input"`
}

// UpdateStatusRequest deliberately skips oneof validation so unknown values
// reach the service and come back as a dedicated invalid-status error.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateStatusResponse struct {
	Success        bool   `json:"success"`
	NewStatusLabel string `json:"new_status_display,omitempty"`
	Error          string `json:"error,omitempty"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	Status      *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     *string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	DueTime     *string  `json:"due_time" binding:"omitempty,datetime=15:04"`
	TagsNames   []string `json:"tags_names" binding:"omitempty,dive,max=50"`
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	Status      *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     *string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	DueTime     *string  `json:"due_time" binding:"omitempty,datetime=15:04"`
	TagsNames   []string `json:"tags_names" binding:"omitempty,dive,max=50"`
}
