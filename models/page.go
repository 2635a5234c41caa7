package models

// Page 分页响应，评论和回复列表共用同一结构
// page 从 0 开始计数
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int64 `json:"totalPages"`
	Size             int64 `json:"size"`
	Number           int64 `json:"number"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	NumberOfElements int64 `json:"numberOfElements"`
}

func NewPage[T any](content []T, page, size, total int64) *Page[T] {
	if content == nil {
		content = make([]T, 0)
	}
	totalPages := int64(0)
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return &Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             size,
		Number:           page,
		First:            page == 0,
		Last:             page >= totalPages-1,
		NumberOfElements: int64(len(content)),
	}
}
