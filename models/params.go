package models

/*
	存放所有有关请求参数的结构体
*/

/* Interaction */
type ParamReadingProgress struct {
	ChapterNumber int64 `form:"chapterNumber" binding:"required,gte=0"`
	ChapterID     int64 `form:"chapterId" binding:"required"`
}

type ParamInteractionList struct {
	PageNum  int64 `form:"page" binding:"gte=0" example:"0"`         // 页码，从 0 开始
	PageSize int64 `form:"size" binding:"gt=0,lte=100" example:"10"` // 每页条数
}

/* Comment */
type ParamCommentCreate struct {
	TargetType int8   `json:"target_type" binding:"required,oneof=1"`
	NovelID    int64  `json:"novel_id,string" binding:"required"`
	Content    string `json:"content" binding:"required,max=8192"`
}

type ParamReplyCreate struct {
	Content         string `json:"content" binding:"required,max=8192"`
	ReplyToID       int64  `json:"reply_to_id,string"`
	ReplyToUserName string `json:"reply_to_user_name" binding:"max=64"`
}

type ParamCommentUpdate struct {
	Content string `json:"content" binding:"required,max=8192"`
}

type ParamCommentList struct {
	PageNum  int64 `form:"page" binding:"gte=0" example:"0"`
	PageSize int64 `form:"size" binding:"gt=0,lte=100" example:"10"`
}

/* Novel */
type ParamTrending struct {
	K int `form:"k" binding:"gt=0,lte=100" example:"10"`
}
