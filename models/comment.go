package models

// 评论目标类型
const (
	TargetTypeNovel int8 = iota + 1
)

// 评论层级，回复的 parent 一定是根评论，最多两层
const (
	LevelRoot int8 = iota
	LevelReply
)

// Comment 根评论或回复，parent_id 为空表示根评论
type Comment struct {
	ID              int64  `gorm:"primaryKey" json:"id,string"`
	UserID          int64  `gorm:"not null;index" json:"user_id,string"`
	TargetType      int8   `gorm:"not null" json:"target_type"`
	NovelID         *int64 `gorm:"index:idx_comment_novel" json:"novel_id,string"`
	ParentID        *int64 `gorm:"index:idx_comment_parent" json:"parent_id,string"`
	Level           int8   `gorm:"not null;default:0" json:"level"`
	ReplyToID       *int64 `json:"reply_to_id,string"`
	ReplyToUserName string `gorm:"type:varchar(64)" json:"reply_to_user_name"`
	Content         string `gorm:"type:varchar(8192);not null" json:"content"`
	LikeCount       int64  `gorm:"not null;default:0" json:"like_count"`
	ReplyCount      int64  `gorm:"not null;default:0" json:"reply_count"`
	CreatedAt       Time   `gorm:"type:timestamp default CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       Time   `gorm:"type:timestamp default CURRENT_TIMESTAMP" json:"updated_at"`
}

func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

// CommentUserLikeMapping 记录一个 comment 有哪些用户点过赞
type CommentUserLikeMapping struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	CommentID int64 `gorm:"not null;uniqueIndex:idx_cid_uid,priority:1" json:"comment_id,string"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_cid_uid,priority:2" json:"user_id,string"`
	CreatedAt Time  `gorm:"type:timestamp default CURRENT_TIMESTAMP" json:"created_at"`
}

type CommentDTO struct {
	CommentID       int64  `json:"comment_id,string"`
	UserID          int64  `json:"user_id,string"`
	TargetType      int8   `json:"target_type"`
	NovelID         *int64 `json:"novel_id,string"`
	ParentID        *int64 `json:"parent_id,string"`
	Level           int8   `json:"level"`
	ReplyToID       *int64 `json:"reply_to_id,string"`
	ReplyToUserName string `json:"reply_to_user_name,omitempty"`
	Content         string `json:"content"`
	LikeCount       int64  `json:"like_count"`
	ReplyCount      int64  `json:"reply_count"`
	CreatedAt       Time   `json:"created_at"`
	UpdatedAt       Time   `json:"updated_at"`
}

func (c *Comment) ToDTO() *CommentDTO {
	if c == nil {
		return nil
	}
	return &CommentDTO{
		CommentID:       c.ID,
		UserID:          c.UserID,
		TargetType:      c.TargetType,
		NovelID:         c.NovelID,
		ParentID:        c.ParentID,
		Level:           c.Level,
		ReplyToID:       c.ReplyToID,
		ReplyToUserName: c.ReplyToUserName,
		Content:         c.Content,
		LikeCount:       c.LikeCount,
		ReplyCount:      c.ReplyCount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
