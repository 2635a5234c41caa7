package kafka

type LikeIncr struct {
	CommentID int64 `json:"comment_id,string"`
	Offset    int64 `json:"offset"`
}

type LikeMappingCreate struct {
	CommentID int64 `json:"comment_id,string"`
	UserID    int64 `json:"user_id,string"`
}

type LikeMappingRemove struct {
	CommentID int64 `json:"comment_id,string"`
	UserID    int64 `json:"user_id,string"`
}
