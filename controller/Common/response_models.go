package controller

type ResponseFollowCount struct {
	NovelID     int64 `json:"novel_id,string"`
	FollowCount int64 `json:"follow_count"`
}

type ResponseCommentLike struct {
	CommentID int64 `json:"comment_id,string"`
	Liked     bool  `json:"liked"`
}

type ResponseTrendingNovels struct {
	NovelIDs []string `json:"novel_ids"`
}
