package models

// Interaction 每个 (user_id, novel_id) 至多一条记录，由联合唯一索引保证
type Interaction struct {
	ID                   int64  `gorm:"primaryKey" json:"id,string"`
	UserID               int64  `gorm:"not null;uniqueIndex:idx_uid_nid,priority:1;index:idx_interaction_user" json:"user_id,string"`
	NovelID              int64  `gorm:"not null;uniqueIndex:idx_uid_nid,priority:2;index:idx_interaction_novel" json:"novel_id,string"`
	HasFollowing         bool   `gorm:"not null;default:false" json:"has_following"`
	InWishlist           bool   `gorm:"not null;default:false" json:"in_wishlist"`
	Notify               bool   `gorm:"not null;default:false" json:"notify"`
	CurrentChapterNumber *int64 `gorm:"column:current_chapter_number" json:"current_chapter_number"`
	CurrentChapterID     *int64 `gorm:"column:current_chapter_id" json:"current_chapter_id,string"`
	LastReadAt           *Time  `gorm:"type:timestamp" json:"last_read_at"`
	TotalChapterReads    int64  `gorm:"not null;default:0" json:"total_chapter_reads"`
	CreatedAt            Time   `gorm:"type:timestamp default CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            Time   `gorm:"type:timestamp default CURRENT_TIMESTAMP" json:"updated_at"`
}

type InteractionDTO struct {
	UserID               int64  `json:"user_id,string"`
	NovelID              int64  `json:"novel_id,string"`
	HasFollowing         bool   `json:"has_following"`
	InWishlist           bool   `json:"in_wishlist"`
	Notify               bool   `json:"notify"`
	CurrentChapterNumber *int64 `json:"current_chapter_number"`
	CurrentChapterID     *int64 `json:"current_chapter_id,string"`
	LastReadAt           *Time  `json:"last_read_at"`
	TotalChapterReads    int64  `json:"total_chapter_reads"`
	CreatedAt            Time   `json:"created_at"`
	UpdatedAt            Time   `json:"updated_at"`
}

func (i *Interaction) ToDTO() *InteractionDTO {
	if i == nil {
		return nil
	}
	return &InteractionDTO{
		UserID:               i.UserID,
		NovelID:              i.NovelID,
		HasFollowing:         i.HasFollowing,
		InWishlist:           i.InWishlist,
		Notify:               i.Notify,
		CurrentChapterNumber: i.CurrentChapterNumber,
		CurrentChapterID:     i.CurrentChapterID,
		LastReadAt:           i.LastReadAt,
		TotalChapterReads:    i.TotalChapterReads,
		CreatedAt:            i.CreatedAt,
		UpdatedAt:            i.UpdatedAt,
	}
}
