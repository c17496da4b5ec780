package model

import (
	"time"
)

type Post struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"not null;index:idx_user_id" json:"user_id"`
	Text   string `gorm:"type:varchar(500);not null" json:"text"`

	// PublicID 对外暴露的单调递增编号，创建后由分配器回填
	PublicID *uint64 `gorm:"uniqueIndex:idx_post_public_id" json:"public_id"`

	// 回复/转发/引用链接，创建时写入后不再变更
	InReplyToPostID     *uint64 `gorm:"index:idx_in_reply_to" json:"in_reply_to_post_id"`
	InReplyToUserID     *uint64 `json:"in_reply_to_user_id"`
	InReplyToScreenName *string `gorm:"type:varchar(50)" json:"in_reply_to_screen_name"`
	RepostOfID          *uint64 `gorm:"index:idx_repost_of" json:"repost_of_id"`
	QuotedPostID        *uint64 `json:"quoted_post_id"`

	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
