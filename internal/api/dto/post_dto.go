package dto

import "time"

type CreatePostDTO struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

type PostDTO struct {
	ID                  uint64     `json:"id"`
	PublicID            *uint64    `json:"public_id,omitempty"`
	UserID              uint64     `json:"user_id"`
	Text                string     `json:"text"`
	InReplyToPostID     *uint64    `json:"in_reply_to_post_id,omitempty"`
	InReplyToUserID     *uint64    `json:"in_reply_to_user_id,omitempty"`
	InReplyToScreenName *string    `json:"in_reply_to_screen_name,omitempty"`
	RepostOfID          *uint64    `json:"repost_of_id,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
}
