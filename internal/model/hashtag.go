package model

import "time"

type Hashtag struct {
	ID        uint64    `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_hashtag_name"`
	Volume    int64     `gorm:"not null;default:0"` // 使用该话题的帖子数
	Score     float64   `gorm:"not null;default:0"` // 最近一轮的热度评分
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Hashtag) TableName() string {
	return "hashtags"
}
