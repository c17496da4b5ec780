package model

import (
	"time"
)

type User struct {
	ID         uint64  `gorm:"primaryKey"`
	ScreenName string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_screen_name"`
	Name       string  `gorm:"type:varchar(50)"`
	Password   *string `gorm:"type:varchar(255)"`
	Location   string  `gorm:"type:varchar(100);default:''"`
	Bio        string  `gorm:"type:varchar(200);default:''"`

	// PublicID 对外暴露的单调递增编号，创建后由分配器回填，回填后不再变更
	PublicID *uint64 `gorm:"uniqueIndex:idx_public_id"`

	// 计数器均为集合基数的缓存投影，只通过显式 +1/-1 维护，从不重算
	FollowersCount  int64 `gorm:"not null;default:0"`
	FriendsCount    int64 `gorm:"not null;default:0"`
	StatusesCount   int64 `gorm:"not null;default:0"`
	FavouritesCount int64 `gorm:"not null;default:0"`

	IsDeleted bool `gorm:"type:tinyint(1);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
