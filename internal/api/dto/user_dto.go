package dto

import "time"

type UserDTO struct {
	ID              uint64     `json:"id"`
	PublicID        *uint64    `json:"public_id,omitempty"`
	ScreenName      string     `json:"screen_name"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	Bio             string     `json:"bio"`
	FollowersCount  int64      `json:"followers_count"`
	FriendsCount    int64      `json:"friends_count"`
	StatusesCount   int64      `json:"statuses_count"`
	FavouritesCount int64      `json:"favourites_count"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

type UpdateProfileDTO struct {
	Name     string `json:"name" validate:"max=50"`
	Location string `json:"location" validate:"max=100"`
	Bio      string `json:"bio" validate:"max=200"`
}

type LoginResultDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
