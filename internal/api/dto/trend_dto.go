package dto

import "time"

type TrendListDTO struct {
	WOEID    int             `json:"woeid"`
	Location string          `json:"location"`
	AsOf     *time.Time      `json:"as_of,omitempty"`
	Trends   []TrendEntryDTO `json:"trends"`
}

type TrendEntryDTO struct {
	Name   string  `json:"name"`
	Volume int64   `json:"tweet_volume"`
	Score  float64 `json:"score"`
	Query  string  `json:"query"`
}
