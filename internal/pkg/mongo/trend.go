package mongo

import "time"

// TrendModel 某个地区的趋势榜，每轮评分整体替换
type TrendModel struct {
	WOEID     int          `bson:"woeid" json:"woeid"`
	Location  string       `bson:"location" json:"location"`
	Trends    []TrendEntry `bson:"trends" json:"trends"`
	AsOf      time.Time    `bson:"as_of" json:"asOf"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
}

// TrendEntry 榜单上的一条话题
type TrendEntry struct {
	Name   string  `bson:"name" json:"name"`
	Volume int64   `bson:"volume" json:"volume"`
	Score  float64 `bson:"score" json:"score"`
	Query  string  `bson:"query" json:"query"`
}
