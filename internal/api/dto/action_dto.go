package dto

// ActionDTO 幂等写操作的响应体
type ActionDTO struct {
	OK       bool `json:"ok"`
	Modified bool `json:"modified"`
}
