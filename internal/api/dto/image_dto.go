package dto

// ImageCountDTO 图片总数
type ImageCountDTO struct {
	Count int64 `json:"count"`
}
