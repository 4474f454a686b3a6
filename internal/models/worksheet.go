package models

import (
	"time"
)

// Worksheet 习题模型
// 字段名沿用前端约定的 camelCase,CreatedAt 序列化为 ISO-8601 字符串
type Worksheet struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	Grade        string    `json:"grade"`
	Description  string    `json:"description"`
	Difficulty   string    `json:"difficulty"`
	Pages        *int      `json:"pages,omitempty"`
	FileURL      string    `json:"fileUrl"`
	OriginalName string    `json:"originalName"`
	UploadedBy   uint      `json:"uploadedBy"`
	UploaderName string    `json:"uploaderName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// 难度取值(自由字符串,客户端固定提供这三种)
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)
