package dto

import (
	"encoding/json"
)

// CreateWorksheetForm 上传习题的multipart表单字段(文件字段单独处理)
// 只有学科和年级是必填;标题缺省时用附件原始文件名
type CreateWorksheetForm struct {
	Title       string `form:"title"`
	Subject     string `form:"subject" binding:"required"`
	Grade       string `form:"grade" binding:"required"`
	Description string `form:"description"`
	Difficulty  string `form:"difficulty"`
	Pages       string `form:"pages"`
}

// UpdateWorksheetRequest 部分更新请求
// 指针字段为nil表示未携带;Pages用RawMessage保留"携带但为空"与"未携带"的区别
type UpdateWorksheetRequest struct {
	Title       *string         `json:"title"`
	Subject     *string         `json:"subject"`
	Grade       *string         `json:"grade"`
	Description *string         `json:"description"`
	Difficulty  *string         `json:"difficulty"`
	Pages       json.RawMessage `json:"pages"`
}
