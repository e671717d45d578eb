package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// 防止一页把全表拖回来
	MaxLimit = 100
)

// Params 是分页查询的规整后参数，页码从1开始
type Params struct {
	Page  int
	Limit int
}

// Parse 解析URL查询参数里的page和limit
// 非数字、小于等于0的值一律回退到默认值，而不是报错
func Parse(pageStr, limitStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset “跳过”多少条记录，再开始取数据
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Result 是所有分页列表接口共用的响应结构
type Result struct {
	Items      interface{} `json:"items"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int64       `json:"totalPages"`
}

// NewResult 组装分页结果，totalPages = ceil(totalItems / limit)
// 零条匹配时items保持空切片、两个总数都是0，这是成功而不是错误
func NewResult(items interface{}, totalItems int64, p Params) *Result {
	limit := int64(p.Limit)
	var totalPages int64
	if totalItems > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return &Result{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
