package storage

import (
	"context"
	"io"
)

// Uploader 是媒体文件上传的外部协作者
// 核心只关心“上传成功、拿到一个可访问的URL”，失败就让handler短路返回错误
type Uploader interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
