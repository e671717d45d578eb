package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// IsDuplicateEntry 用errors.As检查错误的“根”是不是MySQL的重复键错误
// 错误号 1062 就是 "Duplicate entry"，toggle引擎和播放列表的集合语义都靠它仲裁
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
