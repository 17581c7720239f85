package utils

import (
	"fmt"
	"time"
)

// timeNowPartition 返回 yyyy/mm/dd 形式的日期分区
func timeNowPartition() string {
	d := time.Now()
	return fmt.Sprintf("%d/%02d/%02d", d.Year(), d.Month(), d.Day())
}
