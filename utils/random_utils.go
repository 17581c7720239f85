package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// NewWireDropUID 生成线缆的唯一编号，用于二维码打印
func NewWireDropUID() string {
	id := uuid.New().String()
	// 取前两段，保证标签上可读
	return "WD-" + strings.ToUpper(strings.ReplaceAll(id[:13], "-", ""))
}

// NewStorageKey 生成按日期分区的对象存储key
func NewStorageKey(category string) string {
	return fmt.Sprintf("%s/%s/%s", category, timeNowPartition(), uuid.New().String())
}
