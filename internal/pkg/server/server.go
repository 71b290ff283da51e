package server

import (
	"crypto/rand"
	"encoding/hex"
)

var id string

func init() {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	id = hex.EncodeToString(buf)
}

// ID 进程实例标识，进程启动时生成
func ID() string {
	return id
}
