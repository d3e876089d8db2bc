//go:build !mobile

package utils

import "os"

// IsMobile 是否运行在移动设备上
// 桌面端可通过 SCROLLSTAGE_MOBILE_EMULATE=1 模拟（本地调试触摸输入）
func IsMobile() bool {
	return os.Getenv("SCROLLSTAGE_MOBILE_EMULATE") == "1"
}
