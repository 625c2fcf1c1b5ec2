package profile

import "errors"

var (
	// ErrUnknownLanguage 语言不在支持集合中，或从未加入过存储
	ErrUnknownLanguage = errors.New("profile: 未知语言")

	// ErrStoreSealed 存储已裁剪，不再接受新的计数
	ErrStoreSealed = errors.New("profile: 存储已裁剪，拒绝写入")
)
