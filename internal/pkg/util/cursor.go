package util

import (
	"Community/internal/pkg/consts"
)

// NormalizePageSize 0 表示使用默认页大小，超出 [1, MaxPageSize] 返回 false
func NormalizePageSize(size int) (int, bool) {
	if size == 0 {
		return consts.DefaultPageSize, true
	}
	if size < 1 || size > consts.MaxPageSize {
		return 0, false
	}
	return size, true
}

// NextIDCursor 满页即认为还有下一页，游标取本页最后一条的 ID
func NextIDCursor[T any](items []T, size int, idOf func(T) uint64) (*uint64, bool) {
	hasNext := len(items) == size
	if !hasNext || len(items) == 0 {
		return nil, false
	}
	last := idOf(items[len(items)-1])
	return &last, true
}

// NextPageCursor 页码游标，用于无法按 ID 续读的排序
func NextPageCursor(count, size, page int) (*uint64, bool) {
	if count != size || count == 0 {
		return nil, false
	}
	next := uint64(page + 1)
	return &next, true
}
