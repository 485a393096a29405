package rectpack

import "cmp"

// SortFunc 定义矩形尺寸比较函数的原型
// 返回值:
//
//	-1: a 排在 b 之前
//	 0: 相等（保持插入顺序）
//	 1: a 排在 b 之后
type SortFunc func(a, b Size) int

// SortArea 按矩形面积降序排序(从大到小)
func SortArea(a, b Size) int {
	return cmp.Compare(b.Area(), a.Area())
}

// SortMaxSide 按矩形最长边降序排序(从大到小)
func SortMaxSide(a, b Size) int {
	return cmp.Compare(b.MaxSide(), a.MaxSide())
}

// byIndex 在 compare 判定相等时按原始下标升序排列，保证排序结果确定。
func byIndex(compare SortFunc) func(a, b item) int {
	return func(a, b item) int {
		if c := compare(a.size, b.size); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	}
}
