package rectpack

import (
	"errors"
	"math"
)

// MaxArea 是打包区域允许的最大像素数。图集缓冲区按 int32 寻址，
// 超过这个面积的结果无法分配。
const MaxArea = math.MaxInt32

var (
	// ErrInvalidArgument 表示输入参数非法（负的间距、空矩形、长度不一致）。
	ErrInvalidArgument = errors.New("rectpack: invalid argument")

	// ErrCapacityExceeded 表示打包区域超过了 MaxArea。
	ErrCapacityExceeded = errors.New("rectpack: packed area exceeds capacity")
)
