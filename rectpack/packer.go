package rectpack

import (
	"fmt"
	"math/bits"
	"slices"
)

// item 是一个待打包的矩形：slot 为加上两侧间距后的尺寸，index 为插入顺序。
type item struct {
	size  Size
	slot  Size
	index int
}

// Packer 包含2D矩形包装器的状态。
//
// 打包区域的宽高始终是2的幂。所有尺寸先按 sortFunc 排序（默认按面积降序，
// 面积相同时按插入顺序），再依次放入一棵二叉划分树；只要有一个放不下，
// 就把较短的一边加倍并从头重新打包。
//
// Packer 不是并发安全的。
type Packer struct {
	// items 包含所有已插入的尺寸，按插入顺序保存
	items []item

	// packed 是上一次 Pack 的结果，与 items 一一对应
	packed []Rect

	// free 是上一次 Pack 结束后树中空闲的叶子区域
	free []Rect

	// sortFunc 定义在排序时用于比较尺寸大小的函数
	//
	// 默认值：SortArea
	sortFunc SortFunc

	// padding 是每个矩形四周预留的空隙
	padding int

	size     Size
	usedArea int
}

// NewPacker 创建一个使用指定间距的包装器。
// 间距为负数时返回 ErrInvalidArgument。
func NewPacker(padding int) (*Packer, error) {
	if padding < 0 {
		return nil, fmt.Errorf("%w: negative padding %d", ErrInvalidArgument, padding)
	}
	if padding > MaxArea/4 {
		return nil, fmt.Errorf("%w: padding %d", ErrCapacityExceeded, padding)
	}
	return &Packer{
		sortFunc: SortArea,
		padding:  padding,
	}, nil
}

// Padding 返回包装器使用的间距。
func (p *Packer) Padding() int {
	return p.padding
}

// Sorter 设置用于排序的比较函数，传入 nil 恢复为 SortArea。
func (p *Packer) Sorter(compare SortFunc) {
	if compare == nil {
		compare = SortArea
	}
	p.sortFunc = compare
}

// Insert 暂存多个尺寸，等待 Pack 时统一打包。
func (p *Packer) Insert(sizes ...Size) {
	for _, size := range sizes {
		p.items = append(p.items, item{
			size:  size,
			slot:  Size{Width: size.Width + 2*p.padding, Height: size.Height + 2*p.padding, ID: size.ID},
			index: len(p.items),
		})
	}
}

// InsertSize 暂存指定ID和尺寸的矩形。
func (p *Packer) InsertSize(id, width, height int) {
	p.Insert(NewSizeID(id, width, height))
}

// Len 返回已插入的尺寸数量。
func (p *Packer) Len() int {
	return len(p.items)
}

// Pack 打包所有已插入的尺寸。
// 失败时（ErrInvalidArgument 或 ErrCapacityExceeded）不会保留任何部分结果。
func (p *Packer) Pack() error {
	p.reset()
	if len(p.items) == 0 {
		return nil
	}

	var width, height int
	for _, it := range p.items {
		if it.size.Width <= 0 || it.size.Height <= 0 {
			return fmt.Errorf("%w: rect %d has size %s", ErrInvalidArgument, it.index, it.size.String())
		}
		if it.size.Width > MaxArea-2*p.padding || it.size.Height > MaxArea-2*p.padding {
			return fmt.Errorf("%w: rect %d has size %s", ErrCapacityExceeded, it.index, it.size.String())
		}
		width = max(width, it.slot.Width)
		height = max(height, it.slot.Height)
	}
	width, height = NextPowerOfTwo(width), NextPowerOfTwo(height)

	order := slices.Clone(p.items)
	slices.SortFunc(order, byIndex(p.sortFunc))

	positions := make([]Point, len(p.items))
	var root *packNode
	for attempt := 1; ; attempt++ {
		if !fits(width, height) {
			return fmt.Errorf("%w: %dx%d", ErrCapacityExceeded, width, height)
		}
		if root = tryPack(order, width, height, positions); root != nil {
			Logger().Debug("rectpack: packed",
				"rects", len(order), "width", width, "height", height, "attempts", attempt)
			break
		}
		// 较短的一边加倍；相等时加倍高度
		if width < height {
			width <<= 1
		} else {
			height <<= 1
		}
	}

	p.size = NewSize(width, height)
	p.packed = make([]Rect, len(p.items))
	for i, it := range p.items {
		p.packed[i] = Rect{
			Point: Point{X: positions[i].X + p.padding, Y: positions[i].Y + p.padding},
			Size:  it.size,
		}
		p.usedArea += it.size.Area()
	}
	p.free = root.freeLeaves()
	return nil
}

// tryPack 在 width x height 的区域内按 order 依次放置，全部放下时返回树根，
// 否则返回 nil。positions 按原始下标写入每个 slot 的左上角。
func tryPack(order []item, width, height int, positions []Point) *packNode {
	root := newPackNode(width, height)
	for _, it := range order {
		pos, ok := root.insert(it.slot, it.index)
		if !ok {
			return nil
		}
		positions[it.index] = pos
	}
	return root
}

func fits(width, height int) bool {
	return uint64(width)*uint64(height) <= MaxArea
}

func (p *Packer) reset() {
	p.packed = p.packed[:0]
	p.free = nil
	p.size = Size{}
	p.usedArea = 0
}

// Rects 返回上一次打包的结果，下标与插入顺序一致。
// 返回的切片由包装器管理，如需修改请复制。
func (p *Packer) Rects() []Rect {
	if p.packed == nil {
		return []Rect{}
	}
	return p.packed
}

// Size 返回打包区域的尺寸，宽高都是2的幂；没有任何矩形时为 0x0。
func (p *Packer) Size() Size {
	return p.size
}

// FreeRects 返回打包区域中未使用的叶子区域（包含间距坐标系）。
func (p *Packer) FreeRects() []Rect {
	return p.free
}

// Used 计算空间利用率(0.0-1.0)，只统计矩形本身，不含间距。
func (p *Packer) Used() float64 {
	if p.size.Area() == 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.size.Area())
}

// Map 创建矩形ID到矩形对象的映射
func (p *Packer) Map() map[int]Rect {
	mapping := make(map[int]Rect, len(p.packed))
	for _, rect := range p.packed {
		mapping[rect.ID] = rect
	}
	return mapping
}

// Clear 清除所有已插入的尺寸和打包结果，保留间距和排序配置。
func (p *Packer) Clear() {
	p.items = p.items[:0]
	p.reset()
}

// Pack 把 rects 打包进最小的2的幂区域。
//
// 返回的矩形与输入一一对应，只有位置改变；每个矩形四周留出 padding 的空隙，
// 因此向外扩展 padding 后任意两个矩形都不重叠。
func Pack(rects []Rect, padding int) ([]Rect, Size, error) {
	p, err := NewPacker(padding)
	if err != nil {
		return nil, Size{}, err
	}
	for _, r := range rects {
		p.Insert(r.Size)
	}
	if err := p.Pack(); err != nil {
		return nil, Size{}, err
	}
	return p.Rects(), p.Size(), nil
}

// NextPowerOfTwo 返回不小于 v 的最小2的幂，v <= 1 时返回 1。
func NextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}
