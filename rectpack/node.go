package rectpack

// packNode 是打包区域二叉树中的一个节点。
// 叶子节点要么空闲，要么被一个矩形（含间距）完全占用；
// 一旦被切分，节点本身不再接收矩形，只有它的子节点可以继续放置。
type packNode struct {
	area     Rect
	child    [2]*packNode
	occupied bool
	index    int
}

func newPackNode(width, height int) *packNode {
	return &packNode{area: NewRect(0, 0, width, height), index: -1}
}

func (n *packNode) isLeaf() bool {
	return n.child[0] == nil
}

// insert 尝试把 slot 放进以 n 为根的子树，成功时返回左上角坐标。
func (n *packNode) insert(slot Size, index int) (Point, bool) {
	if !n.isLeaf() {
		if pos, ok := n.child[0].insert(slot, index); ok {
			return pos, true
		}
		return n.child[1].insert(slot, index)
	}
	if n.occupied || slot.Width > n.area.Width || slot.Height > n.area.Height {
		return Point{}, false
	}
	if slot.Width == n.area.Width && slot.Height == n.area.Height {
		n.occupied = true
		n.index = index
		return n.area.Point, true
	}

	// 沿剩余空间较大的方向切一刀：child[0] 在这个方向上与 slot 等宽(高)，
	// child[1] 是剩余部分。child[0] 最多再被切一次就能精确容纳 slot。
	a := n.area
	dw := a.Width - slot.Width
	dh := a.Height - slot.Height
	if dw > dh {
		n.child[0] = &packNode{area: NewRect(a.X, a.Y, slot.Width, a.Height), index: -1}
		n.child[1] = &packNode{area: NewRect(a.X+slot.Width, a.Y, dw, a.Height), index: -1}
	} else {
		n.child[0] = &packNode{area: NewRect(a.X, a.Y, a.Width, slot.Height), index: -1}
		n.child[1] = &packNode{area: NewRect(a.X, a.Y+slot.Height, a.Width, dh), index: -1}
	}
	return n.child[0].insert(slot, index)
}

// walk 先序遍历整棵树。
func (n *packNode) walk(visit func(*packNode)) {
	visit(n)
	if !n.isLeaf() {
		n.child[0].walk(visit)
		n.child[1].walk(visit)
	}
}

// freeLeaves 收集所有未被占用的叶子区域。
func (n *packNode) freeLeaves() []Rect {
	var free []Rect
	n.walk(func(node *packNode) {
		if node.isLeaf() && !node.occupied {
			free = append(free, node.area)
		}
	})
	return free
}
