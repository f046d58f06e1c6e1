package tst

// WalkStatus 遍历回调的返回状态
type WalkStatus int

const (
	// WalkContinue 继续遍历，middle子树使用回调返回的累积值
	WalkContinue WalkStatus = iota
	// WalkSkipChildren 跳过当前节点的middle子树，left/right照常遍历
	WalkSkipChildren
	// WalkStop 立即终止整个遍历
	WalkStop
)

// VisitFunc 节点访问函数
// acc为到达该节点时的累积值（不含该节点），返回值只传给middle子树
type VisitFunc[T any] func(n *Node, acc T) (T, WalkStatus)

// Walk 深度优先遍历整棵树，顺序为 left -> 自身 -> middle -> right
// left/right 子树沿用父节点收到的累积值
func Walk[T any](t *Tree, init T, fn VisitFunc[T]) WalkStatus {
	return walk(t.root, init, fn)
}

func walk[T any](n *Node, acc T, fn VisitFunc[T]) WalkStatus {
	// 同一深度的兄弟节点沿right链迭代，递归深度只随left/middle增长
	for n != nil {
		if walk(n.left, acc, fn) == WalkStop {
			return WalkStop
		}

		next, status := fn(n, acc)
		switch status {
		case WalkStop:
			return WalkStop
		case WalkContinue:
			if walk(n.middle, next, fn) == WalkStop {
				return WalkStop
			}
		}

		n = n.right
	}
	return WalkContinue
}
