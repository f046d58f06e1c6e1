package tst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkOrder(t *testing.T) {
	tree := sampleTree()

	var visited []string
	status := Walk(tree, "", func(n *Node, acc string) (string, WalkStatus) {
		path := acc + string(n.Char())
		visited = append(visited, path)
		return path, WalkContinue
	})

	assert.Equal(t, WalkContinue, status)
	// 每个节点访问一次，路径按字典序
	assert.Equal(t, []string{"c", "ca", "car", "cart", "cat", "d", "do", "dog"}, visited)
}

func TestWalkSiblingsKeepParentAccumulator(t *testing.T) {
	tree := NewFromWords([]string{"b", "a", "c"})

	accs := make(map[rune]int)
	Walk(tree, 0, func(n *Node, depth int) (int, WalkStatus) {
		accs[n.Char()] = depth
		return depth + 1, WalkContinue
	})

	assert.Equal(t, map[rune]int{'a': 0, 'b': 0, 'c': 0}, accs)
}

func TestWalkSkipChildren(t *testing.T) {
	tree := sampleTree()

	var visited []string
	Walk(tree, "", func(n *Node, acc string) (string, WalkStatus) {
		path := acc + string(n.Char())
		visited = append(visited, path)
		if path == "car" {
			return path, WalkSkipChildren
		}
		return path, WalkContinue
	})

	assert.Equal(t, []string{"c", "ca", "car", "cat", "d", "do", "dog"}, visited)
}

func TestWalkStop(t *testing.T) {
	tree := sampleTree()

	var visited []string
	status := Walk(tree, "", func(n *Node, acc string) (string, WalkStatus) {
		path := acc + string(n.Char())
		visited = append(visited, path)
		if path == "cart" {
			return path, WalkStop
		}
		return path, WalkContinue
	})

	assert.Equal(t, WalkStop, status)
	assert.Equal(t, []string{"c", "ca", "car", "cart"}, visited)
}

func TestWalkEmptyTree(t *testing.T) {
	calls := 0
	status := Walk(New(), "", func(n *Node, acc string) (string, WalkStatus) {
		calls++
		return acc, WalkContinue
	})
	assert.Equal(t, WalkContinue, status)
	assert.Zero(t, calls)
}
