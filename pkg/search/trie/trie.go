package trie

type TrieNode struct {
	children map[rune]*TrieNode
	isEnd    bool // 是否为某个完整键的结尾
}

// PrefixMatcher 基于map的前缀匹配器，用于语料条目的排除规则
type PrefixMatcher struct {
	root *TrieNode
}

func NewPrefixMatcher(keys []string) *PrefixMatcher {
	m := &PrefixMatcher{root: &TrieNode{children: make(map[rune]*TrieNode)}}
	for _, key := range keys {
		m.Add(key)
	}
	return m
}

// Add 添加一个键，空键忽略
func (m *PrefixMatcher) Add(key string) {
	if key == "" {
		return
	}
	node := m.root
	for _, ch := range key {
		if node.children[ch] == nil {
			node.children[ch] = &TrieNode{children: make(map[rune]*TrieNode)}
		}
		node = node.children[ch]
	}
	node.isEnd = true
}

// MatchAny 是否有某个键是s的前缀
func (m *PrefixMatcher) MatchAny(s string) bool {
	node := m.root
	for _, ch := range s {
		node = node.children[ch]
		if node == nil {
			return false
		}
		if node.isEnd {
			return true
		}
	}
	return false
}
