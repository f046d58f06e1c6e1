package tst

// Node 三叉搜索树节点
// left/right 为同一深度上较小/较大的字符，middle 为同一个词的下一个字符
type Node struct {
	char   rune
	left   *Node
	middle *Node
	right  *Node
	isWord bool // 是否有词恰好在此节点结束
}

func (n *Node) Char() rune {
	return n.char
}

func (n *Node) IsWord() bool {
	return n.isWord
}

// Tree 三叉搜索树，先构建后查询，内部不加锁
type Tree struct {
	root      *Node
	wordCount int
	nodeCount int
}

func New() *Tree {
	return &Tree{}
}

// NewFromWords 依次插入words构建树
func NewFromWords(words []string) *Tree {
	t := New()
	for _, w := range words {
		t.Add(w)
	}
	return t
}

// WordCount 返回不同词的数量
func (t *Tree) WordCount() int {
	return t.wordCount
}

// NodeCount 返回已分配的节点数量，只增不减
func (t *Tree) NodeCount() int {
	return t.nodeCount
}

// Add 插入一个词，空串直接忽略
func (t *Tree) Add(word string) {
	runes := []rune(word)
	if len(runes) == 0 {
		return
	}

	p := &t.root
	i := 0
	for {
		if *p == nil {
			*p = &Node{char: runes[i]}
			t.nodeCount++
		}
		n := *p
		switch {
		case runes[i] < n.char:
			p = &n.left
		case runes[i] > n.char:
			p = &n.right
		case i+1 < len(runes):
			p = &n.middle
			i++
		default:
			// 重复插入不重复计数
			if !n.isWord {
				n.isWord = true
				t.wordCount++
			}
			return
		}
	}
}

// landing 按字符逐个匹配，返回最后一个字符所在的节点，不存在返回nil
func (t *Tree) landing(prefix []rune) *Node {
	if len(prefix) == 0 {
		return nil
	}

	n := t.root
	i := 0
	for n != nil {
		switch {
		case prefix[i] < n.char:
			n = n.left
		case prefix[i] > n.char:
			n = n.right
		case i+1 < len(prefix):
			n = n.middle
			i++
		default:
			return n
		}
	}
	return nil
}

// Contains 判断prefix是否存在；wholeWord为true时要求prefix本身是一个完整的词
func (t *Tree) Contains(prefix string, wholeWord bool) bool {
	n := t.landing([]rune(prefix))
	if n == nil {
		return false
	}
	if wholeWord {
		return n.isWord
	}
	return true
}

// PrefixSearch 返回以prefix开头的词，按字典序升序，最多limit个
// prefix本身是词时排在第一位；达到limit后整个遍历立即终止
func (t *Tree) PrefixSearch(prefix string, limit int) []string {
	results := make([]string, 0)
	if limit <= 0 {
		return results
	}

	n := t.landing([]rune(prefix))
	if n == nil {
		return results
	}

	if n.isWord {
		results = append(results, prefix)
		if len(results) >= limit {
			return results
		}
	}

	walk(n.middle, prefix, func(node *Node, acc string) (string, WalkStatus) {
		word := acc + string(node.char)
		if node.isWord {
			results = append(results, word)
			if len(results) >= limit {
				return word, WalkStop
			}
		}
		return word, WalkContinue
	})
	return results
}

// Words 按字典序导出全部词
func (t *Tree) Words() []string {
	words := make([]string, 0, t.wordCount)
	Walk(t, "", func(n *Node, acc string) (string, WalkStatus) {
		word := acc + string(n.char)
		if n.isWord {
			words = append(words, word)
		}
		return word, WalkContinue
	})
	return words
}

// CountPrefix 统计以prefix开头的词数量（包括prefix本身）
func (t *Tree) CountPrefix(prefix string) int {
	n := t.landing([]rune(prefix))
	if n == nil {
		return 0
	}

	count := 0
	if n.isWord {
		count++
	}
	walk(n.middle, struct{}{}, func(node *Node, acc struct{}) (struct{}, WalkStatus) {
		if node.isWord {
			count++
		}
		return acc, WalkContinue
	})
	return count
}
