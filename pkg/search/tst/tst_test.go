package tst

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Tree {
	return NewFromWords([]string{"cat", "car", "cart", "dog"})
}

func TestContains(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		prefix    string
		wholeWord bool
		want      bool
	}{
		{"car", true, true},
		{"ca", true, false},
		{"ca", false, true},
		{"cart", true, true},
		{"carts", false, false},
		{"d", false, true},
		{"do", true, false},
		{"dog", true, true},
		{"b", false, false},
		{"", false, false},
		{"", true, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%v", tt.prefix, tt.wholeWord), func(t *testing.T) {
			assert.Equal(t, tt.want, tree.Contains(tt.prefix, tt.wholeWord))
		})
	}
}

func TestPrefixSearch(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []string
	}{
		{"all completions ascending", "ca", 10, []string{"car", "cart", "cat"}},
		{"limit one", "ca", 1, []string{"car"}},
		{"limit two", "ca", 2, []string{"car", "cart"}},
		{"limit zero", "ca", 0, []string{}},
		{"negative limit", "ca", -3, []string{}},
		{"prefix is a word", "car", 10, []string{"car", "cart"}},
		{"single character", "d", 5, []string{"dog"}},
		{"unknown prefix", "x", 5, []string{}},
		{"longer than any word", "carts", 5, []string{}},
		{"empty prefix", "", 5, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tree.PrefixSearch(tt.prefix, tt.limit)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrefixSearchEmptyTree(t *testing.T) {
	tree := New()
	assert.Equal(t, []string{}, tree.PrefixSearch("x", 5))
	assert.False(t, tree.Contains("x", false))
	assert.Zero(t, tree.WordCount())
	assert.Zero(t, tree.NodeCount())
}

func TestPrefixSearchIncludesPrefixWord(t *testing.T) {
	tree := NewFromWords([]string{"apple", "app", "application"})
	assert.Equal(t, []string{"app", "apple", "application"}, tree.PrefixSearch("app", 10))
	assert.Equal(t, []string{"app"}, tree.PrefixSearch("app", 1))
	assert.Equal(t, []string{"apple", "application"}, tree.PrefixSearch("appl", 10))
}

func TestAddCounts(t *testing.T) {
	tree := New()
	tree.Add("a")
	tree.Add("a")
	assert.Equal(t, 1, tree.WordCount())
	assert.Equal(t, 1, tree.NodeCount())

	tree.Add("")
	assert.Equal(t, 1, tree.WordCount())
	assert.Equal(t, 1, tree.NodeCount())

	tree = sampleTree()
	// cat(3) + r + t + dog(3)
	assert.Equal(t, 8, tree.NodeCount())
	assert.Equal(t, 4, tree.WordCount())

	nodes := tree.NodeCount()
	tree.Add("ca")
	assert.Equal(t, nodes, tree.NodeCount(), "existing path allocates nothing")
	assert.Equal(t, 5, tree.WordCount())
	assert.True(t, tree.Contains("ca", true))

	tree.Add("cart")
	assert.Equal(t, 5, tree.WordCount())
}

func TestNonASCII(t *testing.T) {
	tree := NewFromWords([]string{"张三", "张三丰", "张无忌", "李四", "Ünal", "Ulrich"})

	assert.Equal(t, []string{"张三", "张三丰", "张无忌"}, tree.PrefixSearch("张", 10))
	assert.True(t, tree.Contains("张三", true))
	assert.False(t, tree.Contains("张", true))
	// 按码点比较，'U' < 'Ü'
	assert.Equal(t, []string{"Ulrich", "Ünal"}, tree.Words()[:2])
}

func TestWordsAndCountPrefix(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, []string{"car", "cart", "cat", "dog"}, tree.Words())
	assert.Equal(t, 3, tree.CountPrefix("ca"))
	assert.Equal(t, 2, tree.CountPrefix("car"))
	assert.Equal(t, 1, tree.CountPrefix("dog"))
	assert.Equal(t, 0, tree.CountPrefix("z"))
	assert.Equal(t, 0, tree.CountPrefix(""))
	assert.Empty(t, New().Words())
}

func randomWords(r *rand.Rand, n int) []string {
	const alphabet = "abcde"
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var sb strings.Builder
		size := 1 + r.Intn(6)
		for j := 0; j < size; j++ {
			sb.WriteByte(alphabet[r.Intn(len(alphabet))])
		}
		words = append(words, sb.String())
	}
	return words
}

func TestRandomCorpusProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	words := randomWords(r, 500)
	tree := NewFromWords(words)

	uniq := make(map[string]struct{})
	for _, w := range words {
		uniq[w] = struct{}{}
		require.True(t, tree.Contains(w, true), w)
	}
	assert.Equal(t, len(uniq), tree.WordCount())

	sorted := make([]string, 0, len(uniq))
	for w := range uniq {
		sorted = append(sorted, w)
	}
	sort.Strings(sorted)
	assert.Equal(t, sorted, tree.Words())

	for _, prefix := range []string{"a", "ab", "cde", "e", "eeee", "ba"} {
		var want []string
		for _, w := range sorted {
			if strings.HasPrefix(w, prefix) {
				want = append(want, w)
			}
		}
		for _, limit := range []int{0, 1, 3, 7, 1000} {
			got := tree.PrefixSearch(prefix, limit)
			exp := want
			if len(exp) > limit {
				exp = exp[:limit]
			}
			if exp == nil {
				exp = []string{}
			}
			assert.Equal(t, exp, got, "prefix %q limit %d", prefix, limit)
		}
		assert.Equal(t, len(want), tree.CountPrefix(prefix))
	}
}

func TestNodeCountMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	tree := New()
	last := 0
	for _, w := range randomWords(r, 200) {
		tree.Add(w)
		require.GreaterOrEqual(t, tree.NodeCount(), last)
		last = tree.NodeCount()
	}

	// 节点数等于不同(深度,前缀)路径数，即全部词的不同非空前缀数
	prefixes := make(map[string]struct{})
	for _, w := range tree.Words() {
		for i := 1; i <= len(w); i++ {
			prefixes[w[:i]] = struct{}{}
		}
	}
	assert.Equal(t, len(prefixes), tree.NodeCount())
}

func BenchmarkAdd(b *testing.B) {
	words := randomWords(rand.New(rand.NewSource(1)), 10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewFromWords(words)
	}
}

func BenchmarkPrefixSearch(b *testing.B) {
	tree := NewFromWords(randomWords(rand.New(rand.NewSource(1)), 10000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.PrefixSearch("ab", 10)
	}
}
