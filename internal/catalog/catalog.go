package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"tstidx/internal"
	"tstidx/internal/config"
	"tstidx/pkg/logger"
	"tstidx/pkg/search/trie"
	"tstidx/pkg/search/tst"
)

var ErrNoSources = errors.New("no corpus sources")

// Source 一个语料文件，FileType为0时按后缀识别
type Source struct {
	Path     string
	FileType int
}

type Stats struct {
	Words int
	Nodes int
}

// Catalog 持有一棵三叉搜索树
// 树本身不加锁，这里用读写锁保证单写多读
type Catalog struct {
	mu   sync.RWMutex
	tree *tst.Tree

	exclude   *trie.PrefixMatcher
	split     string
	minLength int
	workers   int
}

func New(cfg *config.Config) *Catalog {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Catalog{
		tree:      tst.New(),
		exclude:   trie.NewPrefixMatcher(cfg.Exclude),
		split:     cfg.Split,
		minLength: cfg.MinLength,
		workers:   workers,
	}
}

// Load 并发解析全部语料后按来源顺序写入索引，任一文件失败则整体失败、不写入
// 返回新增的词数
func (c *Catalog) Load(ctx context.Context, sources []Source) (int, error) {
	if len(sources) == 0 {
		return 0, ErrNoSources
	}

	texts := make([][]byte, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := parseSource(src)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	added := 0
	for i, text := range texts {
		n := c.AddEntries(SplitEntries(text, c.split))
		logger.Logger.Printf("source %s: %d new word(s)", sources[i].Path, n)
		added += n
	}
	return added, nil
}

func parseSource(src Source) ([]byte, error) {
	fileType := src.FileType
	if fileType == 0 {
		fileType = internal.GetDynamicFileType(src.Path)
	}

	parser, err := internal.GetParser(fileType)
	if err != nil {
		return nil, err
	}

	logger.Logger.Printf("parse %s as type %d", src.Path, fileType)
	text, err := parser.Parse(src.Path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Path, err)
	}
	return text, nil
}

// AddEntries 过滤后写入索引，返回新增词数
func (c *Catalog) AddEntries(entries []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.tree.WordCount()
	for _, e := range entries {
		if utf8.RuneCountInString(e) < c.minLength || c.exclude.MatchAny(e) {
			logger.DebugLogger.Printf("skip entry %q", e)
			continue
		}
		c.tree.Add(e)
	}
	return c.tree.WordCount() - before
}

// Complete 自动补全，结果按字典序升序
func (c *Catalog) Complete(prefix string, limit int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.PrefixSearch(prefix, limit)
}

func (c *Catalog) Contains(prefix string, wholeWord bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Contains(prefix, wholeWord)
}

// Count 以prefix开头的词数
func (c *Catalog) Count(prefix string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.CountPrefix(prefix)
}

// Words 导出全部词
func (c *Catalog) Words() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Words()
}

func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Words: c.tree.WordCount(), Nodes: c.tree.NodeCount()}
}

// SplitEntries 将文本拆成条目：按行（cells模式下再按tab）拆分，压缩内部空白，去掉空条目
func SplitEntries(text []byte, mode string) []string {
	sep := func(r rune) bool { return r == '\n' || r == '\r' || r == '\f' }
	if mode == config.SplitCells {
		sep = func(r rune) bool { return r == '\n' || r == '\r' || r == '\f' || r == '\t' }
	}

	var entries []string
	for _, field := range strings.FieldsFunc(string(text), sep) {
		if e := strings.Join(strings.Fields(field), " "); e != "" {
			entries = append(entries, e)
		}
	}
	return entries
}
