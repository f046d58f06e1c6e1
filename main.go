package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"tstidx/internal/catalog"
	"tstidx/internal/config"
	_ "tstidx/pkg/compressfile"
	"tstidx/pkg/logger"
	_ "tstidx/pkg/office"
	_ "tstidx/pkg/plaintext"
)

type options struct {
	configPath    string
	inputs        string
	fileType      int
	prefix        string
	limit         int
	wholeWord     bool
	count         bool
	exclude       string
	workers       int
	split         string
	dump          bool
	verbose       bool
	detailVerbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tstidx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.configPath, "c", "", "yaml config file")
	fs.StringVar(&opts.inputs, "i", "", "corpus files, comma separated")
	fs.IntVar(&opts.fileType, "t", 0, "force file type for all corpus files")
	fs.StringVar(&opts.prefix, "p", "", "prefix to complete; read prefixes from stdin when empty")
	fs.IntVar(&opts.limit, "n", 0, "max results per query")
	fs.BoolVar(&opts.wholeWord, "w", false, "print whether each query is a whole indexed word")
	fs.BoolVar(&opts.count, "count", false, "print the number of indexed words under each query")
	fs.StringVar(&opts.exclude, "x", "", "excluded entry prefixes, comma separated")
	fs.IntVar(&opts.workers, "j", 0, "parallel corpus parsers")
	fs.StringVar(&opts.split, "split", "", "entry split mode: lines|cells")
	fs.BoolVar(&opts.dump, "dump", false, "print every indexed word and exit")
	fs.BoolVar(&opts.verbose, "v", false, "verbose")
	fs.BoolVar(&opts.detailVerbose, "vv", false, "detail verbose")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger.Setup(stderr, opts.verbose, opts.detailVerbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(fs, &opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		fs.Usage()
		return catalog.ErrNoSources
	}

	sources := make([]catalog.Source, 0, len(cfg.Sources))
	for _, path := range cfg.Sources {
		sources = append(sources, catalog.Source{Path: path, FileType: cfg.FileType})
	}

	c := catalog.New(cfg)
	if _, err := c.Load(ctx, sources); err != nil {
		return err
	}
	// 统计信息写stderr，stdout只输出查询结果
	stats := c.Stats()
	fmt.Fprintf(stderr, "index ready: words[%d], nodes[%d]\n", stats.Words, stats.Nodes)

	if opts.dump {
		for _, w := range c.Words() {
			fmt.Fprintln(stdout, w)
		}
		return nil
	}

	if opts.prefix != "" {
		answer(stdout, c, opts.prefix, cfg.Limit, &opts)
		return nil
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		answer(stdout, c, strings.TrimRight(scanner.Text(), "\r"), cfg.Limit, &opts)
	}
	return scanner.Err()
}

// applyFlags 命令行显式设置的参数覆盖配置文件
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.Sources = splitList(opts.inputs)
		case "t":
			cfg.FileType = opts.fileType
		case "n":
			cfg.Limit = opts.limit
		case "x":
			cfg.Exclude = splitList(opts.exclude)
		case "j":
			cfg.Workers = opts.workers
		case "split":
			cfg.Split = opts.split
		}
	})
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// answer 输出一次查询结果：补全模式每行一个词，-w模式输出true/false，-count模式输出词数
func answer(w io.Writer, c *catalog.Catalog, query string, limit int, opts *options) {
	switch {
	case opts.wholeWord:
		fmt.Fprintf(w, "%s\t%v\n", query, c.Contains(query, true))
	case opts.count:
		fmt.Fprintf(w, "%s\t%d\n", query, c.Count(query))
	default:
		for _, word := range c.Complete(query, limit) {
			fmt.Fprintln(w, word)
		}
		fmt.Fprintln(w)
	}
}
