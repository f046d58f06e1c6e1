package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	SplitLines = "lines" // 每行一个条目
	SplitCells = "cells" // 行内再按tab拆分（表格）
)

// Config 语料加载与查询配置
type Config struct {
	Sources   []string `yaml:"sources"`    // 语料文件
	FileType  int      `yaml:"file_type"`  // 强制文件类型，0为按后缀识别
	Exclude   []string `yaml:"exclude"`    // 以这些前缀开头的条目不入索引
	Limit     int      `yaml:"limit"`      // 默认返回条数
	Workers   int      `yaml:"workers"`    // 并发解析的文件数
	Split     string   `yaml:"split"`      // lines | cells
	MinLength int      `yaml:"min_length"` // 条目最少字符数
}

func DefaultConfig() *Config {
	return &Config{
		Limit:     10,
		Workers:   runtime.NumCPU(),
		Split:     SplitLines,
		MinLength: 1,
	}
}

// Load 读取YAML配置，文件不存在时返回默认值
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must be non-negative, got %d", c.Limit))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be non-negative, got %d", c.Workers))
	}
	if c.MinLength < 0 {
		errs = append(errs, fmt.Errorf("min_length must be non-negative, got %d", c.MinLength))
	}
	if c.Split != SplitLines && c.Split != SplitCells {
		errs = append(errs, fmt.Errorf("unknown split mode %q", c.Split))
	}
	return errors.Join(errs...)
}
