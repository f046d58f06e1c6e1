package logger

import (
	"io"
	"log"
)

// StdLogger 日志接口定义
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

var (
	// Logger 常规日志，默认丢弃
	Logger StdLogger = log.New(io.Discard, "[tstidx] ", log.LstdFlags)

	// DebugLogger 调试日志，默认转发给Logger
	DebugLogger StdLogger = &debugLogger{}
)

type debugLogger struct{}

func (d *debugLogger) Print(v ...interface{}) {
	Logger.Print(v...)
}
func (d *debugLogger) Printf(format string, v ...interface{}) {
	Logger.Printf(format, v...)
}
func (d *debugLogger) Println(v ...interface{}) {
	Logger.Println(v...)
}

// SetLogger 设置全局日志实例
func SetLogger(l StdLogger) {
	Logger = l
}

// SetDebugLogger 设置调试日志实例
func SetDebugLogger(l StdLogger) {
	DebugLogger = l
}

// Setup 按命令行的详细程度初始化日志：
// verbose 只开常规日志，debug 同时开调试日志
func Setup(w io.Writer, verbose, debug bool) {
	switch {
	case debug:
		SetLogger(log.New(w, "[tstidx] ", log.LstdFlags))
		SetDebugLogger(log.New(w, "[tstidx debug] ", log.LstdFlags))
	case verbose:
		SetLogger(log.New(w, "[tstidx] ", log.LstdFlags))
		SetDebugLogger(log.New(io.Discard, "", 0))
	default:
		SetLogger(log.New(io.Discard, "", 0))
		SetDebugLogger(log.New(io.Discard, "", 0))
	}
}
