package logger

import "go.uber.org/zap"

// Nop returns a Logger that discards everything, for packages constructed
// without an explicit logger (tests, and library entry points the CLI
// hasn't wired a sink into yet).
func Nop() Logger {
	return &ZapLogger{logger: zap.NewNop()}
}
