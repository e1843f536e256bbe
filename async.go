package cartridge

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
)

func RunAsync(ctx context.Context, fn func()) {
	go func() {
		defer Recover(ctx)
		fn()
	}()
}

// Recover вызывать только через defer
func Recover(ctx context.Context) bool {
	recoverErr := recover()
	if recoverErr == nil {
		return false
	}

	pc, file, line, _ := runtime.Caller(2)
	logger.Error(ctx, "Recovered panic",
		zap.String("file", file),
		zap.Int("line", line),
		zap.String("function", runtime.FuncForPC(pc).Name()),
		zap.String("error", fmt.Sprint(recoverErr)),
		zap.String("stack", string(debug.Stack())))

	return true
}
