// Command treeops 读取一棵树与操作流，执行子树更新并输出路径查询结果。
//
// Usage:
//
//	treeops run < input.txt
//	treeops run --input input.txt --mode sum --metrics-port 9100
//	treeops check --input input.txt
//
// 退出码：0 成功；2 输入或参数错误；3 输入文件不存在；130 被信号中断；1 其他错误。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc/codes"

	"github.com/wyfcoding/treeops/xerrors"
)

// version 在构建时通过 -ldflags "-X main.version=..." 注入。
var version = "dev"

func main() {
	// 收到 SIGINT/SIGTERM 时取消 ctx，批处理在下一个检查点退出。
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "treeops:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode 按错误链中 *xerrors.Error 的 gRPC 状态码选择退出码。
func exitCode(err error) int {
	xe, ok := xerrors.FromError(err)
	if !ok {
		return 1
	}
	switch xe.GRPCCode() {
	case codes.InvalidArgument:
		return 2
	case codes.NotFound:
		return 3
	case codes.Canceled:
		return 130
	default:
		return 1
	}
}
