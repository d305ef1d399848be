package xerrors

import "fmt"

var (
	// ErrInvalidTree 输入的边集不构成一棵树。
	ErrInvalidTree = New(ErrInvalidArg, 400101, "invalid tree", "edges must form a single connected acyclic graph", nil)
	// ErrInvalidNode 节点编号越界。
	ErrInvalidNode = New(ErrInvalidArg, 400102, "invalid node", "node id must be in [0, n)", nil)
	// ErrMalformedInput 操作流格式错误。
	ErrMalformedInput = New(ErrInvalidArg, 400103, "malformed input", "check the tree and operation stream format", nil)
)

// InvalidTree 返回以 ErrInvalidTree 为根因的新错误。
func InvalidTree(format string, args ...any) *Error {
	return New(ErrInvalidArg, ErrInvalidTree.Code, ErrInvalidTree.Message, fmt.Sprintf(format, args...), ErrInvalidTree)
}

// InvalidNode 返回以 ErrInvalidNode 为根因的新错误，并记录越界的节点编号。
func InvalidNode(id, n int) *Error {
	return New(ErrInvalidArg, ErrInvalidNode.Code, ErrInvalidNode.Message,
		fmt.Sprintf("node %d out of range [0, %d)", id, n), ErrInvalidNode).
		WithContext("node", id).
		WithContext("size", n)
}

// MalformedInput 返回以 ErrMalformedInput 为根因的新错误。
func MalformedInput(format string, args ...any) *Error {
	return New(ErrInvalidArg, ErrMalformedInput.Code, ErrMalformedInput.Message, fmt.Sprintf(format, args...), ErrMalformedInput)
}
