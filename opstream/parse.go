// Package opstream 读取树与操作流的文本格式，并驱动 rootedtree.Engine 执行。
//
// 格式（以空白分隔，节点编号从 1 开始）：
//
//	N M R
//	u v            // 共 N-1 行
//	U T V K        // 子树更新
//	Q A B          // 路径查询
//
// 1 起始编号只存在于这一层，进入引擎前统一转换为 0 起始。
package opstream

import (
	"bufio"
	"io"
	"strconv"

	"github.com/wyfcoding/treeops/rootedtree"
	"github.com/wyfcoding/treeops/xerrors"
)

// OpKind 操作类型。
type OpKind byte

const (
	OpUpdate OpKind = 'U'
	OpQuery  OpKind = 'Q'
)

func (k OpKind) String() string { return string(rune(k)) }

// Op 是一条已转换为 0 起始编号的操作。
// 更新使用 A、V、K；查询使用 A、B。
type Op struct {
	Kind OpKind
	A, B int
	V, K int64
}

// Problem 是解析后的完整输入。
type Problem struct {
	Nodes int
	Root  int
	Edges []rootedtree.Edge
	Ops   []Op
}

// Build 用解析出的边集构建引擎。
func (p *Problem) Build(opts ...rootedtree.Option) (*rootedtree.Engine, error) {
	return rootedtree.Build(p.Nodes, p.Edges, p.Root, opts...)
}

// ToZeroBased 将 1 起始的节点编号转换为 0 起始，越界时返回 ErrInvalidNode。
func ToZeroBased(id, n int) (int, error) {
	if id < 1 || id > n {
		return 0, xerrors.InvalidNode(id-1, n).WithDetail("node %d out of range [1, %d]", id, n)
	}
	return id - 1, nil
}

// tokenizer 按空白切分输入并记录已读取的 token 数，用于错误定位。
type tokenizer struct {
	sc    *bufio.Scanner
	count int
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next(what string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", xerrors.Wrap(err, xerrors.ErrInternal, "read input")
		}
		return "", xerrors.MalformedInput("unexpected end of input, expected %s", what).WithContext("token", t.count)
	}
	t.count++
	return t.sc.Text(), nil
}

func (t *tokenizer) readInt(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, xerrors.MalformedInput("%s: %q is not an integer", what, tok).WithContext("token", t.count)
	}
	return v, nil
}

func (t *tokenizer) readInt64(what string) (int64, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, xerrors.MalformedInput("%s: %q is not a 64-bit integer", what, tok).WithContext("token", t.count)
	}
	return v, nil
}

func (t *tokenizer) readNode(what string, n int) (int, error) {
	id, err := t.readInt(what)
	if err != nil {
		return 0, err
	}
	v, err := ToZeroBased(id, n)
	if err != nil {
		if xe, ok := xerrors.FromError(err); ok {
			xe.WithContext("token", t.count).WithContext("field", what)
		}
		return 0, err
	}
	return v, nil
}

// Parse 读取完整输入。maxNodes > 0 时拒绝超过该规模的树。
func Parse(r io.Reader, maxNodes int) (*Problem, error) {
	t := newTokenizer(r)

	n, err := t.readInt("node count")
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, xerrors.MalformedInput("node count %d must be positive", n)
	}
	if maxNodes > 0 && n > maxNodes {
		return nil, xerrors.MalformedInput("node count %d exceeds limit %d", n, maxNodes)
	}
	m, err := t.readInt("operation count")
	if err != nil {
		return nil, err
	}
	if m < 0 {
		return nil, xerrors.MalformedInput("operation count %d must not be negative", m)
	}
	root, err := t.readNode("root", n)
	if err != nil {
		return nil, err
	}

	p := &Problem{
		Nodes: n,
		Root:  root,
		Edges: make([]rootedtree.Edge, 0, n-1),
		Ops:   make([]Op, 0, min(m, 1<<20)),
	}

	for range n - 1 {
		u, err := t.readNode("edge endpoint", n)
		if err != nil {
			return nil, err
		}
		v, err := t.readNode("edge endpoint", n)
		if err != nil {
			return nil, err
		}
		p.Edges = append(p.Edges, rootedtree.Edge{U: u, V: v})
	}

	for i := range m {
		op, err := parseOp(t, n)
		if err != nil {
			if xe, ok := xerrors.FromError(err); ok {
				xe.WithContext("op", i)
			}
			return nil, err
		}
		p.Ops = append(p.Ops, op)
	}

	return p, nil
}

func parseOp(t *tokenizer, n int) (Op, error) {
	tok, err := t.next("operation")
	if err != nil {
		return Op{}, err
	}

	// 只看首字符，"Update"、"Qx" 分别按 U、Q 处理。
	switch OpKind(tok[0]) {
	case OpUpdate:
		node, err := t.readNode("update node", n)
		if err != nil {
			return Op{}, err
		}
		v, err := t.readInt64("update V")
		if err != nil {
			return Op{}, err
		}
		k, err := t.readInt64("update K")
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: OpUpdate, A: node, V: v, K: k}, nil
	case OpQuery:
		a, err := t.readNode("query node", n)
		if err != nil {
			return Op{}, err
		}
		b, err := t.readNode("query node", n)
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: OpQuery, A: a, B: b}, nil
	default:
		return Op{}, xerrors.MalformedInput("unknown operation %q", tok).WithContext("token", t.count)
	}
}
