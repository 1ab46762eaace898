package ast

// The functions in this file build syntax trees programmatically. They
// exist because the production parser is an external collaborator here;
// tests and startup-source bootstrapping construct trees directly instead
// of going through a JS grammar. Each builder assigns a fresh NodeID,
// matching what a real parser would do once per node.

func node(k Kind) *Node {
	return &Node{ID: NewID(), Kind: k}
}

func Program(body ...*Node) *Node {
	n := node(KindProgram)
	n.Body = body
	return n
}

func Block(body ...*Node) *Node {
	n := node(KindBlockStatement)
	n.Body = body
	return n
}

func ExprStmt(e *Node) *Node {
	n := node(KindExpressionStatement)
	n.Right = e
	return n
}

func Empty() *Node { return node(KindEmptyStatement) }

func Num(v float64) *Node {
	n := node(KindLiteral)
	n.LitKind = LitNumber
	n.Num = v
	return n
}

func Str(s string) *Node {
	n := node(KindLiteral)
	n.LitKind = LitString
	n.Str = s
	return n
}

func Bool(b bool) *Node {
	n := node(KindLiteral)
	n.LitKind = LitBoolean
	n.Bool = b
	return n
}

func Null() *Node {
	n := node(KindLiteral)
	n.LitKind = LitNull
	return n
}

func Undef() *Node {
	n := node(KindLiteral)
	n.LitKind = LitUndefined
	return n
}

func Ident(name string) *Node {
	n := node(KindIdentifier)
	n.Name = name
	return n
}

func This() *Node { return node(KindThisExpression) }

func VarDecl(decls ...*Node) *Node {
	n := node(KindVariableDeclaration)
	n.Declarations = decls
	return n
}

func Declarator(name string, init *Node) *Node {
	n := node(KindVariableDeclarator)
	n.ID_ = Ident(name)
	n.Init = init
	return n
}

func Assign(op string, left, right *Node) *Node {
	n := node(KindAssignmentExpression)
	n.Operator = op
	n.Left = left
	n.Right = right
	return n
}

func Binary(op string, left, right *Node) *Node {
	n := node(KindBinaryExpression)
	n.Operator = op
	n.Left = left
	n.Right = right
	return n
}

func Logical(op string, left, right *Node) *Node {
	n := node(KindLogicalExpression)
	n.Operator = op
	n.Left = left
	n.Right = right
	return n
}

func Unary(op string, arg *Node, prefix bool) *Node {
	n := node(KindUnaryExpression)
	n.Operator = op
	n.Right = arg
	n.Prefix = prefix
	return n
}

func Update(op string, arg *Node, prefix bool) *Node {
	n := node(KindUpdateExpression)
	n.Operator = op
	n.Right = arg
	n.Prefix = prefix
	return n
}

func Cond(test, cons, alt *Node) *Node {
	n := node(KindConditionalExpression)
	n.Test = test
	n.Consequent = cons
	n.Alternate = alt
	return n
}

func If(test, cons, alt *Node) *Node {
	n := node(KindIfStatement)
	n.Test = test
	n.Consequent = cons
	n.Alternate = alt
	return n
}

func While(test, body *Node) *Node {
	n := node(KindWhileStatement)
	n.Test = test
	n.Consequent = body
	return n
}

func DoWhile(body, test *Node) *Node {
	n := node(KindDoWhileStatement)
	n.Test = test
	n.Consequent = body
	return n
}

func For(init, test, update, body *Node) *Node {
	n := node(KindForStatement)
	n.Init = init
	n.Test = test
	n.Update = update
	n.Consequent = body
	return n
}

func ForIn(left, right, body *Node) *Node {
	n := node(KindForInStatement)
	n.Left = left
	n.Object = right
	n.Consequent = body
	return n
}

func Break(label string) *Node {
	n := node(KindBreakStatement)
	n.Name = label
	return n
}

func Continue(label string) *Node {
	n := node(KindContinueStatement)
	n.Name = label
	return n
}

func Return(arg *Node) *Node {
	n := node(KindReturnStatement)
	n.Right = arg
	return n
}

func Throw(arg *Node) *Node {
	n := node(KindThrowStatement)
	n.Right = arg
	return n
}

func Labeled(label string, body *Node) *Node {
	n := node(KindLabeledStatement)
	n.Name = label
	n.Consequent = body
	return n
}

func Try(block, handler, finalizer *Node) *Node {
	n := node(KindTryStatement)
	n.Block = block
	n.Handler = handler
	n.Finalizer = finalizer
	return n
}

func Catch(param string, body *Node) *Node {
	n := node(KindCatchClause)
	if param != "" {
		n.Param = Ident(param)
	}
	n.Block = body
	return n
}

func Switch(disc *Node, cases ...*Node) *Node {
	n := node(KindSwitchStatement)
	n.Discriminant = disc
	n.Cases = cases
	return n
}

// Case builds a SwitchCase; test == nil marks the default case.
func Case(test *Node, body ...*Node) *Node {
	n := node(KindSwitchCase)
	n.Test = test
	n.Body = body
	return n
}

func FuncDecl(name string, params []string, body *Node) *Node {
	n := node(KindFunctionDeclaration)
	n.ID_ = Ident(name)
	n.Params = identList(params)
	n.Block = body
	return n
}

func FuncExpr(name string, params []string, body *Node) *Node {
	n := node(KindFunctionExpression)
	if name != "" {
		n.ID_ = Ident(name)
	}
	n.Params = identList(params)
	n.Block = body
	return n
}

func identList(names []string) []*Node {
	out := make([]*Node, len(names))
	for i, nm := range names {
		out[i] = Ident(nm)
	}
	return out
}

func Call(callee *Node, args ...*Node) *Node {
	n := node(KindCallExpression)
	n.Callee = callee
	n.Arguments = args
	return n
}

func New(callee *Node, args ...*Node) *Node {
	n := Call(callee, args...)
	n.Kind = KindNewExpression
	n.IsNew = true
	return n
}

func Member(obj *Node, prop *Node, computed bool) *Node {
	n := node(KindMemberExpression)
	n.Object = obj
	n.Property = prop
	n.Computed = computed
	return n
}

func Dot(obj *Node, name string) *Node {
	return Member(obj, Ident(name), false)
}

func Index(obj, idx *Node) *Node {
	return Member(obj, idx, true)
}

func ArrayLit(elems ...*Node) *Node {
	n := node(KindArrayExpression)
	n.Elements = elems
	return n
}

func ObjectLit(props ...*Node) *Node {
	n := node(KindObjectExpression)
	n.Properties = props
	return n
}

func Prop(key *Node, value *Node) *Node {
	n := node(KindProperty)
	n.Key = key
	n.Value = value
	return n
}

func Sequence(exprs ...*Node) *Node {
	n := node(KindSequenceExpression)
	n.Body = exprs
	return n
}
