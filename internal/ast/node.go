// Package ast defines the syntax tree the interpreter walks. The tree
// itself is produced by an external parser; this package only defines the
// fixed set of node kinds and a tagged-variant node representation that the
// stepper's dispatch table (internal/interp) switches on one kind at a
// time, rather than allocating a distinct Go type per node kind.
package ast

// Kind enumerates every node shape the interpreter understands. The set is
// fixed; adding language features means adding a Kind and a matching
// stepper handler, never changing the meaning of an existing one (snapshots
// reference nodes by NodeID, not by structural content).
type Kind uint8

const (
	KindInvalid Kind = iota

	KindProgram
	KindEvalProgram // synthetic: body of a parsed eval() argument

	// Statements.
	KindVariableDeclaration
	KindVariableDeclarator
	KindBlockStatement
	KindExpressionStatement
	KindEmptyStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindWhileStatement
	KindDoWhileStatement
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindSwitchStatement
	KindSwitchCase
	KindLabeledStatement
	KindFunctionDeclaration

	// Expressions.
	KindIdentifier
	KindLiteral
	KindThisExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindFunctionExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindSequenceExpression
)

// NodeID is a stable identifier assigned by the parser (or by NewID below,
// for programmatically-built trees) to every node, used by the snapshot
// format to reference interpreted-function nodes without re-emitting the
// whole subtree.
type NodeID int64

var nextID NodeID

// NewID mints a fresh, process-unique NodeID. The external parser is
// expected to assign these once per parse; test/bootstrap code building
// trees by hand uses this to get the same stability guarantee.
func NewID() NodeID {
	nextID++
	return nextID
}

// LiteralKind distinguishes the primitive type of a Literal node's value.
type LiteralKind uint8

const (
	LitUndefined LiteralKind = iota
	LitNull
	LitBoolean
	LitNumber
	LitString
	LitRegex
)

// Node is the single, tagged-variant representation used for every syntax
// tree node. Only the fields relevant to Kind are populated; this keeps the
// stepper's dispatch table a flat switch over Kind rather than a large set
// of Go types, matching 's "tagged-variant node representation".
type Node struct {
	ID   NodeID
	Kind Kind

	// Generic children, used differently by different kinds (documented per
	// kind at each node's construction site in builder.go and by each
	// handler in internal/interp).
	Body       []*Node // Program/BlockStatement/SwitchCase consequent
	Left       *Node
	Right      *Node
	Test       *Node
	Consequent *Node
	Alternate  *Node
	Init       *Node // ForStatement init, or VariableDeclarator init
	Update     *Node
	Object     *Node // MemberExpression object, ForInStatement right-hand
	Property   *Node
	Callee     *Node
	Arguments  []*Node
	Elements   []*Node // ArrayExpression
	Properties []*Node // ObjectExpression
	Key        *Node
	Value      *Node
	Block      *Node // TryStatement
	Handler    *Node // TryStatement CatchClause
	Finalizer  *Node
	Param      *Node // CatchClause binding
	Discriminant *Node
	Cases      []*Node // SwitchStatement

	// Declarations.
	Declarations []*Node // VariableDeclaration
	ID_          *Node   // VariableDeclarator / FunctionDeclaration / FunctionExpression name
	Params       []*Node // Function parameter identifiers

	// Leaves.
	Name      string // Identifier name, or label name for break/continue/labeled
	Operator  string // binary/logical/unary/update/assignment operator text
	Prefix    bool   // UpdateExpression/UnaryExpression prefix flag
	Computed  bool   // MemberExpression a[b] vs a.b

	LitKind LiteralKind
	Num     float64
	Str     string
	Bool    bool
	RegexFlags string

	// For CallExpression/NewExpression with a spread-free argument list this
	// is unused; kept for forward compatibility with host bindings that
	// build synthetic call nodes.
	IsNew bool
}

// Statement is a convenience alias; statements and expressions share the
// same Node type, but the distinction still matters for handler code that
// accepts "a statement slot" (If/For/While bodies, etc.).
type Statement = Node

// Expression is likewise an alias for documentation purposes only.
type Expression = Node

func (k Kind) String() string {
	names := [...]string{
		"Invalid", "Program", "EvalProgram",
		"VariableDeclaration", "VariableDeclarator", "BlockStatement",
		"ExpressionStatement", "EmptyStatement", "IfStatement", "ForStatement",
		"ForInStatement", "WhileStatement", "DoWhileStatement",
		"BreakStatement", "ContinueStatement", "ReturnStatement",
		"ThrowStatement", "TryStatement", "CatchClause", "SwitchStatement",
		"SwitchCase", "LabeledStatement", "FunctionDeclaration",
		"Identifier", "Literal", "ThisExpression", "ArrayExpression",
		"ObjectExpression", "Property", "FunctionExpression",
		"UnaryExpression", "UpdateExpression", "BinaryExpression",
		"LogicalExpression", "AssignmentExpression", "ConditionalExpression",
		"CallExpression", "NewExpression", "MemberExpression",
		"SequenceExpression",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}
