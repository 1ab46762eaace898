package ast

import "testing"

func TestNewIDIsUniquePerNode(t *testing.T) {
	a := Num(1)
	b := Num(1)
	if a.ID == b.ID {
		t.Errorf("expected distinct node IDs, got %d for both", a.ID)
	}
}

func TestChildrenCollectsSingleFieldsInOrder(t *testing.T) {
	left := Ident("a")
	right := Num(2)
	n := Binary("+", left, right)

	got := n.Children()
	if len(got) != 2 || got[0] != left || got[1] != right {
		t.Fatalf("Children() = %v, want [left, right]", got)
	}
}

func TestChildrenCollectsGroupFieldsAndSkipsNil(t *testing.T) {
	a := Num(1)
	b := Num(2)
	arr := ArrayLit(a, nil, b)

	got := arr.Children()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Children() = %v, want [a, b] with the nil element skipped", got)
	}
}

func TestChildrenOnNilNodeReturnsNil(t *testing.T) {
	var n *Node
	if got := n.Children(); got != nil {
		t.Errorf("expected nil Children() on a nil node, got %v", got)
	}
}

func TestWalkVisitsEveryReachableNode(t *testing.T) {
	root := Program(
		VarDecl(Declarator("x", Num(1))),
		ExprStmt(Call(Ident("f"), Ident("x"))),
	)

	var kinds []Kind
	Walk(root, func(n *Node) {
		kinds = append(kinds, n.Kind)
	})

	want := []Kind{
		KindProgram,
		KindVariableDeclaration, KindVariableDeclarator, KindIdentifier, KindLiteral,
		KindExpressionStatement, KindCallExpression, KindIdentifier, KindIdentifier,
	}
	if len(kinds) != len(want) {
		t.Fatalf("Walk visited %d nodes, want %d: %v", len(kinds), len(want), kinds)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("node %d: got kind %v, want %v", i, kinds[i], k)
		}
	}
}

func TestWalkOnNilNodeDoesNothing(t *testing.T) {
	called := false
	Walk(nil, func(n *Node) { called = true })
	if called {
		t.Error("Walk(nil, ...) should never invoke visit")
	}
}

func TestIndexByIDCoversEveryNodeAcrossMultipleRoots(t *testing.T) {
	first := Program(VarDecl(Declarator("x", Num(1))))
	second := Program(ExprStmt(Ident("y")))

	idx := IndexByID(first, second)

	for _, root := range []*Node{first, second} {
		Walk(root, func(n *Node) {
			got, ok := idx[n.ID]
			if !ok {
				t.Fatalf("IndexByID missing entry for node ID %d (kind %v)", n.ID, n.Kind)
			}
			if got != n {
				t.Fatalf("IndexByID[%d] = %p, want %p", n.ID, got, n)
			}
		})
	}
}

func TestIndexByIDOnEmptyRootsReturnsEmptyMap(t *testing.T) {
	idx := IndexByID()
	if len(idx) != 0 {
		t.Errorf("expected an empty index, got %d entries", len(idx))
	}
}

func TestCatchWithEmptyParamLeavesParamNil(t *testing.T) {
	c := Catch("", Block())
	if c.Param != nil {
		t.Errorf("expected Catch(\"\", ...) to leave Param nil, got %v", c.Param)
	}
}

func TestDotBuildsNonComputedMemberExpression(t *testing.T) {
	obj := Ident("o")
	n := Dot(obj, "prop")
	if n.Kind != KindMemberExpression || n.Computed {
		t.Fatalf("Dot() = kind %v computed %v, want MemberExpression non-computed", n.Kind, n.Computed)
	}
	if n.Object != obj || n.Property.Kind != KindIdentifier || n.Property.Name != "prop" {
		t.Errorf("Dot() built unexpected shape: %+v", n)
	}
}

func TestIndexBuildsComputedMemberExpression(t *testing.T) {
	obj := Ident("o")
	idx := Num(0)
	n := Index(obj, idx)
	if n.Kind != KindMemberExpression || !n.Computed {
		t.Fatalf("Index() = kind %v computed %v, want MemberExpression computed", n.Kind, n.Computed)
	}
	if n.Object != obj || n.Property != idx {
		t.Errorf("Index() built unexpected shape: %+v", n)
	}
}

func TestNewMarksCallExpressionAsConstructorCall(t *testing.T) {
	n := New(Ident("Array"), Num(3))
	if n.Kind != KindNewExpression || !n.IsNew {
		t.Fatalf("New() = kind %v IsNew %v, want NewExpression with IsNew=true", n.Kind, n.IsNew)
	}
	if len(n.Arguments) != 1 {
		t.Errorf("expected 1 argument, got %d", len(n.Arguments))
	}
}
