package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

func init() {
	register(ast.KindIdentifier, handleIdentifier)
	register(ast.KindLiteral, handleLiteral)
	register(ast.KindThisExpression, handleThis)
	register(ast.KindSequenceExpression, handleSequence)
	register(ast.KindConditionalExpression, handleConditional)
	register(ast.KindUnaryExpression, handleUnary)
	register(ast.KindUpdateExpression, handleUpdate)
	register(ast.KindBinaryExpression, handleBinary)
	register(ast.KindLogicalExpression, handleLogical)
	register(ast.KindArrayExpression, handleArrayLit)
	register(ast.KindObjectExpression, handleObjectLit)
	register(ast.KindMemberExpression, handleMember)
}

func handleIdentifier(s *Stepper, ps *programStack, f *Frame) {
	name := f.Node.Name
	v, ok := f.Scope.Lookup(name)
	if !ok {
		if f.SuppressRef {
			f.Ref = &Reference{IsScope: true, Scope: f.Scope, Name: name}
			f.Value = value.Undef
			s.completeTop(ps, value.Undef)
			return
		}
		s.throwErr(ps, s.Heap.Throw("ReferenceError", name+" is not defined"))
		return
	}
	f.Ref = &Reference{IsScope: true, Scope: f.Scope, Name: name}
	s.completeTop(ps, v)
}

func handleLiteral(s *Stepper, ps *programStack, f *Frame) {
	switch f.Node.LitKind {
	case ast.LitUndefined:
		s.completeTop(ps, value.Undef)
	case ast.LitNull:
		s.completeTop(ps, value.Nul)
	case ast.LitBoolean:
		s.completeTop(ps, value.Boolean(f.Node.Bool))
	case ast.LitNumber:
		s.completeTop(ps, value.Number(f.Node.Num))
	case ast.LitString:
		s.completeTop(ps, value.String(f.Node.Str))
	case ast.LitRegex:
		re := value.NewObject(s.Heap.RegexProto)
		re.Tag = value.TagRegex
		re.RegexSource = f.Node.Str
		re.RegexFlags = f.Node.RegexFlags
		s.completeTop(ps, re)
	default:
		s.completeTop(ps, value.Undef)
	}
}

func handleThis(s *Stepper, ps *programStack, f *Frame) {
	v, ok := f.Scope.Lookup("this")
	if !ok {
		v = value.Undef
	}
	s.completeTop(ps, v)
}

func handleSequence(s *Stepper, ps *programStack, f *Frame) {
	if f.Index < len(f.Node.Body) {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Body[f.Index], f.Scope)
		f.Index++
		return
	}
	s.completeTop(ps, f.RightVal)
}

func handleConditional(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneTest {
		s.pushRole(ps, f, RoleTest, 0, f.Node.Test, f.Scope)
		return
	}
	if !f.DoneRight {
		branch := f.Node.Alternate
		if value.ToBoolean(f.TestVal) {
			branch = f.Node.Consequent
		}
		s.pushRole(ps, f, RoleRight, 0, branch, f.Scope)
		return
	}
	s.completeTop(ps, f.RightVal)
}

func handleUnary(s *Stepper, ps *programStack, f *Frame) {
	switch f.Node.Operator {
	case "typeof":
		if !f.DoneRight {
			child := newFrame(f.Node.Right, f.Scope)
			child.SuppressRef = true
			f.PendingRole = RoleRight
			ps.frames = append(ps.frames, child)
			return
		}
		s.completeTop(ps, value.String(typeOf(f.RightVal)))
		return
	case "delete":
		if !f.DoneRight {
			s.pushRole(ps, f, RoleLeftRef, 0, f.Node.Right, f.Scope)
			return
		}
		s.completeTop(ps, value.Boolean(s.doDelete(f.Ref)))
		return
	}
	if !f.DoneRight {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Right, f.Scope)
		return
	}
	s.completeTop(ps, evalUnary(value.NewCycleCtx(), f.Node.Operator, f.RightVal))
}

func (s *Stepper) doDelete(ref *Reference) bool {
	if ref == nil {
		return true
	}
	if ref.IsScope {
		return ref.Scope.DeleteOwn(ref.Name)
	}
	ok, err := s.Heap.Delete(ref.Object, ref.Key)
	if err != nil {
		return false
	}
	return ok
}

func handleUpdate(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneRight {
		s.pushRole(ps, f, RoleLeftRef, 0, f.Node.Right, f.Scope)
		return
	}
	cur, err := s.readRef(f.Ref)
	if err != nil {
		s.throwErr(ps, err)
		return
	}
	ctx := value.NewCycleCtx()
	n := value.ToNumber(ctx, cur)
	var next float64
	if f.Node.Operator == "++" {
		next = n + 1
	} else {
		next = n - 1
	}
	if err := s.writeRef(f.Ref, value.Number(next)); err != nil {
		s.throwErr(ps, err)
		return
	}
	if f.Node.Prefix {
		s.completeTop(ps, value.Number(next))
	} else {
		s.completeTop(ps, value.Number(n))
	}
}

func handleBinary(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneLeft {
		s.pushRole(ps, f, RoleLeft, 0, f.Node.Left, f.Scope)
		return
	}
	if !f.DoneRight {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Right, f.Scope)
		return
	}
	if f.Node.Operator == "in" {
		ok, err := s.Heap.Has(f.RightVal, value.ToString(value.NewCycleCtx(), f.LeftVal))
		if err != nil {
			s.throwErr(ps, err)
			return
		}
		s.completeTop(ps, value.Boolean(ok))
		return
	}
	v, err := evalBinary(value.NewCycleCtx(), f.Node.Operator, f.LeftVal, f.RightVal)
	if err != nil {
		s.throwErr(ps, err)
		return
	}
	s.completeTop(ps, v)
}

func handleLogical(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneLeft {
		s.pushRole(ps, f, RoleLeft, 0, f.Node.Left, f.Scope)
		return
	}
	if f.Node.Operator == "&&" && !value.ToBoolean(f.LeftVal) {
		s.completeTop(ps, f.LeftVal)
		return
	}
	if f.Node.Operator == "||" && value.ToBoolean(f.LeftVal) {
		s.completeTop(ps, f.LeftVal)
		return
	}
	if !f.DoneRight {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Right, f.Scope)
		return
	}
	s.completeTop(ps, f.RightVal)
}

func handleArrayLit(s *Stepper, ps *programStack, f *Frame) {
	if f.Index < len(f.Node.Elements) {
		el := f.Node.Elements[f.Index]
		if el == nil {
			f.Elements = append(f.Elements, value.Undef)
			f.Index++
			return
		}
		s.pushRole(ps, f, RoleElement, f.Index, el, f.Scope)
		f.Index++
		return
	}
	arr := s.Heap.NewArrayOf(f.Elements...)
	s.completeTop(ps, arr)
}

func literalValue(n *ast.Node) value.Value {
	switch n.LitKind {
	case ast.LitNumber:
		return value.Number(n.Num)
	case ast.LitString:
		return value.String(n.Str)
	case ast.LitBoolean:
		return value.Boolean(n.Bool)
	default:
		return value.Undef
	}
}

func handleObjectLit(s *Stepper, ps *programStack, f *Frame) {
	if f.Index >= len(f.Node.Properties) {
		obj := value.NewObject(s.Heap.ObjectProto)
		for i, k := range f.PropKeys {
			var v value.Value = value.Undef
			if i < len(f.PropVals) {
				v = f.PropVals[i]
			}
			obj.PutOwn(k, v, value.DefaultAttrs)
		}
		s.completeTop(ps, obj)
		return
	}
	prop := f.Node.Properties[f.Index]
	if len(f.PropKeys) <= f.Index {
		if prop.Key.Kind == ast.KindIdentifier {
			f.PropKeys = append(f.PropKeys, prop.Key.Name)
			return
		}
		if prop.Key.Kind == ast.KindLiteral {
			f.PropKeys = append(f.PropKeys, value.ToString(value.NewCycleCtx(), literalValue(prop.Key)))
			return
		}
		s.pushRole(ps, f, RolePropKey, f.Index, prop.Key, f.Scope)
		return
	}
	if len(f.PropVals) <= f.Index {
		s.pushRole(ps, f, RolePropVal, f.Index, prop.Value, f.Scope)
		return
	}
	f.Index++
}

func handleMember(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneObject {
		s.pushRole(ps, f, RoleObject, 0, f.Node.Object, f.Scope)
		return
	}
	if f.Node.Computed {
		if f.PropertyVal == nil {
			s.pushRole(ps, f, RoleProperty, 0, f.Node.Property, f.Scope)
			return
		}
	} else if f.PropertyVal == nil {
		f.PropertyVal = value.String(f.Node.Property.Name)
	}
	key := value.ToString(value.NewCycleCtx(), f.PropertyVal)
	f.Ref = &Reference{Object: f.ObjectVal, Key: key}
	v, err := s.Heap.Get(f.ObjectVal, key)
	if err != nil {
		s.throwErr(ps, err)
		return
	}
	s.completeTop(ps, v)
}
