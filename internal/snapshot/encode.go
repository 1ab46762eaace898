package snapshot

import (
	"sort"

	"github.com/tidwall/sjson"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// Encode serializes h and every stack s is still running as an ordered list
// of tagged JSON records: one header, one per reachable object, one per
// reachable scope, and one per top-level program stack (itself carrying its
// whole frame list inline, since frames are never shared between stacks and
// never referenced from object/scope state). The records are returned as a
// slice of complete JSON-object texts; Codec wraps them in the on-disk list
// format.
func Encode(h *heap.Heap, s *interp.Stepper) ([]string, error) {
	g := buildGraph(h, s)

	records := make([]string, 0, 1+len(g.objs)+len(g.scopes)+s.NumStacks())

	header, err := encodeHeader(h, s, g)
	if err != nil {
		return nil, err
	}
	records = append(records, header)

	for _, o := range g.objs {
		rec, err := encodeObject(o, g)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	for _, sc := range g.scopes {
		rec, err := encodeScope(sc, g)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	for i := 0; i < s.NumStacks(); i++ {
		rec, err := encodeStack(s.StackAt(i), g)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeHeader(h *heap.Heap, s *interp.Stepper, g *graph) (string, error) {
	b := newBuilder()
	b.set("t", "header")
	b.set("objCount", len(g.objs))
	b.set("scopeCount", len(g.scopes))
	b.set("stackCount", s.NumStacks())
	b.set("global", g.scopeIndex[h.Global])

	wk := newBuilder()
	wk.set("objectProto", g.objIndex[h.ObjectProto])
	wk.set("functionProto", g.objIndex[h.FunctionProto])
	wk.set("arrayProto", g.objIndex[h.ArrayProto])
	wk.set("stringProto", g.objIndex[h.StringProto])
	wk.set("numberProto", g.objIndex[h.NumberProto])
	wk.set("booleanProto", g.objIndex[h.BooleanProto])
	wk.set("dateProto", g.objIndex[h.DateProto])
	wk.set("regexProto", g.objIndex[h.RegexProto])
	errProtos := newBuilder()
	for _, kind := range errorProtoOrder {
		errProtos.set(kind, g.objIndex[h.ErrorProtos[kind]])
	}
	ep, err := errProtos.build()
	if err != nil {
		return "", err
	}
	wk.setRaw("errorProtos", ep)
	wkText, err := wk.build()
	if err != nil {
		return "", err
	}
	b.setRaw("wellKnown", wkText)
	return b.build()
}

func encodeValueList(vals []value.Value, objIndex map[*value.Object]int) (string, error) {
	raw := "[]"
	for _, v := range vals {
		enc, err := encodeValue(v, objIndex)
		if err != nil {
			return "", err
		}
		raw, err = sjson.SetRaw(raw, "-1", enc)
		if err != nil {
			return "", err
		}
	}
	return raw, nil
}

func encodeStringList(strs []string) (string, error) {
	raw := "[]"
	var err error
	for _, str := range strs {
		raw, err = sjson.Set(raw, "-1", str)
		if err != nil {
			return "", err
		}
	}
	return raw, nil
}

func refIndex(o *value.Object, objIndex map[*value.Object]int) int {
	if o == nil {
		return -1
	}
	idx, ok := objIndex[o]
	if !ok {
		return -1
	}
	return idx
}

func scopeRefIndex(s *heap.Scope, scopeIndex map[*heap.Scope]int) int {
	if s == nil {
		return -1
	}
	idx, ok := scopeIndex[s]
	if !ok {
		return -1
	}
	return idx
}

func encodeObject(o *value.Object, g *graph) (string, error) {
	b := newBuilder()
	b.set("t", "object")
	b.set("tag", int(o.Tag))
	b.set("proto", refIndex(o.Prototype, g.objIndex))
	b.set("ext", o.Extensible())
	b.set("alen", o.ArrayLength)

	propsRaw := "[]"
	for _, k := range o.OwnKeys() {
		v, attrs, _ := o.GetOwn(k)
		vEnc, err := encodeValue(v, g.objIndex)
		if err != nil {
			return "", err
		}
		pb := newBuilder().set("k", k).set("a", int(attrs))
		pb.setRaw("v", vEnc)
		propText, err := pb.build()
		if err != nil {
			return "", err
		}
		propsRaw, err = sjson.SetRaw(propsRaw, "-1", propText)
		if err != nil {
			return "", err
		}
	}
	b.setRaw("props", propsRaw)

	switch o.Tag {
	case value.TagRegex:
		b.set("regexSrc", o.RegexSource)
		b.set("regexFlags", o.RegexFlags)
		b.set("regexLastIndex", o.RegexLastIndex)
	case value.TagDate:
		b.set("dateEpochMS", encodeFloat(o.DateEpochMS))
	case value.TagError:
		b.set("errKind", o.ErrorKind)
	}

	if o.Function != nil {
		fn := o.Function
		fb := newBuilder()
		fb.set("kind", int(fn.Kind))
		fb.set("name", fn.Name)
		fb.set("arity", fn.Arity)
		fb.set("nativeTag", fn.NativeTag)
		fb.set("classCtor", fn.IsClassCtor)
		if fn.Kind == value.FuncInterpreted {
			fb.set("nodeId", fn.NodeID)
			env, _ := fn.ParentEnv.(*heap.Scope)
			fb.set("env", scopeRefIndex(env, g.scopeIndex))
			params, err := encodeStringList(fn.ParamNames)
			if err != nil {
				return "", err
			}
			fb.setRaw("params", params)
		}
		fnText, err := fb.build()
		if err != nil {
			return "", err
		}
		b.setRaw("fn", fnText)
	}

	return b.build()
}

func encodeScope(s *heap.Scope, g *graph) (string, error) {
	b := newBuilder()
	b.set("t", "scope")
	b.set("outer", scopeRefIndex(s.Outer(), g.scopeIndex))

	names := s.Names()
	sort.Strings(names)
	varsRaw := "[]"
	for _, name := range names {
		v := s.Get(name)
		vEnc, err := encodeValue(v, g.objIndex)
		if err != nil {
			return "", err
		}
		vb := newBuilder().set("k", name).set("ro", s.IsOwnReadOnly(name))
		vb.setRaw("v", vEnc)
		text, err := vb.build()
		if err != nil {
			return "", err
		}
		varsRaw, err = sjson.SetRaw(varsRaw, "-1", text)
		if err != nil {
			return "", err
		}
	}
	b.setRaw("vars", varsRaw)
	return b.build()
}

func encodePendingUnwind(p *interp.PendingUnwind, objIndex map[*value.Object]int) (string, error) {
	if p == nil {
		return "null", nil
	}
	b := newBuilder()
	b.set("kind", p.Kind)
	b.set("label", p.Label)
	vEnc, err := encodeValue(p.Value, objIndex)
	if err != nil {
		return "", err
	}
	b.setRaw("value", vEnc)
	return b.build()
}

func encodeFrame(f *interp.Frame, g *graph) (string, error) {
	b := newBuilder()
	b.set("node", nodeIDOf(f))
	b.set("scope", scopeRefIndex(frameScope(f), g.scopeIndex))
	b.set("pendingRole", int(f.PendingRole))
	b.set("pendingIdx", f.PendingIdx)

	b.set("doneLeft", f.DoneLeft)
	b.set("doneRight", f.DoneRight)
	b.set("doneTest", f.DoneTest)
	b.set("doneCallee", f.DoneCallee)
	b.set("doneArgs", f.DoneArgs)
	b.set("doneExec", f.DoneExec)
	b.set("doneInit", f.DoneInit)
	b.set("doneUpdate", f.DoneUpdate)
	b.set("doneObject", f.DoneObject)
	b.set("doneBlock", f.DoneBlock)
	b.set("doneHandler", f.DoneHandler)
	b.set("doneFinally", f.DoneFinally)
	b.set("doneDiscriminant", f.DoneDiscriminant)
	b.set("n", f.N)
	b.set("index", f.Index)

	for _, fv := range []struct {
		name string
		v    value.Value
	}{
		{"leftVal", f.LeftVal}, {"rightVal", f.RightVal}, {"testVal", f.TestVal},
		{"objectVal", f.ObjectVal}, {"propertyVal", f.PropertyVal},
		{"callee", f.Callee}, {"thisVal", f.ThisVal}, {"value", f.Value},
	} {
		enc, err := encodeValue(fv.v, g.objIndex)
		if err != nil {
			return "", err
		}
		b.setRaw(fv.name, enc)
	}

	argVals, err := encodeValueList(f.ArgVals, g.objIndex)
	if err != nil {
		return "", err
	}
	b.setRaw("argVals", argVals)
	elements, err := encodeValueList(f.Elements, g.objIndex)
	if err != nil {
		return "", err
	}
	b.setRaw("elements", elements)
	propVals, err := encodeValueList(f.PropVals, g.objIndex)
	if err != nil {
		return "", err
	}
	b.setRaw("propVals", propVals)
	propKeys, err := encodeStringList(f.PropKeys)
	if err != nil {
		return "", err
	}
	b.setRaw("propKeys", propKeys)

	if f.Ref != nil {
		rb := newBuilder()
		rb.set("isScope", f.Ref.IsScope)
		rb.set("scope", scopeRefIndex(f.Ref.Scope, g.scopeIndex))
		rb.set("name", f.Ref.Name)
		rb.set("key", f.Ref.Key)
		oEnc, err := encodeValue(f.Ref.Object, g.objIndex)
		if err != nil {
			return "", err
		}
		rb.setRaw("object", oEnc)
		refText, err := rb.build()
		if err != nil {
			return "", err
		}
		b.setRaw("ref", refText)
	} else {
		b.setRaw("ref", "null")
	}

	b.set("isNew", f.IsNew)
	b.set("constructed", refIndex(f.Constructed, g.objIndex))
	b.set("isCallBody", f.IsCallBody)

	forInKeys, err := encodeStringList(f.ForInKeys)
	if err != nil {
		return "", err
	}
	b.setRaw("forInKeys", forInKeys)
	b.set("forInIndex", f.ForInIndex)

	b.set("catchScope", scopeRefIndex(f.CatchScope, g.scopeIndex))
	pendText, err := encodePendingUnwind(f.ExportFinallyPend(), g.objIndex)
	if err != nil {
		return "", err
	}
	b.setRaw("finallyPend", pendText)

	b.set("switchMatched", f.SwitchMatched)
	b.set("defaultIdx", f.DefaultIdx)
	b.set("callSetupDone", f.CallSetupDone)
	b.set("suppressRef", f.SuppressRef)
	b.set("paused", f.Paused)
	b.set("label", f.Label)
	b.set("done", f.Done)

	return b.build()
}

func encodeStack(snap interp.StackSnapshot, g *graph) (string, error) {
	b := newBuilder()
	b.set("t", "stack")
	b.set("done", snap.Done)
	framesRaw := "[]"
	for _, f := range snap.Frames {
		rec, err := encodeFrame(f, g)
		if err != nil {
			return "", err
		}
		var err2 error
		framesRaw, err2 = sjson.SetRaw(framesRaw, "-1", rec)
		if err2 != nil {
			return "", err2
		}
	}
	b.setRaw("frames", framesRaw)
	pendText, err := encodePendingUnwind(snap.Pending, g.objIndex)
	if err != nil {
		return "", err
	}
	b.setRaw("pending", pendText)
	return b.build()
}

// nodeIDOf and frameScope exist only because Frame's Node/Scope fields are
// read the same way regardless of which frame this is; kept as named
// helpers so encodeFrame reads as a flat field list.
func nodeIDOf(f *interp.Frame) int64 {
	if f.Node == nil {
		return -1
	}
	return int64(f.Node.ID)
}

func frameScope(f *interp.Frame) *heap.Scope { return f.Scope }
