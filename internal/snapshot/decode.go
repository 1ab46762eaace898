package snapshot

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// Decode reconstructs h and s from a record list previously produced by
// Encode. h must already have gone through host-binding installation (so
// its native function objects and their NativeTag values exist) but must
// not have run any user source yet, and s must be freshly built over h with
// New. roots are the top-level program fragments as freshly reparsed from
// the startup source on disk — Decode resolves every interpreted function's
// serialized node id against them, so the source on disk must match what
// produced the snapshot exactly (byte-for-byte). Decode fails only when an
// id is absent from the reparsed tree; an id that a different source also
// mints binds to whichever node carries it there.
func Decode(records []string, h *heap.Heap, s *interp.Stepper, roots ...*ast.Node) error {
	if len(records) == 0 {
		return fmt.Errorf("snapshot: empty record list")
	}
	header := gjson.Parse(records[0])
	if header.Get("t").Str != "header" {
		return fmt.Errorf("snapshot: first record is not a header")
	}
	objCount := int(header.Get("objCount").Int())
	scopeCount := int(header.Get("scopeCount").Int())
	stackCount := int(header.Get("stackCount").Int())
	if len(records) != 1+objCount+scopeCount+stackCount {
		return fmt.Errorf("snapshot: record count %d inconsistent with header (obj %d, scope %d, stack %d)",
			len(records), objCount, scopeCount, stackCount)
	}

	nodeIndex := ast.IndexByID(roots...)
	nativeTags := nativeTagIndex(h)

	objRecs := make([]gjson.Result, objCount)
	objects := make([]*value.Object, objCount)
	for i := 0; i < objCount; i++ {
		r := gjson.Parse(records[1+i])
		objRecs[i] = r
		if nt := r.Get("fn.nativeTag").Int(); nt != 0 {
			if existing, ok := nativeTags[nt]; ok {
				objects[i] = existing
				continue
			}
		}
		objects[i] = value.NewObject(nil)
	}

	scopeRecs := make([]gjson.Result, scopeCount)
	scopes := make([]*heap.Scope, scopeCount)
	for i := 0; i < scopeCount; i++ {
		scopeRecs[i] = gjson.Parse(records[1+objCount+i])
		scopes[i] = heap.NewScope(nil)
	}

	resolveObj := func(idx int) *value.Object {
		if idx < 0 || idx >= len(objects) {
			return nil
		}
		return objects[idx]
	}
	resolveScope := func(idx int) *heap.Scope {
		if idx < 0 || idx >= len(scopes) {
			return nil
		}
		return scopes[idx]
	}

	for i, r := range objRecs {
		o := objects[i]
		o.Tag = value.Tag(r.Get("tag").Int())
		o.Prototype = resolveObj(int(r.Get("proto").Int()))
		if !r.Get("ext").Bool() {
			o.PreventExtensions()
		}
		o.ArrayLength = uint32(r.Get("alen").Uint())

		var propErr error
		r.Get("props").ForEach(func(_, p gjson.Result) bool {
			v, err := decodeValue(p.Get("v"), objects)
			if err != nil {
				propErr = err
				return false
			}
			o.PutOwn(p.Get("k").Str, v, value.Attrs(p.Get("a").Int()))
			return true
		})
		if propErr != nil {
			return propErr
		}

		switch o.Tag {
		case value.TagRegex:
			o.RegexSource = r.Get("regexSrc").Str
			o.RegexFlags = r.Get("regexFlags").Str
			o.RegexLastIndex = r.Get("regexLastIndex").Int()
		case value.TagDate:
			o.DateEpochMS = decodeFloat(r.Get("dateEpochMS"))
		case value.TagError:
			o.ErrorKind = r.Get("errKind").Str
		}

		if fn := r.Get("fn"); fn.Exists() {
			kind := value.FuncKind(fn.Get("kind").Int())
			if o.Function == nil || kind == value.FuncInterpreted {
				slot := &value.FunctionSlot{
					Kind:        kind,
					Name:        fn.Get("name").Str,
					Arity:       int(fn.Get("arity").Int()),
					NativeTag:   fn.Get("nativeTag").Int(),
					IsClassCtor: fn.Get("classCtor").Bool(),
				}
				if kind == value.FuncInterpreted {
					nodeID := ast.NodeID(fn.Get("nodeId").Int())
					node, ok := nodeIndex[nodeID]
					if !ok {
						return fmt.Errorf("snapshot: function node id %d not found in reparsed source", nodeID)
					}
					slot.NodeID = int64(nodeID)
					slot.Node = node
					slot.ParentEnv = resolveScope(int(fn.Get("env").Int()))
					var params []string
					fn.Get("params").ForEach(func(_, p gjson.Result) bool {
						params = append(params, p.Str)
						return true
					})
					slot.ParamNames = params
				}
				o.Function = slot
			}
		}
	}

	for i, r := range scopeRecs {
		sc := scopes[i]
		sc.SetOuter(resolveScope(int(r.Get("outer").Int())))
		var varErr error
		r.Get("vars").ForEach(func(_, v gjson.Result) bool {
			val, err := decodeValue(v.Get("v"), objects)
			if err != nil {
				varErr = err
				return false
			}
			sc.Declare(v.Get("k").Str, val, v.Get("ro").Bool())
			return true
		})
		if varErr != nil {
			return varErr
		}
	}

	wk := header.Get("wellKnown")
	h.ObjectProto = resolveObj(int(wk.Get("objectProto").Int()))
	h.FunctionProto = resolveObj(int(wk.Get("functionProto").Int()))
	h.ArrayProto = resolveObj(int(wk.Get("arrayProto").Int()))
	h.StringProto = resolveObj(int(wk.Get("stringProto").Int()))
	h.NumberProto = resolveObj(int(wk.Get("numberProto").Int()))
	h.BooleanProto = resolveObj(int(wk.Get("booleanProto").Int()))
	h.DateProto = resolveObj(int(wk.Get("dateProto").Int()))
	h.RegexProto = resolveObj(int(wk.Get("regexProto").Int()))
	h.ErrorProtos = make(map[string]*value.Object, len(errorProtoOrder))
	for _, kind := range errorProtoOrder {
		h.ErrorProtos[kind] = resolveObj(int(wk.Get("errorProtos." + kind).Int()))
	}
	h.Global = resolveScope(int(header.Get("global").Int()))

	snaps := make([]interp.StackSnapshot, stackCount)
	for i := 0; i < stackCount; i++ {
		r := gjson.Parse(records[1+objCount+scopeCount+i])
		pend, err := decodePendingUnwind(r.Get("pending"), objects)
		if err != nil {
			return err
		}
		var frames []*interp.Frame
		var frameErr error
		r.Get("frames").ForEach(func(_, fr gjson.Result) bool {
			f, err := decodeFrame(fr, objects, resolveObj, resolveScope, nodeIndex)
			if err != nil {
				frameErr = err
				return false
			}
			frames = append(frames, f)
			return true
		})
		if frameErr != nil {
			return frameErr
		}
		snaps[i] = interp.StackSnapshot{Frames: frames, Pending: pend, Done: r.Get("done").Bool()}
	}
	s.SetStacks(snaps)
	return nil
}

func decodeValueList(r gjson.Result, objects []*value.Object) ([]value.Value, error) {
	var out []value.Value
	var err error
	r.ForEach(func(_, v gjson.Result) bool {
		var dv value.Value
		dv, err = decodeValue(v, objects)
		if err != nil {
			return false
		}
		out = append(out, dv)
		return true
	})
	return out, err
}

func decodeStringList(r gjson.Result) []string {
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.Str)
		return true
	})
	return out
}

func decodePendingUnwind(r gjson.Result, objects []*value.Object) (*interp.PendingUnwind, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return nil, nil
	}
	v, err := decodeValue(r.Get("value"), objects)
	if err != nil {
		return nil, err
	}
	return &interp.PendingUnwind{Kind: r.Get("kind").Str, Label: r.Get("label").Str, Value: v}, nil
}

func decodeFrame(
	r gjson.Result,
	objects []*value.Object,
	resolveObj func(int) *value.Object,
	resolveScope func(int) *heap.Scope,
	nodeIndex map[ast.NodeID]*ast.Node,
) (*interp.Frame, error) {
	f := &interp.Frame{}

	nodeID := ast.NodeID(r.Get("node").Int())
	if node, ok := nodeIndex[nodeID]; ok {
		f.Node = node
	} else {
		return nil, fmt.Errorf("snapshot: frame node id %d not found in reparsed source", nodeID)
	}
	f.Scope = resolveScope(int(r.Get("scope").Int()))
	f.PendingRole = interp.Role(r.Get("pendingRole").Int())
	f.PendingIdx = int(r.Get("pendingIdx").Int())

	f.DoneLeft = r.Get("doneLeft").Bool()
	f.DoneRight = r.Get("doneRight").Bool()
	f.DoneTest = r.Get("doneTest").Bool()
	f.DoneCallee = r.Get("doneCallee").Bool()
	f.DoneArgs = r.Get("doneArgs").Bool()
	f.DoneExec = r.Get("doneExec").Bool()
	f.DoneInit = r.Get("doneInit").Bool()
	f.DoneUpdate = r.Get("doneUpdate").Bool()
	f.DoneObject = r.Get("doneObject").Bool()
	f.DoneBlock = r.Get("doneBlock").Bool()
	f.DoneHandler = r.Get("doneHandler").Bool()
	f.DoneFinally = r.Get("doneFinally").Bool()
	f.DoneDiscriminant = r.Get("doneDiscriminant").Bool()
	f.N = int(r.Get("n").Int())
	f.Index = int(r.Get("index").Int())

	var err error
	if f.LeftVal, err = decodeValue(r.Get("leftVal"), objects); err != nil {
		return nil, err
	}
	if f.RightVal, err = decodeValue(r.Get("rightVal"), objects); err != nil {
		return nil, err
	}
	if f.TestVal, err = decodeValue(r.Get("testVal"), objects); err != nil {
		return nil, err
	}
	if f.ObjectVal, err = decodeValue(r.Get("objectVal"), objects); err != nil {
		return nil, err
	}
	if f.PropertyVal, err = decodeValue(r.Get("propertyVal"), objects); err != nil {
		return nil, err
	}
	if f.Callee, err = decodeValue(r.Get("callee"), objects); err != nil {
		return nil, err
	}
	if f.ThisVal, err = decodeValue(r.Get("thisVal"), objects); err != nil {
		return nil, err
	}
	if f.Value, err = decodeValue(r.Get("value"), objects); err != nil {
		return nil, err
	}
	if f.ArgVals, err = decodeValueList(r.Get("argVals"), objects); err != nil {
		return nil, err
	}
	if f.Elements, err = decodeValueList(r.Get("elements"), objects); err != nil {
		return nil, err
	}
	if f.PropVals, err = decodeValueList(r.Get("propVals"), objects); err != nil {
		return nil, err
	}
	f.PropKeys = decodeStringList(r.Get("propKeys"))

	if refR := r.Get("ref"); refR.Exists() && refR.Type != gjson.Null {
		objVal, err := decodeValue(refR.Get("object"), objects)
		if err != nil {
			return nil, err
		}
		f.Ref = &interp.Reference{
			IsScope: refR.Get("isScope").Bool(),
			Scope:   resolveScope(int(refR.Get("scope").Int())),
			Name:    refR.Get("name").Str,
			Object:  objVal,
			Key:     refR.Get("key").Str,
		}
	}

	f.IsNew = r.Get("isNew").Bool()
	f.Constructed = resolveObj(int(r.Get("constructed").Int()))
	f.IsCallBody = r.Get("isCallBody").Bool()
	f.ForInKeys = decodeStringList(r.Get("forInKeys"))
	f.ForInIndex = int(r.Get("forInIndex").Int())
	f.CatchScope = resolveScope(int(r.Get("catchScope").Int()))

	pend, err := decodePendingUnwind(r.Get("finallyPend"), objects)
	if err != nil {
		return nil, err
	}
	f.SetFinallyPend(pend)

	f.SwitchMatched = r.Get("switchMatched").Bool()
	f.DefaultIdx = int(r.Get("defaultIdx").Int())
	f.CallSetupDone = r.Get("callSetupDone").Bool()
	f.SuppressRef = r.Get("suppressRef").Bool()
	f.Paused = r.Get("paused").Bool()
	f.Label = r.Get("label").Str
	f.Done = r.Get("done").Bool()

	return f, nil
}
