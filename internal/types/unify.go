package types

// Unify attempts to reconcile a and b into a single type, the way the
// bidirectional checker does at every expression boundary:
// Unknown resolves to whatever it is unified against (an inference
// variable being solved), Any unifies with anything and is absorbed by
// it (an explicit escape hatch, not an error mask beyond that single
// site), and every other pair must be structurally Equal. The returned
// type is the most specific of the two; ok is false if a and b are
// incompatible, in which case the caller raises a type-mismatch
// diagnostic itself (Unify carries no positional information).
func Unify(a, b *Type) (*Type, bool) {
	if a == nil {
		a = Unknown
	}
	if b == nil {
		b = Unknown
	}
	if a.Kind == KindUnknown {
		return b, true
	}
	if b.Kind == KindUnknown {
		return a, true
	}
	if a.Kind == KindAny {
		return b, true
	}
	if b.Kind == KindAny {
		return a, true
	}
	if a.Kind != b.Kind {
		return nil, false
	}
	switch a.Kind {
	case KindList:
		elem, ok := Unify(a.Elem, b.Elem)
		if !ok {
			return nil, false
		}
		return List(elem), true
	case KindMap:
		key, ok := Unify(a.Key, b.Key)
		if !ok {
			return nil, false
		}
		val, ok := Unify(a.Value, b.Value)
		if !ok {
			return nil, false
		}
		return Map(key, val), true
	case KindContainer:
		if a.Name != b.Name {
			return nil, false
		}
		return a, true
	case KindAction:
		if len(a.Params) != len(b.Params) {
			return nil, false
		}
		params := make([]*Type, len(a.Params))
		for i := range a.Params {
			p, ok := Unify(a.Params[i], b.Params[i])
			if !ok {
				return nil, false
			}
			params[i] = p
		}
		ret, ok := Unify(a.Return, b.Return)
		if !ok {
			return nil, false
		}
		return Action(params, ret), true
	default:
		return a, true
	}
}

// AssignableTo reports whether a value of type from may be stored where
// type to is expected, without mutating either type: identical to
// Unify's compatibility check, but one-directional in spirit — callers
// that need the unified result should call Unify directly.
func AssignableTo(from, to *Type) bool {
	_, ok := Unify(from, to)
	return ok
}
