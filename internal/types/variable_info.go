package types

// VariableInfo is one inference slot: a local variable, or the parameter/
// return slot of a Method. It carries the current best-known Type plus the
// accumulating upper/lower bound constraints (SPEC_FULL.md §4.5). The
// Inferer solves every slot once per round, after walking the whole
// program; it does not solve at individual class or method boundaries.
type VariableInfo struct {
	Name       string
	Type       Type
	Inferred   bool
	UpperTypes []Type
	LowerTypes []Type
}

// NewVariableInfo creates a slot for vtype. Inferred starts true unless
// vtype is AUTO_TYPE — matching the Data Model invariant
// "inferred ⇔ current Type is not AUTO_TYPE".
func NewVariableInfo(name string, vtype Type) *VariableInfo {
	return &VariableInfo{
		Name:     name,
		Type:     vtype,
		Inferred: !IsAutoType(vtype),
	}
}

// SetUpperType records that v is used where a value of typ is required.
// Ignored once v is closed, and AUTO_TYPE hints are never useful upper
// bounds.
func (v *VariableInfo) SetUpperType(typ Type) {
	if !v.Inferred && !IsAutoType(typ) {
		v.UpperTypes = append(v.UpperTypes, typ)
	}
}

// SetLowerType records that v is assigned from a value of typ.
func (v *VariableInfo) SetLowerType(typ Type) {
	if !v.Inferred {
		v.LowerTypes = append(v.LowerTypes, typ)
	}
}

// Solve reduces the accumulated constraints to a single Type, per
// SPEC_FULL.md §4.5:
//  1. reduce upper_types to the most-specific type consistent with all
//     entries (incomparable entries collapse to <error>);
//  2. reduce lower_types via a left fold of type_union;
//  3. result = lower bound if present, else upper bound, provided
//     lower <= upper; otherwise <error>.
// If the result is null or <error>, v stays open (AUTO_TYPE); otherwise v
// is closed, its constraint sets are cleared, and Solve reports that
// something changed.
func (v *VariableInfo) Solve() bool {
	if v.Inferred {
		return false
	}

	var upper Type
	for _, t := range v.UpperTypes {
		switch {
		case upper == nil || t.ConformsTo(upper):
			upper = t
		case upper.ConformsTo(t):
			// upper already the more specific of the two; keep it.
		default:
			upper = ErrorType
		}
	}

	var lower Type
	for _, t := range v.LowerTypes {
		if lower == nil {
			lower = t
		} else {
			lower = TypeUnion(lower, t)
		}
	}

	var result Type
	if lower != nil {
		if upper == nil || lower.ConformsTo(upper) {
			result = lower
		} else {
			result = ErrorType
		}
	} else {
		result = upper
	}

	if result == nil || IsErrorType(result) || IsAutoType(result) {
		v.Type = AutoType
		return false
	}

	v.Type = result
	v.Inferred = true
	v.UpperTypes = nil
	v.LowerTypes = nil
	return true
}
