package vm

import (
	"strconv"

	"github.com/dressupgeekout/mrubyc/symtab"
)

func symbolName(vm *VM, id uint32) string {
	if s, ok := vm.syms.Name(symtab.ID(id)); ok {
		return s
	}
	return "?"
}

// toDisplayString renders v the way Kernel#puts and the to_s shims do: no
// quoting for String, an empty string for nil, and "true"/"false" for the
// booleans (Kernel#p uses inspectString below). This backs the builtins in
// builtin_*.go rather than being itself script-callable.
func toDisplayString(vm *VM, v Value) string {
	switch v.tag {
	case Nil:
		return ""
	case True:
		return "true"
	case False:
		return "false"
	case Integer:
		return strconv.FormatInt(v.Integer_(), 10)
	case Float:
		return strconv.FormatFloat(v.Float_(), 'g', -1, 64)
	case Symbol:
		return symbolName(vm, v.SymbolID())
	case String:
		return v.StringText()
	case Class:
		return symbolName(vm, uint32(v.classPayload().NameID))
	case Object:
		return "#<" + symbolName(vm, uint32(v.objectPayload().Class.NameID)) + ">"
	case Exception:
		return symbolName(vm, uint32(v.exceptionPayload().Class.NameID))
	default:
		return v.tag.String()
	}
}

// inspectString is toDisplayString's p-form: nil prints "nil", and String
// values are quoted, matching p's Ruby-visible difference from puts.
func inspectString(vm *VM, v Value) string {
	switch v.tag {
	case Nil:
		return "nil"
	case String:
		return strconv.Quote(v.StringText())
	default:
		return toDisplayString(vm, v)
	}
}
