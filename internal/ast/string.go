package ast

import (
	"strconv"
	"strings"

	"github.com/msdscript-go/msdscript/internal/gc"
)

// String renders e in the surface grammar of §4.6. Every compound form is
// fully parenthesized, so the result always reparses to a structurally
// equal tree regardless of operator precedence — exact whitespace is not
// otherwise significant.
func String(h *gc.Heap, e gc.Ref) string {
	var sb strings.Builder
	writeExpr(&sb, h, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, h *gc.Heap, e gc.Ref) {
	switch x := h.Get(e).(type) {
	case Num:
		sb.WriteString(strconv.FormatInt(int64(x.Value), 10))
	case Bool:
		if x.Value {
			sb.WriteString("_true")
		} else {
			sb.WriteString("_false")
		}
	case Var:
		sb.WriteString(x.Name)
	case *Add:
		sb.WriteByte('(')
		writeExpr(sb, h, x.Lhs)
		sb.WriteString(" + ")
		writeExpr(sb, h, x.Rhs)
		sb.WriteByte(')')
	case *Mult:
		sb.WriteByte('(')
		writeExpr(sb, h, x.Lhs)
		sb.WriteString(" * ")
		writeExpr(sb, h, x.Rhs)
		sb.WriteByte(')')
	case *Comp:
		sb.WriteByte('(')
		writeExpr(sb, h, x.Lhs)
		sb.WriteString(" == ")
		writeExpr(sb, h, x.Rhs)
		sb.WriteByte(')')
	case *If:
		sb.WriteString("(_if ")
		writeExpr(sb, h, x.Test)
		sb.WriteString(" _then ")
		writeExpr(sb, h, x.Then)
		sb.WriteString(" _else ")
		writeExpr(sb, h, x.Else)
		sb.WriteByte(')')
	case *Let:
		sb.WriteString("(_let ")
		sb.WriteString(x.Name)
		sb.WriteString(" = ")
		writeExpr(sb, h, x.Rhs)
		sb.WriteString(" _in ")
		writeExpr(sb, h, x.Body)
		sb.WriteByte(')')
	case *Fun:
		sb.WriteString("(_fun (")
		sb.WriteString(x.Formal)
		sb.WriteString(") ")
		writeExpr(sb, h, x.Body)
		sb.WriteByte(')')
	case *Call:
		sb.WriteByte('(')
		writeExpr(sb, h, x.Callee)
		sb.WriteByte('(')
		writeExpr(sb, h, x.Arg)
		sb.WriteString("))")
	}
}
