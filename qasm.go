package qutrace

import (
	"fmt"
	"strings"
)

/*
QASM renders a compiled circuit as an OpenQASM 3.0 program. Guarded
operations become if-statements on single classical bits, which is the OpenQASM
3 form of the per-instruction runtime conditions the scheduler emits.
*/
func QASM(c *Circuit) string {
	var b strings.Builder
	b.WriteString("OPENQASM 3.0;\n")
	b.WriteString("include \"stdgates.inc\";\n\n")
	fmt.Fprintf(&b, "qubit[%d] q;\n", c.Qubits)
	if c.Clbits > 0 {
		fmt.Fprintf(&b, "bit[%d] c;\n", c.Clbits)
	}
	b.WriteString("\n")

	for _, op := range c.Ops {
		if op.Kind == OpMeasure {
			fmt.Fprintf(&b, "c[%d] = measure q[%d];\n", op.Clbit, op.Qubit)
			continue
		}
		line := qasmGateLine(op)
		if len(op.Guards) == 0 {
			b.WriteString(line + ";\n")
			continue
		}
		indent := ""
		for _, g := range op.Guards {
			v := 0
			if g.Value {
				v = 1
			}
			fmt.Fprintf(&b, "%sif (c[%d] == %d) {\n", indent, g.Clbit, v)
			indent += "  "
		}
		b.WriteString(indent + line + ";\n")
		for i := len(op.Guards) - 1; i >= 0; i-- {
			b.WriteString(strings.Repeat("  ", i) + "}\n")
		}
	}
	return b.String()
}

func qasmGateLine(op Op) string {
	targets := make([]string, len(op.Qubits))
	for i, q := range op.Qubits {
		targets[i] = fmt.Sprintf("q[%d]", q)
	}
	return fmt.Sprintf("%s %s", op.Gate, strings.Join(targets, ", "))
}
