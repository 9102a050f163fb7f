package qutrace

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQASM(t *testing.T) {
	Convey("Given a circuit with a classically guarded gate", t, func() {
		tr := NewTrace()
		a, b := tr.Qubit(), tr.Qubit()
		m, _ := a.Measure()
		b.X(m)
		r, _ := b.Measure()

		circuit, err := compile([]*Promise{m, r})
		So(err, ShouldBeNil)

		Convey("Then it renders as OpenQASM 3", func() {
			So(QASM(circuit), ShouldEqual,
				"OPENQASM 3.0;\n"+
					"include \"stdgates.inc\";\n\n"+
					"qubit[2] q;\n"+
					"bit[2] c;\n\n"+
					"c[0] = measure q[0];\n"+
					"if (c[0] == 1) {\n"+
					"  x q[1];\n"+
					"}\n"+
					"c[1] = measure q[1];\n")
		})
	})

	Convey("Given a Bell pair circuit", t, func() {
		tr := NewTrace()
		left, right := tr.Qubit(), tr.Qubit()
		left.H()
		right.X(left)
		l, _ := left.Measure()
		r, _ := right.Measure()

		circuit, err := compile([]*Promise{l, r})
		So(err, ShouldBeNil)

		Convey("Then controls render as multi-target gates", func() {
			So(QASM(circuit), ShouldEqual,
				"OPENQASM 3.0;\n"+
					"include \"stdgates.inc\";\n\n"+
					"qubit[2] q;\n"+
					"bit[2] c;\n\n"+
					"h q[0];\n"+
					"cx q[0], q[1];\n"+
					"c[0] = measure q[0];\n"+
					"c[1] = measure q[1];\n")
		})
	})

	Convey("Given a circuit without classical bits", t, func() {
		circuit := &Circuit{Qubits: 1}
		circuit.AppendGate(HGate(), []int{0}, nil)

		Convey("Then the bit register is omitted", func() {
			So(QASM(circuit), ShouldEqual,
				"OPENQASM 3.0;\n"+
					"include \"stdgates.inc\";\n\n"+
					"qubit[1] q;\n\n"+
					"h q[0];\n")
		})
	})
}
