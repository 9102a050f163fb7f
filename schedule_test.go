package qutrace

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

// bellTrace records the same trace every time it runs: Bell pair, both
// qubits measured.
func bellTrace() []*Promise {
	tr := NewTrace()
	left, right := tr.Qubit(), tr.Qubit()
	left.H()
	right.X(left)
	l, _ := left.Measure()
	r, _ := right.Measure()
	return []*Promise{l, r}
}

func compile(promises []*Promise) (*Circuit, error) {
	link := resolveLinkage(promises)
	circuit := &Circuit{}
	_, err := schedule(link, circuit)
	return circuit, err
}

func TestSchedulerDeterminism(t *testing.T) {
	Convey("Given two identical traces", t, func() {
		first, err := compile(bellTrace())
		So(err, ShouldBeNil)
		second, err := compile(bellTrace())
		So(err, ShouldBeNil)

		Convey("Then they compile to byte-identical circuits", func() {
			So(second.String(), ShouldEqual, first.String())
			So(spew.Sdump(second), ShouldEqual, spew.Sdump(first))
		})
	})
}

func TestSchedulerOrderPreservation(t *testing.T) {
	Convey("Given one qubit with a run of gates", t, func() {
		tr := NewTrace()
		q := tr.Qubit()
		q.X().H().S().T()
		m, _ := q.Measure()

		circuit, err := compile([]*Promise{m})
		So(err, ShouldBeNil)

		Convey("Then the circuit replays the log order exactly", func() {
			So(circuit.String(), ShouldEqual,
				"qubits 1; clbits 1\n"+
					"x q[0]\n"+
					"h q[0]\n"+
					"s q[0]\n"+
					"t q[0]\n"+
					"measure q[0] -> c[0]\n")
		})
	})

	Convey("Given interleaved work on two linked qubits", t, func() {
		tr := NewTrace()
		a, b := tr.Qubit(), tr.Qubit()
		a.H()
		b.X(a)
		a.Z()
		b.H()
		ma, _ := a.Measure()
		mb, _ := b.Measure()

		circuit, err := compile([]*Promise{ma, mb})
		So(err, ShouldBeNil)

		Convey("Then every operand's relative order survives the merge", func() {
			So(circuit.String(), ShouldEqual,
				"qubits 2; clbits 2\n"+
					"h q[0]\n"+
					"cx q[0],q[1]\n"+
					"z q[0]\n"+
					"measure q[0] -> c[0]\n"+
					"h q[1]\n"+
					"measure q[1] -> c[1]\n")
		})
	})
}

func TestSchedulerClosureScoping(t *testing.T) {
	Convey("Given an operand outside the closure", t, func() {
		tr := NewTrace()
		wanted := tr.Qubit()
		unwanted := tr.Qubit()
		wanted.X()
		unwanted.H().H()
		m, _ := wanted.Measure()

		circuit, err := compile([]*Promise{m})
		So(err, ShouldBeNil)

		Convey("Then none of its instructions appear in the circuit", func() {
			So(circuit.Qubits, ShouldEqual, 1)
			So(len(circuit.Ops), ShouldEqual, 2)
		})
	})
}

func TestSingleMeasurementScenario(t *testing.T) {
	Convey("Given one fresh qubit that is only measured", t, func() {
		tr := NewTrace()
		m, _ := tr.Qubit().Measure()

		circuit, err := compile([]*Promise{m})
		So(err, ShouldBeNil)

		Convey("Then the circuit is one measurement and nothing else", func() {
			So(circuit.Qubits, ShouldEqual, 1)
			So(circuit.Clbits, ShouldEqual, 1)
			So(len(circuit.Ops), ShouldEqual, 1)
			So(circuit.Ops[0].Kind, ShouldEqual, OpMeasure)
		})

		Convey("Then outcome bitmasks resolve directly onto the promise", func() {
			So(m.resolve(Outcome{Bits: 0}.Bit(m.index)), ShouldBeNil)
			v, _ := m.Value()
			So(v, ShouldBeFalse)
		})
	})
}

func TestMeasurementWithInvertedSiblings(t *testing.T) {
	Convey("Given a promise and its inversion", t, func() {
		tr := NewTrace()
		q := tr.Qubit()
		m, _ := q.Measure()
		inv := m.Not()

		circuit, err := compile([]*Promise{m, inv})
		So(err, ShouldBeNil)

		Convey("Then the one measurement writes a classical bit per sibling", func() {
			So(circuit.Clbits, ShouldEqual, 2)
			So(len(circuit.Ops), ShouldEqual, 2)
			So(circuit.Ops[0].Kind, ShouldEqual, OpMeasure)
			So(circuit.Ops[1].Kind, ShouldEqual, OpMeasure)
			So(circuit.Ops[0].Qubit, ShouldEqual, circuit.Ops[1].Qubit)
			So(circuit.Ops[0].Clbit, ShouldNotEqual, circuit.Ops[1].Clbit)
		})
	})
}

func TestClassicalGuardEmission(t *testing.T) {
	Convey("Given a gate guarded by a promise and by its inversion", t, func() {
		tr := NewTrace()
		a, b, c := tr.Qubit(), tr.Qubit(), tr.Qubit()
		m, _ := a.Measure()
		b.X(m)
		c.X(m.Not())
		mb, _ := b.Measure()
		mc, _ := c.Measure()

		circuit, err := compile([]*Promise{mb, mc})
		So(err, ShouldBeNil)

		Convey("Then guard polarity honors the inversion", func() {
			var guards [][]Guard
			for _, op := range circuit.Ops {
				if op.Kind == OpGate {
					guards = append(guards, op.Guards)
				}
			}
			So(len(guards), ShouldEqual, 2)
			So(guards[0][0].Value, ShouldBeTrue)
			So(guards[1][0].Value, ShouldBeFalse)
			So(guards[1][0].Clbit, ShouldNotEqual, guards[0][0].Clbit)
		})
	})
}

func TestSchedulerStall(t *testing.T) {
	Convey("Given a corrupted trace where an instruction is missing from a log", t, func() {
		tr := NewTrace()
		a, b := tr.Qubit(), tr.Qubit()

		inst := &Instruction{Gate: XGate(), Qubits: []*Qubit{a, b}}
		a.appendOp(inst) // never appended to b: unsatisfiable sync condition

		link := linkage{qubits: []*Qubit{a, b}}

		Convey("Then scheduling fails instead of spinning", func() {
			_, err := schedule(link, &Circuit{})
			So(err, ShouldEqual, ErrSchedulerStall)
		})
	})
}
