package qutrace

import (
	"fmt"
	"strings"
)

/*
Gate is an opaque primitive descriptor: a name, its numeric parameters, and
how many quantum controls have been stacked on top of it. The engine never
interprets the name; backends and exporters do.
*/
type Gate struct {
	Name     string
	Params   []float64
	Controls int
}

// Controlled returns a copy of the gate with n additional quantum controls.
func (g Gate) Controlled(n int) Gate {
	g.Controls += n
	return g
}

// Arity is the number of qubits the gate acts on, controls included.
func (g Gate) Arity() int {
	return g.Controls + 1
}

// String renders the gate the way OpenQASM names it, e.g. "ccx" or "rx(0.5)".
func (g Gate) String() string {
	name := strings.Repeat("c", g.Controls) + g.Name
	if len(g.Params) == 0 {
		return name
	}
	params := make([]string, len(g.Params))
	for i, p := range g.Params {
		params[i] = fmt.Sprintf("%g", p)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(params, ","))
}

// The fixed single-qubit gate catalog.

func XGate() Gate   { return Gate{Name: "x"} }
func YGate() Gate   { return Gate{Name: "y"} }
func ZGate() Gate   { return Gate{Name: "z"} }
func HGate() Gate   { return Gate{Name: "h"} }
func SGate() Gate   { return Gate{Name: "s"} }
func SdgGate() Gate { return Gate{Name: "sdg"} }
func TGate() Gate   { return Gate{Name: "t"} }
func TdgGate() Gate { return Gate{Name: "tdg"} }

func PGate(lambda float64) Gate  { return Gate{Name: "p", Params: []float64{lambda}} }
func RXGate(theta float64) Gate  { return Gate{Name: "rx", Params: []float64{theta}} }
func RYGate(theta float64) Gate  { return Gate{Name: "ry", Params: []float64{theta}} }
func RZGate(theta float64) Gate  { return Gate{Name: "rz", Params: []float64{theta}} }
func UGate(theta, phi, lambda float64) Gate {
	return Gate{Name: "u", Params: []float64{theta, phi, lambda}}
}
