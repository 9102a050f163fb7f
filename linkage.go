package qutrace

import "sort"

/*
linkage is the closure of operands that must compile together to fulfil a set
of requested promises. Entangled qubits cannot be compiled independently, so
starting from the requested promises the resolver follows every instruction in
every known operand's log and pulls in every operand that instruction touches,
until a fixed point. Operands and instructions form a bipartite hypergraph;
the walk uses an explicit worklist and a visited set rather than recursion,
since operands reference each other cyclically through shared instructions.

Qubit and classical bit indices are assigned here, before scheduling, by
creation order within the closure, so identical traces always compile to
identical register layouts.
*/
type linkage struct {
	qubits   []*Qubit
	promises []*Promise
}

// resolveLinkage computes the closure reachable from the requested promises
// and assigns circuit indices. Cursors are reset for the scheduling pass.
func resolveLinkage(requested []*Promise) linkage {
	visited := make(map[*operand]bool)
	var worklist []Operand
	var closure []Operand

	add := func(op Operand) {
		if b := op.base(); !visited[b] {
			visited[b] = true
			worklist = append(worklist, op)
			closure = append(closure, op)
		}
	}
	for _, p := range requested {
		add(p)
	}

	for len(worklist) > 0 {
		op := worklist[0]
		worklist = worklist[1:]
		for _, inst := range op.base().ops {
			for _, touched := range inst.touches() {
				add(touched)
			}
		}
	}

	sort.Slice(closure, func(i, j int) bool {
		return closure[i].base().seq < closure[j].base().seq
	})

	var link linkage
	for _, op := range closure {
		switch o := op.(type) {
		case *Qubit:
			o.index = len(link.qubits)
			o.cursor = 0
			link.qubits = append(link.qubits, o)
		case *Promise:
			o.index = len(link.promises)
			o.cursor = 0
			link.promises = append(link.promises, o)
		}
	}
	return link
}
