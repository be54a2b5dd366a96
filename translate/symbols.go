package translate

import "github.com/vhavlena/z3-constraints/expr"

// Symbol is one entry of the symbol table.
type Symbol[H any] struct {
	Key    expr.VarKey
	Handle H
}

// symbolTable holds one partition per sort so that x:Int and x:Real never
// collide. Entries are only ever added.
type symbolTable[H any] struct {
	parts map[expr.Sort]map[string]H
	n     int
}

func newSymbolTable[H any]() *symbolTable[H] {
	return &symbolTable[H]{parts: map[expr.Sort]map[string]H{
		expr.Int:  make(map[string]H),
		expr.Real: make(map[string]H),
	}}
}

func (st *symbolTable[H]) lookup(k expr.VarKey) (H, bool) {
	h, ok := st.parts[k.Sort][k.Name]
	return h, ok
}

func (st *symbolTable[H]) insert(k expr.VarKey, h H) {
	part, ok := st.parts[k.Sort]
	if !ok {
		part = make(map[string]H)
		st.parts[k.Sort] = part
	}
	if _, dup := part[k.Name]; !dup {
		st.n++
	}
	part[k.Name] = h
}

func (st *symbolTable[H]) snapshot() []Symbol[H] {
	out := make([]Symbol[H], 0, st.n)
	keys := make([]expr.VarKey, 0, st.n)
	for s, part := range st.parts {
		for name := range part {
			keys = append(keys, expr.VarKey{Name: name, Sort: s})
		}
	}
	expr.SortKeys(keys)
	for _, k := range keys {
		h, _ := st.lookup(k)
		out = append(out, Symbol[H]{Key: k, Handle: h})
	}
	return out
}
