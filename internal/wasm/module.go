package wasm

// FuncType is a function signature.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Func is a function with its type index and body expression.
// Body excludes local declarations and must end with OpEnd.
type Func struct {
	Locals []ValType
	Body   []byte
	Type   uint32
}

// Memory is a memory type. Max of 0 means unbounded.
type Memory struct {
	Min uint32
	Max uint32
}

// Global is a global with a constant initializer expression.
type Global struct {
	Init    []byte
	Type    ValType
	Mutable bool
}

// Export exports an item by kind and index.
type Export struct {
	Name string
	Kind byte
	Idx  uint32
}

// Data is an active data segment for memory 0.
type Data struct {
	Bytes  []byte
	Offset int32
}

// Module is an encodable core module.
type Module struct {
	Types    []FuncType
	Funcs    []Func
	Memories []Memory
	Globals  []Global
	Exports  []Export
	Data     []Data
}

// AddType appends a function type and returns its index, reusing an
// identical existing type.
func (m *Module) AddType(ft FuncType) uint32 {
	for i, t := range m.Types {
		if sameTypes(t.Params, ft.Params) && sameTypes(t.Results, ft.Results) {
			return uint32(i)
		}
	}
	m.Types = append(m.Types, ft)
	return uint32(len(m.Types) - 1)
}

// AddFunc appends a function with signature ft and body, exports it under
// name when name is non-empty, and returns its index.
func (m *Module) AddFunc(name string, ft FuncType, body []byte) uint32 {
	idx := uint32(len(m.Funcs))
	m.Funcs = append(m.Funcs, Func{Type: m.AddType(ft), Body: body})
	if name != "" {
		m.Exports = append(m.Exports, Export{Name: name, Kind: KindFunc, Idx: idx})
	}
	return idx
}

func sameTypes(a, b []ValType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
