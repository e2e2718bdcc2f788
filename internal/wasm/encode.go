package wasm

import (
	"encoding/binary"
)

type writer struct {
	buf []byte
}

func (w *writer) byte(b byte) { w.buf = append(w.buf, b) }
func (w *writer) bytes(b []byte) { w.buf = append(w.buf, b...) }
func (w *writer) u32(v uint32) { w.buf = AppendLEB128u(w.buf, uint64(v)) }
func (w *writer) u32le(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *writer) name(s string) { w.u32(uint32(len(s))); w.buf = append(w.buf, s...) }
func (w *writer) vec(b []byte) { w.u32(uint32(len(b))); w.bytes(b) }
func (w *writer) valTypes(ts []ValType) {
	w.u32(uint32(len(ts)))
	for _, t := range ts {
		w.byte(byte(t))
	}
}

func writeSection(w *writer, id byte, content []byte) {
	w.byte(id)
	w.vec(content)
}

// Encode encodes the module to WebAssembly binary format
func (m *Module) Encode() []byte {
	w := &writer{}

	// Magic number and version
	w.u32le(Magic)
	w.u32le(Version)

	// Type section
	if len(m.Types) > 0 {
		sec := &writer{}
		sec.u32(uint32(len(m.Types)))
		for _, ft := range m.Types {
			sec.byte(FuncTypeByte)
			sec.valTypes(ft.Params)
			sec.valTypes(ft.Results)
		}
		writeSection(w, SectionType, sec.buf)
	}

	// Function section
	if len(m.Funcs) > 0 {
		sec := &writer{}
		sec.u32(uint32(len(m.Funcs)))
		for _, f := range m.Funcs {
			sec.u32(f.Type)
		}
		writeSection(w, SectionFunction, sec.buf)
	}

	// Memory section
	if len(m.Memories) > 0 {
		sec := &writer{}
		sec.u32(uint32(len(m.Memories)))
		for _, mem := range m.Memories {
			if mem.Max > 0 {
				sec.byte(0x01)
				sec.u32(mem.Min)
				sec.u32(mem.Max)
			} else {
				sec.byte(0x00)
				sec.u32(mem.Min)
			}
		}
		writeSection(w, SectionMemory, sec.buf)
	}

	// Global section
	if len(m.Globals) > 0 {
		sec := &writer{}
		sec.u32(uint32(len(m.Globals)))
		for _, g := range m.Globals {
			sec.byte(byte(g.Type))
			if g.Mutable {
				sec.byte(0x01)
			} else {
				sec.byte(0x00)
			}
			sec.bytes(g.Init)
		}
		writeSection(w, SectionGlobal, sec.buf)
	}

	// Export section
	if len(m.Exports) > 0 {
		sec := &writer{}
		sec.u32(uint32(len(m.Exports)))
		for _, exp := range m.Exports {
			sec.name(exp.Name)
			sec.byte(exp.Kind)
			sec.u32(exp.Idx)
		}
		writeSection(w, SectionExport, sec.buf)
	}

	// Code section
	if len(m.Funcs) > 0 {
		sec := &writer{}
		sec.u32(uint32(len(m.Funcs)))
		for _, f := range m.Funcs {
			body := &writer{}
			// one local declaration per local; compact enough for small guests
			body.u32(uint32(len(f.Locals)))
			for _, l := range f.Locals {
				body.u32(1)
				body.byte(byte(l))
			}
			body.bytes(f.Body)
			sec.vec(body.buf)
		}
		writeSection(w, SectionCode, sec.buf)
	}

	// Data section
	if len(m.Data) > 0 {
		sec := &writer{}
		sec.u32(uint32(len(m.Data)))
		for _, d := range m.Data {
			sec.u32(0) // active, memory 0
			sec.bytes(Expr(I32Const(d.Offset)))
			sec.vec(d.Bytes)
		}
		writeSection(w, SectionData, sec.buf)
	}

	return w.buf
}
