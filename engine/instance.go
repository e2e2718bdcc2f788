package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// instance is one instantiated guest. Calls are serialized by mu.
type instance struct {
	ctx    context.Context
	mod    api.Module
	mem    api.Memory
	funcs  map[string]api.Function
	mu     sync.Mutex
	closed bool
}

func newInstance(ctx context.Context, mod api.Module) (*instance, error) {
	inst := &instance{
		ctx:   ctx,
		mod:   mod,
		mem:   mod.Memory(),
		funcs: make(map[string]api.Function, len(requiredExports)),
	}
	if inst.mem == nil {
		return nil, fmt.Errorf("guest exports no memory")
	}
	for name := range requiredExports {
		fn := mod.ExportedFunction(name)
		if fn == nil {
			return nil, fmt.Errorf("guest export %q not found", name)
		}
		inst.funcs[name] = fn
	}
	return inst, nil
}

// call invokes a guest export and returns its first result, or 0 for
// functions without results. The caller holds mu.
func (i *instance) call(name string, params ...uint64) (uint64, error) {
	if i.closed {
		return 0, fmt.Errorf("guest instance closed")
	}
	res, err := i.funcs[name].Call(i.ctx, params...)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", name, err)
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0], nil
}

// writeString copies s into a guest buffer obtained from alloc. The caller
// holds mu and frees the buffer with free.
func (i *instance) writeString(s string) (ptr, length uint32, err error) {
	length = uint32(len(s))
	res, err := i.call(ExportAlloc, uint64(length))
	if err != nil {
		return 0, 0, err
	}
	ptr = uint32(res)
	if length > 0 && !i.mem.WriteString(ptr, s) {
		return 0, 0, fmt.Errorf("write out of bounds: offset=%d, length=%d", ptr, length)
	}
	return ptr, length, nil
}

func (i *instance) free(ptr, length uint32) {
	if _, err := i.call(ExportDealloc, uint64(ptr), uint64(length)); err != nil {
		Logger().Debug("guest dealloc failed", zap.Uint32("ptr", ptr), zap.Error(err))
	}
}

// readList copies a packed list out of guest memory and frees it.
// A non-zero ptr is always handed back to the guest, even when the list is
// empty or cannot be read.
func (i *instance) readList(ptr, length uint32) ([]string, error) {
	if ptr != 0 {
		defer i.free(ptr, length)
	}
	if length == 0 {
		return []string{}, nil
	}
	data, ok := i.mem.Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", ptr, length)
	}
	return splitList(string(data)), nil
}

// withWord writes word, runs fn with its location and frees it.
func (i *instance) withWord(word string, fn func(ptr, length uint32) (uint64, error)) (uint64, error) {
	ptr, length, err := i.writeString(word)
	if err != nil {
		return 0, err
	}
	defer i.free(ptr, length)
	return fn(ptr, length)
}

func (i *instance) close() {
	if i.closed {
		return
	}
	i.closed = true
	if err := i.mod.Close(i.ctx); err != nil {
		Logger().Debug("guest instance close failed", zap.Error(err))
	}
}
