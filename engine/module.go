package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

// Module is the capability module served by a compiled guest.
type Module struct {
	loader *Loader
}

// SupportedLanguages returns the guest's language tags in guest order.
func (m *Module) SupportedLanguages() ([]string, error) {
	inst, err := m.loader.instantiate(errors.PhaseCall, opLanguages)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	defer inst.close()

	res, err := inst.call(ExportSupportedLanguages)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCall, opLanguages, err, "")
	}
	ptr, length, ok := unpackList(res)
	if !ok {
		return nil, errors.NativeFailure(errors.PhaseCall, opLanguages, int64(res), "guest returned error")
	}
	langs, err := inst.readList(ptr, length)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCall, opLanguages, err, "")
	}
	return langs, nil
}

// IsLoaded instantiates the guest and asks whether it is ready.
func (m *Module) IsLoaded() (bool, error) {
	inst, err := m.loader.instantiate(errors.PhaseProbe, opIsLoaded)
	if err != nil {
		return false, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	defer inst.close()

	res, err := inst.call(ExportIsLoaded)
	if err != nil {
		return false, errors.Wrap(errors.PhaseProbe, opIsLoaded, err, "")
	}
	return i32Result(res) == 1, nil
}

// NewChecker creates a checker on a dedicated guest instance.
func (m *Module) NewChecker(language string) (capability.Checker, error) {
	inst, err := m.loader.instantiate(errors.PhaseCreate, opNew)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	res, err := inst.withWord(language, func(ptr, length uint32) (uint64, error) {
		return inst.call(ExportCreateChecker, uint64(ptr), uint64(length))
	})
	if err != nil {
		inst.close()
		return nil, errors.Wrap(errors.PhaseCreate, opNew, err, "")
	}
	handle := i32Result(res)
	if handle <= 0 {
		inst.close()
		return nil, errors.NativeFailure(errors.PhaseCreate, opNew, int64(handle),
			fmt.Sprintf("guest cannot create a checker for %q", language))
	}

	m.loader.logger.Debug("guest checker created", zap.String("language", language), zap.Int32("handle", handle))
	return &Checker{inst: inst, handle: uint32(handle), language: language}, nil
}

var _ capability.Module = (*Module)(nil)
