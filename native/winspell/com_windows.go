package winspell

import (
	"runtime"
	"sync/atomic"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	sOK    = 0
	sFalse = 1

	clsctxInprocServer = 0x1
)

// vtable slots.
const (
	methodQueryInterface = 0
	methodRelease        = 2

	factorySupportedLanguages = 3
	factoryIsSupported        = 4
	factoryCreateSpellChecker = 5

	checkerCheck   = 4
	checkerSuggest = 5
	checkerAdd     = 6
	checker2Remove = 17

	enumNext = 3
)

var (
	clsidSpellCheckerFactory = windows.GUID{Data1: 0x7AB36653, Data2: 0x1796, Data3: 0x484B,
		Data4: [8]byte{0xBD, 0xFA, 0xE7, 0x4F, 0x1D, 0xB7, 0xC1, 0xDC}}
	iidSpellCheckerFactory = windows.GUID{Data1: 0x8E018A9D, Data2: 0x2415, Data3: 0x4677,
		Data4: [8]byte{0xBF, 0x08, 0x79, 0x4E, 0xA6, 0x1F, 0x94, 0xBB}}
	iidSpellChecker2 = windows.GUID{Data1: 0xE7ED1C71, Data2: 0x87F7, Data3: 0x4378,
		Data4: [8]byte{0xA8, 0x40, 0xC9, 0x20, 0x0D, 0xAC, 0xEE, 0x47}}
)

var (
	ole32                = windows.NewLazySystemDLL("ole32.dll")
	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
)

// object is a COM interface pointer.
type object struct {
	vtbl unsafe.Pointer
}

func (o *object) call(method uintptr, args ...uintptr) int32 {
	fn := *(*uintptr)(unsafe.Add(o.vtbl, method*unsafe.Sizeof(uintptr(0))))
	r, _, _ := syscall.SyscallN(fn, append([]uintptr{uintptr(unsafe.Pointer(o))}, args...)...)
	return int32(r)
}

func (o *object) release() {
	if o != nil {
		o.call(methodRelease)
	}
}

func (o *object) queryInterface(iid *windows.GUID) (*object, int32) {
	var out *object
	hr := o.call(methodQueryInterface, uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(&out)))
	return out, hr
}

func coCreateInstance(clsid, iid *windows.GUID) (*object, int32) {
	var out *object
	r, _, _ := procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(clsid)),
		0,
		clsctxInprocServer,
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)))
	return out, int32(r)
}

// enumStrings drains an IEnumString and releases it.
func enumStrings(enum *object) ([]string, int32) {
	defer enum.release()

	out := []string{}
	for {
		var s *uint16
		var fetched uint32
		hr := enum.call(enumNext, 1, uintptr(unsafe.Pointer(&s)), uintptr(unsafe.Pointer(&fetched)))
		if hr < 0 {
			return nil, hr
		}
		if hr == sFalse || fetched == 0 {
			return out, sOK
		}
		out = append(out, windows.UTF16PtrToString(s))
		windows.CoTaskMemFree(unsafe.Pointer(s))
	}
}

// apartment runs functions on one OS thread initialized for COM.
type apartment struct {
	calls chan func()
	done  chan struct{}
}

// liveApartments counts apartment threads that have not exited.
var liveApartments atomic.Int32

func startApartment() (*apartment, error) {
	a := &apartment{calls: make(chan func()), done: make(chan struct{})}
	ready := make(chan error)
	go a.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return a, nil
}

func (a *apartment) run(ready chan<- error) {
	liveApartments.Add(1)
	defer func() {
		liveApartments.Add(-1)
		close(a.done)
	}()

	// The thread stays locked until run returns, so it exits with the
	// goroutine instead of going back to the scheduler.
	runtime.LockOSThread()
	if err := windows.CoInitializeEx(0, windows.COINIT_MULTITHREADED); err != nil && err != syscall.Errno(sFalse) {
		ready <- err
		return
	}
	ready <- nil
	for fn := range a.calls {
		fn()
	}
	windows.CoUninitialize()
}

// stop ends the apartment thread and waits for it to exit.
func (a *apartment) stop() {
	close(a.calls)
	<-a.done
}

// do runs fn on the apartment thread and waits for it.
func (a *apartment) do(fn func()) {
	done := make(chan struct{})
	a.calls <- func() {
		defer close(done)
		fn()
	}
	<-done
}
