package relay

import (
	"context"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/errors"
	"github.com/wippyai/physics-shim/symbols"
)

// State is the process-wide lifecycle state of a Shim.
type State int32

const (
	StateUnloaded State = iota
	StateLoading
	StateBound
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateBound:
		return "bound"
	default:
		return "unknown"
	}
}

// fallbackRegistry backs the handshake token when a Library reports a null one.
var fallbackRegistry int32

// Shim owns one loaded module and its symbol table.
type Shim struct {
	loader  physicsshim.Loader
	lib     physicsshim.Library
	loadErr error
	initErr error
	table   atomic.Pointer[symbols.Table]
	module  string
	once    sync.Once
	state   atomic.Int32
}

// New creates a shim that will open module through loader on Initialize.
func New(loader physicsshim.Loader, module string) *Shim {
	return &Shim{
		loader: loader,
		module: module,
	}
}

// Module returns the module identifier the shim opens.
func (s *Shim) Module() string {
	return s.module
}

// State returns the current lifecycle state.
func (s *Shim) State() State {
	return State(s.state.Load())
}

// Table returns the resolved symbol table, or nil before Initialize.
func (s *Shim) Table() *symbols.Table {
	return s.table.Load()
}

// LoadErr returns why the module could not be opened, if it could not.
// Only meaningful after Initialize.
func (s *Shim) LoadErr() error {
	return s.loadErr
}

// Initialize loads the module, resolves every symbol and performs the
// handshake. It runs once; later calls return the first result.
func (s *Shim) Initialize(ctx context.Context) error {
	s.once.Do(func() {
		s.initErr = s.initialize(ctx)
	})
	return s.initErr
}

func (s *Shim) initialize(ctx context.Context) error {
	log := Logger().With(zap.String("module", s.module))
	s.state.Store(int32(StateLoading))

	if s.loader == nil {
		s.loadErr = errors.InvalidInput(errors.PhaseLoad, "no loader configured")
	} else {
		s.lib, s.loadErr = s.loader.Open(ctx, s.module)
	}
	if s.loadErr != nil {
		log.Warn("module load failed; entry points will be unbound", zap.Error(s.loadErr))
	}

	table := symbols.Resolve(s.lib)
	s.table.Store(table)
	s.state.Store(int32(StateBound))

	if missing := table.Missing(s.module); missing != nil {
		log.Warn("unbound entry points",
			zap.Int("bound", table.BoundCount()),
			zap.Int("unbound", len(missing.Symbols)),
			zap.Error(missing))
	} else {
		log.Info("all entry points bound", zap.Int("bound", table.BoundCount()))
	}

	return s.handshake(table, log)
}

func (s *Shim) handshake(table *symbols.Table, log *zap.Logger) (err error) {
	load, err := table.PluginLoad().Func()
	if err != nil {
		log.Warn("handshake skipped", zap.Error(err))
		return nil
	}

	token := physicsshim.Ptr(unsafe.Pointer(&fallbackRegistry))
	if s.lib != nil && !s.lib.Token().IsNull() {
		token = s.lib.Token()
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.PhaseHandshake, errors.KindTrap).
				Symbol(symbols.PluginLoad).
				Detail("load entry point aborted: %v", r).
				Build()
			log.Error("handshake failed", zap.Error(err))
		}
	}()

	load(token)
	log.Debug("handshake complete")
	return nil
}

func (s *Shim) ready() (*symbols.Table, error) {
	t := s.table.Load()
	if t == nil {
		return nil, errors.NotInitialized("shim")
	}
	return t, nil
}

// recoverCall converts a backend abort (see loader/wasm) into the call's error.
// Any other panic propagates.
func recoverCall(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*errors.Error); ok && e.Phase == errors.PhaseDispatch {
		*err = e
		return
	}
	panic(r)
}
