//go:build cgo

package main

import (
	"sync"
	"testing"
	"unsafe"

	"go.uber.org/zap/zapcore"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/loader/static"
	"github.com/wippyai/physics-shim/relay"
	"github.com/wippyai/physics-shim/symbols"
)

// recorder captures the raw arguments each linked export receives.
type recorder struct {
	calls      map[string][]any
	handshakes int
	mu         sync.Mutex
}

func (r *recorder) record(name string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[name] = args
}

func (r *recorder) last(name string) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func linkedModule(world int32) (static.Exports, *recorder) {
	r := &recorder{calls: make(map[string][]any)}
	return static.Exports{
		symbols.AllocateWorld: symbols.AllocateWorldFunc(func(config, stepContext physicsshim.Ptr) int32 {
			r.record(symbols.AllocateWorld, config, stepContext)
			return world
		}),
		symbols.DestroyWorld: symbols.DestroyWorldFunc(func(w int32) {
			r.record(symbols.DestroyWorld, w)
		}),
		symbols.SyncWorldIn: symbols.SyncWorldInFunc(func(w int32,
			bodies physicsshim.Ptr, numBodies, bodyStride int32,
			motionDatas physicsshim.Ptr, numMotionDatas, motionDataStride int32,
			motionVelocities physicsshim.Ptr, numMotionVelocities, motionVelocityStride int32,
			joints physicsshim.Ptr, numJoints, jointStride int32) {
			r.record(symbols.SyncWorldIn, w,
				bodies, numBodies, bodyStride,
				motionDatas, numMotionDatas, motionDataStride,
				motionVelocities, numMotionVelocities, motionVelocityStride,
				joints, numJoints, jointStride)
		}),
		symbols.SyncMotionsOut: symbols.SyncMotionsOutFunc(func(w int32,
			motionDatas physicsshim.Ptr, numMotionDatas, motionDataStride int32,
			motionVelocities physicsshim.Ptr, numMotionVelocities, motionVelocityStride int32,
			startIndex, num int32) {
			r.record(symbols.SyncMotionsOut, w,
				motionDatas, numMotionDatas, motionDataStride,
				motionVelocities, numMotionVelocities, motionVelocityStride,
				startIndex, num)
		}),
		symbols.StepWorld: symbols.StepWorldFunc(func(w int32, input, stepContext physicsshim.Ptr) {
			r.record(symbols.StepWorld, w, input, stepContext)
		}),
		symbols.ProcessStep: symbols.ProcessStepFunc(func(task physicsshim.Ptr) {
			r.record(symbols.ProcessStep, task)
		}),
		symbols.StepVisualDebugger: symbols.StepVisualDebuggerFunc(func(w int32, timestep float32, camera physicsshim.Ptr) {
			r.record(symbols.StepVisualDebugger, w, timestep, camera)
		}),
		symbols.InjectContacts: symbols.InjectContactsFunc(func(w int32, firstBlock physicsshim.Ptr, totalNumItems, blockSize int32) {
			r.record(symbols.InjectContacts, w, firstBlock, totalNumItems, blockSize)
		}),
		symbols.CheckCompatibility: symbols.CheckCompatibilityFunc(func(info physicsshim.Ptr) bool {
			r.record(symbols.CheckCompatibility, info)
			return true
		}),
		symbols.UnlockPlugin: symbols.UnlockPluginFunc(func(token physicsshim.Ptr) bool {
			r.record(symbols.UnlockPlugin, token)
			return true
		}),
		symbols.IsPluginUnlocked: symbols.IsPluginUnlockedFunc(func() bool {
			r.record(symbols.IsPluginUnlocked)
			return true
		}),
		symbols.PluginLoad: symbols.PluginLoadFunc(func(physicsshim.Ptr) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.handshakes++
		}),
	}, r
}

// useShim installs s as the process-wide shim for the duration of the test.
func useShim(t *testing.T, s *relay.Shim) {
	t.Helper()
	observeLogs(t, zapcore.ErrorLevel)
	setupOnce.Do(func() {})
	prev := shim
	shim = s
	t.Cleanup(func() { shim = prev })
}

// block returns the address of a fresh caller-owned buffer.
func block(n int) (unsafe.Pointer, physicsshim.Ptr) {
	buf := make([]byte, n)
	p := unsafe.Pointer(&buf[0])
	return p, physicsshim.Ptr(uintptr(p))
}

func assertArgs(t *testing.T, name string, got []any, want ...any) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s args = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s arg %d = %v (%T), want %v (%T)", name, i, got[i], got[i], want[i], want[i])
		}
	}
}

func TestExports_BeforeInitialize(t *testing.T) {
	exports, rec := linkedModule(7)
	useShim(t, relay.New(static.Loader(static.New(exports)), "linked"))

	if got := HP_AllocateWorld(nil, nil); got != -1 {
		t.Errorf("HP_AllocateWorld = %d, want -1", got)
	}
	if HP_CheckCompatibility(nil) {
		t.Error("HP_CheckCompatibility = true, want false")
	}
	if HP_IsPluginUnlocked() {
		t.Error("HP_IsPluginUnlocked = true, want false")
	}
	HP_StepWorld(1, nil, nil)

	if len(rec.calls) != 0 || rec.handshakes != 0 {
		t.Errorf("module reached before initialize: %v", rec.calls)
	}
	if _, ok := reported.Load(symbols.AllocateWorld); !ok {
		t.Error("failed call should be reported")
	}
}

func TestExports_ForwardRawArguments(t *testing.T) {
	exports, rec := linkedModule(-5)
	useShim(t, relay.New(static.Loader(static.New(exports)), "linked"))

	HP_InitStaticPlugin()
	HP_InitStaticPlugin()
	if rec.handshakes != 1 {
		t.Errorf("handshakes = %d, want 1", rec.handshakes)
	}

	cfgP, cfgPtr := block(16)
	ctxP, ctxPtr := block(16)
	if got := HP_AllocateWorld(cfgP, ctxP); got != -5 {
		t.Errorf("HP_AllocateWorld = %d, want the module's -5", got)
	}
	assertArgs(t, "HP_AllocateWorld", rec.last(symbols.AllocateWorld), cfgPtr, ctxPtr)

	HP_DestroyWorld(3)
	assertArgs(t, "HP_DestroyWorld", rec.last(symbols.DestroyWorld), int32(3))

	bodies, bodiesPtr := block(4 * 32)
	motions, motionsPtr := block(5 * 64)
	velocities, velocitiesPtr := block(5 * 48)
	joints, jointsPtr := block(2 * 80)
	HP_SyncWorldIn(3, bodies, 4, 32, motions, 5, 64, velocities, 5, 48, joints, 2, 80)
	assertArgs(t, "HP_SyncWorldIn", rec.last(symbols.SyncWorldIn), int32(3),
		bodiesPtr, int32(4), int32(32),
		motionsPtr, int32(5), int32(64),
		velocitiesPtr, int32(5), int32(48),
		jointsPtr, int32(2), int32(80))

	HP_SyncMotionsOut(3, motions, 4, 32, velocities, 5, 16, 1, 2)
	assertArgs(t, "HP_SyncMotionsOut", rec.last(symbols.SyncMotionsOut), int32(3),
		motionsPtr, int32(4), int32(32),
		velocitiesPtr, int32(5), int32(16),
		int32(1), int32(2))

	HP_StepWorld(3, cfgP, ctxP)
	assertArgs(t, "HP_StepWorld", rec.last(symbols.StepWorld), int32(3), cfgPtr, ctxPtr)

	HP_ProcessStep(ctxP)
	assertArgs(t, "HP_ProcessStep", rec.last(symbols.ProcessStep), ctxPtr)

	HP_StepVisualDebugger(3, 0.016, cfgP)
	assertArgs(t, "HP_StepVisualDebugger", rec.last(symbols.StepVisualDebugger), int32(3), float32(0.016), cfgPtr)

	HP_InjectContacts(3, joints, 128, 16)
	assertArgs(t, "HP_InjectContacts", rec.last(symbols.InjectContacts), int32(3), jointsPtr, int32(128), int32(16))

	if !HP_CheckCompatibility(cfgP) {
		t.Error("HP_CheckCompatibility = false, want true")
	}
	assertArgs(t, "HP_CheckCompatibility", rec.last(symbols.CheckCompatibility), cfgPtr)

	if !HP_UnlockPlugin(ctxP) {
		t.Error("HP_UnlockPlugin = false, want true")
	}
	assertArgs(t, "HP_UnlockPlugin", rec.last(symbols.UnlockPlugin), ctxPtr)

	if !HP_IsPluginUnlocked() {
		t.Error("HP_IsPluginUnlocked = false, want true")
	}
}

func TestExports_UnboundEntryPoints(t *testing.T) {
	useShim(t, relay.New(static.Loader(static.New(static.Exports{})), "linked"))

	HP_InitStaticPlugin()

	if got := HP_AllocateWorld(nil, nil); got != -1 {
		t.Errorf("HP_AllocateWorld = %d, want -1", got)
	}
	if HP_CheckCompatibility(nil) {
		t.Error("HP_CheckCompatibility = true, want false")
	}
	if HP_UnlockPlugin(nil) {
		t.Error("HP_UnlockPlugin = true, want false")
	}
	if HP_IsPluginUnlocked() {
		t.Error("HP_IsPluginUnlocked = true, want false")
	}

	HP_DestroyWorld(1)
	HP_SyncWorldIn(1, nil, 0, 0, nil, 0, 0, nil, 0, 0, nil, 0, 0)
	HP_SyncMotionsOut(1, nil, 0, 0, nil, 0, 0, 0, 0)
	HP_StepWorld(1, nil, nil)
	HP_ProcessStep(nil)
	HP_StepVisualDebugger(1, 0.5, nil)
	HP_InjectContacts(1, nil, 0, 0)

	for _, name := range symbols.Forwarded {
		if _, ok := reported.Load(name); !ok {
			t.Errorf("%s was not reported", name)
		}
	}
}
