package symbols

import (
	physicsshim "github.com/wippyai/physics-shim"
)

// Typed references mirroring the module's C ABI. int maps to int32,
// float to float32 and every void* to physicsshim.Ptr.
type (
	AllocateWorldFunc func(config, stepContext physicsshim.Ptr) int32

	DestroyWorldFunc func(world int32)

	SyncWorldInFunc func(world int32,
		bodies physicsshim.Ptr, numBodies, bodyStride int32,
		motionDatas physicsshim.Ptr, numMotionDatas, motionDataStride int32,
		motionVelocities physicsshim.Ptr, numMotionVelocities, motionVelocityStride int32,
		joints physicsshim.Ptr, numJoints, jointStride int32)

	SyncMotionsOutFunc func(world int32,
		motionDatas physicsshim.Ptr, numMotionDatas, motionDataStride int32,
		motionVelocities physicsshim.Ptr, numMotionVelocities, motionVelocityStride int32,
		startIndex, num int32)

	StepWorldFunc func(world int32, input, stepContext physicsshim.Ptr)

	ProcessStepFunc func(task physicsshim.Ptr)

	StepVisualDebuggerFunc func(world int32, timestep float32, camera physicsshim.Ptr)

	InjectContactsFunc func(world int32, firstBlock physicsshim.Ptr, totalNumItems, blockSize int32)

	CheckCompatibilityFunc func(typeCheckInfo physicsshim.Ptr) bool

	UnlockPluginFunc func(token physicsshim.Ptr) bool

	IsPluginUnlockedFunc func() bool

	PluginLoadFunc func(interfaces physicsshim.Ptr)
)
