package main

/*
#include <stdbool.h>
*/
import "C"

import (
	"context"
	"unsafe"

	"go.uber.org/zap"

	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/symbols"
)

func ptr(p unsafe.Pointer) physicsshim.Ptr {
	return physicsshim.Ptr(uintptr(p))
}

func buffer(p unsafe.Pointer, count, stride C.int) physicsshim.Buffer {
	return physicsshim.Buffer{Ptr: ptr(p), Count: int32(count), Stride: int32(stride)}
}

//export HP_InitStaticPlugin
func HP_InitStaticPlugin() {
	if err := instance().Initialize(context.Background()); err != nil {
		logger.Error("initialize", zap.Error(err))
	}
}

//export HP_AllocateWorld
func HP_AllocateWorld(config, stepContext unsafe.Pointer) C.int {
	w, err := instance().AllocateWorld(ptr(config), ptr(stepContext))
	if err != nil {
		report(symbols.AllocateWorld, err)
		return -1
	}
	return C.int(w)
}

//export HP_DestroyWorld
func HP_DestroyWorld(world C.int) {
	if err := instance().DestroyWorld(physicsshim.World(world)); err != nil {
		report(symbols.DestroyWorld, err)
	}
}

//export HP_SyncWorldIn
func HP_SyncWorldIn(world C.int,
	bodies unsafe.Pointer, numBodies, bodyStride C.int,
	motionDatas unsafe.Pointer, numMotionDatas, motionDataStride C.int,
	motionVelocities unsafe.Pointer, numMotionVelocities, motionVelocityStride C.int,
	joints unsafe.Pointer, numJoints, jointStride C.int) {
	err := instance().SyncWorldIn(physicsshim.World(world),
		buffer(bodies, numBodies, bodyStride),
		buffer(motionDatas, numMotionDatas, motionDataStride),
		buffer(motionVelocities, numMotionVelocities, motionVelocityStride),
		buffer(joints, numJoints, jointStride))
	if err != nil {
		report(symbols.SyncWorldIn, err)
	}
}

//export HP_SyncMotionsOut
func HP_SyncMotionsOut(world C.int,
	motionDatas unsafe.Pointer, numMotionDatas, motionDataStride C.int,
	motionVelocities unsafe.Pointer, numMotionVelocities, motionVelocityStride C.int,
	startIndex, num C.int) {
	err := instance().SyncMotionsOut(physicsshim.World(world),
		buffer(motionDatas, numMotionDatas, motionDataStride),
		buffer(motionVelocities, numMotionVelocities, motionVelocityStride),
		int32(startIndex), int32(num))
	if err != nil {
		report(symbols.SyncMotionsOut, err)
	}
}

//export HP_StepWorld
func HP_StepWorld(world C.int, input, stepContext unsafe.Pointer) {
	if err := instance().StepWorld(physicsshim.World(world), ptr(input), ptr(stepContext)); err != nil {
		report(symbols.StepWorld, err)
	}
}

//export HP_ProcessStep
func HP_ProcessStep(task unsafe.Pointer) {
	if err := instance().ProcessStep(ptr(task)); err != nil {
		report(symbols.ProcessStep, err)
	}
}

//export HP_StepVisualDebugger
func HP_StepVisualDebugger(world C.int, timestep C.float, camera unsafe.Pointer) {
	if err := instance().StepVisualDebugger(physicsshim.World(world), float32(timestep), ptr(camera)); err != nil {
		report(symbols.StepVisualDebugger, err)
	}
}

//export HP_InjectContacts
func HP_InjectContacts(world C.int, firstBlock unsafe.Pointer, totalNumItems, blockSize C.int) {
	if err := instance().InjectContacts(physicsshim.World(world), ptr(firstBlock), int32(totalNumItems), int32(blockSize)); err != nil {
		report(symbols.InjectContacts, err)
	}
}

//export HP_CheckCompatibility
func HP_CheckCompatibility(typeCheckInfo unsafe.Pointer) C.bool {
	ok, err := instance().CheckCompatibility(ptr(typeCheckInfo))
	if err != nil {
		report(symbols.CheckCompatibility, err)
		return false
	}
	return C.bool(ok)
}

//export HP_UnlockPlugin
func HP_UnlockPlugin(token unsafe.Pointer) C.bool {
	ok, err := instance().UnlockPlugin(ptr(token))
	if err != nil {
		report(symbols.UnlockPlugin, err)
		return false
	}
	return C.bool(ok)
}

//export HP_IsPluginUnlocked
func HP_IsPluginUnlocked() C.bool {
	ok, err := instance().IsPluginUnlocked()
	if err != nil {
		report(symbols.IsPluginUnlocked, err)
		return false
	}
	return C.bool(ok)
}
