package relay

import (
	physicsshim "github.com/wippyai/physics-shim"
)

// AllocateWorld forwards HP_AllocateWorld. A negative world is the module's
// failure sentinel and is returned as is.
func (s *Shim) AllocateWorld(config, stepContext physicsshim.Ptr) (w physicsshim.World, err error) {
	t, err := s.ready()
	if err != nil {
		return 0, err
	}
	fn, err := t.AllocateWorld().Func()
	if err != nil {
		return 0, err
	}
	defer recoverCall(&err)
	return physicsshim.World(fn(config, stepContext)), nil
}

// DestroyWorld forwards HP_DestroyWorld.
func (s *Shim) DestroyWorld(w physicsshim.World) (err error) {
	t, err := s.ready()
	if err != nil {
		return err
	}
	fn, err := t.DestroyWorld().Func()
	if err != nil {
		return err
	}
	defer recoverCall(&err)
	fn(int32(w))
	return nil
}

// SyncWorldIn forwards HP_SyncWorldIn. Buffers stay owned by the caller and
// are not touched after return.
func (s *Shim) SyncWorldIn(w physicsshim.World, bodies, motionDatas, motionVelocities, joints physicsshim.Buffer) (err error) {
	t, err := s.ready()
	if err != nil {
		return err
	}
	fn, err := t.SyncWorldIn().Func()
	if err != nil {
		return err
	}
	defer recoverCall(&err)
	fn(int32(w),
		bodies.Ptr, bodies.Count, bodies.Stride,
		motionDatas.Ptr, motionDatas.Count, motionDatas.Stride,
		motionVelocities.Ptr, motionVelocities.Count, motionVelocities.Stride,
		joints.Ptr, joints.Count, joints.Stride)
	return nil
}

// SyncMotionsOut forwards HP_SyncMotionsOut. The module writes num records
// starting at startIndex into the caller's buffers.
func (s *Shim) SyncMotionsOut(w physicsshim.World, motionDatas, motionVelocities physicsshim.Buffer, startIndex, num int32) (err error) {
	t, err := s.ready()
	if err != nil {
		return err
	}
	fn, err := t.SyncMotionsOut().Func()
	if err != nil {
		return err
	}
	defer recoverCall(&err)
	fn(int32(w),
		motionDatas.Ptr, motionDatas.Count, motionDatas.Stride,
		motionVelocities.Ptr, motionVelocities.Count, motionVelocities.Stride,
		startIndex, num)
	return nil
}

// StepWorld forwards HP_StepWorld.
func (s *Shim) StepWorld(w physicsshim.World, input, stepContext physicsshim.Ptr) (err error) {
	t, err := s.ready()
	if err != nil {
		return err
	}
	fn, err := t.StepWorld().Func()
	if err != nil {
		return err
	}
	defer recoverCall(&err)
	fn(int32(w), input, stepContext)
	return nil
}

// ProcessStep forwards HP_ProcessStep for tasks the module scheduled itself.
func (s *Shim) ProcessStep(task physicsshim.Ptr) (err error) {
	t, err := s.ready()
	if err != nil {
		return err
	}
	fn, err := t.ProcessStep().Func()
	if err != nil {
		return err
	}
	defer recoverCall(&err)
	fn(task)
	return nil
}

// StepVisualDebugger forwards HP_StepVisualDebugger.
func (s *Shim) StepVisualDebugger(w physicsshim.World, timestep float32, camera physicsshim.Ptr) (err error) {
	t, err := s.ready()
	if err != nil {
		return err
	}
	fn, err := t.StepVisualDebugger().Func()
	if err != nil {
		return err
	}
	defer recoverCall(&err)
	fn(int32(w), timestep, camera)
	return nil
}

// InjectContacts forwards HP_InjectContacts.
func (s *Shim) InjectContacts(w physicsshim.World, firstBlock physicsshim.Ptr, totalNumItems, blockSize int32) (err error) {
	t, err := s.ready()
	if err != nil {
		return err
	}
	fn, err := t.InjectContacts().Func()
	if err != nil {
		return err
	}
	defer recoverCall(&err)
	fn(int32(w), firstBlock, totalNumItems, blockSize)
	return nil
}

// CheckCompatibility forwards HP_CheckCompatibility.
func (s *Shim) CheckCompatibility(typeCheckInfo physicsshim.Ptr) (ok bool, err error) {
	t, err := s.ready()
	if err != nil {
		return false, err
	}
	fn, err := t.CheckCompatibility().Func()
	if err != nil {
		return false, err
	}
	defer recoverCall(&err)
	return fn(typeCheckInfo), nil
}

// UnlockPlugin forwards HP_UnlockPlugin. The token payload is opaque.
func (s *Shim) UnlockPlugin(token physicsshim.Ptr) (ok bool, err error) {
	t, err := s.ready()
	if err != nil {
		return false, err
	}
	fn, err := t.UnlockPlugin().Func()
	if err != nil {
		return false, err
	}
	defer recoverCall(&err)
	return fn(token), nil
}

// IsPluginUnlocked forwards HP_IsPluginUnlocked. Nothing is cached.
func (s *Shim) IsPluginUnlocked() (ok bool, err error) {
	t, err := s.ready()
	if err != nil {
		return false, err
	}
	fn, err := t.IsPluginUnlocked().Func()
	if err != nil {
		return false, err
	}
	defer recoverCall(&err)
	return fn(), nil
}
