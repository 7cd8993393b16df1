package symbols

import (
	physicsshim "github.com/wippyai/physics-shim"
	"github.com/wippyai/physics-shim/errors"
)

// Table is the fixed set of slots, one per canonical name.
type Table struct {
	allocateWorld      Slot[AllocateWorldFunc]
	destroyWorld       Slot[DestroyWorldFunc]
	syncWorldIn        Slot[SyncWorldInFunc]
	syncMotionsOut     Slot[SyncMotionsOutFunc]
	stepWorld          Slot[StepWorldFunc]
	processStep        Slot[ProcessStepFunc]
	stepVisualDebugger Slot[StepVisualDebuggerFunc]
	injectContacts     Slot[InjectContactsFunc]
	checkCompatibility Slot[CheckCompatibilityFunc]
	unlockPlugin       Slot[UnlockPluginFunc]
	isPluginUnlocked   Slot[IsPluginUnlockedFunc]
	pluginLoad         Slot[PluginLoadFunc]
}

// Status is a snapshot of one slot.
type Status struct {
	Err   error
	Name  string
	Bound bool
}

// Resolve binds every canonical name against lib. It never fails: names
// that cannot be bound leave their slot unbound. A nil lib yields a table
// with every slot unbound.
func Resolve(lib physicsshim.Library) *Table {
	t := newTable()
	for _, s := range t.slots() {
		s.bind(lib)
	}
	return t
}

func newTable() *Table {
	t := &Table{}
	t.allocateWorld.name = AllocateWorld
	t.destroyWorld.name = DestroyWorld
	t.syncWorldIn.name = SyncWorldIn
	t.syncMotionsOut.name = SyncMotionsOut
	t.stepWorld.name = StepWorld
	t.processStep.name = ProcessStep
	t.stepVisualDebugger.name = StepVisualDebugger
	t.injectContacts.name = InjectContacts
	t.checkCompatibility.name = CheckCompatibility
	t.unlockPlugin.name = UnlockPlugin
	t.isPluginUnlocked.name = IsPluginUnlocked
	t.pluginLoad.name = PluginLoad
	return t
}

func (t *Table) slots() []slotState {
	return []slotState{
		&t.allocateWorld,
		&t.destroyWorld,
		&t.syncWorldIn,
		&t.syncMotionsOut,
		&t.stepWorld,
		&t.processStep,
		&t.stepVisualDebugger,
		&t.injectContacts,
		&t.checkCompatibility,
		&t.unlockPlugin,
		&t.isPluginUnlocked,
		&t.pluginLoad,
	}
}

func (t *Table) AllocateWorld() *Slot[AllocateWorldFunc]           { return &t.allocateWorld }
func (t *Table) DestroyWorld() *Slot[DestroyWorldFunc]             { return &t.destroyWorld }
func (t *Table) SyncWorldIn() *Slot[SyncWorldInFunc]               { return &t.syncWorldIn }
func (t *Table) SyncMotionsOut() *Slot[SyncMotionsOutFunc]         { return &t.syncMotionsOut }
func (t *Table) StepWorld() *Slot[StepWorldFunc]                   { return &t.stepWorld }
func (t *Table) ProcessStep() *Slot[ProcessStepFunc]               { return &t.processStep }
func (t *Table) StepVisualDebugger() *Slot[StepVisualDebuggerFunc] { return &t.stepVisualDebugger }
func (t *Table) InjectContacts() *Slot[InjectContactsFunc]         { return &t.injectContacts }
func (t *Table) CheckCompatibility() *Slot[CheckCompatibilityFunc] { return &t.checkCompatibility }
func (t *Table) UnlockPlugin() *Slot[UnlockPluginFunc]             { return &t.unlockPlugin }
func (t *Table) IsPluginUnlocked() *Slot[IsPluginUnlockedFunc]     { return &t.isPluginUnlocked }
func (t *Table) PluginLoad() *Slot[PluginLoadFunc]                 { return &t.pluginLoad }

// Report returns the status of every slot in table order.
func (t *Table) Report() []Status {
	slots := t.slots()
	out := make([]Status, 0, len(slots))
	for _, s := range slots {
		out = append(out, Status{Name: s.Name(), Bound: s.Bound(), Err: s.Err()})
	}
	return out
}

// BoundCount returns how many slots hold a reference.
func (t *Table) BoundCount() int {
	n := 0
	for _, s := range t.slots() {
		if s.Bound() {
			n++
		}
	}
	return n
}

// Missing summarizes unbound slots, or returns nil when every slot is bound.
func (t *Table) Missing(module string) *errors.MissingSymbolsError {
	var missing []errors.MissingSymbol
	for _, s := range t.slots() {
		if !s.Bound() {
			missing = append(missing, errors.MissingSymbol{Name: s.Name(), Cause: s.Err()})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &errors.MissingSymbolsError{Module: module, Symbols: missing}
}
