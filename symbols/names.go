package symbols

// Canonical exported names. Resolution is name-exact.
const (
	AllocateWorld      = "HP_AllocateWorld"
	DestroyWorld       = "HP_DestroyWorld"
	SyncWorldIn        = "HP_SyncWorldIn"
	SyncMotionsOut     = "HP_SyncMotionsOut"
	StepWorld          = "HP_StepWorld"
	ProcessStep        = "HP_ProcessStep"
	StepVisualDebugger = "HP_StepVisualDebugger"
	InjectContacts     = "HP_InjectContacts"
	CheckCompatibility = "HP_CheckCompatibility"
	UnlockPlugin       = "HP_UnlockPlugin"
	IsPluginUnlocked   = "HP_IsPluginUnlocked"

	// PluginLoad is the module's load entry point, called once during the
	// handshake. It is not forwarded to the host.
	PluginLoad = "UnityPluginLoad"
)

// Forwarded lists the names exposed to the host, in table order.
var Forwarded = []string{
	AllocateWorld,
	DestroyWorld,
	SyncWorldIn,
	SyncMotionsOut,
	StepWorld,
	ProcessStep,
	StepVisualDebugger,
	InjectContacts,
	CheckCompatibility,
	UnlockPlugin,
	IsPluginUnlocked,
}

// All lists every name the table resolves: the forwarded names followed by PluginLoad.
func All() []string {
	names := make([]string, 0, len(Forwarded)+1)
	names = append(names, Forwarded...)
	return append(names, PluginLoad)
}
