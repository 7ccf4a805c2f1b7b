package contracts

// Engine is the synchronization engine a session delegates to. The engine
// owns the authoritative timeline and transport state, discovers peers, and
// resolves conflicts between commits from this process and from the network.
//
// Capture and Commit are local, non-blocking operations against the engine's
// internally maintained state; neither waits on network peers.
type Engine interface {
	Enable(enable bool)                  // Starts or stops participation in the shared session.
	IsEnabled() bool                     // Reports whether the engine is participating.
	EnableStartStopSync(enable bool)     // Starts or stops sharing of transport play/stop state.
	IsStartStopSyncEnabled() bool        // Reports whether transport state is shared.
	NumPeers() uint64                    // Number of currently discovered peers.
	Capture() (Timeline, TransportState) // Snapshots the current shared state.
	Commit(Timeline, TransportState)     // Publishes a snapshot back into the shared session.
	Close() error                        // Releases engine resources.
}
