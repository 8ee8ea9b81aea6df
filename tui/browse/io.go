package browse

import (
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/state"
)

// stateLoadedMsg is sent when the full validation snapshot has been loaded.
type stateLoadedMsg struct {
	snapshot *state.Snapshot
}

// stateErrMsg is sent when the snapshot could not be loaded.
type stateErrMsg struct {
	err error
}

// streamStartedMsg is sent when the live update subscription is established.
type streamStartedMsg struct {
	ch <-chan daemon.StateUpdate
}

// streamUpdateMsg carries one live update; the channel rides along so the
// update loop can re-queue the next receive.
type streamUpdateMsg struct {
	update daemon.StateUpdate
	ch     <-chan daemon.StateUpdate
}

// streamClosedMsg is sent when streaming is unavailable or the stream ended.
type streamClosedMsg struct{}
