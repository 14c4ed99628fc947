package ports

import "errors"

// Remote gateway error classes. Gateway implementations map transport and
// HTTP failures onto these sentinels so that workflow handlers can classify
// failures without knowing the wire protocol.
var (
	// ErrRemoteUnavailable indicates a network failure or a remote-side error
	// that is not attributable to the request itself.
	ErrRemoteUnavailable = errors.New("remote service is unavailable")

	// ErrRemoteNotFound indicates the remote side does not know the object.
	ErrRemoteNotFound = errors.New("remote object not found")

	// ErrRemoteUnauthenticated indicates the acting participant has no valid
	// session on the remote side.
	ErrRemoteUnauthenticated = errors.New("remote call is not authenticated")

	// ErrRemoteForbidden indicates the remote side rejected the actor for
	// this operation.
	ErrRemoteForbidden = errors.New("remote call is forbidden for this actor")

	// ErrRemoteConflict indicates the remote state no longer admits the
	// requested mutation (e.g. duplicate response, already-rated order).
	ErrRemoteConflict = errors.New("remote state conflicts with the requested mutation")
)
