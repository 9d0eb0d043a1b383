// Package core contains the canonical auth-client domain contracts, the
// response envelope decoder, the sign-in negotiation runtime, and the client
// orchestrator. Adapter packages (transport, store, providers) must depend on
// this package; core must not depend on any adapter.
package core
