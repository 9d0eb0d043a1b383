package query

const (
	TypeGetSession  = "authclient.query.session.get"
	TypeStoredToken = "authclient.query.token.stored"
)

type GetSessionMessage struct{}

func (GetSessionMessage) Type() string { return TypeGetSession }

func (GetSessionMessage) Validate() error { return nil }

type StoredTokenMessage struct{}

func (StoredTokenMessage) Type() string { return TypeStoredToken }

func (StoredTokenMessage) Validate() error { return nil }
