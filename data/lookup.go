package data

// LookupState says how a client lookup was satisfied.
type LookupState int

// The possible lookup outcomes.
const (
	// Absent means nothing was found and nothing was made up.
	Absent LookupState = iota
	// Found means the client is in the registry.
	Found
	// Placeholder means the client is not in the registry, a fake client
	// was created for the caller and was not stored.
	Placeholder
)

func (l LookupState) String() string {
	switch l {
	case Found:
		return "found"
	case Placeholder:
		return "placeholder"
	}
	return "absent"
}

// ClientLookup is the result of looking up a client.
type ClientLookup struct {
	State  LookupState
	Client *Client
}

// Found checks if the client came from the registry.
func (l ClientLookup) Found() bool {
	return l.State == Found
}

// Ok checks if there is a client at all, real or placeholder.
func (l ClientLookup) Ok() bool {
	return l.Client != nil
}
