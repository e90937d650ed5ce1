package ports

type ConnectionEventKind string

const (
	// EventPairing carries a fresh pairing code to be scanned by the phone.
	EventPairing      ConnectionEventKind = "pairing"
	EventConnected    ConnectionEventKind = "connected"
	EventDisconnected ConnectionEventKind = "disconnected"
)

type ConnectionEvent struct {
	Kind ConnectionEventKind
	Code string
}

// QRRenderer turns a pairing code into a PNG image.
type QRRenderer interface {
	PNG(code string) ([]byte, error)
}
