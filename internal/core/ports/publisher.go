package ports

// UpdatePublisher is the side channel mutating commands use to tell
// interested observers (UIs, monitoring) that server state changed. The
// notification carries no payload; observers re-query what they care about.
type UpdatePublisher interface {
	Publish()
}
