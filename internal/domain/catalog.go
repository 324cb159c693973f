package domain

// EntryKind tells how a code is delivered
type EntryKind int

const (
	EntryLocal EntryKind = iota + 1
	EntryRemote
)

// CodeEntry is what a code points to: a local asset or a remote reference
type CodeEntry struct {
	Code string
	Kind EntryKind
	// Path of the local asset, set for EntryLocal
	Path string
	// Opaque remote reference, set for EntryRemote
	Reference string
}

// LocalAsset builds an entry for a file on disk
func LocalAsset(code, path string) CodeEntry {
	return CodeEntry{Code: code, Kind: EntryLocal, Path: path}
}

// RemoteReference builds an entry that needs resolution before delivery
func RemoteReference(code, ref string) CodeEntry {
	return CodeEntry{Code: code, Kind: EntryRemote, Reference: ref}
}

// Playable is something the messenger can send as a video.
// Exactly one of Path and URL is set.
type Playable struct {
	Path string
	URL  string
}

// IsLocal reports whether the playable is read from disk
func (p Playable) IsLocal() bool {
	return p.Path != ""
}

// Resolution is the outcome of a code lookup
type Resolution struct {
	Found    bool
	Code     string
	Playable Playable
}

// NotFound is the resolution for unknown codes
func NotFound(code string) Resolution {
	return Resolution{Code: code}
}

// Found is the resolution for a deliverable code
func Found(code string, p Playable) Resolution {
	return Resolution{Found: true, Code: code, Playable: p}
}

// UsageStat is a per-code delivery counter
type UsageStat struct {
	Code  string
	Count int
}

// SubscriptionStatus is the outcome of the channel membership check
type SubscriptionStatus int

const (
	NotSubscribed SubscriptionStatus = iota
	Subscribed
)

// Button is a transport independent inline button.
// Either Data or URL is set.
type Button struct {
	Text string
	Data string
	URL  string
}

// Keyboard is a set of inline button rows
type Keyboard struct {
	Rows [][]Button
}

// Row appends a row of buttons
func (k *Keyboard) Row(buttons ...Button) *Keyboard {
	k.Rows = append(k.Rows, buttons)
	return k
}

// Presentation options for a bot message
type Presentation struct {
	Keyboard *Keyboard
	// InPlace edits the previous message when possible instead of replacing it
	InPlace bool
}
