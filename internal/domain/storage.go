package domain

// Keys owned by the state layer. Each key has exactly one writer.
const (
	KeyWatchlist = "movieWatchlist"
	KeyTheme     = "movieAppTheme"
)

// KVStore is the durable local key-value namespace shared by the watchlist
// and theme states. Each caller owns a disjoint key.
type KVStore interface {
	// Get returns the stored value and whether it was present
	Get(key string) (string, bool)

	// Set stores value under key
	Set(key, value string) error

	Close() error
}
