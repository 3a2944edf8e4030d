package types

const (
	// LocalKeySize is the length of a local key and of a passcode-derived key.
	LocalKeySize = 256
	// AuthKeySize is the length of a protocol authorization key.
	AuthKeySize = 256
)

// AuthKey is a protocol authorization key bound to a datacenter.
type AuthKey struct {
	DcID int32
	Key  []byte
}

// MtpAuthorization is the decoded per-account protocol authorization state.
type MtpAuthorization struct {
	UserID            uint64
	MainDcID          int32
	AuthKeys          []AuthKey
	AuthKeysToDestroy []AuthKey
}

// KeyData is the account index stored in key_<name> together with the local
// key guarding every account's data.
type KeyData struct {
	LocalKey []byte
	Count    int32
	Order    []int32
	Active   int32
}
