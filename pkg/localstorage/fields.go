package localstorage

import "github.com/joshuapare/tdatakit/internal/qt"

// Field is one decoded local storage map entry. The set of implementations
// is closed: FileKey, Draft, DraftPosition, BackgroundOld, StickersKeys,
// MasksKeys and SelfSerialized.
type Field interface {
	Key() KeyID
	encodePayload(w *qt.Writer)
}

// FileKey points at the encrypted file holding the entry's data.
type FileKey struct {
	ID    KeyID
	Value uint64
}

func (f FileKey) Key() KeyID { return f.ID }

func (f FileKey) encodePayload(w *qt.Writer) { w.Uint64(f.Value) }

// DraftRef maps a peer to the file holding its draft or cursor.
type DraftRef struct {
	FileKey uint64
	PeerID  uint64
}

// Draft lists the files holding message drafts.
type Draft struct {
	Drafts []DraftRef
}

func (Draft) Key() KeyID { return LskDraft }

func (f Draft) encodePayload(w *qt.Writer) { encodeRefs(w, f.Drafts) }

// DraftPosition lists the files holding draft cursor positions.
type DraftPosition struct {
	Cursors []DraftRef
}

func (DraftPosition) Key() KeyID { return LskDraftPosition }

func (f DraftPosition) encodePayload(w *qt.Writer) { encodeRefs(w, f.Cursors) }

func encodeRefs(w *qt.Writer, refs []DraftRef) {
	w.Int32(int32(len(refs)))
	for _, ref := range refs {
		w.Uint64(ref.FileKey)
		w.Uint64(ref.PeerID)
	}
}

// BackgroundOld holds the pre-theme background file keys.
type BackgroundOld struct {
	Day   uint64
	Night uint64
}

func (BackgroundOld) Key() KeyID { return LskBackgroundOld }

func (f BackgroundOld) encodePayload(w *qt.Writer) {
	w.Uint64(f.Day)
	w.Uint64(f.Night)
}

// StickersKeys holds the sticker set file keys.
type StickersKeys struct {
	Installed uint64
	Featured  uint64
	Recent    uint64
	Archived  uint64
}

func (StickersKeys) Key() KeyID { return LskStickersKeys }

func (f StickersKeys) encodePayload(w *qt.Writer) {
	w.Uint64(f.Installed)
	w.Uint64(f.Featured)
	w.Uint64(f.Recent)
	w.Uint64(f.Archived)
}

// MasksKeys holds the mask set file keys.
type MasksKeys struct {
	Installed uint64
	Recent    uint64
	Archived  uint64
}

func (MasksKeys) Key() KeyID { return LskMasksKeys }

func (f MasksKeys) encodePayload(w *qt.Writer) {
	w.Uint64(f.Installed)
	w.Uint64(f.Recent)
	w.Uint64(f.Archived)
}

// SelfSerialized is the serialized self user.
type SelfSerialized struct {
	Data []byte
}

func (SelfSerialized) Key() KeyID { return LskSelfSerialized }

func (f SelfSerialized) encodePayload(w *qt.Writer) { w.ByteArray(f.Data) }
