package types

import (
	"crypto/sha1"
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strconv"
)

// BlobID identifies a document by content. It is the git blob hash of the
// bytes, so documents read from a git object store keep the id git gave them.
type BlobID [sha1.Size]byte

// ComputeBlobID hashes content as SHA-1("blob <len>\x00<content>").
func ComputeBlobID(content []byte) BlobID {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write(content)

	var id BlobID
	h.Sum(id[:0])
	return id
}

// ParseBlobID decodes a 40 character hex id.
func ParseBlobID(s string) (BlobID, error) {
	var id BlobID
	if len(s) != hex.EncodedLen(len(id)) {
		return id, fmt.Errorf("blob id %q: want %d hex characters, got %d", s, hex.EncodedLen(len(id)), len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return BlobID{}, fmt.Errorf("blob id %q: %w", s, err)
	}
	return id, nil
}

func (id BlobID) Hex() string    { return hex.EncodeToString(id[:]) }
func (id BlobID) String() string { return id.Hex() }

// Short returns the 7 character abbreviation git shows by default.
func (id BlobID) Short() string { return id.Hex()[:7] }

func (id BlobID) IsZero() bool { return id == BlobID{} }

// MarshalText implements encoding.TextMarshaler, which also covers JSON keys and values.
func (id BlobID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *BlobID) UnmarshalText(text []byte) error {
	parsed, err := ParseBlobID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value stores the id as its hex form.
func (id BlobID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan reads a hex id from a string or []byte column.
func (id *BlobID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	case nil:
		return fmt.Errorf("blob id: unexpected NULL")
	}
	return fmt.Errorf("blob id: cannot scan %T", src)
}
