package challenge

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PhotoRef is an opaque image reference encoded as a base64 data URI,
// e.g. "data:image/jpeg;base64,...".
type PhotoRef string

var errNotDataURI = errors.New("photo is not a base64 data URI")

// NewPhotoRef encodes data with the given MIME type as a data URI.
func NewPhotoRef(mimeType string, data []byte) PhotoRef {
	return PhotoRef("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// Decode splits the data URI into its MIME type and raw bytes.
func (p PhotoRef) Decode() (string, []byte, error) {
	rest, ok := strings.CutPrefix(string(p), "data:")
	if !ok {
		return "", nil, errNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errNotDataURI
	}
	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, errNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode photo: %w", err)
	}
	return mimeType, data, nil
}

// MIMEType returns the MIME type of the data URI, or "" when malformed.
func (p PhotoRef) MIMEType() string {
	rest, ok := strings.CutPrefix(string(p), "data:")
	if !ok {
		return ""
	}
	header, _, _ := strings.Cut(rest, ",")
	mimeType, _ := strings.CutSuffix(header, ";base64")
	return mimeType
}

// Size returns the decoded size in bytes without decoding the payload.
func (p PhotoRef) Size() int {
	_, payload, ok := strings.Cut(string(p), ",")
	if !ok {
		return 0
	}
	return base64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload, "=")
}

// PhotoEntry is a photo together with the day it was taken.
type PhotoEntry struct {
	Day int
	Ref PhotoRef
}

// Gallery returns all stored photos, most recent day first.
func Gallery(s State) []PhotoEntry {
	out := make([]PhotoEntry, 0, len(s.Photos))
	for day, ref := range s.Photos {
		out = append(out, PhotoEntry{Day: day, Ref: ref})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out
}

// Comparison returns the earliest and latest photo. ok is false when fewer
// than two photos exist.
func Comparison(s State) (before, after PhotoEntry, ok bool) {
	gallery := Gallery(s)
	if len(gallery) < 2 {
		return PhotoEntry{}, PhotoEntry{}, false
	}
	return gallery[len(gallery)-1], gallery[0], true
}
