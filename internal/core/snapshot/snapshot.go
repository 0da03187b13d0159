// Package snapshot encodes challenge state as a versioned JSON document and
// decodes both the versioned format and the original unversioned browser
// snapshot.
package snapshot

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/colonyops/hard75/internal/core/challenge"
)

// Version is the current snapshot format version.
const Version = 1

// Key is the well-known key the snapshot is stored under.
const Key = "75hard-state"

var (
	// ErrMalformed is returned when the data is not a valid snapshot.
	ErrMalformed = errors.New("malformed snapshot")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

//go:embed schema/v1.json
var schemaV1 string

var schemaV1Loader = gojsonschema.NewStringLoader(schemaV1)

// Document is the on-disk representation of a snapshot.
type Document struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	State   challenge.State `json:"state"`
}

// Encode serializes s as a versioned document.
func Encode(s challenge.State, savedAt time.Time) ([]byte, error) {
	doc := Document{
		Version: Version,
		SavedAt: savedAt.UTC(),
		State:   s.Clone(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Format identifies which snapshot layout was decoded.
type Format string

const (
	FormatV1     Format = "v1"
	FormatLegacy Format = "legacy"
)

type probe struct {
	Version    *int `json:"version"`
	CurrentDay *int `json:"currentDay"`
}

// Decode parses data written by Encode or by the original browser
// application. The returned state is normalized.
func Decode(data []byte) (challenge.State, Format, error) {
	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return challenge.State{}, "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var (
		s      challenge.State
		format Format
		err    error
	)
	switch {
	case p.Version != nil:
		format = FormatV1
		s, err = decodeV1(data, *p.Version)
	case p.CurrentDay != nil:
		format = FormatLegacy
		s, err = decodeLegacy(data)
	default:
		return challenge.State{}, "", fmt.Errorf("%w: missing version and currentDay", ErrMalformed)
	}
	if err != nil {
		return challenge.State{}, format, err
	}

	s.Normalize()
	return s, format, nil
}

func decodeV1(data []byte, version int) (challenge.State, error) {
	if version != Version {
		return challenge.State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	if err := Validate(data); err != nil {
		return challenge.State{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return challenge.State{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return doc.State, nil
}

// Validate checks data against the v1 JSON schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaV1Loader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(issues, "; "))
}

// legacyState mirrors the browser application's localStorage object.
type legacyState struct {
	CurrentDay    int                           `json:"currentDay"`
	StartDate     *time.Time                    `json:"startDate"`
	Tasks         challenge.Checklist           `json:"tasks"`
	DailyProgress map[string]legacyDayRecord    `json:"dailyProgress"`
	Photos        map[string]challenge.PhotoRef `json:"photos"`
	Attempts      []challenge.AttemptRecord     `json:"attempts"`
}

type legacyDayRecord struct {
	Date      time.Time           `json:"date"`
	Completed bool                `json:"completed"`
	Tasks     challenge.Checklist `json:"tasks"`
}

func decodeLegacy(data []byte) (challenge.State, error) {
	var legacy legacyState
	if err := json.Unmarshal(data, &legacy); err != nil {
		return challenge.State{}, fmt.Errorf("%w: legacy: %w", ErrMalformed, err)
	}

	if legacy.CurrentDay < 1 || legacy.CurrentDay > challenge.TotalDays {
		return challenge.State{}, fmt.Errorf("%w: currentDay %d out of range", ErrMalformed, legacy.CurrentDay)
	}

	s := challenge.State{
		CurrentDay:    legacy.CurrentDay,
		StartDate:     legacy.StartDate,
		Tasks:         legacy.Tasks,
		DailyProgress: make(map[int]challenge.DayRecord, len(legacy.DailyProgress)),
		Photos:        make(map[int]challenge.PhotoRef, len(legacy.Photos)),
		Attempts:      legacy.Attempts,
	}

	for key, rec := range legacy.DailyProgress {
		day, err := strconv.Atoi(key)
		if err != nil {
			return challenge.State{}, fmt.Errorf("%w: dailyProgress key %q", ErrMalformed, key)
		}
		s.DailyProgress[day] = challenge.DayRecord{
			ClosedAt:  rec.Date,
			Completed: rec.Completed,
			Tasks:     rec.Tasks,
		}
	}

	for key, ref := range legacy.Photos {
		day, err := strconv.Atoi(key)
		if err != nil {
			return challenge.State{}, fmt.Errorf("%w: photos key %q", ErrMalformed, key)
		}
		s.Photos[day] = ref
	}

	return s, nil
}
