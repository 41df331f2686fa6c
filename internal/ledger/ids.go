package ledger

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"homeledger/internal/core"
)

// The wire format carries no ID column, so identifiers cannot be persisted
// without breaking compatibility. Instead each record gets a deterministic
// content-hash UUID on every load: identical content in two rows is
// disambiguated by an occurrence counter, so the same ledger always yields
// the same IDs regardless of which process loaded it. Update and delete
// resolve an ID to the record's current position immediately before the
// store call, which removes the stale-index race of raw positional
// addressing.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("homeledger.record"))

// RecordID derives the stable identifier for a record given how many
// identical records precede it.
func RecordID(r core.Record, occurrence int) string {
	key := strings.Join(append(FormatRow(r), strconv.Itoa(occurrence)), "\x1f")
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// IDs assigns identifiers to a loaded record list, position by position.
func IDs(records []core.Record) []string {
	seen := make(map[string]int, len(records))
	ids := make([]string, len(records))
	for i, r := range records {
		key := strings.Join(FormatRow(r), "\x1f")
		ids[i] = RecordID(r, seen[key])
		seen[key]++
	}
	return ids
}

// Resolve finds the current position of the record with the given ID, or
// -1 if it is no longer present.
func Resolve(records []core.Record, id string) int {
	for i, recordID := range IDs(records) {
		if recordID == id {
			return i
		}
	}
	return -1
}
