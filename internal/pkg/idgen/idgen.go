// Package idgen formats and parses the human-readable student and teacher identifiers.
//
// An identifier is PREFIX + SCHOOLCODE + SEQUENCE + YY, for example STUTEST000125 is the
// first student admitted to school TEST in 2025. The sequence is zero-padded to four
// digits and widens past 9999 rather than wrapping.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Entity prefixes
const (
	StudentPrefix = "STU"
	TeacherPrefix = "TCH"
)

// SequenceWidth is the minimum number of sequence digits
const SequenceWidth = 4

// Years an identifier can be issued for. Counters are kept per full year while
// the identifier only carries YY, so the window must not span more than a century.
const (
	MinYear = 2000
	MaxYear = 2099
)

// YearInRange reports whether identifiers can be issued for year
func YearInRange(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// EntityType names the counter an identifier is drawn from
type EntityType string

const (
	EntityStudent EntityType = "student"
	EntityTeacher EntityType = "teacher"
)

// Prefix returns the identifier prefix for the entity type
func (e EntityType) Prefix() string {
	if e == EntityTeacher {
		return TeacherPrefix
	}
	return StudentPrefix
}

// Format builds an identifier. year may be a full year; only its last two digits are used.
func Format(prefix, schoolCode string, seq int64, year int) string {
	return fmt.Sprintf("%s%s%0*d%02d", prefix, strings.ToUpper(schoolCode), SequenceWidth, seq, year%100)
}

// Parsed is a decomposed identifier
type Parsed struct {
	Prefix     string
	SchoolCode string
	Sequence   int64
	YearSuffix int
}

// Parse splits id produced by Format for the given prefix and school code
func Parse(id, prefix, schoolCode string) (*Parsed, error) {
	head := prefix + strings.ToUpper(schoolCode)
	if !strings.HasPrefix(id, head) {
		return nil, fmt.Errorf("identifier %q does not start with %q", id, head)
	}
	rest := id[len(head):]
	if len(rest) < SequenceWidth+2 {
		return nil, fmt.Errorf("identifier %q is too short", id)
	}
	seqPart, yearPart := rest[:len(rest)-2], rest[len(rest)-2:]
	seq, err := strconv.ParseInt(seqPart, 10, 64)
	if err != nil || seq < 0 {
		return nil, fmt.Errorf("identifier %q has a malformed sequence", id)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return nil, fmt.Errorf("identifier %q has a malformed year", id)
	}
	return &Parsed{Prefix: prefix, SchoolCode: strings.ToUpper(schoolCode), Sequence: seq, YearSuffix: year}, nil
}
