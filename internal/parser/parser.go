// Package parser turns the line-oriented key=value dumps printed by
// `adb shell content query` into raw field mappings.
package parser

import (
	"iter"
	"regexp"
	"strings"
)

// NullValue is the literal the content provider prints for SQL NULL.
const NullValue = "NULL"

var (
	firstKeyPattern = regexp.MustCompile(`(\w+)=`)
	nextKeyPattern  = regexp.MustCompile(`,[ \t]*(\w+)=`)
)

// RawRecord maps a field name to its value. A nil value means the field was NULL.
type RawRecord map[string]*string

// Get returns the value of key and whether it is present and non-null.
func (r RawRecord) Get(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Entity describes the columns kept for one content provider and the field
// a record must carry to be kept at all.
type Entity struct {
	Name   string
	Fields []string
	Key    string
}

var (
	SMS = Entity{
		Name:   "sms",
		Fields: []string{"address", "date", "type", "body"},
		Key:    "address",
	}
	CallLog = Entity{
		Name:   "call_log",
		Fields: []string{"number", "date", "duration", "type"},
		Key:    "number",
	}
	Contacts = Entity{
		Name:   "contacts",
		Fields: []string{"display_name", "number"},
		Key:    "display_name",
	}
)

// ParseRecords yields one RawRecord per non-blank line of data, keeping only
// the allowed fields. A line without any key=value token yields an empty record.
//
// A value runs until the next comma that is followed by a `word=` token, so
// free text containing plain commas is kept whole.
func ParseRecords(data string, allowed []string) iter.Seq[RawRecord] {
	allow := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		allow[f] = struct{}{}
	}

	return func(yield func(RawRecord) bool) {
		for _, line := range strings.Split(data, "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(parseLine(line, allow)) {
				return
			}
		}
	}
}

// ParseEntity is ParseRecords restricted to the entity's fields, dropping
// records that lack the entity's identifying field.
func ParseEntity(data string, entity Entity) iter.Seq[RawRecord] {
	return func(yield func(RawRecord) bool) {
		for rec := range ParseRecords(data, entity.Fields) {
			if _, ok := rec.Get(entity.Key); !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Collect drains a record sequence into a slice.
func Collect(seq iter.Seq[RawRecord]) []RawRecord {
	var out []RawRecord
	for rec := range seq {
		out = append(out, rec)
	}
	return out
}

func parseLine(line string, allow map[string]struct{}) RawRecord {
	rec := RawRecord{}

	loc := firstKeyPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return rec
	}
	key := line[loc[2]:loc[3]]
	pos := loc[1]

	for {
		next := nextKeyPattern.FindStringSubmatchIndex(line[pos:])
		end := len(line)
		if next != nil {
			end = pos + next[0]
		}
		setField(rec, allow, key, line[pos:end])
		if next == nil {
			return rec
		}
		key = line[pos+next[2] : pos+next[3]]
		pos += next[1]
	}
}

func setField(rec RawRecord, allow map[string]struct{}, key, value string) {
	if _, ok := allow[key]; !ok {
		return
	}
	if value == "" {
		return
	}
	if value == NullValue {
		rec[key] = nil
		return
	}
	v := value
	rec[key] = &v
}
