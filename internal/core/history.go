package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// CallRecord is one intercepted call: which method, with which arguments, and when.
type CallRecord struct {
	Key  MethodKey
	Args []any
	Seq  uint64 // process-wide call order
}

func (c CallRecord) String() string {
	return fmt.Sprintf("%s(%s)", c.Key.Name, strings.Join(formatArgs(c.Args), ", "))
}

// unexported variables.
var (
	//nolint:gochecknoglobals // process-wide call sequence shared by every stand-in
	callSequence atomic.Uint64
)

// history records the calls seen by one router. With track disabled only the
// most recent call per method is retained.
type history struct {
	mu      sync.Mutex
	track   bool
	methods map[MethodKey]*methodHistory
	lastKey MethodKey
	hasLast bool
}

func newHistory(track bool) *history {
	return &history{
		track:   track,
		methods: make(map[MethodKey]*methodHistory),
	}
}

// calls returns every retained record, ordered by sequence.
func (h *history) calls() []CallRecord {
	h.mu.Lock()

	var out []CallRecord
	for _, mh := range h.methods {
		out = append(out, mh.records...)
	}

	h.mu.Unlock()

	slices.SortFunc(out, func(a, b CallRecord) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		default:
			return 0
		}
	})

	return out
}

// countExact returns how many retained calls of key had exactly args.
func (h *history) countExact(key MethodKey, args []any) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	mh, ok := h.methods[key]
	if !ok {
		return 0
	}

	for _, tc := range mh.buckets[fingerprint(args)] {
		if valuesEqual(tc.args, args) {
			return tc.count
		}
	}

	return 0
}

// countMatching returns how many retained calls of key satisfy matchers,
// walking the calls in the order they were made so capture matchers see them in order.
func (h *history) countMatching(key MethodKey, matchers []Matcher) int {
	count := 0

	for _, rec := range h.records(key) {
		if matchArgs(matchers, rec.Args) {
			count++
		}
	}

	return count
}

// record appends a call and returns its record.
func (h *history) record(key MethodKey, args []any) CallRecord {
	rec := CallRecord{Key: key, Args: args, Seq: callSequence.Add(1)}

	h.mu.Lock()
	defer h.mu.Unlock()

	mh, ok := h.methods[key]
	if !ok || !h.track {
		mh = &methodHistory{buckets: make(map[string][]*tupleCount)}
		h.methods[key] = mh
	}

	mh.add(rec)
	h.lastKey = key
	h.hasLast = true

	return rec
}

// records returns a snapshot of the retained calls of key, oldest first.
func (h *history) records(key MethodKey) []CallRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	mh, ok := h.methods[key]
	if !ok {
		return nil
	}

	return slices.Clone(mh.records)
}

// reset drops every record and aggregate.
func (h *history) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.methods = make(map[MethodKey]*methodHistory)
	h.hasLast = false
}

// rollbackLast removes the most recent call and returns it.
func (h *history) rollbackLast() (CallRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.hasLast {
		return CallRecord{}, false
	}

	h.hasLast = false

	mh, ok := h.methods[h.lastKey]
	if !ok || len(mh.records) == 0 {
		return CallRecord{}, false
	}

	return mh.removeLast(), true
}

// methodHistory holds the calls of one method: ordered records plus a multiset
// of argument tuples bucketed by fingerprint.
type methodHistory struct {
	records []CallRecord
	buckets map[string][]*tupleCount
}

func (mh *methodHistory) add(rec CallRecord) {
	mh.records = append(mh.records, rec)

	fp := fingerprint(rec.Args)
	for _, tc := range mh.buckets[fp] {
		if valuesEqual(tc.args, rec.Args) {
			tc.count++

			return
		}
	}

	mh.buckets[fp] = append(mh.buckets[fp], &tupleCount{args: rec.Args, count: 1})
}

func (mh *methodHistory) removeLast() CallRecord {
	rec := mh.records[len(mh.records)-1]
	mh.records = mh.records[:len(mh.records)-1]

	fp := fingerprint(rec.Args)
	bucket := mh.buckets[fp]

	for i, tc := range bucket {
		if !valuesEqual(tc.args, rec.Args) {
			continue
		}

		tc.count--
		if tc.count == 0 {
			mh.buckets[fp] = slices.Delete(bucket, i, i+1)
		}

		break
	}

	return rec
}

type tupleCount struct {
	args  []any
	count int
}

// fingerprint narrows the DeepEqual search: scalar arguments contribute their
// value, everything else only its type.
func fingerprint(args []any) string {
	var b strings.Builder

	for _, a := range args {
		if a == nil {
			b.WriteString("nil")
		} else {
			kind := reflect.TypeOf(a).Kind()
			if kind == reflect.String || (kind >= reflect.Bool && kind <= reflect.Complex128) {
				fmt.Fprintf(&b, "%T:%v", a, a)
			} else {
				fmt.Fprintf(&b, "%T", a)
			}
		}

		b.WriteByte(0)
	}

	return b.String()
}
