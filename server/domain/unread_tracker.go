package domain

import "maps"

// UnreadTracker counts unread messages per recipient and bucket. A bucket is
// a room name or PrivateBucket.
type UnreadTracker struct {
	counts map[string]map[string]int
}

func NewUnreadTracker() *UnreadTracker {
	return &UnreadTracker{counts: make(map[string]map[string]int)}
}

func (t *UnreadTracker) Increment(recipient, bucket string) {
	buckets, ok := t.counts[recipient]
	if !ok {
		buckets = make(map[string]int)
		t.counts[recipient] = buckets
	}
	buckets[bucket]++
}

// Clear zeroes one bucket, or every bucket when bucket is empty.
func (t *UnreadTracker) Clear(recipient, bucket string) {
	buckets, ok := t.counts[recipient]
	if !ok {
		return
	}
	if bucket == "" {
		clear(buckets)
		return
	}
	if _, ok := buckets[bucket]; ok {
		buckets[bucket] = 0
	}
}

func (t *UnreadTracker) Snapshot(recipient string) map[string]int {
	snapshot := maps.Clone(t.counts[recipient])
	if snapshot == nil {
		snapshot = map[string]int{}
	}
	return snapshot
}

func (t *UnreadTracker) Drop(recipient string) {
	delete(t.counts, recipient)
}
