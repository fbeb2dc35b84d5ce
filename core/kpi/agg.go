package kpi

import (
	"sort"
	"strings"

	"github.com/novetech/deskeval/schema"
)

// BucketIndex is the aggregated per-responsible view of a dataset plus the
// normalized-key lookup the matcher resolves against. Multiple keys may point
// at the same bucket (full label, email local part, parenthetical login);
// when two labels collide on a key the label seen last in the source wins.
type BucketIndex struct {
	Buckets []schema.ResponsibleBucket

	byKey map[string]int
}

// Aggregate groups a filtered dataset by its distinct non-blank responsible
// labels, computes the indicator snapshot of each group, and indexes every
// lookup key each label yields. Buckets are ordered by ticket count, busiest
// first, with the label as tie-breaker.
func Aggregate(ds *schema.Dataset) *BucketIndex {
	groups := make(map[string][]schema.Record)
	var order []string
	for _, rec := range ds.Rows {
		label := strings.TrimSpace(rec.Cell(schema.ColResponsible))
		if label == "" {
			continue
		}
		if _, seen := groups[label]; !seen {
			order = append(order, label)
		}
		groups[label] = append(groups[label], rec)
	}

	ix := &BucketIndex{byKey: make(map[string]int)}
	for _, label := range order {
		ix.Buckets = append(ix.Buckets, schema.ResponsibleBucket{
			Label: label,
			Stats: ComputeKPIs(groups[label]),
		})
	}
	sort.SliceStable(ix.Buckets, func(i, j int) bool {
		if ix.Buckets[i].Stats.Count != ix.Buckets[j].Stats.Count {
			return ix.Buckets[i].Stats.Count > ix.Buckets[j].Stats.Count
		}
		return ix.Buckets[i].Label < ix.Buckets[j].Label
	})

	pos := make(map[string]int, len(ix.Buckets))
	for i, b := range ix.Buckets {
		pos[b.Label] = i
	}
	// Index keys in source label order so a key collision resolves to the
	// label seen last in the file, not the one sorted last.
	for _, label := range order {
		for _, key := range labelKeys(label) {
			ix.byKey[key] = pos[label]
		}
	}
	return ix
}

// labelKeys lists every normalized key one responsible label answers to.
func labelKeys(label string) []string {
	keys := []string{schema.NormalizeKey(label)}
	if key, ok := schema.EmailLocalKey(label); ok && key != "" {
		keys = append(keys, key)
	}
	if key, ok := schema.ParentheticalKey(label); ok && key != "" {
		keys = append(keys, key)
	}
	return keys
}

// Lookup resolves a normalized key to its bucket.
func (ix *BucketIndex) Lookup(key string) (schema.ResponsibleBucket, bool) {
	i, ok := ix.byKey[key]
	if !ok {
		return schema.ResponsibleBucket{}, false
	}
	return ix.Buckets[i], true
}

// Keys returns every indexed lookup key, sorted.
func (ix *BucketIndex) Keys() []string {
	keys := make([]string, 0, len(ix.byKey))
	for k := range ix.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Labels returns the bucket labels in display order.
func (ix *BucketIndex) Labels() []string {
	labels := make([]string, 0, len(ix.Buckets))
	for _, b := range ix.Buckets {
		labels = append(labels, b.Label)
	}
	return labels
}

// ComputeKPIs computes the indicator snapshot of a record set. Each mean
// considers only the rows where the underlying value parsed; a mean with no
// contributing rows is nil rather than zero.
func ComputeKPIs(rows []schema.Record) schema.KPISnapshot {
	snap := schema.KPISnapshot{Count: len(rows)}

	var waitSum float64
	var waitN int
	var durSum float64
	var durN int
	var ratingSum float64
	var ratingN int
	for _, rec := range rows {
		if rec.WaitSeconds != nil {
			waitSum += float64(*rec.WaitSeconds)
			waitN++
		}
		if rec.DurationMinutes != nil {
			durSum += *rec.DurationMinutes
			durN++
		}
		if rec.Rating != nil {
			ratingSum += *rec.Rating
			ratingN++
		}
	}
	if waitN > 0 {
		mean := waitSum / float64(waitN)
		snap.MeanWaitSeconds = &mean
	}
	if durN > 0 {
		mean := durSum / float64(durN)
		snap.MeanDurationMinutes = &mean
	}
	if ratingN > 0 {
		mean := ratingSum / float64(ratingN)
		snap.MeanRating = &mean
	}
	return snap
}

// TopCounts tallies the distinct trimmed values of one column across the
// dataset, most frequent first. Blank cells are skipped. A positive limit
// caps the list; zero means no cap. Percent is relative to the non-blank
// total.
func TopCounts(ds *schema.Dataset, col schema.Column, limit int) []schema.ValueCount {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, rec := range ds.Rows {
		val := strings.TrimSpace(rec.Cell(col))
		if val == "" {
			continue
		}
		if _, seen := counts[val]; !seen {
			order = append(order, val)
		}
		counts[val]++
		total++
	}
	if total == 0 {
		return nil
	}

	out := make([]schema.ValueCount, 0, len(order))
	for _, val := range order {
		out = append(out, schema.ValueCount{
			Value:   val,
			Count:   counts[val],
			Percent: 100 * float64(counts[val]) / float64(total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ShiftCounts tallies tickets per shift bucket in canonical shift order,
// omitting empty buckets.
func ShiftCounts(ds *schema.Dataset) []schema.ValueCount {
	counts := make(map[schema.Shift]int)
	for _, rec := range ds.Rows {
		counts[rec.Shift]++
	}
	total := len(ds.Rows)
	if total == 0 {
		return nil
	}

	var out []schema.ValueCount
	for _, shift := range schema.AllShifts {
		if counts[shift] == 0 {
			continue
		}
		out = append(out, schema.ValueCount{
			Value:   string(shift),
			Count:   counts[shift],
			Percent: 100 * float64(counts[shift]) / float64(total),
		})
	}
	return out
}
