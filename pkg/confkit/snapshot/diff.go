package snapshot

import "sort"

// Diff summarizes key-level differences between two snapshots.
type Diff struct {
	// Added keys exist only in the newer snapshot.
	Added []string
	// Removed keys exist only in the older snapshot.
	Removed []string
	// Changed keys exist in both with a different kind or payload.
	Changed []string
}

// Empty reports whether the compared snapshots were identical.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare reports key-level differences from before to after. For
// duplicate keys only the first occurrence is compared, matching
// lookup shadowing. All key lists come back sorted.
func Compare(before, after *Snapshot) Diff {
	prev := firstRecords(before)
	next := firstRecords(after)

	var d Diff
	for key, nr := range next {
		pr, ok := prev[key]
		if !ok {
			d.Added = append(d.Added, key)
			continue
		}
		if pr.Kind != nr.Kind || pr.Num != nr.Num || pr.Flt != nr.Flt || pr.Str != nr.Str {
			d.Changed = append(d.Changed, key)
		}
	}
	for key := range prev {
		if _, ok := next[key]; !ok {
			d.Removed = append(d.Removed, key)
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Changed)
	return d
}

// firstRecords maps each key to its first record.
func firstRecords(s *Snapshot) map[string]Record {
	if s == nil {
		return nil
	}
	m := make(map[string]Record, len(s.Entries))
	for _, r := range s.Entries {
		if _, ok := m[r.Key]; !ok {
			m[r.Key] = r
		}
	}
	return m
}
