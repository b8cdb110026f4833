package ecs

// Each2 iterates over entities that have both component A and B, in the
// insertion order of sa.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	for i, id := range sa.ids {
		if b, ok := sb.Get(id); ok {
			fn(id, sa.data[i], b)
		}
	}
}

// Each3 iterates over entities that have components A, B, and C, in the
// insertion order of sa.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for i, id := range sa.ids {
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		c, ok := sc.Get(id)
		if !ok {
			continue
		}
		fn(id, sa.data[i], b, c)
	}
}
