package dag

import "slices"

// TopoSort returns the task IDs in a deterministic topological order using
// Kahn's algorithm. Among tasks that are simultaneously ready, ties are
// broken by sorting IDs, so identical graphs always produce identical
// orderings regardless of map iteration order.
//
// Returns ErrGraphHasCycle if no total order over all tasks exists.
func (d *DAG) TopoSort() ([]string, error) {
	inDegree := make(map[string]int, len(d.tasks))
	for id := range d.tasks {
		inDegree[id] = len(d.incoming[id])
	}

	var queue []string
	for id := range d.tasks {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	slices.Sort(queue)

	order := make([]string, 0, len(d.tasks))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var ready []string
		for _, succ := range d.outgoing[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
		slices.Sort(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(d.tasks) {
		return nil, ErrGraphHasCycle
	}
	return order, nil
}
