package pipeline

// Order returns stages in an order that satisfies every Before/After constraint. Among
// stages that are ready at the same time, the one registered first runs first, so the
// order is deterministic. A cycle yields an *OrderError naming the stages on it.
func Order(stages []Stage) ([]Stage, error) {
	n := len(stages)
	seen := make(map[string]bool, n)
	for _, s := range stages {
		if seen[s.Name()] {
			return nil, &DuplicateStageError{Name: s.Name()}
		}
		seen[s.Name()] = true
	}

	succ := make([][]int, n)
	indegree := make([]int, n)
	for i := range n {
		for j := range n {
			if i == j {
				continue
			}
			if stages[i].Before(stages[j]) || stages[j].After(stages[i]) {
				succ[i] = append(succ[i], j)
				indegree[j]++
			}
		}
	}

	done := make([]bool, n)
	out := make([]Stage, 0, n)
	for len(out) < n {
		next := -1
		for i := range n {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, &OrderError{Stages: findCycle(stages, succ, done)}
		}
		done[next] = true
		out = append(out, stages[next])
		for _, j := range succ[next] {
			indegree[j]--
		}
	}
	return out, nil
}

// findCycle walks the unscheduled stages depth-first and returns the first cycle found.
// Colors: 0 unvisited, 1 on the current path, 2 finished.
func findCycle(stages []Stage, succ [][]int, done []bool) []string {
	color := make([]int, len(stages))
	var path []int
	var cycle []string

	var dfs func(i int) bool
	dfs = func(i int) bool {
		color[i] = 1
		path = append(path, i)
		for _, j := range succ[i] {
			if done[j] {
				continue
			}
			if color[j] == 1 {
				start := 0
				for k, p := range path {
					if p == j {
						start = k
						break
					}
				}
				for _, p := range path[start:] {
					cycle = append(cycle, stages[p].Name())
				}
				cycle = append(cycle, stages[j].Name())
				return true
			}
			if color[j] == 0 && dfs(j) {
				return true
			}
		}
		path = path[:len(path)-1]
		color[i] = 2
		return false
	}

	for i := range stages {
		if !done[i] && color[i] == 0 && dfs(i) {
			return cycle
		}
	}
	return nil
}
