package planner

import "travelcore/internal/coretypes"

// topologicalSort returns task ids in dependency order using Kahn's
// algorithm, breaking ties within a ready queue by ascending priority —
// ported from original_source's PlannerAgent._topological_sort.
func topologicalSort(tasks []*coretypes.SubTask) []string {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[string]*coretypes.SubTask, len(tasks))
	inDegree := make(map[string]int, len(tasks))
	graph := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		byID[t.TaskID] = t
		inDegree[t.TaskID] = 0
	}
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if _, ok := byID[dep]; ok {
				graph[dep] = append(graph[dep], t.TaskID)
				inDegree[t.TaskID]++
			}
		}
	}

	var ready []string
	for _, t := range tasks {
		if inDegree[t.TaskID] == 0 {
			ready = append(ready, t.TaskID)
		}
	}

	var order []string
	for len(ready) > 0 {
		sortByPriority(ready, byID)
		current := ready[0]
		ready = ready[1:]
		order = append(order, current)

		for _, neighbor := range graph[current] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				ready = append(ready, neighbor)
			}
		}
	}

	return order
}

func sortByPriority(ids []string, byID map[string]*coretypes.SubTask) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && priorityOf(ids[j-1], byID) > priorityOf(ids[j], byID); j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

func priorityOf(id string, byID map[string]*coretypes.SubTask) int {
	if t, ok := byID[id]; ok {
		return t.Priority
	}
	return 999
}
