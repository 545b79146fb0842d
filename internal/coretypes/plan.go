package coretypes

// SubTask is a unit of work emitted by the Planner (§3). The task graph it
// belongs to is always a DAG.
type SubTask struct {
	TaskID             string         `json:"task_id"`
	TaskType           TaskType       `json:"task_type"`
	ReformulatedQuery  string         `json:"reformulated_query"`
	Parameters         map[string]any `json:"parameters"`
	DependsOn          []string       `json:"depends_on,omitempty"`
	Priority           int            `json:"priority"`
	Optional           bool           `json:"optional,omitempty"`
}

// Stage returns the pipeline stage a task belongs to, derived from its
// task type (§4.9).
func (t *SubTask) Stage() PipelineStage {
	switch t.TaskType {
	case TaskFindSpots:
		return StageSpots
	case TaskFindHotels:
		return StageHotels
	case TaskFindFood:
		return StageFood
	case TaskCreateItinerary:
		return StageItinerary
	case TaskCalculateCost:
		return StageCost
	case TaskGeneralInfo:
		return StageDiscovery
	default:
		return StageDiscovery
	}
}

// ExecutionPlan is the Planner's output: a DAG of tasks plus a topological
// execution order (§3).
type ExecutionPlan struct {
	Tasks          []*SubTask `json:"tasks"`
	ExecutionOrder []string   `json:"execution_order"`
	Intent         PrimaryIntent `json:"intent"`
	Location       string     `json:"location"`
}

// TaskByID returns the task with the given id, or nil.
func (p *ExecutionPlan) TaskByID(id string) *SubTask {
	for _, t := range p.Tasks {
		if t.TaskID == id {
			return t
		}
	}
	return nil
}

// GetParallelTasks groups tasks by priority level (ascending), allowing the
// executor to fan a level out in parallel (§4.3).
func (p *ExecutionPlan) GetParallelTasks() [][]*SubTask {
	if len(p.Tasks) == 0 {
		return nil
	}
	levels := map[int][]*SubTask{}
	for _, t := range p.Tasks {
		levels[t.Priority] = append(levels[t.Priority], t)
	}
	priorities := make([]int, 0, len(levels))
	for p := range levels {
		priorities = append(priorities, p)
	}
	sortInts(priorities)
	out := make([][]*SubTask, 0, len(priorities))
	for _, pr := range priorities {
		out = append(out, levels[pr])
	}
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
