package crowdin

// Group is the set of records sharing a task name.
type Group struct {
	TaskName string
	Records  []Record
}

// GroupByName partitions records by TaskName. Groups appear in the order their
// name is first seen and members keep their input order.
func GroupByName(records []Record) []Group {
	groups := []Group{}
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.TaskName]
		if !ok {
			i = len(groups)
			index[r.TaskName] = i
			groups = append(groups, Group{TaskName: r.TaskName})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
