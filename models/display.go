package models

import "sort"

// absent Order sorts after every explicit value
const unorderedRank = 999

// SortForDisplay orders projects for a category view: ascending Order first
// (projects without an Order go last), then descending Year. The sort is
// stable so equal projects keep their store order.
func SortForDisplay(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		rankI := unorderedRank
		if projects[i].Order != nil {
			rankI = *projects[i].Order
		}
		rankJ := unorderedRank
		if projects[j].Order != nil {
			rankJ = *projects[j].Order
		}
		if rankI != rankJ {
			return rankI < rankJ
		}
		return projects[i].Year > projects[j].Year
	})
}

// GroupByCategory partitions projects by every category they belong to. A
// project in two categories appears in both groups.
func GroupByCategory(projects []Project) map[Category][]Project {
	grouped := make(map[Category][]Project)
	for _, project := range projects {
		for _, category := range project.Category {
			grouped[category] = append(grouped[category], project)
		}
	}
	return grouped
}
