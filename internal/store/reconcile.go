package store

import (
	"slices"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// Reconciliation helpers. Every write into a collection is keyed by id,
// never by position, so a late-arriving server response cannot clobber
// an unrelated concurrent edit.

func indexOfTask(tasks []*domain.Task, id string) int {
	return slices.IndexFunc(tasks, func(t *domain.Task) bool { return t.ID == id })
}

// replaceTaskByID swaps the entity with the given id for the canonical
// copy, preserving its position. Returns false if the id is gone.
func replaceTaskByID(tasks []*domain.Task, id string, canonical *domain.Task) bool {
	i := indexOfTask(tasks, id)
	if i < 0 {
		return false
	}
	tasks[i] = canonical
	return true
}

// removeTaskByID deletes the entity with the given id in place.
func removeTaskByID(tasks []*domain.Task, id string) []*domain.Task {
	i := indexOfTask(tasks, id)
	if i < 0 {
		return tasks
	}
	return slices.Delete(tasks, i, i+1)
}

// insertTaskByOrder re-inserts a previously captured task at its sorted
// position, used when rolling back an optimistic delete.
func insertTaskByOrder(tasks []*domain.Task, task *domain.Task) []*domain.Task {
	tasks = append(tasks, task)
	sortTasks(tasks)
	return tasks
}

// sortTasks orders by display order, ties broken by creation time.
func sortTasks(tasks []*domain.Task) {
	slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

func maxTaskOrder(tasks []*domain.Task) int {
	order := 0
	for _, t := range tasks {
		if t.Order > order {
			order = t.Order
		}
	}
	return order
}

func cloneTasks(tasks []*domain.Task) []*domain.Task {
	dup := make([]*domain.Task, len(tasks))
	for i, t := range tasks {
		dup[i] = t.Clone()
	}
	return dup
}

func indexOfList(lists []*domain.List, id string) int {
	return slices.IndexFunc(lists, func(l *domain.List) bool { return l.ID == id })
}

func removeListByID(lists []*domain.List, id string) []*domain.List {
	i := indexOfList(lists, id)
	if i < 0 {
		return lists
	}
	return slices.Delete(lists, i, i+1)
}

// sortLists orders pinned lists first, then by recency.
func sortLists(lists []*domain.List) {
	slices.SortStableFunc(lists, func(a, b *domain.List) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

func cloneLists(lists []*domain.List) []*domain.List {
	dup := make([]*domain.List, len(lists))
	for i, l := range lists {
		dup[i] = l.Clone()
	}
	return dup
}
