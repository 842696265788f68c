package location

import (
	"sort"

	"fleet-console/internal/usecase/shared"
)

func sortSaved(list []shared.SavedLocationSnapshot) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}
