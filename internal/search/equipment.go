package search

import (
	"strings"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
)

// equipmentKeyword maps a canonical equipment concept to its score
// weight and the spellings that denote it. Accented and plain variants
// share one canonical key so they never double-count.
type equipmentKeyword struct {
	canonical string
	weight    int
	spellings []string
}

var equipmentKeywords = []equipmentKeyword{
	{canonical: "scanner", weight: 150, spellings: []string{"scanner"}},
	{canonical: "echographe", weight: 120, spellings: []string{"échographe", "echographe"}},
	{canonical: "ecg", weight: 80, spellings: []string{"ecg"}},
	{canonical: "defibrillateur", weight: 60, spellings: []string{"défibrillateur", "defibrillateur"}},
}

// EquipmentBonus scans the free-text equipment fields of a hospital's
// services and returns the total bonus plus the matched canonical
// keywords. Each concept counts once per hospital no matter how many
// services mention it.
func EquipmentBonus(services []*entities.Service) (int, []string) {
	matched := make(map[string]bool)

	for _, svc := range services {
		equipment := strings.ToLower(svc.Equipment)
		if equipment == "" {
			continue
		}
		for _, kw := range equipmentKeywords {
			if matched[kw.canonical] {
				continue
			}
			for _, spelling := range kw.spellings {
				if strings.Contains(equipment, spelling) {
					matched[kw.canonical] = true
					break
				}
			}
		}
	}

	total := 0
	keywords := make([]string, 0, len(matched))
	for _, kw := range equipmentKeywords {
		if matched[kw.canonical] {
			total += kw.weight
			keywords = append(keywords, kw.canonical)
		}
	}
	return total, keywords
}
