package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
)

func svcWithEquipment(equipment string) *entities.Service {
	return &entities.Service{Equipment: equipment}
}

func TestEquipmentBonus_SingleKeyword(t *testing.T) {
	bonus, keywords := EquipmentBonus([]*entities.Service{
		svcWithEquipment("Scanner dernière génération"),
	})

	assert.Equal(t, 150, bonus)
	assert.Equal(t, []string{"scanner"}, keywords)
}

func TestEquipmentBonus_CountedOncePerHospital(t *testing.T) {
	once, _ := EquipmentBonus([]*entities.Service{
		svcWithEquipment("Scanner"),
	})
	twice, _ := EquipmentBonus([]*entities.Service{
		svcWithEquipment("Scanner"),
		svcWithEquipment("scanner, table de radiologie"),
	})

	assert.Equal(t, once, twice)
}

func TestEquipmentBonus_AccentVariantsShareOneConcept(t *testing.T) {
	accented, _ := EquipmentBonus([]*entities.Service{
		svcWithEquipment("Échographe"),
	})
	plain, _ := EquipmentBonus([]*entities.Service{
		svcWithEquipment("echographe"),
	})
	both, keywords := EquipmentBonus([]*entities.Service{
		svcWithEquipment("échographe"),
		svcWithEquipment("echographe"),
	})

	assert.Equal(t, 120, accented)
	assert.Equal(t, 120, plain)
	assert.Equal(t, 120, both)
	assert.Equal(t, []string{"echographe"}, keywords)
}

func TestEquipmentBonus_AllKeywords(t *testing.T) {
	bonus, keywords := EquipmentBonus([]*entities.Service{
		svcWithEquipment("Scanner, Échographe"),
		svcWithEquipment("ECG, Défibrillateur"),
	})

	assert.Equal(t, 150+120+80+60, bonus)
	assert.Equal(t, []string{"scanner", "echographe", "ecg", "defibrillateur"}, keywords)
}

func TestEquipmentBonus_EmptyAndUnknownEquipment(t *testing.T) {
	bonus, keywords := EquipmentBonus([]*entities.Service{
		svcWithEquipment(""),
		svcWithEquipment("Lits supplémentaires"),
	})

	assert.Equal(t, 0, bonus)
	assert.Empty(t, keywords)
}

func TestEquipmentBonus_NoServices(t *testing.T) {
	bonus, keywords := EquipmentBonus(nil)

	assert.Equal(t, 0, bonus)
	assert.Empty(t, keywords)
}
