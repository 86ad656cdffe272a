package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellString(t *testing.T) {
	row := []interface{}{"  Hôpital Principal  ", "#ERROR!", nil}

	assert.Equal(t, "Hôpital Principal", cellString(row, 0))
	assert.Equal(t, "", cellString(row, 1))
	assert.Equal(t, "", cellString(row, 2))
	// Short rows read as empty cells
	assert.Equal(t, "", cellString(row, 10))
}

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name string
		cell interface{}
		want float64
	}{
		{"plain decimal", "14.6928", 14.6928},
		{"decimal comma", "14,6928", 14.6928},
		{"empty cell", "", 0},
		{"error marker", "#ERROR!", 0},
		{"na marker", "#N/A", 0},
		{"ref marker", "#REF!", 0},
		{"garbage", "abc", 0},
		{"numeric cell", 4.5, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cellFloat([]interface{}{tt.cell}, 0)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellInt(t *testing.T) {
	assert.Equal(t, 120, cellInt([]interface{}{"120"}, 0))
	assert.Equal(t, 4, cellInt([]interface{}{"4,7"}, 0))
	assert.Equal(t, 0, cellInt([]interface{}{"#N/A"}, 0))
	assert.Equal(t, 0, cellInt([]interface{}{""}, 0))
}

func TestDecodeHospital_ShortRow(t *testing.T) {
	// Only the first three cells present; the rest of the row was never
	// filled in the sheet.
	row := []interface{}{"H1", "Hôpital Principal", "1 Avenue Cheikh Anta Diop"}

	h := decodeHospital(row)

	assert.Equal(t, "H1", h.ID)
	assert.Equal(t, "Hôpital Principal", h.Name)
	assert.Equal(t, "1 Avenue Cheikh Anta Diop", h.Address)
	assert.Equal(t, 0.0, h.Latitude)
	assert.Equal(t, 0.0, h.Longitude)
	assert.Equal(t, 0, h.BedCount)
	assert.Equal(t, "", h.Status)
	assert.False(t, h.HasCoordinates())
}

func TestDecodeHospital_FullRow(t *testing.T) {
	row := []interface{}{
		"H1", "Hôpital Principal", "1 Avenue", "Dakar", "Dakar", "Sénégal",
		"14,6928", "-17,4467", "+221338893800", "contact@hopital.sn",
		"CHU de référence", "Public", "450", "24h/24", "https://hopital.sn", "",
		"500", "120", "35", "4,2", "87", "Actif", "2023-01-15", "2024-06-01 10:00:00",
	}

	h := decodeHospital(row)

	assert.Equal(t, 14.6928, h.Latitude)
	assert.Equal(t, -17.4467, h.Longitude)
	assert.Equal(t, 450, h.BedCount)
	assert.Equal(t, 35, h.AvgWaitMinutes)
	assert.Equal(t, 4.2, h.AverageRating)
	assert.Equal(t, 87, h.ReviewCount)
	assert.Equal(t, "Public", h.EstablishmentType)
	assert.True(t, h.HasCoordinates())
}

func TestEncodeDecodeHospital_RoundTrip(t *testing.T) {
	row := []interface{}{
		"H2", "Clinique du Cap", "Route de la Corniche", "Dakar", "Dakar", "Sénégal",
		"14.72", "-17.46", "", "", "", "Privé", "80", "Lun-Ven 8h-18h", "", "",
		"100", "40", "15", "4.8", "12", "Actif", "2024-01-01", "2024-01-01 08:00:00",
	}

	h := decodeHospital(row)
	encoded := encodeHospital(h)

	assert.Len(t, encoded, hospitalColumnCount)
	assert.Equal(t, "H2", encoded[hospitalColID])
	assert.Equal(t, 14.72, encoded[hospitalColLatitude])
	assert.Equal(t, "Privé", encoded[hospitalColEstablishmentType])
	assert.Equal(t, 4.8, encoded[hospitalColAverageRating])
}

func TestDecodeService(t *testing.T) {
	row := []interface{}{
		"SRV1", "H1", "Urgences", "Médecine", "24h/24",
		"Traumatologie", "6", "Scanner, ECG", "5000", "", "Actif", "2024-01-01",
	}

	s := decodeService(row)

	assert.Equal(t, "SRV1", s.ID)
	assert.Equal(t, "H1", s.HospitalID)
	assert.Equal(t, "Urgences", s.Name)
	assert.Equal(t, 6, s.DoctorsAvailable)
	assert.Equal(t, "Scanner, ECG", s.Equipment)
	assert.Equal(t, 5000.0, s.ConsultationFee)
}

func TestDecodeReview(t *testing.T) {
	row := []interface{}{
		"AV1", "H1", "U1", "4,5", "Urgences", "Très bon accueil",
		"", "2024-05-01", "2024-05-02 09:00:00", "TRUE", "Publié",
	}

	r := decodeReview(row)

	assert.Equal(t, "AV1", r.ID)
	assert.Equal(t, 4.5, r.Rating)
	assert.True(t, r.Verified)
	assert.Equal(t, "Publié", r.Status)
}
