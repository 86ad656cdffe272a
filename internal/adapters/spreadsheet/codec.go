package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pulseai-health/hospital-directory/internal/domain/entities"
)

// Sheet ranges. Row 1 of each sheet holds the header row.
const (
	hospitalRange = "Hopitaux!A2:Z1000"
	serviceRange  = "Services!A2:L1000"
	reviewRange   = "Avis!A2:Z1000"

	hospitalSheet = "Hopitaux"
	serviceSheet  = "Services"
	reviewSheet   = "Avis"
)

// Column order of the Hopitaux sheet.
const (
	hospitalColID = iota
	hospitalColName
	hospitalColAddress
	hospitalColCity
	hospitalColRegion
	hospitalColCountry
	hospitalColLatitude
	hospitalColLongitude
	hospitalColPhone
	hospitalColEmail
	hospitalColDescription
	hospitalColEstablishmentType
	hospitalColBedCount
	hospitalColOpeningHours
	hospitalColWebsite
	hospitalColImageURL
	hospitalColTotalCapacity
	hospitalColAvailableCapacity
	hospitalColAvgWaitMinutes
	hospitalColAverageRating
	hospitalColReviewCount
	hospitalColStatus
	hospitalColCreatedAt
	hospitalColUpdatedAt
	hospitalColumnCount
)

// Column order of the Services sheet.
const (
	serviceColID = iota
	serviceColHospitalID
	serviceColName
	serviceColDepartment
	serviceColAvailability
	serviceColSpecialties
	serviceColDoctorsAvailable
	serviceColEquipment
	serviceColConsultationFee
	serviceColComments
	serviceColStatus
	serviceColAddedAt
	serviceColumnCount
)

// Column order of the Avis sheet.
const (
	reviewColID = iota
	reviewColHospitalID
	reviewColUserID
	reviewColRating
	reviewColServiceUsed
	reviewColComment
	reviewColCriteriaRatings
	reviewColVisitDate
	reviewColReviewDate
	reviewColVerified
	reviewColStatus
	reviewColumnCount
)

// Spreadsheet formula error markers that decode as zero values.
var errorSentinels = map[string]bool{
	"#ERROR!": true,
	"#N/A":    true,
	"#REF!":   true,
}

// cellString returns the cell at index i as a trimmed string, or ""
// when the row is short or the cell holds a formula error.
func cellString(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", row[i]))
	if errorSentinels[s] {
		return ""
	}
	return s
}

// cellFloat decodes the cell at index i as a float64. Empty cells,
// formula errors and unparseable values decode as 0. Decimal commas
// are accepted.
func cellFloat(row []interface{}, i int) float64 {
	s := cellString(row, i)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// cellInt decodes the cell at index i as an int, truncating any
// fractional part the same way cellFloat parses it.
func cellInt(row []interface{}, i int) int {
	return int(cellFloat(row, i))
}

// cellBool decodes TRUE/true cells, everything else is false.
func cellBool(row []interface{}, i int) bool {
	return strings.EqualFold(cellString(row, i), "true")
}

func decodeHospital(row []interface{}) *entities.Hospital {
	return &entities.Hospital{
		ID:                cellString(row, hospitalColID),
		Name:              cellString(row, hospitalColName),
		Address:           cellString(row, hospitalColAddress),
		City:              cellString(row, hospitalColCity),
		Region:            cellString(row, hospitalColRegion),
		Country:           cellString(row, hospitalColCountry),
		Latitude:          cellFloat(row, hospitalColLatitude),
		Longitude:         cellFloat(row, hospitalColLongitude),
		Phone:             cellString(row, hospitalColPhone),
		Email:             cellString(row, hospitalColEmail),
		Description:       cellString(row, hospitalColDescription),
		EstablishmentType: cellString(row, hospitalColEstablishmentType),
		BedCount:          cellInt(row, hospitalColBedCount),
		OpeningHours:      cellString(row, hospitalColOpeningHours),
		Website:           cellString(row, hospitalColWebsite),
		ImageURL:          cellString(row, hospitalColImageURL),
		TotalCapacity:     cellInt(row, hospitalColTotalCapacity),
		AvailableCapacity: cellInt(row, hospitalColAvailableCapacity),
		AvgWaitMinutes:    cellInt(row, hospitalColAvgWaitMinutes),
		AverageRating:     cellFloat(row, hospitalColAverageRating),
		ReviewCount:       cellInt(row, hospitalColReviewCount),
		Status:            cellString(row, hospitalColStatus),
		CreatedAt:         cellString(row, hospitalColCreatedAt),
		UpdatedAt:         cellString(row, hospitalColUpdatedAt),
	}
}

func encodeHospital(h *entities.Hospital) []interface{} {
	row := make([]interface{}, hospitalColumnCount)
	row[hospitalColID] = h.ID
	row[hospitalColName] = h.Name
	row[hospitalColAddress] = h.Address
	row[hospitalColCity] = h.City
	row[hospitalColRegion] = h.Region
	row[hospitalColCountry] = h.Country
	row[hospitalColLatitude] = h.Latitude
	row[hospitalColLongitude] = h.Longitude
	row[hospitalColPhone] = h.Phone
	row[hospitalColEmail] = h.Email
	row[hospitalColDescription] = h.Description
	row[hospitalColEstablishmentType] = h.EstablishmentType
	row[hospitalColBedCount] = h.BedCount
	row[hospitalColOpeningHours] = h.OpeningHours
	row[hospitalColWebsite] = h.Website
	row[hospitalColImageURL] = h.ImageURL
	row[hospitalColTotalCapacity] = h.TotalCapacity
	row[hospitalColAvailableCapacity] = h.AvailableCapacity
	row[hospitalColAvgWaitMinutes] = h.AvgWaitMinutes
	row[hospitalColAverageRating] = h.AverageRating
	row[hospitalColReviewCount] = h.ReviewCount
	row[hospitalColStatus] = h.Status
	row[hospitalColCreatedAt] = h.CreatedAt
	row[hospitalColUpdatedAt] = h.UpdatedAt
	return row
}

func decodeService(row []interface{}) *entities.Service {
	return &entities.Service{
		ID:               cellString(row, serviceColID),
		HospitalID:       cellString(row, serviceColHospitalID),
		Name:             cellString(row, serviceColName),
		Department:       cellString(row, serviceColDepartment),
		Availability:     cellString(row, serviceColAvailability),
		Specialties:      cellString(row, serviceColSpecialties),
		DoctorsAvailable: cellInt(row, serviceColDoctorsAvailable),
		Equipment:        cellString(row, serviceColEquipment),
		ConsultationFee:  cellFloat(row, serviceColConsultationFee),
		Comments:         cellString(row, serviceColComments),
		Status:           cellString(row, serviceColStatus),
		AddedAt:          cellString(row, serviceColAddedAt),
	}
}

func encodeService(s *entities.Service) []interface{} {
	row := make([]interface{}, serviceColumnCount)
	row[serviceColID] = s.ID
	row[serviceColHospitalID] = s.HospitalID
	row[serviceColName] = s.Name
	row[serviceColDepartment] = s.Department
	row[serviceColAvailability] = s.Availability
	row[serviceColSpecialties] = s.Specialties
	row[serviceColDoctorsAvailable] = s.DoctorsAvailable
	row[serviceColEquipment] = s.Equipment
	row[serviceColConsultationFee] = s.ConsultationFee
	row[serviceColComments] = s.Comments
	row[serviceColStatus] = s.Status
	row[serviceColAddedAt] = s.AddedAt
	return row
}

func decodeReview(row []interface{}) *entities.Review {
	return &entities.Review{
		ID:              cellString(row, reviewColID),
		HospitalID:      cellString(row, reviewColHospitalID),
		UserID:          cellString(row, reviewColUserID),
		Rating:          cellFloat(row, reviewColRating),
		ServiceUsed:     cellString(row, reviewColServiceUsed),
		Comment:         cellString(row, reviewColComment),
		CriteriaRatings: cellString(row, reviewColCriteriaRatings),
		VisitDate:       cellString(row, reviewColVisitDate),
		ReviewedAt:      cellString(row, reviewColReviewDate),
		Verified:        cellBool(row, reviewColVerified),
		Status:          cellString(row, reviewColStatus),
	}
}

func encodeReview(r *entities.Review) []interface{} {
	verified := "FALSE"
	if r.Verified {
		verified = "TRUE"
	}
	row := make([]interface{}, reviewColumnCount)
	row[reviewColID] = r.ID
	row[reviewColHospitalID] = r.HospitalID
	row[reviewColUserID] = r.UserID
	row[reviewColRating] = r.Rating
	row[reviewColServiceUsed] = r.ServiceUsed
	row[reviewColComment] = r.Comment
	row[reviewColCriteriaRatings] = r.CriteriaRatings
	row[reviewColVisitDate] = r.VisitDate
	row[reviewColReviewDate] = r.ReviewedAt
	row[reviewColVerified] = verified
	row[reviewColStatus] = r.Status
	return row
}
