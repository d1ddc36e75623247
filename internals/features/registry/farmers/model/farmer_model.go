package model

import (
	"strings"
	"time"

	barangayModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/model"
	orgModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/organizations/model"
)

// FarmerModel is the central aggregate. It owns its FarmerProduct,
// FarmerChild and FarmerExperience rows by strict composition: deleting a
// farmer deletes all of them.
type FarmerModel struct {
	ID           uint    `gorm:"column:id;primaryKey" json:"id"`
	FarmerCode   *string `gorm:"column:farmer_code;type:varchar(50);uniqueIndex" json:"farmer_code"`
	FirstName    string  `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	MiddleName   *string `gorm:"column:middle_name;type:varchar(100)" json:"middle_name"`
	LastName     string  `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Suffix       *string `gorm:"column:suffix;type:varchar(20)" json:"suffix"`
	Age          int     `gorm:"column:age;not null" json:"age"`
	Gender       string  `gorm:"column:gender;type:varchar(20);not null" json:"gender"`
	CivilStatus  string  `gorm:"column:civil_status;type:varchar(20);default:Single" json:"civil_status"`
	ProfileImage *string `gorm:"column:profile_image;type:varchar(500)" json:"-"`

	BirthDate *time.Time `gorm:"column:birth_date;type:date" json:"birth_date"`

	BarangayID uint                        `gorm:"column:barangay_id;not null" json:"barangay_id"`
	Barangay   *barangayModel.BarangayModel `gorm:"foreignKey:BarangayID" json:"-"`

	OrganizationID *uint                           `gorm:"column:organization_id" json:"organization_id"`
	Organization   *orgModel.OrganizationModel      `gorm:"foreignKey:OrganizationID" json:"-"`

	// Who entered the record. Set to NULL when the encoder account is
	// deleted so the row itself survives.
	DataEncoderID *uint `gorm:"column:data_encoder_id" json:"data_encoder_id"`

	Address                    *string  `gorm:"column:address;type:text" json:"address"`
	ContactNumber              *string  `gorm:"column:contact_number;type:varchar(50)" json:"contact_number"`
	EducationLevel             string   `gorm:"column:education_level;type:varchar(50);not null" json:"education_level"`
	AnnualIncome               *float64 `gorm:"column:annual_income;type:numeric(12,2)" json:"annual_income"`
	IncomeSource               *string  `gorm:"column:income_source;type:varchar(255)" json:"income_source"`
	NumberOfChildren           int      `gorm:"column:number_of_children;default:0" json:"number_of_children"`
	ChildrenFarmingInvolvement bool     `gorm:"column:children_farming_involvement;default:false" json:"children_farming_involvement"`
	PrimaryOccupation          *string  `gorm:"column:primary_occupation;type:varchar(255)" json:"primary_occupation"`
	SecondaryOccupation        *string  `gorm:"column:secondary_occupation;type:varchar(255)" json:"secondary_occupation"`
	FarmSizeHectares           *float64 `gorm:"column:farm_size_hectares;type:numeric(10,2)" json:"farm_size_hectares"`
	LandOwnership              *string  `gorm:"column:land_ownership;type:varchar(50)" json:"land_ownership"`
	YearsFarming               *int     `gorm:"column:years_farming" json:"years_farming"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FarmerModel) TableName() string {
	return "farmers"
}

// FullName joins the name parts, skipping empty ones. Derived, never stored.
func (f *FarmerModel) FullName() string {
	parts := []string{f.FirstName}
	if f.MiddleName != nil {
		parts = append(parts, *f.MiddleName)
	}
	parts = append(parts, f.LastName)
	if f.Suffix != nil {
		parts = append(parts, *f.Suffix)
	}
	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			joined = append(joined, p)
		}
	}
	return strings.Join(joined, " ")
}

// ImageURL resolves the stored filename to a servable path.
func (f *FarmerModel) ImageURL() *string {
	if f.ProfileImage == nil || *f.ProfileImage == "" {
		return nil
	}
	img := *f.ProfileImage
	if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") || strings.HasPrefix(img, "/") {
		return &img
	}
	url := "/static/uploads/" + img
	return &url
}
