package model

// FarmerChildModel is one household-succession record per child,
// independently addressable by farmer_id + child id.
type FarmerChildModel struct {
	ID       uint         `gorm:"column:id;primaryKey" json:"id"`
	FarmerID uint         `gorm:"column:farmer_id;not null;index" json:"farmer_id"`
	Farmer   *FarmerModel `gorm:"foreignKey:FarmerID;constraint:OnDelete:CASCADE" json:"-"`

	Name              *string `gorm:"column:name;type:varchar(255)" json:"name"`
	Age               *int    `gorm:"column:age" json:"age"`
	Gender            *string `gorm:"column:gender;type:varchar(20)" json:"gender"`
	EducationLevel    *string `gorm:"column:education_level;type:varchar(100)" json:"education_level"`
	ContinuesFarming  bool    `gorm:"column:continues_farming;default:false" json:"continues_farming"`
	InvolvementLevel  string  `gorm:"column:involvement_level;type:varchar(50);default:None" json:"involvement_level"`
	CurrentOccupation *string `gorm:"column:current_occupation;type:varchar(255)" json:"current_occupation"`
	Notes             *string `gorm:"column:notes;type:text" json:"notes"`
}

func (FarmerChildModel) TableName() string {
	return "farmer_children"
}
