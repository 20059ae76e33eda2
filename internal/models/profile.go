package models

import (
	"time"
)

// Profile is a member record. Satellite records (addresses, contacts,
// employer, corps data) are referenced by plain id fields and only resolved
// when a detail shape is requested.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Firstname  string `gorm:"size:100;not null" json:"firstname"`
	Lastname   string `gorm:"size:100;not null" json:"lastname"`
	Middlename string `gorm:"size:100" json:"middlename,omitempty"`
	Title      string `gorm:"size:100" json:"title,omitempty"`
	Email      string `gorm:"size:255;not null" json:"email"`

	BirthDate  *Date  `json:"birth_date,omitempty"`
	BirthPlace string `gorm:"size:255" json:"birth_place,omitempty"`

	Deceased   bool   `gorm:"default:false" json:"deceased"`
	DeathDate  *Date  `json:"death_date,omitempty"`
	DeathPlace string `gorm:"size:255" json:"death_place,omitempty"`

	MarriageDate *Date `json:"marriage_date,omitempty"`

	PictureURL string `gorm:"size:512" json:"picture_url,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	PrivateAddressID *uint    `gorm:"index" json:"private_address_id,omitempty"`
	PrivateAddress   *Address `gorm:"foreignKey:PrivateAddressID" json:"private_address,omitempty"`
	ParentsAddressID *uint    `json:"parents_address_id,omitempty"`
	ParentsAddress   *Address `gorm:"foreignKey:ParentsAddressID" json:"parents_address,omitempty"`

	PrivateContactID  *uint    `json:"private_contact_id,omitempty"`
	PrivateContact    *Contact `gorm:"foreignKey:PrivateContactID" json:"private_contact,omitempty"`
	BusinessContactID *uint    `json:"business_contact_id,omitempty"`
	BusinessContact   *Contact `gorm:"foreignKey:BusinessContactID" json:"business_contact,omitempty"`

	EmployerID *uint     `json:"employer_id,omitempty"`
	Employer   *Employer `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`

	CorpsMemberData *CorpsMemberData `gorm:"foreignKey:ProfileID" json:"corps_member_data,omitempty"`

	CreatedByID *uint `json:"created_by_id,omitempty"`
	UpdatedByID *uint `json:"updated_by_id,omitempty"`
}

// DisplayName is the "Firstname Lastname" form used in connection responses.
func (p *Profile) DisplayName() string {
	return p.Firstname + " " + p.Lastname
}

// Address is a postal address shared by profiles and employers.
type Address struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Street    string   `gorm:"size:255" json:"street,omitempty"`
	Addon     string   `gorm:"size:255" json:"addon,omitempty"`
	Zip       string   `gorm:"size:20" json:"zip,omitempty"`
	City      string   `gorm:"size:100" json:"city,omitempty"`
	State     string   `gorm:"size:100" json:"state,omitempty"`
	Country   string   `gorm:"size:100" json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Type      string   `gorm:"size:50" json:"type,omitempty"`
}

// Contact bundles the reachable endpoints of a profile.
type Contact struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Email           string `gorm:"size:255" json:"email,omitempty"`
	TelephoneNumber string `gorm:"size:50" json:"telephone_number,omitempty"`
	MobileNumber    string `gorm:"size:50" json:"mobile_number,omitempty"`
	FaxNumber       string `gorm:"size:50" json:"fax_number,omitempty"`
	Website         string `gorm:"size:255" json:"website,omitempty"`
}

// Employer captures a profile's employment.
type Employer struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"size:255;not null" json:"name"`
	Category   string   `gorm:"size:100" json:"category,omitempty"`
	Department string   `gorm:"size:100" json:"department,omitempty"`
	Role       string   `gorm:"size:100" json:"role,omitempty"`
	StartDate  *Date    `json:"start_date,omitempty"`
	EndDate    *Date    `json:"end_date,omitempty"`
	AddressID  *uint    `json:"address_id,omitempty"`
	Address    *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

// CorpsMemberData holds the corps-specific membership record of a profile.
// TableName below pins the singular form the SQL migrations use.
type CorpsMemberData struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProfileID uint `gorm:"uniqueIndex;not null" json:"profile_id"`

	MemberNumber     string `gorm:"size:50" json:"member_number,omitempty"`
	CorpsListNumber  *int   `json:"corps_list_number,omitempty"`
	ReceptionNumber  *int   `json:"reception_number,omitempty"`
	ReceptionDate    *Date  `json:"reception_date,omitempty"`
	AcceptionDate    *Date  `json:"acception_date,omitempty"`
	PhilistrierungDate *Date `json:"philistrierung_date,omitempty"`
	EhrenburscheDate *Date  `json:"ehrenbursche_date,omitempty"`

	Status   string `gorm:"size:50" json:"status,omitempty"`
	Quited   bool   `gorm:"default:false" json:"quited"`
	QuitDate *Date  `json:"quit_date,omitempty"`
	QuitType string `gorm:"size:50" json:"quit_type,omitempty"`

	KlammerChargen       string `gorm:"size:100" json:"klammer_chargen,omitempty"`
	NumberOfMensuren     int    `gorm:"default:0" json:"number_of_mensuren"`
	NumberOfReinigungen  int    `gorm:"default:0" json:"number_of_reinigungen"`

	LeibburschID *uint  `json:"leibbursch_id,omitempty"`
	CorpsNotes   string `gorm:"type:text" json:"corps_notes,omitempty"`
}

func (CorpsMemberData) TableName() string { return "corps_member_data" }
