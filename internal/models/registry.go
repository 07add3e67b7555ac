package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registry persistence models. Column names follow the original mobile
// app's JSON contract so existing clients keep working.

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone"`
	Country   string    `json:"country"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Station is a directory listing owned by a vendor user.
type Station struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Name              string    `json:"name"`
	Logo              string    `json:"logo"`
	Image             string    `json:"image"`
	ImageID           string    `json:"imageId"`
	PMS               float64   `json:"pms"`
	AGO               float64   `json:"ago"`
	Address           string    `json:"address"`
	SupportedOrdering bool      `json:"supportedOrdering"`
	Email             string    `json:"email"`
	OperatingHours    string    `json:"operatingHours"`
	AvailableProducts string    `json:"availableProducts"`
	PaymentMethods    string    `json:"paymentMethods"`
	Facilities        string    `json:"facilities"`
	OwnerID           *string   `json:"ownerId,omitempty"`
	Owner             *User     `json:"owner,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// PetrolPrice is the registry record joined against POI results by
// normalized station name. PriceAndType rows are replaced wholesale on
// update, never patched.
type PetrolPrice struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	StationName  string         `json:"stationName"`
	PriceAndType []PriceAndType `gorm:"constraint:OnDelete:CASCADE" json:"priceAndType"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type PriceAndType struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	Type          string  `json:"type"`
	Price         float64 `json:"price"`
	PetrolPriceID string  `gorm:"index" json:"-"`
}

type Vendor struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	PMS       float64   `json:"pms"`
	UserID    string    `gorm:"index" json:"userId"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ad is a classified listing posted by a user.
type Ad struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image"`
	ImageID   string    `json:"imageId"`
	UserID    string    `gorm:"index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Order struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"userId"`
	StationID string    `gorm:"index" json:"stationId"`
	Product   string    `json:"product"`
	Litres    float64   `json:"litres"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error        { assignID(&u.ID); return nil }
func (s *Station) BeforeCreate(*gorm.DB) error     { assignID(&s.ID); return nil }
func (p *PetrolPrice) BeforeCreate(*gorm.DB) error { assignID(&p.ID); return nil }
func (p *PriceAndType) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}
func (v *Vendor) BeforeCreate(*gorm.DB) error { assignID(&v.ID); return nil }
func (a *Ad) BeforeCreate(*gorm.DB) error     { assignID(&a.ID); return nil }
func (o *Order) BeforeCreate(*gorm.DB) error  { assignID(&o.ID); return nil }
