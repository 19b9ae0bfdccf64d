package shop

import (
	"time"

	"shop-transformer/core/matching"
)

// Customer is one shop customer row. Column names are camelCase because the
// shop schema predates any naming convention.
type Customer struct {
	CustomerID int        `gorm:"primaryKey;column:customerId" json:"customer_id"`
	EntityID   int        `gorm:"column:entityId" json:"entity_id"`
	Active     bool       `gorm:"column:active;type:tinyint(1);default:1" json:"active"`
	Code       string     `gorm:"column:code;type:varchar(10)" json:"code"`
	Status     string     `gorm:"column:status;type:varchar(25)" json:"status"`
	FirstName  string     `gorm:"column:firstName;type:varchar(60)" json:"first_name"`
	LastName   string     `gorm:"column:lastName;type:varchar(60)" json:"last_name"`
	Email      *string    `gorm:"column:email;type:varchar(120);default:NULL" json:"email,omitempty"` // Nullable
	Phone      *string    `gorm:"column:phone;type:varchar(25);default:NULL" json:"phone,omitempty"`  // Nullable
	Created    *time.Time `gorm:"column:created;default:NULL" json:"created,omitempty"`
	Modified   *time.Time `gorm:"column:modified;default:NULL" json:"modified,omitempty"`
}

func (Customer) TableName() string {
	return "Customer"
}

// Unit is one vehicle owned by a customer, identified however the operator
// felt like typing it that day.
type Unit struct {
	UnitID       int        `gorm:"primaryKey;column:unitId" json:"unit_id"`
	CustomerID   int        `gorm:"column:customerId" json:"customer_id"`
	EntityID     int        `gorm:"column:entityId" json:"entity_id"`
	Active       bool       `gorm:"column:active;type:tinyint(1);default:1" json:"active"`
	UnitNumber   string     `gorm:"column:unitNumber;type:varchar(25)" json:"unit_number"`
	VIN          string     `gorm:"column:vin;type:varchar(17)" json:"vin"`
	Year         int        `gorm:"column:year" json:"year"`
	Make         string     `gorm:"column:make;type:varchar(60)" json:"make"`
	Model        string     `gorm:"column:model;type:varchar(60)" json:"model"`
	SubModel     string     `gorm:"column:subModel;type:varchar(60)" json:"sub_model"`
	Engine       string     `gorm:"column:engine;type:varchar(60)" json:"engine"`
	LicensePlate string     `gorm:"column:licensePlate;type:varchar(15)" json:"license_plate"`
	Mileage      int        `gorm:"column:mileage" json:"mileage"`
	Created      *time.Time `gorm:"column:created;default:NULL" json:"created,omitempty"`
	Modified     *time.Time `gorm:"column:modified;default:NULL" json:"modified,omitempty"`
}

func (Unit) TableName() string {
	return "Unit"
}

// Descriptor converts the unit's free-text identity into matcher input.
func (u Unit) Descriptor() matching.VehicleDescriptor {
	return matching.VehicleDescriptor{
		Make:     u.Make,
		Model:    u.Model,
		Year:     u.Year,
		Submodel: u.SubModel,
		VIN:      u.VIN,
	}
}

// Address is one customer address.
type Address struct {
	AddressID  int        `gorm:"primaryKey;column:addressId" json:"address_id"`
	CustomerID int        `gorm:"column:customerId" json:"customer_id"`
	Line1      string     `gorm:"column:line1;type:varchar(120)" json:"line1"`
	Line2      string     `gorm:"column:line2;type:varchar(120)" json:"line2"`
	City       string     `gorm:"column:city;type:varchar(120)" json:"city"`
	State      string     `gorm:"column:state;type:char(3)" json:"state"`
	Country    string     `gorm:"column:country;type:char(3)" json:"country"`
	PostalCode string     `gorm:"column:postalCode;type:varchar(15)" json:"postal_code"`
	Created    *time.Time `gorm:"column:created;default:NULL" json:"created,omitempty"`
	Modified   *time.Time `gorm:"column:modified;default:NULL" json:"modified,omitempty"`
}

func (Address) TableName() string {
	return "Address"
}

// Note is one free-text note attached to a customer.
type Note struct {
	NoteID     int        `gorm:"primaryKey;column:noteId" json:"note_id"`
	CustomerID int        `gorm:"column:customerId" json:"customer_id"`
	Subject    string     `gorm:"column:subject;type:varchar(120)" json:"subject"`
	Body       string     `gorm:"column:note;type:text" json:"body"`
	Created    *time.Time `gorm:"column:created;default:NULL" json:"created,omitempty"`
}

func (Note) TableName() string {
	return "Note"
}

// ServiceHistory is one completed repair order of a customer's unit.
type ServiceHistory struct {
	ServiceHistoryID int        `gorm:"primaryKey;column:serviceHistoryId" json:"service_history_id"`
	CustomerID       int        `gorm:"column:customerId" json:"customer_id"`
	UnitID           int        `gorm:"column:unitId" json:"unit_id"`
	ServiceDate      *time.Time `gorm:"column:serviceDate;default:NULL" json:"service_date,omitempty"`
	Odometer         int        `gorm:"column:odometer" json:"odometer"`
	Description      string     `gorm:"column:description;type:text" json:"description"`
	Status           string     `gorm:"column:status;type:varchar(25)" json:"status"`
	InvoiceTotal     float64    `gorm:"column:invoiceTotal;type:decimal(9,2)" json:"invoice_total"`
	Created          *time.Time `gorm:"column:created;default:NULL" json:"created,omitempty"`
}

func (ServiceHistory) TableName() string {
	return "ServiceHistory"
}

// PartLine is one part used on a repair order. The rows live on
// ServiceHistoryPart; CustomerID is filled from the ServiceHistory join so
// the cache can key part lines by customer like every other child table.
type PartLine struct {
	PartLineID       int     `gorm:"primaryKey;column:serviceHistoryPartId" json:"part_line_id"`
	ServiceHistoryID int     `gorm:"column:serviceHistoryId" json:"service_history_id"`
	Title            string  `gorm:"column:title;type:varchar(120)" json:"title"`
	Description      string  `gorm:"column:description;type:text" json:"description"`
	PartNumber       string  `gorm:"column:partNumber;type:varchar(40)" json:"part_number"`
	VendorPartNumber string  `gorm:"column:vendorPartNumber;type:varchar(40)" json:"vendor_part_number"`
	Quantity         float64 `gorm:"column:quantity;type:decimal(9,2)" json:"quantity"`
	UnitPrice        float64 `gorm:"column:unitPrice;type:decimal(9,2)" json:"unit_price"`
	CustomerID       int     `gorm:"-" json:"customer_id"`
}

func (PartLine) TableName() string {
	return "ServiceHistoryPart"
}

// Descriptor converts the part line into matcher input.
func (p PartLine) Descriptor() matching.PartDescriptor {
	return matching.PartDescriptor{
		Title:        p.Title,
		Description:  p.Description,
		ShopNumber:   p.PartNumber,
		VendorNumber: p.VendorPartNumber,
	}
}
