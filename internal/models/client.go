package models

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ClientActive   = "active"
	ClientInactive = "inactive"
	ClientProspect = "prospect"

	DefaultCurrency         = "INR"
	DefaultPaymentTermsDays = 30
)

var (
	ClientStatuses = []string{ClientActive, ClientInactive, ClientProspect}

	clientCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{2,20}$`)
)

type ClientContact struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type ClientBilling struct {
	AddressLine1     string `bson:"addressLine1,omitempty" json:"addressLine1,omitempty"`
	AddressLine2     string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City             string `bson:"city,omitempty" json:"city,omitempty"`
	State            string `bson:"state,omitempty" json:"state,omitempty"`
	Country          string `bson:"country,omitempty" json:"country,omitempty"`
	PostalCode       string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Currency         string `bson:"currency" json:"currency"`
	PaymentTermsDays int    `bson:"paymentTermsDays" json:"paymentTermsDays"`
	TaxID            string `bson:"taxId,omitempty" json:"taxId,omitempty"`
}

// Client is a customer company. Code is stored upper-case and is unique.
type Client struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string         `bson:"name" json:"name"`
	Code      string         `bson:"code" json:"code"`
	Contact   ClientContact  `bson:"contact" json:"contact"`
	Billing   ClientBilling  `bson:"billing" json:"billing"`
	Industry  string         `bson:"industry,omitempty" json:"industry,omitempty"`
	Website   string         `bson:"website,omitempty" json:"website,omitempty"`
	Status    string         `bson:"status" json:"status"`
	Notes     string         `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy *bson.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

func (c *Client) ApplyDefaults(now time.Time) {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Contact.Email = NormalizeEmail(c.Contact.Email)
	if c.Status == "" {
		c.Status = ClientActive
	}
	if c.Billing.Currency == "" {
		c.Billing.Currency = DefaultCurrency
	}
	c.Billing.Currency = strings.ToUpper(c.Billing.Currency)
	if c.Billing.PaymentTermsDays == 0 {
		c.Billing.PaymentTermsDays = DefaultPaymentTermsDays
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (c Client) Validate() error {
	if c.Name == "" {
		return invalid("client name is required")
	}
	if !clientCodePattern.MatchString(c.Code) {
		return invalid("client code %q must match %s", c.Code, clientCodePattern)
	}
	if err := oneOf("client status", c.Status, ClientStatuses); err != nil {
		return err
	}
	if c.Contact.Email != "" {
		if _, err := mail.ParseAddress(c.Contact.Email); err != nil {
			return invalid("client contact email %q is malformed", c.Contact.Email)
		}
	}
	if c.Billing.PaymentTermsDays < 0 {
		return invalid("client payment terms cannot be negative")
	}
	if len(c.Billing.Currency) != 3 {
		return invalid("client currency %q must be a 3-letter code", c.Billing.Currency)
	}
	return nil
}

func ValidClientStatus(status string) error {
	return oneOf("client status", status, ClientStatuses)
}
