// Package customer provides the customer catalog.
package customer

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
)

// DocumentType is the Colombian identification document kind.
type DocumentType string

const (
	DocumentCC  DocumentType = "CC"  // cédula de ciudadanía
	DocumentNIT DocumentType = "NIT" // tax ID for businesses
	DocumentCE  DocumentType = "CE"  // cédula de extranjería
	DocumentPP  DocumentType = "PP"  // passport
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentCC, DocumentNIT, DocumentCE, DocumentPP:
		return true
	}
	return false
}

// Customer is a buyer on record. Walk-in cash sales may omit the customer.
type Customer struct {
	ID             id.ID        `db:"id" json:"id"`
	DocumentType   DocumentType `db:"document_type" json:"documentType"`
	DocumentNumber string       `db:"document_number" json:"documentNumber"`
	Name           string       `db:"name" json:"name"`
	Email          string       `db:"email" json:"email,omitempty"`
	Phone          string       `db:"phone" json:"phone,omitempty"`
	Address        string       `db:"address" json:"address,omitempty"`
	Active         bool         `db:"active" json:"active"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`
}

// NewCustomer creates a customer with a generated ID.
func NewCustomer(documentType DocumentType, documentNumber, name string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:             id.New(),
		DocumentType:   documentType,
		DocumentNumber: documentNumber,
		Name:           name,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate checks customer invariants.
func (c *Customer) Validate(ctx context.Context) error {
	if !c.DocumentType.Valid() {
		return apperror.NewValidation("invalid document type").
			WithDetail("field", "documentType").
			WithDetail("value", string(c.DocumentType))
	}
	if c.DocumentNumber == "" {
		return apperror.NewValidation("document number is required").
			WithDetail("field", "documentNumber")
	}
	if c.Name == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "name")
	}
	return nil
}
