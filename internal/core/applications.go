package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type InsuranceType string

const (
	InsuranceTypeAuto    InsuranceType = "AUTO"
	InsuranceTypeMedical InsuranceType = "MEDICAL"
	InsuranceTypeHouse   InsuranceType = "HOUSE"
)

// InsuranceTypes lists every recognized insurance type in a stable order.
var InsuranceTypes = []InsuranceType{
	InsuranceTypeAuto,
	InsuranceTypeMedical,
	InsuranceTypeHouse,
}

// ParseInsuranceType matches s exactly (case-sensitive) against the known types.
func ParseInsuranceType(s string) (InsuranceType, bool) {
	for _, t := range InsuranceTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t InsuranceType) Valid() bool {
	_, ok := ParseInsuranceType(string(t))
	return ok
}

// ApplicationRequest is the raw payload as received over the wire.
// Fields are pointers so a missing key, an explicit null and an empty
// string can all be told apart and rejected.
type ApplicationRequest struct {
	CustomerName    *string `json:"customerName"`
	CustomerAddress *string `json:"customerAddress"`
	InsuranceType   *string `json:"insuranceType"`
}

// ValidatedRequest is an ApplicationRequest that passed Validate.
// Name and address are kept exactly as submitted.
type ValidatedRequest struct {
	CustomerName    string
	CustomerAddress string
	InsuranceType   InsuranceType
}

// Application is the record produced for every accepted request.
type Application struct {
	ID                string        `json:"applicationId"`
	CustomerName      string        `json:"customerName"`
	CustomerAddress   string        `json:"customerAddress"`
	InsuranceType     InsuranceType `json:"insuranceType"`
	CalculatedPremium int64         `json:"calculatedPremium"`
	CreatedAt         time.Time     `json:"createdAt"`
}

type ApplicationRepo interface {
	Create(ctx context.Context, app Application) error
	Get(ctx context.Context, id string) (Application, error)
	CountByType(ctx context.Context) (map[InsuranceType]int64, error)
	Ping(ctx context.Context) error
}

// Validate checks presence and enum membership. The first failing rule is reported.
func (r ApplicationRequest) Validate() (ValidatedRequest, error) {
	if r.CustomerName == nil || strings.TrimSpace(*r.CustomerName) == "" {
		return ValidatedRequest{}, fmt.Errorf("%w: customerName is required", ErrValidation)
	}
	if r.CustomerAddress == nil || strings.TrimSpace(*r.CustomerAddress) == "" {
		return ValidatedRequest{}, fmt.Errorf("%w: customerAddress is required", ErrValidation)
	}
	if r.InsuranceType == nil || *r.InsuranceType == "" {
		return ValidatedRequest{}, fmt.Errorf("%w: insuranceType is required", ErrValidation)
	}
	it, ok := ParseInsuranceType(*r.InsuranceType)
	if !ok {
		return ValidatedRequest{}, fmt.Errorf("%w: insuranceType must be one of AUTO, MEDICAL, HOUSE; got %q",
			ErrValidation, *r.InsuranceType)
	}

	return ValidatedRequest{
		CustomerName:    *r.CustomerName,
		CustomerAddress: *r.CustomerAddress,
		InsuranceType:   it,
	}, nil
}

var (
	ErrApplicationNotFound = fmt.Errorf("%w: application not found", ErrNotFound)
	ErrApplicationExists   = fmt.Errorf("%w: application already exists", ErrConflict)
)
