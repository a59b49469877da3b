package mongo

import (
	"fmt"
	"time"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

const ColApplications = "insurance_applications"

type ApplicationDoc struct {
	ID                string `bson:"_id"`
	CustomerName      string `bson:"customer_name"`
	CustomerAddress   string `bson:"customer_address"`
	InsuranceType     string `bson:"insurance_type"`
	CalculatedPremium int64  `bson:"calculated_premium"`
	CreatedAt         string `bson:"created_at"` // RFC 3339 with nanoseconds
}

func toApplicationDoc(a core.Application) ApplicationDoc {
	return ApplicationDoc{
		ID:                a.ID,
		CustomerName:      a.CustomerName,
		CustomerAddress:   a.CustomerAddress,
		InsuranceType:     string(a.InsuranceType),
		CalculatedPremium: a.CalculatedPremium,
		CreatedAt:         a.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromApplicationDoc(d ApplicationDoc) (core.Application, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return core.Application{}, fmt.Errorf("parse created_at %q: %w", d.CreatedAt, err)
	}
	return core.Application{
		ID:                d.ID,
		CustomerName:      d.CustomerName,
		CustomerAddress:   d.CustomerAddress,
		InsuranceType:     core.InsuranceType(d.InsuranceType),
		CalculatedPremium: d.CalculatedPremium,
		CreatedAt:         createdAt.UTC(),
	}, nil
}
