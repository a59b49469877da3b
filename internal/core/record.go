package core

import (
	"time"

	"github.com/MrKriegler/insurance-premium/internal/platform/ids"
)

// RecordBuilder assembles application records. The id generator and
// clock are injected so records can be built deterministically in tests.
type RecordBuilder struct {
	newID func() string
	clock func() time.Time
}

func NewRecordBuilder(newID func() string, clock func() time.Time) *RecordBuilder {
	if newID == nil {
		newID = ids.New
	}
	if clock == nil {
		clock = time.Now
	}
	return &RecordBuilder{newID: newID, clock: clock}
}

// Build echoes the validated fields and stamps a fresh id and UTC creation time.
func (b *RecordBuilder) Build(v ValidatedRequest, premium int64) Application {
	return Application{
		ID:                b.newID(),
		CustomerName:      v.CustomerName,
		CustomerAddress:   v.CustomerAddress,
		InsuranceType:     v.InsuranceType,
		CalculatedPremium: premium,
		CreatedAt:         b.clock().UTC(),
	}
}
