package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validRequest() ApplicationRequest {
	return ApplicationRequest{
		CustomerName:    strPtr("John"),
		CustomerAddress: strPtr("123 Main St"),
		InsuranceType:   strPtr("AUTO"),
	}
}

func TestValidate_Accepts(t *testing.T) {
	for _, it := range []string{"AUTO", "MEDICAL", "HOUSE"} {
		req := validRequest()
		req.InsuranceType = strPtr(it)

		v, err := req.Validate()
		require.NoError(t, err, it)
		assert.Equal(t, "John", v.CustomerName)
		assert.Equal(t, "123 Main St", v.CustomerAddress)
		assert.Equal(t, InsuranceType(it), v.InsuranceType)
	}
}

func TestValidate_KeepsUntrimmedValues(t *testing.T) {
	req := validRequest()
	req.CustomerName = strPtr("  John  ")

	v, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, "  John  ", v.CustomerName)
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ApplicationRequest)
		msg    string
	}{
		{"nil name", func(r *ApplicationRequest) { r.CustomerName = nil }, "customerName"},
		{"empty name", func(r *ApplicationRequest) { r.CustomerName = strPtr("") }, "customerName"},
		{"blank name", func(r *ApplicationRequest) { r.CustomerName = strPtr(" \t ") }, "customerName"},
		{"nil address", func(r *ApplicationRequest) { r.CustomerAddress = nil }, "customerAddress"},
		{"empty address", func(r *ApplicationRequest) { r.CustomerAddress = strPtr("") }, "customerAddress"},
		{"blank address", func(r *ApplicationRequest) { r.CustomerAddress = strPtr("   ") }, "customerAddress"},
		{"nil type", func(r *ApplicationRequest) { r.InsuranceType = nil }, "insuranceType"},
		{"empty type", func(r *ApplicationRequest) { r.InsuranceType = strPtr("") }, "insuranceType"},
		{"unknown type", func(r *ApplicationRequest) { r.InsuranceType = strPtr("INVALID") }, "insuranceType"},
		{"lowercase type", func(r *ApplicationRequest) { r.InsuranceType = strPtr("auto") }, "insuranceType"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			_, err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestValidate_ReportsFirstFailure(t *testing.T) {
	_, err := ApplicationRequest{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customerName")
}

func TestParseInsuranceType(t *testing.T) {
	it, ok := ParseInsuranceType("MEDICAL")
	assert.True(t, ok)
	assert.Equal(t, InsuranceTypeMedical, it)

	_, ok = ParseInsuranceType("Medical")
	assert.False(t, ok)

	assert.True(t, InsuranceTypeHouse.Valid())
	assert.False(t, InsuranceType("BOAT").Valid())
}
