package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/laborledger/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"AccountID", id.NewAccountID, "acct_"},
		{"TransferID", id.NewTransferID, "tfr_"},
		{"PlanID", id.NewPlanID, "plan_"},
		{"PlanApprovalID", id.NewPlanApprovalID, "appr_"},
		{"MemberID", id.NewMemberID, "mem_"},
		{"CompanyID", id.NewCompanyID, "cmp_"},
		{"SocialAccountingID", id.NewSocialAccountingID, "soc_"},
		{"CooperationID", id.NewCooperationID, "coop_"},
		{"TenureID", id.NewTenureID, "tnr_"},
		{"TransferRequestID", id.NewTransferRequestID, "ctr_"},
		{"PrivateConsumptionID", id.NewPrivateConsumptionID, "pcons_"},
		{"ProductiveConsumptionID", id.NewProductiveConsumptionID, "dcons_"},
		{"HoursWorkedID", id.NewHoursWorkedID, "hrs_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixPlan)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixPlan {
		t.Errorf("expected prefix %q, got %q", id.PrefixPlan, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"AccountID", id.NewAccountID, id.ParseAccountID},
		{"TransferID", id.NewTransferID, id.ParseTransferID},
		{"PlanID", id.NewPlanID, id.ParsePlanID},
		{"MemberID", id.NewMemberID, id.ParseMemberID},
		{"CompanyID", id.NewCompanyID, id.ParseCompanyID},
		{"CooperationID", id.NewCooperationID, id.ParseCooperationID},
		{"TenureID", id.NewTenureID, id.ParseTenureID},
		{"TransferRequestID", id.NewTransferRequestID, id.ParseTransferRequestID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseAccountID rejects tfr_", id.NewTransferID().String(), id.ParseAccountID},
		{"ParseTransferID rejects plan_", id.NewPlanID().String(), id.ParseTransferID},
		{"ParsePlanID rejects coop_", id.NewCooperationID().String(), id.ParsePlanID},
		{"ParseMemberID rejects cmp_", id.NewCompanyID().String(), id.ParseMemberID},
		{"ParseCompanyID rejects mem_", id.NewMemberID().String(), id.ParseCompanyID},
		{"ParseCooperationID rejects tnr_", id.NewTenureID().String(), id.ParseCooperationID},
		{"ParseTenureID rejects ctr_", id.NewTransferRequestID().String(), id.ParseTenureID},
		{"ParseTransferRequestID rejects acct_", id.NewAccountID().String(), id.ParseTransferRequestID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Error("expected prefix mismatch error, got nil")
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestTextMarshalRoundTrip(t *testing.T) {
	original := id.NewTransferID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round-trip mismatch: %q != %q", decoded.String(), original.String())
	}
}

func TestNilID(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil should report IsNil")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil should render as empty string, got %q", id.Nil.String())
	}
}
