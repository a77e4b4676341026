package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	laborledger "github.com/xraph/laborledger"
	"github.com/xraph/laborledger/account"
	"github.com/xraph/laborledger/cooperation"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/social"
	"github.com/xraph/laborledger/store/memory"
	"github.com/xraph/laborledger/transfer"
	"github.com/xraph/laborledger/types"
)

func TestAccountRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := account.New(account.TypeMember)
	if err := s.CreateAccount(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetAccount(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.ID.Equal(a.ID) || got.Type != account.TypeMember {
		t.Fatalf("got %+v, want %+v", got, a)
	}

	_, err = s.GetAccount(ctx, id.NewAccountID())
	if !errors.Is(err, laborledger.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestTransferListing(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a, b, c := id.NewAccountID(), id.NewAccountID(), id.NewAccountID()
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	mk := func(debit, credit id.ID, value string, typ transfer.Type) *transfer.Transfer {
		tr := &transfer.Transfer{
			ID:            id.NewTransferID(),
			Date:          date,
			DebitAccount:  debit,
			CreditAccount: credit,
			Value:         decimal.RequireFromString(value),
			Type:          typ,
		}
		if err := s.CreateTransfer(ctx, tr); err != nil {
			t.Fatal(err)
		}
		return tr
	}

	first := mk(a, b, "3", transfer.TypeWorkCertificates)
	second := mk(b, c, "1", transfer.TypeTaxes)
	mk(c, a, "2", transfer.TypePrivateConsumption)

	t.Run("ByAccount", func(t *testing.T) {
		got, err := s.ListTransfers(ctx, transfer.ListOpts{Account: b})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("transfers = %d, want 2", len(got))
		}
		// Insertion order is preserved.
		if !got[0].ID.Equal(first.ID) || !got[1].ID.Equal(second.ID) {
			t.Fatal("transfers out of order")
		}
	})

	t.Run("ByType", func(t *testing.T) {
		got, err := s.ListTransfers(ctx, transfer.ListOpts{Type: transfer.TypeTaxes})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || !got[0].ID.Equal(second.ID) {
			t.Fatalf("got %d transfers, want the taxes transfer only", len(got))
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		got, err := s.ListTransfers(ctx, transfer.ListOpts{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || !got[0].ID.Equal(second.ID) {
			t.Fatal("pagination did not return the second transfer")
		}
	})
}

func TestPlanListing(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	planner := id.NewCompanyID()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mk := func(approved *time.Time, days int) *plan.Plan {
		p := &plan.Plan{
			Entity:        types.NewEntity(),
			ID:            id.NewPlanID(),
			Planner:       planner,
			Costs:         types.Costs(1, 1, 1),
			Amount:        1,
			TimeframeDays: days,
		}
		if approved != nil {
			expiration := approved.AddDate(0, 0, days)
			p.ApprovalDate = approved
			p.ExpirationDate = &expiration
		}
		if err := s.CreatePlan(ctx, p); err != nil {
			t.Fatal(err)
		}
		return p
	}

	mk(nil, 7) // drafted, must never list as approved
	active := mk(&base, 7)

	t.Run("ByPlanner", func(t *testing.T) {
		got, err := s.ListPlans(ctx, plan.ListOpts{Planner: planner})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d plans, want 2", len(got))
		}
	})

	t.Run("ApprovedOnly", func(t *testing.T) {
		got, err := s.ListPlans(ctx, plan.ListOpts{ApprovedOnly: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || !got[0].ID.Equal(active.ID) {
			t.Fatalf("got %d plans, want the approved plan only", len(got))
		}
	})

	t.Run("ActiveDuringExcludesBoundaryTouches", func(t *testing.T) {
		// Activity interval is [base, base+7d). A window that starts
		// exactly at expiration or ends exactly at approval must not
		// match.
		cases := []struct {
			name        string
			start, end  time.Time
			wantMatches bool
		}{
			{"overlapping", base.AddDate(0, 0, 3), base.AddDate(0, 0, 20), true},
			{"containing", base.AddDate(0, 0, -1), base.AddDate(0, 0, 8), true},
			{"ending at approval", base.AddDate(0, 0, -7), base, false},
			{"starting at expiration", base.AddDate(0, 0, 7), base.AddDate(0, 0, 14), false},
		}
		for _, tc := range cases {
			got, err := s.ListPlans(ctx, plan.ListOpts{
				ApprovedOnly: true,
				ActiveDuring: &plan.Period{Start: tc.start, End: tc.end},
			})
			if err != nil {
				t.Fatal(err)
			}
			if (len(got) == 1) != tc.wantMatches {
				t.Fatalf("%s: matches = %d, want match %v", tc.name, len(got), tc.wantMatches)
			}
		}
	})

	t.Run("UpdateMissingPlan", func(t *testing.T) {
		ghost := &plan.Plan{Entity: types.NewEntity(), ID: id.NewPlanID(), Planner: planner}
		if err := s.UpdatePlan(ctx, ghost); !errors.Is(err, laborledger.ErrPlanNotFound) {
			t.Fatalf("err = %v, want ErrPlanNotFound", err)
		}
	})
}

func TestSocialAccountingSingleton(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.GetSocialAccounting(ctx)
	if !errors.Is(err, laborledger.ErrSocialAccountingNotFound) {
		t.Fatalf("err = %v, want ErrSocialAccountingNotFound", err)
	}

	sa := &social.Accounting{
		Entity:     types.NewEntity(),
		ID:         id.NewSocialAccountingID(),
		AccountPSF: id.NewAccountID(),
	}
	if err := s.CreateSocialAccounting(ctx, sa); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetSocialAccounting(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !got.AccountPSF.Equal(sa.AccountPSF) {
		t.Fatal("psf account mismatch")
	}
}

func TestWorkerRoster(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	companyID, memberID := id.NewCompanyID(), id.NewMemberID()

	ok, err := s.IsCompanyWorker(ctx, companyID, memberID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("member must not be rostered yet")
	}

	// Adding twice is harmless.
	if err := s.AddCompanyWorker(ctx, companyID, memberID); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCompanyWorker(ctx, companyID, memberID); err != nil {
		t.Fatal(err)
	}

	ok, err = s.IsCompanyWorker(ctx, companyID, memberID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("member must be rostered")
	}
}

func TestCoordination(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	coopID := id.NewCooperationID()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.GetCurrentCoordinationTenure(ctx, coopID)
	if !errors.Is(err, laborledger.ErrTenureNotFound) {
		t.Fatalf("err = %v, want ErrTenureNotFound", err)
	}

	older := &cooperation.Tenure{ID: id.NewTenureID(), Company: id.NewCompanyID(), Cooperation: coopID, StartDate: base}
	newer := &cooperation.Tenure{ID: id.NewTenureID(), Company: id.NewCompanyID(), Cooperation: coopID, StartDate: base.AddDate(0, 1, 0)}
	for _, tenure := range []*cooperation.Tenure{older, newer} {
		if err := s.CreateCoordinationTenure(ctx, tenure); err != nil {
			t.Fatal(err)
		}
	}

	current, err := s.GetCurrentCoordinationTenure(ctx, coopID)
	if err != nil {
		t.Fatal(err)
	}
	if !current.ID.Equal(newer.ID) {
		t.Fatal("current tenure must be the latest by start date")
	}

	t.Run("CloseTransferRequest", func(t *testing.T) {
		request := &cooperation.TransferRequest{
			ID:               id.NewTransferRequestID(),
			RequestingTenure: newer.ID,
			Candidate:        id.NewCompanyID(),
			RequestDate:      base,
		}
		if err := s.CreateCoordinationTransferRequest(ctx, request); err != nil {
			t.Fatal(err)
		}

		open, err := s.ListCoordinationTransferRequests(ctx, cooperation.TransferRequestListOpts{
			RequestingTenure: newer.ID,
			OpenOnly:         true,
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(open) != 1 {
			t.Fatalf("open requests = %d, want 1", len(open))
		}

		closeDate := base.AddDate(0, 0, 1)
		if err := s.CloseCoordinationTransferRequest(ctx, request.ID, closeDate); err != nil {
			t.Fatal(err)
		}

		err = s.CloseCoordinationTransferRequest(ctx, request.ID, closeDate)
		if !errors.Is(err, laborledger.ErrTransferRequestClosed) {
			t.Fatalf("err = %v, want ErrTransferRequestClosed", err)
		}

		err = s.CloseCoordinationTransferRequest(ctx, id.NewTransferRequestID(), closeDate)
		if !errors.Is(err, laborledger.ErrTransferRequestNotFound) {
			t.Fatalf("err = %v, want ErrTransferRequestNotFound", err)
		}

		open, err = s.ListCoordinationTransferRequests(ctx, cooperation.TransferRequestListOpts{
			RequestingTenure: newer.ID,
			OpenOnly:         true,
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(open) != 0 {
			t.Fatal("closed request must not list as open")
		}
	})
}
