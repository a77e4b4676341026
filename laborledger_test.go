package laborledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	laborledger "github.com/xraph/laborledger"
	"github.com/xraph/laborledger/consumption"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/store/memory"
	"github.com/xraph/laborledger/transfer"
	"github.com/xraph/laborledger/types"
)

var testTime = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func newLedger(t *testing.T, opts ...laborledger.Option) *laborledger.Ledger {
	t.Helper()

	opts = append([]laborledger.Option{
		laborledger.WithClock(func() time.Time { return testTime }),
	}, opts...)

	l := laborledger.New(memory.New(), opts...)
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = l.Stop() })
	return l
}

func unlimitedOverdraw() laborledger.Option {
	return laborledger.WithControlThresholds(laborledger.ControlThresholds{
		AllowedOverdrawOfMemberAccount: nil,
	})
}

func approvedPlan(t *testing.T, l *laborledger.Ledger, planner id.ID, costs types.ProductionCosts, amount int64, days int, public bool) *plan.Plan {
	t.Helper()
	ctx := context.Background()

	p := &plan.Plan{
		Planner:         planner,
		Costs:           costs,
		ProductName:     "bread",
		Unit:            "loaf",
		Amount:          amount,
		TimeframeDays:   days,
		IsPublicService: public,
	}
	if err := l.FilePlan(ctx, p); err != nil {
		t.Fatal(err)
	}
	resp, err := l.ApprovePlan(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.IsApproved {
		t.Fatal("expected plan to be approved")
	}

	p, err = l.GetPlan(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func balance(t *testing.T, l *laborledger.Ledger, account id.ID) decimal.Decimal {
	t.Helper()
	b, err := l.Balance(context.Background(), account)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func assertBalance(t *testing.T, l *laborledger.Ledger, account id.ID, want string) {
	t.Helper()
	got := balance(t, l, account)
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("balance = %s, want %s", got, want)
	}
}

func TestPlanApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("ProductivePlanCreditsSubaccounts", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}

		p := approvedPlan(t, l, c.ID, types.Costs(3, 2, 1), 10, 7, false)

		assertBalance(t, l, c.WorkAccount, "3")
		assertBalance(t, l, c.RawMaterialAccount, "2")
		assertBalance(t, l, c.MeansAccount, "1")
		// The product account is debited by the total planned cost.
		assertBalance(t, l, c.ProductAccount, "-6")

		approval, err := l.GetPlanApproval(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []struct {
			transfer id.ID
			typ      transfer.Type
		}{
			{approval.TransferCreditP, transfer.TypeCreditP},
			{approval.TransferCreditR, transfer.TypeCreditR},
			{approval.TransferCreditA, transfer.TypeCreditA},
		} {
			lines, err := l.AccountTransfers(ctx, c.ProductAccount)
			if err != nil {
				t.Fatal(err)
			}
			found := false
			for _, line := range lines {
				if line.Transfer.Equal(want.transfer) && line.Type == want.typ {
					found = true
				}
			}
			if !found {
				t.Fatalf("missing %s transfer on product account", want.typ)
			}
		}

		if p.ExpirationDate == nil || !p.ExpirationDate.Equal(testTime.AddDate(0, 0, 7)) {
			t.Fatalf("expiration date = %v, want %v", p.ExpirationDate, testTime.AddDate(0, 0, 7))
		}
	})

	t.Run("PublicPlanDebitsPublicSectorFund", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "School", "school@example.org")
		if err != nil {
			t.Fatal(err)
		}

		approvedPlan(t, l, c.ID, types.Costs(5, 1, 2), 1, 14, true)

		psf := l.SocialAccounting().AccountPSF
		assertBalance(t, l, psf, "-8")
		assertBalance(t, l, c.ProductAccount, "0")

		lines, err := l.AccountTransfers(ctx, psf)
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 3 {
			t.Fatalf("psf transfers = %d, want 3", len(lines))
		}
		for _, line := range lines {
			switch line.Type {
			case transfer.TypeCreditPublicP, transfer.TypeCreditPublicR, transfer.TypeCreditPublicA:
			default:
				t.Fatalf("unexpected transfer type %s on psf account", line.Type)
			}
		}
	})

	t.Run("ApprovalIsIdempotent", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}

		p := approvedPlan(t, l, c.ID, types.Costs(3, 2, 1), 10, 7, false)

		resp, err := l.ApprovePlan(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.IsApproved {
			t.Fatal("second approval must be a no-op")
		}
		// Still exactly the original three transfers.
		lines, err := l.AccountTransfers(ctx, c.ProductAccount)
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 3 {
			t.Fatalf("product account transfers = %d, want 3", len(lines))
		}
	})

	t.Run("RejectedPlanCannotBeApproved", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}

		p := &plan.Plan{Planner: c.ID, Costs: types.Costs(1, 1, 1), Amount: 1, TimeframeDays: 7}
		if err := l.FilePlan(ctx, p); err != nil {
			t.Fatal(err)
		}

		rej, err := l.RejectPlan(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !rej.IsPlanRejected {
			t.Fatal("expected rejection to apply")
		}

		resp, err := l.ApprovePlan(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.IsApproved {
			t.Fatal("rejected plan must not be approvable")
		}
		// Rejection emits no transfers.
		assertBalance(t, l, c.ProductAccount, "0")
	})

	t.Run("RejectionIsIdempotent", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}

		p := &plan.Plan{Planner: c.ID, Costs: types.Costs(1, 1, 1), Amount: 1, TimeframeDays: 7}
		if err := l.FilePlan(ctx, p); err != nil {
			t.Fatal(err)
		}
		if _, err := l.RejectPlan(ctx, p.ID); err != nil {
			t.Fatal(err)
		}

		rej, err := l.RejectPlan(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if rej.IsPlanRejected {
			t.Fatal("second rejection must be a no-op")
		}
	})
}

func TestPrivateConsumption(t *testing.T) {
	ctx := context.Background()

	t.Run("InsufficientBalanceWritesNothing", func(t *testing.T) {
		l := newLedger(t) // zero overdraw by default
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		p := approvedPlan(t, l, c.ID, types.Costs(1, 1, 1), 1, 7, false)

		resp, err := l.RegisterPrivateConsumption(ctx, m.ID, p.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !resp.Rejected || resp.RejectionReason != laborledger.PrivateRejectionInsufficientBalance {
			t.Fatalf("rejection = %+v, want insufficient_balance", resp)
		}

		lines, err := l.AccountTransfers(ctx, m.Account)
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 0 {
			t.Fatalf("member account transfers = %d, want 0", len(lines))
		}
	})

	t.Run("ConsumptionMovesCertificates", func(t *testing.T) {
		l := newLedger(t, unlimitedOverdraw())
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		// Price per unit: 6 total / 2 units = 3.
		p := approvedPlan(t, l, c.ID, types.Costs(3, 2, 1), 2, 7, false)

		resp, err := l.RegisterPrivateConsumption(ctx, m.ID, p.ID, 2)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		assertBalance(t, l, m.Account, "-6")
		// Product account: -6 from approval, +6 from the sale.
		assertBalance(t, l, c.ProductAccount, "0")
	})

	t.Run("ValidationOrder", func(t *testing.T) {
		l := newLedger(t, unlimitedOverdraw())
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}

		resp, err := l.RegisterPrivateConsumption(ctx, m.ID, id.NewPlanID(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.PrivateRejectionPlanNotFound {
			t.Fatalf("rejection = %s, want plan_not_found", resp.RejectionReason)
		}

		drafted := &plan.Plan{Planner: c.ID, Costs: types.Costs(1, 1, 1), Amount: 1, TimeframeDays: 7}
		if err := l.FilePlan(ctx, drafted); err != nil {
			t.Fatal(err)
		}
		resp, err = l.RegisterPrivateConsumption(ctx, m.ID, drafted.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.PrivateRejectionPlanInactive {
			t.Fatalf("rejection = %s, want plan_inactive", resp.RejectionReason)
		}

		active := approvedPlan(t, l, c.ID, types.Costs(1, 1, 1), 1, 7, false)
		resp, err = l.RegisterPrivateConsumption(ctx, id.NewMemberID(), active.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.PrivateRejectionConsumerDoesNotExist {
			t.Fatalf("rejection = %s, want consumer_does_not_exist", resp.RejectionReason)
		}
	})

	t.Run("PublicServiceIsFree", func(t *testing.T) {
		l := newLedger(t) // zero overdraw: free consumption still passes
		c, err := l.CreateCompany(ctx, "School", "school@example.org")
		if err != nil {
			t.Fatal(err)
		}
		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		p := approvedPlan(t, l, c.ID, types.Costs(5, 1, 2), 1, 7, true)

		resp, err := l.RegisterPrivateConsumption(ctx, m.ID, p.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}
		assertBalance(t, l, m.Account, "0")
	})
}

func TestProductiveConsumption(t *testing.T) {
	ctx := context.Background()

	t.Run("DebitsMatchingSubaccount", func(t *testing.T) {
		l := newLedger(t)
		producer, err := l.CreateCompany(ctx, "Mill", "mill@example.org")
		if err != nil {
			t.Fatal(err)
		}
		consumer, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		// Price per unit: 4 total / 4 units = 1.
		p := approvedPlan(t, l, producer.ID, types.Costs(2, 1, 1), 4, 7, false)

		resp, err := l.RegisterProductiveConsumption(ctx, consumer.ID, p.ID, 3, consumption.TypeRawMaterials)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		// 3 units at the per-unit price of 1.
		assertBalance(t, l, consumer.RawMaterialAccount, "-3")
		assertBalance(t, l, consumer.MeansAccount, "0")
	})

	t.Run("NoBalanceCheckForCompanies", func(t *testing.T) {
		l := newLedger(t) // zero member overdraw must not apply here
		producer, err := l.CreateCompany(ctx, "Mill", "mill@example.org")
		if err != nil {
			t.Fatal(err)
		}
		consumer, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		p := approvedPlan(t, l, producer.ID, types.Costs(10, 10, 10), 1, 7, false)

		resp, err := l.RegisterProductiveConsumption(ctx, consumer.ID, p.ID, 1, consumption.TypeMeansOfProduction)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}
		assertBalance(t, l, consumer.MeansAccount, "-30")
	})

	t.Run("ValidationOrder", func(t *testing.T) {
		l := newLedger(t)
		producer, err := l.CreateCompany(ctx, "Mill", "mill@example.org")
		if err != nil {
			t.Fatal(err)
		}
		consumer, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}

		check := func(companyID, planID id.ID, typ consumption.Type, want laborledger.ProductiveConsumptionRejection) {
			t.Helper()
			resp, err := l.RegisterProductiveConsumption(ctx, companyID, planID, 1, typ)
			if err != nil {
				t.Fatal(err)
			}
			if resp.RejectionReason != want {
				t.Fatalf("rejection = %s, want %s", resp.RejectionReason, want)
			}
		}

		check(consumer.ID, id.NewPlanID(), consumption.TypeRawMaterials, laborledger.ProductiveRejectionPlanNotFound)

		rejected := &plan.Plan{Planner: producer.ID, Costs: types.Costs(1, 1, 1), Amount: 1, TimeframeDays: 7}
		if err := l.FilePlan(ctx, rejected); err != nil {
			t.Fatal(err)
		}
		if _, err := l.RejectPlan(ctx, rejected.ID); err != nil {
			t.Fatal(err)
		}
		check(consumer.ID, rejected.ID, consumption.TypeRawMaterials, laborledger.ProductiveRejectionPlanIsRejected)

		drafted := &plan.Plan{Planner: producer.ID, Costs: types.Costs(1, 1, 1), Amount: 1, TimeframeDays: 7}
		if err := l.FilePlan(ctx, drafted); err != nil {
			t.Fatal(err)
		}
		check(consumer.ID, drafted.ID, consumption.TypeRawMaterials, laborledger.ProductiveRejectionPlanIsNotActive)

		public := approvedPlan(t, l, producer.ID, types.Costs(1, 1, 1), 1, 7, true)
		check(consumer.ID, public.ID, consumption.TypeRawMaterials, laborledger.ProductiveRejectionPublicService)

		active := approvedPlan(t, l, producer.ID, types.Costs(1, 1, 1), 1, 7, false)
		check(producer.ID, active.ID, consumption.TypeRawMaterials, laborledger.ProductiveRejectionConsumerIsPlanner)
		check(consumer.ID, active.ID, consumption.Type("snacks"), laborledger.ProductiveRejectionInvalidType)
		check(id.NewCompanyID(), active.ID, consumption.TypeRawMaterials, laborledger.ProductiveRejectionConsumerDoesNotExist)
	})
}

func TestCooperativePricing(t *testing.T) {
	ctx := context.Background()

	// setupCooperation builds two cooperating active plans: one priced at
	// 3 per unit, one at 10 per unit, so the cooperative price is 6.5.
	setup := func(t *testing.T, l *laborledger.Ledger) (cheap, dear *plan.Plan, coopAccount id.ID) {
		t.Helper()

		a, err := l.CreateCompany(ctx, "Cheap", "cheap@example.org")
		if err != nil {
			t.Fatal(err)
		}
		b, err := l.CreateCompany(ctx, "Dear", "dear@example.org")
		if err != nil {
			t.Fatal(err)
		}
		coop, err := l.CreateCooperation(ctx, "Bread", "joint bread pricing", a.ID)
		if err != nil {
			t.Fatal(err)
		}

		cheap = approvedPlan(t, l, a.ID, types.Costs(1, 1, 1), 1, 7, false)
		dear = approvedPlan(t, l, b.ID, types.Costs(4, 3, 3), 1, 7, false)

		for _, pl := range []*plan.Plan{cheap, dear} {
			req, err := l.RequestCooperation(ctx, pl.ID, coop.ID)
			if err != nil {
				t.Fatal(err)
			}
			if req.Rejected {
				t.Fatalf("join request rejected: %s", req.RejectionReason)
			}
			acc, err := l.AcceptCooperation(ctx, a.ID, pl.ID, coop.ID)
			if err != nil {
				t.Fatal(err)
			}
			if acc.Rejected {
				t.Fatalf("join acceptance rejected: %s", acc.RejectionReason)
			}
		}

		cheap, err = l.GetPlan(ctx, cheap.ID)
		if err != nil {
			t.Fatal(err)
		}
		dear, err = l.GetPlan(ctx, dear.ID)
		if err != nil {
			t.Fatal(err)
		}
		return cheap, dear, coop.Account
	}

	t.Run("BelowAverageCompensatesCooperation", func(t *testing.T) {
		l := newLedger(t, unlimitedOverdraw())
		cheap, _, coopAccount := setup(t, l)

		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		resp, err := l.RegisterPrivateConsumption(ctx, m.ID, cheap.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		// Member pays the cooperative price.
		assertBalance(t, l, m.Account, "-6.5")
		// The 3.5 above the plan's own price goes to the cooperation.
		assertBalance(t, l, coopAccount, "3.5")
	})

	t.Run("AboveAverageIsCompensatedByCooperation", func(t *testing.T) {
		l := newLedger(t, unlimitedOverdraw())
		_, dear, coopAccount := setup(t, l)

		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		resp, err := l.RegisterPrivateConsumption(ctx, m.ID, dear.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		assertBalance(t, l, m.Account, "-6.5")
		// The 3.5 shortfall is covered by the cooperation.
		assertBalance(t, l, coopAccount, "-3.5")
	})

	t.Run("EqualPricesNeedNoCompensation", func(t *testing.T) {
		l := newLedger(t, unlimitedOverdraw())

		a, err := l.CreateCompany(ctx, "One", "one@example.org")
		if err != nil {
			t.Fatal(err)
		}
		coop, err := l.CreateCooperation(ctx, "Solo", "single-plan cooperation", a.ID)
		if err != nil {
			t.Fatal(err)
		}
		p := approvedPlan(t, l, a.ID, types.Costs(1, 1, 1), 1, 7, false)
		if _, err := l.RequestCooperation(ctx, p.ID, coop.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := l.AcceptCooperation(ctx, a.ID, p.ID, coop.ID); err != nil {
			t.Fatal(err)
		}

		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		resp, err := l.RegisterPrivateConsumption(ctx, m.ID, p.ID, 1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		assertBalance(t, l, m.Account, "-3")
		assertBalance(t, l, coop.Account, "0")
	})
}

func TestCooperationMembership(t *testing.T) {
	ctx := context.Background()

	l := newLedger(t)
	a, err := l.CreateCompany(ctx, "Founder", "founder@example.org")
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.CreateCompany(ctx, "Outsider", "outsider@example.org")
	if err != nil {
		t.Fatal(err)
	}
	coop, err := l.CreateCooperation(ctx, "Bread", "", a.ID)
	if err != nil {
		t.Fatal(err)
	}
	p := approvedPlan(t, l, a.ID, types.Costs(1, 1, 1), 1, 7, false)

	t.Run("RequestRejections", func(t *testing.T) {
		resp, err := l.RequestCooperation(ctx, id.NewPlanID(), coop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.CoopRequestPlanNotFound {
			t.Fatalf("rejection = %s, want plan_not_found", resp.RejectionReason)
		}

		resp, err = l.RequestCooperation(ctx, p.ID, id.NewCooperationID())
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.CoopRequestCooperationNotFound {
			t.Fatalf("rejection = %s, want cooperation_not_found", resp.RejectionReason)
		}
	})

	t.Run("OnlyCoordinatorAccepts", func(t *testing.T) {
		if _, err := l.RequestCooperation(ctx, p.ID, coop.ID); err != nil {
			t.Fatal(err)
		}

		resp, err := l.AcceptCooperation(ctx, b.ID, p.ID, coop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.CoopAcceptRequesterIsNotCoordinator {
			t.Fatalf("rejection = %s, want requester_is_not_coordinator", resp.RejectionReason)
		}

		resp, err = l.AcceptCooperation(ctx, a.ID, p.ID, coop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		joined, err := l.GetPlan(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !joined.Cooperation.Equal(coop.ID) {
			t.Fatal("plan did not join the cooperation")
		}
		if !joined.RequestedCooperation.IsNil() {
			t.Fatal("join request must be cleared after acceptance")
		}
	})

	t.Run("JoinedPlanCannotRequestAgain", func(t *testing.T) {
		resp, err := l.RequestCooperation(ctx, p.ID, coop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.CoopRequestPlanHasCooperation {
			t.Fatalf("rejection = %s, want plan_has_cooperation", resp.RejectionReason)
		}
	})
}

func TestPayoutFactor(t *testing.T) {
	ctx := context.Background()
	// Evaluated in the middle of the 14-day window so that a 7-day plan
	// approved at testTime lies fully inside it.
	at := testTime.Add(84 * time.Hour)

	t.Run("NoPublicBurdenMeansFullPayout", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		approvedPlan(t, l, c.ID, types.Costs(3, 1, 1), 1, 7, false)

		factor, err := l.PayoutFactor(ctx, at)
		if err != nil {
			t.Fatal(err)
		}
		if !factor.Equal(decimal.NewFromInt(1)) {
			t.Fatalf("factor = %s, want 1", factor)
		}
	})

	t.Run("NoProductiveLabourMeansZeroPayout", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "School", "school@example.org")
		if err != nil {
			t.Fatal(err)
		}
		approvedPlan(t, l, c.ID, types.Costs(3, 1, 1), 1, 7, true)

		factor, err := l.PayoutFactor(ctx, at)
		if err != nil {
			t.Fatal(err)
		}
		if !factor.IsZero() {
			t.Fatalf("factor = %s, want 0", factor)
		}
	})

	t.Run("PublicMeansAndResourcesReduceThePayout", func(t *testing.T) {
		l := newLedger(t)
		bakery, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		school, err := l.CreateCompany(ctx, "School", "school@example.org")
		if err != nil {
			t.Fatal(err)
		}
		// Productive labour 3; public means 1 + resources 1.
		approvedPlan(t, l, bakery.ID, types.Costs(3, 0, 0), 1, 7, false)
		approvedPlan(t, l, school.ID, types.Costs(5, 1, 1), 1, 7, true)

		factor, err := l.PayoutFactor(ctx, at)
		if err != nil {
			t.Fatal(err)
		}
		want := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
		if !factor.Equal(want) {
			t.Fatalf("factor = %s, want %s", factor, want)
		}
	})

	t.Run("OverwhelmingPublicBurdenClampsAtZero", func(t *testing.T) {
		l := newLedger(t)
		bakery, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		school, err := l.CreateCompany(ctx, "School", "school@example.org")
		if err != nil {
			t.Fatal(err)
		}
		approvedPlan(t, l, bakery.ID, types.Costs(1, 0, 0), 1, 7, false)
		approvedPlan(t, l, school.ID, types.Costs(0, 4, 4), 1, 7, true)

		factor, err := l.PayoutFactor(ctx, at)
		if err != nil {
			t.Fatal(err)
		}
		if !factor.IsZero() {
			t.Fatalf("factor = %s, want 0", factor)
		}
	})

	t.Run("PlanOutsideTheWindowDoesNotCount", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "School", "school@example.org")
		if err != nil {
			t.Fatal(err)
		}
		approvedPlan(t, l, c.ID, types.Costs(3, 1, 1), 1, 7, true)

		// Far away from the plan's activity interval: nothing overlaps,
		// so there is no public burden at all.
		factor, err := l.PayoutFactor(ctx, testTime.AddDate(0, 6, 0))
		if err != nil {
			t.Fatal(err)
		}
		if !factor.Equal(decimal.NewFromInt(1)) {
			t.Fatalf("factor = %s, want 1", factor)
		}
	})
}

func TestRegisterHoursWorked(t *testing.T) {
	ctx := context.Background()

	t.Run("FullPayoutWithoutPublicPlans", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		if err := l.AddWorkerToCompany(ctx, c.ID, m.ID); err != nil {
			t.Fatal(err)
		}

		resp, err := l.RegisterHoursWorked(ctx, c.ID, m.ID, decimal.NewFromInt(8))
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		assertBalance(t, l, m.Account, "8")
		assertBalance(t, l, c.WorkAccount, "-8")
		assertBalance(t, l, l.SocialAccounting().AccountPSF, "0")
	})

	t.Run("TaxesCoverThePublicShare", func(t *testing.T) {
		l := newLedger(t)
		bakery, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		school, err := l.CreateCompany(ctx, "School", "school@example.org")
		if err != nil {
			t.Fatal(err)
		}
		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}
		if err := l.AddWorkerToCompany(ctx, bakery.ID, m.ID); err != nil {
			t.Fatal(err)
		}

		// Payout factor at testTime: productive labour 4, public means
		// and resources sum to 2, so the factor is 1/2. The plans are
		// approved at testTime with a 14-day timeframe; only the half
		// inside the window [testTime-7d, testTime+7d) counts, which
		// cancels out between numerator and denominator.
		approvedPlan(t, l, bakery.ID, types.Costs(8, 0, 0), 1, 14, false)
		approvedPlan(t, l, school.ID, types.Costs(1, 2, 2), 1, 14, true)

		resp, err := l.RegisterHoursWorked(ctx, bakery.ID, m.ID, decimal.NewFromInt(8))
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		// 8 hours credited, half taxed away.
		assertBalance(t, l, m.Account, "4")
		// PSF: -5 from the public plan approval, +4 taxes.
		assertBalance(t, l, l.SocialAccounting().AccountPSF, "-1")
	})

	t.Run("Rejections", func(t *testing.T) {
		l := newLedger(t)
		c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
		if err != nil {
			t.Fatal(err)
		}
		m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
		if err != nil {
			t.Fatal(err)
		}

		resp, err := l.RegisterHoursWorked(ctx, c.ID, m.ID, decimal.Zero)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.HoursWorkedMustBePositive {
			t.Fatalf("rejection = %s, want hours_worked_must_be_positive", resp.RejectionReason)
		}

		resp, err = l.RegisterHoursWorked(ctx, c.ID, m.ID, decimal.NewFromInt(8))
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.WorkerNotAtCompany {
			t.Fatalf("rejection = %s, want worker_not_at_company", resp.RejectionReason)
		}
	})
}

func TestCoordinationTransfer(t *testing.T) {
	ctx := context.Background()

	l := newLedger(t)
	founder, err := l.CreateCompany(ctx, "Founder", "founder@example.org")
	if err != nil {
		t.Fatal(err)
	}
	candidate, err := l.CreateCompany(ctx, "Candidate", "candidate@example.org")
	if err != nil {
		t.Fatal(err)
	}
	coop, err := l.CreateCooperation(ctx, "Bread", "", founder.ID)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("RequestRejections", func(t *testing.T) {
		check := func(requester, cand, coopID id.ID, want laborledger.CoordinationRequestRejection) {
			t.Helper()
			resp, err := l.RequestCoordinationTransfer(ctx, requester, cand, coopID)
			if err != nil {
				t.Fatal(err)
			}
			if resp.RejectionReason != want {
				t.Fatalf("rejection = %s, want %s", resp.RejectionReason, want)
			}
		}

		check(founder.ID, id.NewCompanyID(), coop.ID, laborledger.CandidateIsNotACompany)
		check(founder.ID, candidate.ID, id.NewCooperationID(), laborledger.RequestCooperationNotFound)
		check(candidate.ID, candidate.ID, coop.ID, laborledger.RequesterIsNotCoordinator)
		check(founder.ID, founder.ID, coop.ID, laborledger.CandidateIsCurrentCoordinator)
	})

	t.Run("HandoverWorkflow", func(t *testing.T) {
		resp, err := l.RequestCoordinationTransfer(ctx, founder.ID, candidate.ID, coop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Rejected {
			t.Fatalf("unexpected rejection: %s", resp.RejectionReason)
		}

		// Only one open request per tenure.
		second, err := l.RequestCoordinationTransfer(ctx, founder.ID, candidate.ID, coop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if second.RejectionReason != laborledger.RequestAlreadyOpen {
			t.Fatalf("rejection = %s, want open_request_exists", second.RejectionReason)
		}

		// Only the candidate can accept.
		wrong, err := l.AcceptCoordinationTransfer(ctx, founder.ID, resp.TransferRequest)
		if err != nil {
			t.Fatal(err)
		}
		if wrong.RejectionReason != laborledger.AcceptingCompanyNotCandidate {
			t.Fatalf("rejection = %s, want accepting_company_is_not_candidate", wrong.RejectionReason)
		}

		accepted, err := l.AcceptCoordinationTransfer(ctx, candidate.ID, resp.TransferRequest)
		if err != nil {
			t.Fatal(err)
		}
		if accepted.Rejected {
			t.Fatalf("unexpected rejection: %s", accepted.RejectionReason)
		}
		if !accepted.Cooperation.Equal(coop.ID) {
			t.Fatalf("cooperation = %s, want %s", accepted.Cooperation, coop.ID)
		}

		coordinator, err := l.CurrentCoordinator(ctx, coop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !coordinator.Equal(candidate.ID) {
			t.Fatal("coordination did not transfer to the candidate")
		}

		// Accepting the same request again fails.
		closed, err := l.AcceptCoordinationTransfer(ctx, candidate.ID, resp.TransferRequest)
		if err != nil {
			t.Fatal(err)
		}
		if closed.RejectionReason != laborledger.TransferRequestClosed {
			t.Fatalf("rejection = %s, want transfer_request_closed", closed.RejectionReason)
		}
	})

	t.Run("UnknownRequest", func(t *testing.T) {
		resp, err := l.AcceptCoordinationTransfer(ctx, candidate.ID, id.NewTransferRequestID())
		if err != nil {
			t.Fatal(err)
		}
		if resp.RejectionReason != laborledger.TransferRequestNotFound {
			t.Fatalf("rejection = %s, want transfer_request_not_found", resp.RejectionReason)
		}
	})
}

// TestLedgerIsZeroSum exercises a full day of activity and verifies that
// the transfer log still sums to zero across every account: double-entry
// bookkeeping never creates or destroys labor-hours.
func TestLedgerIsZeroSum(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, unlimitedOverdraw())

	bakery, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
	if err != nil {
		t.Fatal(err)
	}
	school, err := l.CreateCompany(ctx, "School", "school@example.org")
	if err != nil {
		t.Fatal(err)
	}
	m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if err := l.AddWorkerToCompany(ctx, bakery.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	coop, err := l.CreateCooperation(ctx, "Bread", "", bakery.ID)
	if err != nil {
		t.Fatal(err)
	}

	bread := approvedPlan(t, l, bakery.ID, types.Costs(3, 2, 1), 2, 7, false)
	approvedPlan(t, l, school.ID, types.Costs(2, 1, 1), 1, 7, true)
	if _, err := l.RequestCooperation(ctx, bread.ID, coop.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AcceptCooperation(ctx, bakery.ID, bread.ID, coop.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := l.RegisterPrivateConsumption(ctx, m.ID, bread.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RegisterProductiveConsumption(ctx, school.ID, bread.ID, 1, consumption.TypeRawMaterials); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RegisterHoursWorked(ctx, bakery.ID, m.ID, decimal.NewFromInt(8)); err != nil {
		t.Fatal(err)
	}

	accounts := []id.ID{
		l.SocialAccounting().AccountPSF,
		m.Account,
		coop.Account,
		bakery.MeansAccount, bakery.RawMaterialAccount, bakery.WorkAccount, bakery.ProductAccount,
		school.MeansAccount, school.RawMaterialAccount, school.WorkAccount, school.ProductAccount,
	}

	total := decimal.Zero
	for _, acct := range accounts {
		total = total.Add(balance(t, l, acct))
	}
	if !total.IsZero() {
		t.Fatalf("ledger sums to %s, want 0", total)
	}
}

func TestAccountStatement(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, unlimitedOverdraw())

	c, err := l.CreateCompany(ctx, "Bakery", "bakery@example.org")
	if err != nil {
		t.Fatal(err)
	}
	m, err := l.CreateMember(ctx, "Ada", "ada@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if err := l.AddWorkerToCompany(ctx, c.ID, m.ID); err != nil {
		t.Fatal(err)
	}

	p := approvedPlan(t, l, c.ID, types.Costs(1, 1, 1), 1, 7, false)
	if _, err := l.RegisterHoursWorked(ctx, c.ID, m.ID, decimal.NewFromInt(8)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RegisterPrivateConsumption(ctx, m.ID, p.ID, 1); err != nil {
		t.Fatal(err)
	}

	lines, err := l.AccountTransfers(ctx, m.Account)
	if err != nil {
		t.Fatal(err)
	}
	// Certificates in, taxes out, consumption out.
	if len(lines) != 3 {
		t.Fatalf("statement lines = %d, want 3", len(lines))
	}

	wantTypes := []transfer.Type{transfer.TypeWorkCertificates, transfer.TypeTaxes, transfer.TypePrivateConsumption}
	wantVolumes := []string{"8", "0", "-3"}
	for i, line := range lines {
		if line.Type != wantTypes[i] {
			t.Fatalf("line %d type = %s, want %s", i, line.Type, wantTypes[i])
		}
		if !line.Volume.Equal(decimal.RequireFromString(wantVolumes[i])) {
			t.Fatalf("line %d volume = %s, want %s", i, line.Volume, wantVolumes[i])
		}
	}
}
