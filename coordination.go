package laborledger

import (
	"context"

	"github.com/xraph/laborledger/cooperation"
	"github.com/xraph/laborledger/id"
)

// CoordinationRequestRejection enumerates why a coordination transfer
// request was rejected.
type CoordinationRequestRejection string

const (
	CandidateIsNotACompany        CoordinationRequestRejection = "candidate_is_not_a_company"
	RequestCooperationNotFound    CoordinationRequestRejection = "cooperation_not_found"
	RequesterIsNotCoordinator     CoordinationRequestRejection = "requester_is_not_coordinator"
	CandidateIsCurrentCoordinator CoordinationRequestRejection = "candidate_is_current_coordinator"
	RequestAlreadyOpen            CoordinationRequestRejection = "open_request_exists"
)

// RequestCoordinationTransferResponse reports the outcome of a
// coordination transfer request.
type RequestCoordinationTransferResponse struct {
	Rejected        bool                         `json:"rejected"`
	RejectionReason CoordinationRequestRejection `json:"rejection_reason,omitempty"`
	TransferRequest id.ID                        `json:"transfer_request,omitzero"`
}

// RequestCoordinationTransfer lets the current coordinator of a
// cooperation ask a candidate company to take over. The candidate is
// notified out of band; a failed notification is logged but never rolls
// the request back.
func (l *Ledger) RequestCoordinationTransfer(ctx context.Context, requester, candidate, cooperationID id.ID) (*RequestCoordinationTransferResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cand, err := l.store.GetCompany(ctx, candidate)
	if IsNotFound(err) {
		return &RequestCoordinationTransferResponse{Rejected: true, RejectionReason: CandidateIsNotACompany}, nil
	}
	if err != nil {
		return nil, err
	}

	coop, err := l.store.GetCooperation(ctx, cooperationID)
	if IsNotFound(err) {
		return &RequestCoordinationTransferResponse{Rejected: true, RejectionReason: RequestCooperationNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	tenure, err := l.store.GetCurrentCoordinationTenure(ctx, cooperationID)
	if IsNotFound(err) {
		return &RequestCoordinationTransferResponse{Rejected: true, RejectionReason: RequestCooperationNotFound}, nil
	}
	if err != nil {
		return nil, err
	}
	if !tenure.Company.Equal(requester) {
		return &RequestCoordinationTransferResponse{Rejected: true, RejectionReason: RequesterIsNotCoordinator}, nil
	}
	if tenure.Company.Equal(candidate) {
		return &RequestCoordinationTransferResponse{Rejected: true, RejectionReason: CandidateIsCurrentCoordinator}, nil
	}

	// At most one open request per tenure.
	open, err := l.store.ListCoordinationTransferRequests(ctx, cooperation.TransferRequestListOpts{
		RequestingTenure: tenure.ID,
		OpenOnly:         true,
	})
	if err != nil {
		return nil, err
	}
	if len(open) > 0 {
		return &RequestCoordinationTransferResponse{Rejected: true, RejectionReason: RequestAlreadyOpen}, nil
	}

	request := &cooperation.TransferRequest{
		ID:               id.NewTransferRequestID(),
		RequestingTenure: tenure.ID,
		Candidate:        candidate,
		RequestDate:      l.clock(),
	}
	if err := l.store.CreateCoordinationTransferRequest(ctx, request); err != nil {
		return nil, err
	}

	if err := l.notifier.CoordinationTransferRequested(ctx, CoordinationTransferNotification{
		CandidateName:   cand.Name,
		CandidateEmail:  cand.Email,
		CooperationName: coop.Name,
		TransferRequest: request.ID,
	}); err != nil {
		l.logger.Warn("coordination transfer notification failed",
			"request", request.ID,
			"candidate", cand.ID,
			"error", err,
		)
	}

	l.plugins.EmitCoordinationTransferRequested(ctx, request)

	return &RequestCoordinationTransferResponse{TransferRequest: request.ID}, nil
}

// CoordinationAcceptRejection enumerates why a coordination transfer
// acceptance was rejected.
type CoordinationAcceptRejection string

const (
	TransferRequestNotFound      CoordinationAcceptRejection = "transfer_request_not_found"
	AcceptingCompanyNotCandidate CoordinationAcceptRejection = "accepting_company_is_not_candidate"
	TransferRequestClosed        CoordinationAcceptRejection = "transfer_request_closed"
)

// AcceptCoordinationTransferResponse reports the outcome of an
// acceptance attempt.
type AcceptCoordinationTransferResponse struct {
	Rejected        bool                        `json:"rejected"`
	RejectionReason CoordinationAcceptRejection `json:"rejection_reason,omitempty"`
	Tenure          id.ID                       `json:"tenure,omitzero"`
	Cooperation     id.ID                       `json:"cooperation,omitzero"`
}

// AcceptCoordinationTransfer lets the candidate accept a pending
// coordination transfer request. A new tenure begins for the candidate
// and the request is closed; accepting twice fails.
func (l *Ledger) AcceptCoordinationTransfer(ctx context.Context, accepting, requestID id.ID) (*AcceptCoordinationTransferResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	request, err := l.store.GetCoordinationTransferRequest(ctx, requestID)
	if IsNotFound(err) {
		return &AcceptCoordinationTransferResponse{Rejected: true, RejectionReason: TransferRequestNotFound}, nil
	}
	if err != nil {
		return nil, err
	}
	if !request.Candidate.Equal(accepting) {
		return &AcceptCoordinationTransferResponse{Rejected: true, RejectionReason: AcceptingCompanyNotCandidate}, nil
	}
	if !request.IsOpen() {
		return &AcceptCoordinationTransferResponse{Rejected: true, RejectionReason: TransferRequestClosed}, nil
	}

	requesting, err := l.store.GetCoordinationTenure(ctx, request.RequestingTenure)
	if err != nil {
		return nil, err
	}

	now := l.clock()
	tenure := &cooperation.Tenure{
		ID:          id.NewTenureID(),
		Company:     request.Candidate,
		Cooperation: requesting.Cooperation,
		StartDate:   now,
	}
	if err := l.store.CreateCoordinationTenure(ctx, tenure); err != nil {
		return nil, err
	}

	if err := l.store.CloseCoordinationTransferRequest(ctx, request.ID, now); err != nil {
		return nil, err
	}

	l.logger.Info("coordination transferred",
		"cooperation", requesting.Cooperation,
		"from", requesting.Company,
		"to", tenure.Company,
	)
	l.plugins.EmitCoordinationTransferAccepted(ctx, tenure)

	return &AcceptCoordinationTransferResponse{Tenure: tenure.ID, Cooperation: requesting.Cooperation}, nil
}

// CurrentCoordinator returns the company currently coordinating the
// cooperation.
func (l *Ledger) CurrentCoordinator(ctx context.Context, cooperationID id.ID) (id.ID, error) {
	tenure, err := l.store.GetCurrentCoordinationTenure(ctx, cooperationID)
	if err != nil {
		return id.Nil, err
	}
	return tenure.Company, nil
}
