package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mwangaza-power/vend-server/internal/storage"
	"github.com/mwangaza-power/vend-server/internal/storage/sqlconfig"
	"github.com/mwangaza-power/vend-server/internal/sts"
)

// unknownTanescoNumber is the sentinel upload files carry when the
// tanesco number is not known yet. It never overwrites a real value
// and is never treated as one.
const unknownTanescoNumber = "N/A"

// TokenIssuer obtains a meter token from the external vending service.
type TokenIssuer interface {
	IssueToken(ctx context.Context, meterCode string, quantity decimal.Decimal, kind sts.VendKind) (string, error)
}

// VendService orchestrates a vend: resolve the user, enforce the daily
// limit, call the STS gateway, and record the outcome.
type VendService struct {
	storage *storage.Storage
	users   *UserService
	issuer  TokenIssuer
	logger  *logrus.Logger
	now     func() time.Time
}

func NewVendService(store *storage.Storage, users *UserService, issuer TokenIssuer, logger *logrus.Logger) *VendService {
	return &VendService{
		storage: store,
		users:   users,
		issuer:  issuer,
		logger:  logger,
		now:     time.Now,
	}
}

// resolveVend derives the STS vending kind and quantity. Units are
// used only when the amount is zero, so amount wins when both are set.
func resolveVend(amount, units decimal.Decimal) (sts.VendKind, decimal.Decimal, error) {
	kind := sts.VendByAmount
	quantity := amount
	if units.IsPositive() && amount.IsZero() {
		kind = sts.VendByUnit
		quantity = units
	}

	if !quantity.IsPositive() {
		return 0, decimal.Decimal{}, ErrInvalidAmount
	}
	return kind, quantity, nil
}

// today returns the current UTC calendar date. The daily limit is a
// date comparison, never a 24h window.
func (s *VendService) today() time.Time {
	year, month, day := s.now().UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ProcessVend runs the full request cycle. The user's last vend date
// only advances after the STS call succeeds; a failed attempt must not
// lock the client out for the rest of the day.
func (s *VendService) ProcessVend(ctx context.Context, req VendRequest) (*VendResult, error) {
	if req.ClientID == "" || req.SubmeterNumber == "" || req.VendType == "" {
		return nil, ErrMissingFields
	}
	if !req.VendType.Valid() {
		return nil, ErrInvalidVendType
	}

	// Fresh read right before the external call so the limit check sees
	// the latest committed state.
	user, err := s.users.FindOrCreate(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	if user.LastVendDate != nil && sameDate(*user.LastVendDate, today) {
		return nil, ErrDailyLimitReached
	}

	kind, quantity, err := resolveVend(req.Amount, req.Units)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.IssueToken(ctx, req.SubmeterNumber, quantity, kind)
	if err != nil {
		return nil, err
	}

	if err := s.record(ctx, user, req, token, today); err != nil {
		// The token exists but was not persisted; the caller may retry
		// and double-vend. Flag it loudly for reconciliation.
		s.logger.WithError(err).WithFields(logrus.Fields{
			"tokenIssued": true,
			"clientId":    req.ClientID,
			"tokenNumber": token,
		}).Error("VendService.ProcessVend.record failed after issuance")
		return nil, &RecordError{Token: token, Err: err}
	}

	units := req.Units
	if kind == sts.VendByAmount {
		units = decimal.Zero
	}

	return &VendResult{
		TokenNumber: token,
		Kind:        kind,
		Units:       units,
	}, nil
}

// record applies the post-issuance side effects: sticky tanesco number,
// last vend date advance, and the immutable transaction row.
func (s *VendService) record(ctx context.Context, user *User, req VendRequest, token string, today time.Time) error {
	var tanescoNumber *string
	if user.TanescoNumber == nil && req.TanescoNumber != "" && req.TanescoNumber != unknownTanescoNumber {
		tanescoNumber = &req.TanescoNumber
	}

	advanced, err := s.storage.Users.RecordVend(ctx, user.ID, tanescoNumber, user.LastVendDate, today)
	if err != nil {
		return err
	}
	if !advanced {
		// A concurrent request from the same client won the date guard.
		// The transaction below is still recorded: the token is real and
		// the audit log must reflect it.
		s.logger.WithField("clientId", req.ClientID).
			Warn("VendService.record concurrent same-day vend detected")
	}

	_, err = s.storage.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		UserID:         user.ID,
		SubmeterNumber: req.SubmeterNumber,
		TanescoNumber:  req.TanescoNumber,
		TokenNumber:    token,
		TransactionID:  req.TransactionID,
		Amount:         req.Amount,
		Units:          req.Units,
		VendType:       string(req.VendType),
	})
	return err
}

// LatestReceipt returns the most recent transaction for a client in
// receipt shape, or nil when the client has never vended.
func (s *VendService) LatestReceipt(ctx context.Context, clientID string) (*Receipt, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	user, err := s.storage.Users.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	tx, err := s.storage.Transactions.LatestByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, nil
	}

	return &Receipt{
		TanescoNumber: tx.TanescoNumber,
		TokenNumber:   tx.TokenNumber,
		TransactionID: tx.TransactionID,
		Amount:        tx.Amount,
		Units:         tx.Units,
		Date:          tx.CreatedAt,
	}, nil
}
