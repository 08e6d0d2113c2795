// dao/finance_dao.go
package dao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/finance"
	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
)

// FinanceDAO is the gorm-backed finance.Store. Outside a transaction it
// reads plain rows; inside one (via Transact) row reads take a
// SELECT ... FOR UPDATE lock so concurrent transitions on the same
// payment or registration record serialize.
type FinanceDAO struct {
	db   *gorm.DB
	inTx bool
}

func NewFinanceDAO(db *gorm.DB) *FinanceDAO {
	return &FinanceDAO{db: db}
}

var _ finance.Store = (*FinanceDAO)(nil)

func (dao *FinanceDAO) Transact(ctx context.Context, fn func(finance.Store) error) error {
	return dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&FinanceDAO{db: tx, inTx: true})
	})
}

func (dao *FinanceDAO) PaymentByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	query := dao.db.WithContext(ctx)
	if dao.inTx {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var payment model.Payment
	err := query.First(&payment, "id = ?", paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, aegis_errors.ErrPaymentNotFound
	}
	if err != nil {
		logger.Error("Failed to load payment", zap.Error(err), zap.String("paymentID", paymentID))
		return nil, aegis_errors.ErrDatabaseOperation
	}
	return &payment, nil
}

func (dao *FinanceDAO) SavePayment(ctx context.Context, payment *model.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if err := dao.db.WithContext(ctx).Save(payment).Error; err != nil {
		logger.Error("Failed to save payment", zap.Error(err), zap.String("paymentID", payment.ID))
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return aegis_errors.ErrPaymentConflict
		}
		return aegis_errors.ErrDatabaseOperation
	}
	return nil
}

func (dao *FinanceDAO) SumLedger(ctx context.Context, studentID, semesterID string) (finance.LedgerTotals, error) {
	type row struct {
		Status model.PaymentStatus
		Total  int64
	}

	var rows []row
	err := dao.db.WithContext(ctx).
		Model(&model.Payment{}).
		Select("status, COALESCE(SUM(amount), 0) AS total").
		Where("student_id = ? AND semester_id = ? AND status IN ?",
			studentID, semesterID,
			[]model.PaymentStatus{model.PaymentVerified, model.PaymentPending}).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to sum payment ledger",
			zap.Error(err),
			zap.String("studentID", studentID),
			zap.String("semesterID", semesterID))
		return finance.LedgerTotals{}, aegis_errors.ErrDatabaseOperation
	}

	var totals finance.LedgerTotals
	for _, r := range rows {
		switch r.Status {
		case model.PaymentVerified:
			totals.VerifiedTotal = r.Total
		case model.PaymentPending:
			totals.PendingTotal = r.Total
		}
	}
	return totals, nil
}

func (dao *FinanceDAO) RegistrationFor(ctx context.Context, studentID, semesterID string) (*model.RegistrationRecord, error) {
	query := dao.db.WithContext(ctx)
	if dao.inTx {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var record model.RegistrationRecord
	err := query.First(&record, "student_id = ? AND semester_id = ?", studentID, semesterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, aegis_errors.ErrRegistrationNotFound
	}
	if err != nil {
		logger.Error("Failed to load registration record",
			zap.Error(err),
			zap.String("studentID", studentID),
			zap.String("semesterID", semesterID))
		return nil, aegis_errors.ErrDatabaseOperation
	}
	return &record, nil
}

func (dao *FinanceDAO) SaveRegistration(ctx context.Context, record *model.RegistrationRecord) error {
	record.Version++
	if err := dao.db.WithContext(ctx).Save(record).Error; err != nil {
		logger.Error("Failed to save registration record",
			zap.Error(err),
			zap.String("studentID", record.StudentID),
			zap.String("semesterID", record.SemesterID))
		return aegis_errors.ErrDatabaseOperation
	}
	return nil
}

func (dao *FinanceDAO) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if err := dao.db.WithContext(ctx).Create(notification).Error; err != nil {
		logger.Error("Failed to create notification",
			zap.Error(err),
			zap.String("recipientID", notification.RecipientID))
		return aegis_errors.ErrDatabaseOperation
	}
	return nil
}
