package flatfile

import (
	"context"
	"fmt"
	"time"

	"github.com/HUSC-F-2025/housing-service/internal/models"
	"github.com/HUSC-F-2025/housing-service/internal/repositories"
	"github.com/HUSC-F-2025/housing-service/internal/store"
)

type FeeFlatFile struct {
	store *store.Store
}

func NewFeeFlatFile(st *store.Store) repositories.FeeRepository {
	return &FeeFlatFile{store: st}
}

func (r *FeeFlatFile) Create(ctx context.Context, fee *models.Fee) (*models.Fee, error) {
	var created *models.Fee
	err := r.store.Update(func(doc *store.Document) error {
		f := cloneFee(fee)
		f.ID = doc.NextFeeID
		doc.NextFeeID++
		f.Paid = false
		f.CreatedAt = time.Now()

		doc.Fees = append(doc.Fees, f)
		created = cloneFee(f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fee: %w", err)
	}
	return created, nil
}

func (r *FeeFlatFile) GetByID(ctx context.Context, id uint) (*models.Fee, error) {
	var found *models.Fee
	err := r.store.View(func(doc *store.Document) error {
		for _, f := range doc.Fees {
			if f.ID == id {
				found = cloneFee(f)
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *FeeFlatFile) GetByStudentID(ctx context.Context, studentID string) ([]*models.Fee, error) {
	var result []*models.Fee
	err := r.store.View(func(doc *store.Document) error {
		for _, f := range doc.Fees {
			if f.StudentID == studentID {
				result = append(result, cloneFee(f))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list fees by student: %w", err)
	}
	return result, nil
}

func (r *FeeFlatFile) MarkPaid(ctx context.Context, id uint) error {
	return r.store.Update(func(doc *store.Document) error {
		for _, f := range doc.Fees {
			if f.ID == id {
				f.Paid = true
				return nil
			}
		}
		return repositories.ErrNotFound
	})
}

func cloneFee(f *models.Fee) *models.Fee {
	c := *f
	if f.DueDate != nil {
		t := *f.DueDate
		c.DueDate = &t
	}
	return &c
}

type FeePaymentFlatFile struct {
	store *store.Store
}

func NewFeePaymentFlatFile(st *store.Store) repositories.FeePaymentRepository {
	return &FeePaymentFlatFile{store: st}
}

func (r *FeePaymentFlatFile) Create(ctx context.Context, payment *models.FeePayment) (*models.FeePayment, error) {
	var created *models.FeePayment
	err := r.store.Update(func(doc *store.Document) error {
		p := *payment
		p.ID = doc.NextFeePaymentID
		doc.NextFeePaymentID++
		p.PaidAt = time.Now()

		doc.FeePayments = append(doc.FeePayments, &p)
		cp := p
		created = &cp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record fee payment: %w", err)
	}
	return created, nil
}

func (r *FeePaymentFlatFile) GetByUserID(ctx context.Context, userID uint) ([]*models.FeePayment, error) {
	var result []*models.FeePayment
	err := r.store.View(func(doc *store.Document) error {
		for _, p := range doc.FeePayments {
			if p.UserID == userID {
				c := *p
				result = append(result, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list fee payments by user: %w", err)
	}
	return result, nil
}
