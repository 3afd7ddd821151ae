package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/poloedu/polobill/internal/domain/plan"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/logger"
	"github.com/poloedu/polobill/internal/types"
)

// PlanRepository implements plan.Repository on postgres.
type PlanRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewPlanRepository creates a new postgres plan repository
func NewPlanRepository(pool *pgxpool.Pool, logger *logger.Logger) plan.Repository {
	return &PlanRepository{pool: pool, logger: logger}
}

const planColumns = `id, polo_id, customer_id, student_name, billing_type,
	installment_count, installment_value::text, total_value::text,
	first_due_date, description, discount_type, discount_value::text,
	split_count, gateway_payment_id, gateway_installment_id, plan_status,
	status, created_at, updated_at, created_by, updated_by`

// Create persists the plan and its discount audit row (when present) in a
// single transaction. Called only after the gateway confirmed the plan, so
// any failure here is a reconciliation concern for the caller.
func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan, audit *plan.DiscountAudit) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to open transaction").
			Mark(ierr.ErrDatabase)
	}
	defer tx.Rollback(ctx)

	var discountType, discountValue *string
	if p.DiscountType != nil {
		s := string(*p.DiscountType)
		discountType = &s
	}
	if p.DiscountValue != nil {
		s := p.DiscountValue.String()
		discountValue = &s
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO plans (
			id, polo_id, customer_id, student_name, billing_type,
			installment_count, installment_value, total_value,
			first_due_date, description, discount_type, discount_value,
			split_count, gateway_payment_id, gateway_installment_id,
			plan_status, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21
		)`,
		p.ID, p.PoloID, p.CustomerID, p.StudentName, string(p.BillingType),
		p.InstallmentCount, p.InstallmentValue.String(), p.TotalValue.String(),
		p.FirstDueDate, p.Description, discountType, discountValue,
		p.SplitCount, p.GatewayPaymentID, p.GatewayInstallmentID,
		string(p.PlanStatus), string(p.Status), p.CreatedAt, p.UpdatedAt,
		p.CreatedBy, p.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to insert plan").
			WithReportableDetails(map[string]interface{}{
				"plan_id": p.ID,
			}).
			Mark(ierr.ErrDatabase)
	}

	if audit != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO plan_discount_audit (
				id, plan_id, source_name, discount_type, value, created_at
			) VALUES ($1, $2, $3, $4, $5, $6)`,
			audit.ID, audit.PlanID, audit.SourceName,
			string(audit.DiscountType), audit.Value.String(), audit.CreatedAt,
		)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to insert discount audit row").
				WithReportableDetails(map[string]interface{}{
					"plan_id": p.ID,
				}).
				Mark(ierr.ErrDatabase)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to commit plan transaction").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Debugw("plan persisted",
		"plan_id", p.ID,
		"gateway_payment_id", p.GatewayPaymentID,
		"has_discount_audit", audit != nil)

	return nil
}

// Get retrieves a plan by ID.
func (r *PlanRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id)

	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.NewError("plan not found").
				WithHintf("Plan %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load plan").
			Mark(ierr.ErrDatabase)
	}
	return p, nil
}

// List retrieves plans matching the filter, newest first.
func (r *PlanRepository) List(ctx context.Context, filter *plan.Filter) ([]*plan.Plan, error) {
	where, args := buildWhere(filter)
	args = append(args, filter.GetLimit(), filter.GetOffset())
	query := fmt.Sprintf(
		`SELECT %s FROM plans WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		planColumns, where, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list plans").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var out []*plan.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan plan row").
				Mark(ierr.ErrDatabase)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to iterate plan rows").
			Mark(ierr.ErrDatabase)
	}
	return out, nil
}

// Count returns the number of plans matching the filter.
func (r *PlanRepository) Count(ctx context.Context, filter *plan.Filter) (int, error) {
	where, args := buildWhere(filter)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM plans WHERE `+where, args...).Scan(&total)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count plans").
			Mark(ierr.ErrDatabase)
	}
	return total, nil
}

func buildWhere(filter *plan.Filter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	i := 1

	if filter != nil && filter.CustomerID != "" {
		where = append(where, fmt.Sprintf("customer_id = $%d", i))
		args = append(args, filter.CustomerID)
		i++
	}
	if filter != nil && filter.PlanStatus != "" {
		where = append(where, fmt.Sprintf("plan_status = $%d", i))
		args = append(args, string(filter.PlanStatus))
		i++
	}

	return strings.Join(where, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*plan.Plan, error) {
	var (
		p                            plan.Plan
		billingType, planStatus      string
		status                       string
		installmentValue, totalValue string
		discountType, discountValue  *string
	)

	err := row.Scan(
		&p.ID, &p.PoloID, &p.CustomerID, &p.StudentName, &billingType,
		&p.InstallmentCount, &installmentValue, &totalValue,
		&p.FirstDueDate, &p.Description, &discountType, &discountValue,
		&p.SplitCount, &p.GatewayPaymentID, &p.GatewayInstallmentID,
		&planStatus, &status, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy,
		&p.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	p.BillingType = types.BillingType(billingType)
	p.PlanStatus = types.PlanStatus(planStatus)
	p.Status = types.Status(status)

	if p.InstallmentValue, err = decimal.NewFromString(installmentValue); err != nil {
		return nil, err
	}
	if p.TotalValue, err = decimal.NewFromString(totalValue); err != nil {
		return nil, err
	}
	if discountType != nil {
		dt := types.DiscountType(*discountType)
		p.DiscountType = &dt
	}
	if discountValue != nil {
		dv, err := decimal.NewFromString(*discountValue)
		if err != nil {
			return nil, err
		}
		p.DiscountValue = &dv
	}

	return &p, nil
}
