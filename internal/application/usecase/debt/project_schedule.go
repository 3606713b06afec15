package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ScheduleRowOutput is one projected month.
type ScheduleRowOutput struct {
	Number    int
	DueDate   time.Time
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Remaining decimal.Decimal
}

// ProjectScheduleInput represents the input for an amortization projection.
type ProjectScheduleInput struct {
	DebtID uuid.UUID
	UserID uuid.UUID
}

// ProjectScheduleOutput represents the projected amortization of a debt.
type ProjectScheduleOutput struct {
	DebtID         uuid.UUID
	CurrentBalance decimal.Decimal
	Rows           []ScheduleRowOutput
	TotalInterest  decimal.Decimal
	NeverAmortizes bool
}

// ProjectScheduleUseCase projects the remaining payments of a debt from today.
type ProjectScheduleUseCase struct {
	debtRepo adapter.DebtRepository
	clock    adapter.Clock
	location *time.Location
}

// NewProjectScheduleUseCase creates a new ProjectScheduleUseCase instance.
func NewProjectScheduleUseCase(debtRepo adapter.DebtRepository, clock adapter.Clock, location *time.Location) *ProjectScheduleUseCase {
	if location == nil {
		location = time.UTC
	}
	return &ProjectScheduleUseCase{
		debtRepo: debtRepo,
		clock:    clock,
		location: location,
	}
}

// Execute performs the projection. Nothing is persisted.
func (uc *ProjectScheduleUseCase) Execute(ctx context.Context, input ProjectScheduleInput) (*ProjectScheduleOutput, error) {
	debt, err := findDebt(ctx, uc.debtRepo.FindByID, input.DebtID, input.UserID)
	if err != nil {
		return nil, err
	}

	paymentsMade, err := uc.debtRepo.CountPayments(ctx, debt.ID)
	if err != nil {
		return nil, domainerror.NewStorageError("count debt payments", fmt.Errorf("failed to count payments: %w", err))
	}

	schedule := debt.ProjectSchedule(uc.clock.Now().In(uc.location), paymentsMade)

	output := &ProjectScheduleOutput{
		DebtID:         debt.ID,
		CurrentBalance: debt.CurrentBalance,
		Rows:           make([]ScheduleRowOutput, len(schedule.Rows)),
		TotalInterest:  schedule.TotalInterest,
		NeverAmortizes: schedule.NeverAmortizes,
	}
	for i, row := range schedule.Rows {
		output.Rows[i] = ScheduleRowOutput(row)
	}
	return output, nil
}
