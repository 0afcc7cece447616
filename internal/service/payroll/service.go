package payroll

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/audit"
	"github.com/corehr/hr-payroll-go/internal/domain/employee"
	"github.com/corehr/hr-payroll-go/internal/domain/payroll"
	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/corehr/hr-payroll-go/internal/pkg/duration"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	policyService policy.PolicyService
	auditService  audit.AuditService
	tx            database.TxRunner
	loc           *time.Location
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	policyService policy.PolicyService,
	auditService audit.AuditService,
	tx database.TxRunner,
	loc *time.Location,
) payroll.PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		PayrollRepository: payrollRepo,
		employeeRepo:      employeeRepo,
		policyService:     policyService,
		auditService:      auditService,
		tx:                tx,
		loc:               loc,
	}
}

// ========== CYCLES ==========

func (s *PayrollServiceImpl) CreateCycle(ctx context.Context, req payroll.CreateCycleRequest) (payroll.CycleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CycleResponse{}, err
	}

	existing, err := s.PayrollRepository.GetCycleByName(ctx, req.Name)
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	if existing != nil {
		return payroll.CycleResponse{}, payroll.ErrCycleExists
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	cutoff, _ := time.Parse("2006-01-02", req.CutoffDate)

	cycle, err := s.PayrollRepository.CreateCycle(ctx, payroll.PayCycle{
		Name:           req.Name,
		StartDate:      start,
		EndDate:        end,
		CutoffDate:     cutoff,
		Status:         payroll.CycleStatusDraft,
		PersonInCharge: req.PersonInCharge,
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return mapCycleToResponse(cycle), nil
}

func (s *PayrollServiceImpl) GetCycle(ctx context.Context, id string) (payroll.CycleResponse, error) {
	cycle, err := s.PayrollRepository.GetCycleByID(ctx, id)
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return mapCycleToResponse(cycle), nil
}

func (s *PayrollServiceImpl) ListCycles(ctx context.Context) ([]payroll.CycleResponse, error) {
	cycles, err := s.PayrollRepository.ListCycles(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.CycleResponse, 0, len(cycles))
	for _, cycle := range cycles {
		responses = append(responses, mapCycleToResponse(cycle))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) EnsureCurrentMonthCycle(ctx context.Context) (payroll.CycleResponse, error) {
	now := time.Now().In(s.loc)
	name := now.Format("2006-01") + " Payroll"

	existing, err := s.PayrollRepository.GetCycleByName(ctx, name)
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	if existing != nil {
		return mapCycleToResponse(*existing), nil
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	cycle, err := s.PayrollRepository.CreateCycle(ctx, payroll.PayCycle{
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		CutoffDate: end,
		Status:     payroll.CycleStatusDraft,
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return mapCycleToResponse(cycle), nil
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) GenerateForCycle(ctx context.Context, cycleID string) (payroll.GenerateResult, error) {
	cycle, err := s.PayrollRepository.GetCycleByID(ctx, cycleID)
	if err != nil {
		return payroll.GenerateResult{}, err
	}
	if cycle.Status == payroll.CycleStatusClosed {
		return payroll.GenerateResult{}, payroll.ErrSlipFinalized
	}

	snap, err := s.policyService.Snapshot(ctx, policy.DefaultOrgID)
	if err != nil {
		snap = policy.NewSnapshot(policy.DefaultDocument())
	}
	template := snap.BaseSalaryTemplate()
	allowancePercent := snap.AllowancePercent()
	bonusPercent := snap.BonusPercent()
	overtimeRate := snap.OvertimeRate()
	standardWorkHours := snap.StandardWorkHours()

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.GenerateResult{}, err
	}

	result := payroll.GenerateResult{CycleID: cycle.ID}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		totals, err := s.PayrollRepository.GetAttendanceTotals(ctx, cycle.StartDate, cycle.EndDate)
		if err != nil {
			return err
		}

		for _, emp := range employees {
			structure, err := s.PayrollRepository.GetStructureByEmployee(ctx, emp.ID)
			if err != nil {
				return err
			}

			workedDays := payroll.WorkedDaysInWindow(cycle.StartDate, cycle.EndDate, emp.HireDate, emp.TerminationDate)

			rawBase := defaultBaseSalary(emp, template)
			if structure != nil {
				rawBase = structure.BaseSalary
			}
			overtimePay := payroll.OvertimePay(rawBase, totals[emp.ID].Overtime, overtimeRate, cycle.PeriodDays(), standardWorkHours)

			computation := payroll.ComputeSlip(structure, payroll.DefaultRates{
				BaseSalary:       defaultBaseSalary(emp, template),
				AllowancePercent: allowancePercent,
				BonusPercent:     bonusPercent,
			}, overtimePay, workedDays, cycle.PeriodDays())

			created, err := s.upsertSlip(ctx, cycle.ID, emp.ID, computation, totals[emp.ID])
			if err != nil {
				return err
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return payroll.GenerateResult{}, err
	}
	return result, nil
}

// upsertSlip writes one employee's slip and its full line-item set. Finalized
// slips are left untouched.
func (s *PayrollServiceImpl) upsertSlip(ctx context.Context, cycleID, employeeID string, computation payroll.SlipComputation, totals payroll.AttendanceTotals) (created bool, err error) {
	existing, err := s.PayrollRepository.GetSlipByCycleAndEmployee(ctx, cycleID, employeeID)
	if err != nil {
		return false, err
	}

	slip := payroll.PayrollSlip{
		CycleID:         cycleID,
		EmployeeID:      employeeID,
		BaseSalary:      computation.BaseSalary,
		TotalEarnings:   computation.Gross,
		TotalDeductions: computation.TotalDeductions,
		NetPay:          computation.Net,
		WorkDuration:    totals.WorkDuration,
		Overtime:        totals.Overtime,
		Deficit:         totals.Deficit,
		Status:          payroll.SlipStatusDraft,
	}

	if existing != nil {
		if existing.Status == payroll.SlipStatusFinal {
			return false, nil
		}
		slip.ID = existing.ID
		if err := s.PayrollRepository.UpdateSlip(ctx, slip); err != nil {
			return false, err
		}
		return false, s.PayrollRepository.ReplaceLineItems(ctx, slip.ID, computation.LineItems(slip.ID))
	}

	stored, err := s.PayrollRepository.CreateSlip(ctx, slip)
	if err != nil {
		return false, err
	}
	return true, s.PayrollRepository.ReplaceLineItems(ctx, stored.ID, computation.LineItems(stored.ID))
}

// defaultBaseSalary resolves the base for employees without a structure: the
// directory override first, then the policy template keyed by grade, then the
// template's gradeA entry.
func defaultBaseSalary(emp employee.Employee, template map[string]decimal.Decimal) decimal.Decimal {
	if emp.BaseSalary != nil {
		return *emp.BaseSalary
	}
	if emp.Grade != nil {
		if base, ok := template[*emp.Grade]; ok {
			return base
		}
	}
	return template["gradeA"]
}

// ========== SLIPS ==========

func (s *PayrollServiceImpl) GetSlip(ctx context.Context, id string) (payroll.SlipResponse, error) {
	slip, err := s.PayrollRepository.GetSlipByID(ctx, id)
	if err != nil {
		return payroll.SlipResponse{}, err
	}
	items, err := s.PayrollRepository.ListLineItems(ctx, slip.ID)
	if err != nil {
		return payroll.SlipResponse{}, err
	}
	slip.LineItems = items
	return mapSlipToResponse(slip), nil
}

func (s *PayrollServiceImpl) ListSlips(ctx context.Context, filter payroll.SlipFilter) (payroll.ListSlipsResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListSlipsResponse{}, err
	}
	if filter.Status != nil {
		normalized := strings.ToUpper(*filter.Status)
		filter.Status = &normalized
	}

	slips, total, err := s.PayrollRepository.ListSlips(ctx, filter)
	if err != nil {
		return payroll.ListSlipsResponse{}, err
	}

	responses := make([]payroll.SlipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, mapSlipToResponse(slip))
	}

	return payroll.ListSlipsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Slips:      responses,
	}, nil
}

func (s *PayrollServiceImpl) FinalizeSlip(ctx context.Context, id string) (payroll.SlipResponse, error) {
	slip, err := s.PayrollRepository.GetSlipByID(ctx, id)
	if err != nil {
		return payroll.SlipResponse{}, err
	}
	if slip.Status == payroll.SlipStatusFinal {
		return payroll.SlipResponse{}, payroll.ErrSlipFinalized
	}

	before := slip.Status
	slip.Status = payroll.SlipStatusFinal
	if err := s.PayrollRepository.UpdateSlip(ctx, slip); err != nil {
		return payroll.SlipResponse{}, err
	}

	s.auditService.Log(ctx, audit.ActionSlipFinalized, actorFromContext(ctx),
		"payroll slip finalized",
		map[string]any{"status": string(before)},
		map[string]any{"status": string(payroll.SlipStatusFinal)})

	items, err := s.PayrollRepository.ListLineItems(ctx, slip.ID)
	if err != nil {
		return payroll.SlipResponse{}, err
	}
	slip.LineItems = items
	return mapSlipToResponse(slip), nil
}

// ========== STRUCTURES & COMPONENTS ==========

func (s *PayrollServiceImpl) UpsertStructure(ctx context.Context, req payroll.UpsertStructureRequest) (payroll.StructureResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.StructureResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.StructureResponse{}, err
	}
	for _, item := range req.Items {
		if _, err := s.PayrollRepository.GetComponentByID(ctx, item.ComponentID); err != nil {
			return payroll.StructureResponse{}, err
		}
	}

	items := make([]payroll.StructureItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, payroll.StructureItem{
			ComponentID: item.ComponentID,
			Amount:      item.Amount,
		})
	}

	existing, err := s.PayrollRepository.GetStructureByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return payroll.StructureResponse{}, err
	}

	structure := payroll.SalaryStructure{
		EmployeeID: req.EmployeeID,
		BaseSalary: req.BaseSalary,
		Items:      items,
	}

	if existing != nil {
		structure.ID = existing.ID
		if err := s.PayrollRepository.UpdateStructure(ctx, structure); err != nil {
			return payroll.StructureResponse{}, err
		}
	} else {
		structure, err = s.PayrollRepository.CreateStructure(ctx, structure)
		if err != nil {
			return payroll.StructureResponse{}, err
		}
	}

	stored, err := s.PayrollRepository.GetStructureByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return payroll.StructureResponse{}, err
	}
	if stored == nil {
		return payroll.StructureResponse{}, payroll.ErrStructureNotFound
	}
	return mapStructureToResponse(*stored), nil
}

func (s *PayrollServiceImpl) GetStructureByEmployee(ctx context.Context, employeeID string) (payroll.StructureResponse, error) {
	structure, err := s.PayrollRepository.GetStructureByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.StructureResponse{}, err
	}
	if structure == nil {
		return payroll.StructureResponse{}, payroll.ErrStructureNotFound
	}
	return mapStructureToResponse(*structure), nil
}

func (s *PayrollServiceImpl) CreateComponent(ctx context.Context, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	component, err := s.PayrollRepository.CreateComponent(ctx, payroll.PayComponent{
		Name:     req.Name,
		Type:     payroll.ComponentType(strings.ToLower(req.Type)),
		IsActive: true,
	})
	if err != nil {
		return payroll.ComponentResponse{}, err
	}
	return mapComponentToResponse(component), nil
}

func (s *PayrollServiceImpl) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.ComponentResponse, error) {
	components, err := s.PayrollRepository.ListComponents(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.ComponentResponse, 0, len(components))
	for _, component := range components {
		responses = append(responses, mapComponentToResponse(component))
	}
	return responses, nil
}

// ========== MAPPERS ==========

func mapCycleToResponse(cycle payroll.PayCycle) payroll.CycleResponse {
	return payroll.CycleResponse{
		ID:             cycle.ID,
		Name:           cycle.Name,
		StartDate:      cycle.StartDate.Format("2006-01-02"),
		EndDate:        cycle.EndDate.Format("2006-01-02"),
		CutoffDate:     cycle.CutoffDate.Format("2006-01-02"),
		Status:         string(cycle.Status),
		PersonInCharge: cycle.PersonInCharge,
		CreatedAt:      cycle.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      cycle.UpdatedAt.Format(time.RFC3339),
	}
}

func mapSlipToResponse(slip payroll.PayrollSlip) payroll.SlipResponse {
	items := make([]payroll.LineItemResponse, 0, len(slip.LineItems))
	for _, item := range slip.LineItems {
		items = append(items, payroll.LineItemResponse{
			ID:          item.ID,
			ComponentID: item.ComponentID,
			Label:       item.Label,
			Type:        string(item.Type),
			Category:    string(item.Category),
			Amount:      item.Amount,
		})
	}
	return payroll.SlipResponse{
		ID:              slip.ID,
		CycleID:         slip.CycleID,
		EmployeeID:      slip.EmployeeID,
		EmployeeName:    slip.EmployeeName,
		BaseSalary:      slip.BaseSalary,
		TotalEarnings:   slip.TotalEarnings,
		TotalDeductions: slip.TotalDeductions,
		NetPay:          slip.NetPay,
		WorkDuration:    duration.FormatClock(slip.WorkDuration),
		Overtime:        duration.FormatSigned(slip.Overtime),
		Deficit:         duration.FormatSigned(slip.Deficit),
		Status:          string(slip.Status),
		LineItems:       items,
		CreatedAt:       slip.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       slip.UpdatedAt.Format(time.RFC3339),
	}
}

func mapStructureToResponse(structure payroll.SalaryStructure) payroll.StructureResponse {
	items := make([]payroll.StructureItemResponse, 0, len(structure.Items))
	for _, item := range structure.Items {
		var componentType *string
		if item.ComponentType != nil {
			t := string(*item.ComponentType)
			componentType = &t
		}
		items = append(items, payroll.StructureItemResponse{
			ID:            item.ID,
			ComponentID:   item.ComponentID,
			ComponentName: item.ComponentName,
			ComponentType: componentType,
			Amount:        item.Amount,
		})
	}
	return payroll.StructureResponse{
		ID:         structure.ID,
		EmployeeID: structure.EmployeeID,
		BaseSalary: structure.BaseSalary,
		Items:      items,
		CreatedAt:  structure.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  structure.UpdatedAt.Format(time.RFC3339),
	}
}

func mapComponentToResponse(component payroll.PayComponent) payroll.ComponentResponse {
	return payroll.ComponentResponse{
		ID:        component.ID,
		Name:      component.Name,
		Type:      string(component.Type),
		IsActive:  component.IsActive,
		CreatedAt: component.CreatedAt.Format(time.RFC3339),
		UpdatedAt: component.UpdatedAt.Format(time.RFC3339),
	}
}

func actorFromContext(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		return &employeeID
	}
	return nil
}
