package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"opticare-backend/internal/domain/entity"
	"opticare-backend/internal/domain/enum"
	"opticare-backend/internal/domain/finance"
	"opticare-backend/internal/domain/repository"
	"opticare-backend/pkg/apperror"
	"opticare-backend/pkg/pagination"
)

// writeStage tracks how far the three-table save has progressed. The
// store only guarantees atomicity per single-table write, so all-or-nothing
// behavior is engineered here: sequential writes plus compensating deletes
// keyed off the stage reached.
type writeStage int

const (
	stagePending writeStage = iota
	stageHeaderWritten
	stageItemsWritten
	stageCommitted
)

// OrderService orchestrates the order header / items / payment writes
type OrderService struct {
	orderRepo        repository.OrderRepository
	itemRepo         repository.OrderItemRepository
	paymentRepo      repository.OrderPaymentRepository
	prescriptionRepo repository.PrescriptionRepository
	historyService   *HistoryService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	paymentRepo repository.OrderPaymentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	historyService *HistoryService,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		itemRepo:         itemRepo,
		paymentRepo:      paymentRepo,
		prescriptionRepo: prescriptionRepo,
		historyService:   historyService,
	}
}

// OrderItemInput represents one line of a save request
type OrderItemInput struct {
	ItemType        string
	Code            string
	Name            string
	Rate            float64
	Qty             int
	TaxPercent      float64
	DiscountPercent float64
	DiscountAmount  float64
}

// PaymentInput carries the raw advance fields. The totals are derived by
// the reconciliation engine, never taken from the client.
type PaymentInput struct {
	AdvanceCash    float64
	AdvanceCardUpi float64
	AdvanceOther   float64
	ScheduleAmount float64
	// AppliedDiscount, when set, is distributed pro-rata across items that
	// carry no explicit per-item discount.
	AppliedDiscount float64
}

// SaveOrderInput represents the full save request
type SaveOrderInput struct {
	OrderNo        string
	PrescriptionID uuid.UUID
	BillNo         string
	OrderDate      time.Time
	DeliveryDate   *time.Time
	Status         enum.OrderStatus
	Remarks        string
	BookedBy       string
	Items          []OrderItemInput
	Payment        PaymentInput
}

// SaveOrder persists a new order as a logically atomic unit. An order
// number that already exists fails fast as a duplicate, even when it
// belongs to this prescription's own order: a resubmitted save must never
// overwrite silently. Rewrites go through UpdateOrder explicitly.
func (s *OrderService) SaveOrder(ctx context.Context, input *SaveOrderInput) (uuid.UUID, error) {
	if err := validateSaveOrder(input); err != nil {
		return uuid.Nil, err
	}

	prescription, err := s.prescriptionRepo.GetByID(ctx, input.PrescriptionID)
	if err != nil {
		return uuid.Nil, err
	}
	if prescription == nil {
		return uuid.Nil, apperror.NewNotFoundError("Prescription")
	}

	// Advisory duplicate pre-check. The unique index on order_no is the
	// authoritative guard against two terminals racing past this lookup.
	dup, err := s.orderRepo.GetByOrderNo(ctx, input.OrderNo)
	if err != nil {
		return uuid.Nil, err
	}
	if dup != nil {
		return uuid.Nil, apperror.NewDuplicateOrderError(input.OrderNo)
	}

	lines, snapshot := reconcileInput(input)
	return s.createOrder(ctx, input, lines, snapshot)
}

// UpdateOrder rewrites an existing order in place: header update,
// wholesale item replacement, payment upsert of the raw fields. This is
// the only path that may touch an existing order's rows.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, input *SaveOrderInput) (uuid.UUID, error) {
	if err := validateSaveOrder(input); err != nil {
		return uuid.Nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return uuid.Nil, err
	}
	if order == nil {
		return uuid.Nil, apperror.NewNotFoundError("Order")
	}

	prescription, err := s.prescriptionRepo.GetByID(ctx, input.PrescriptionID)
	if err != nil {
		return uuid.Nil, err
	}
	if prescription == nil {
		return uuid.Nil, apperror.NewNotFoundError("Prescription")
	}

	// Re-pointing an order at a prescription that already has one would
	// leave two orders on a single prescription.
	if input.PrescriptionID != order.PrescriptionID {
		other, err := s.orderRepo.GetByPrescriptionID(ctx, input.PrescriptionID)
		if err != nil {
			return uuid.Nil, err
		}
		if other != nil && other.ID != order.ID {
			return uuid.Nil, apperror.NewConflictError("Prescription already has an order")
		}
	}

	if input.OrderNo != order.OrderNo {
		dup, err := s.orderRepo.GetByOrderNo(ctx, input.OrderNo)
		if err != nil {
			return uuid.Nil, err
		}
		if dup != nil && dup.ID != order.ID {
			return uuid.Nil, apperror.NewDuplicateOrderError(input.OrderNo)
		}
	}

	lines, snapshot := reconcileInput(input)
	return order.ID, s.updateOrder(ctx, order, input, lines, snapshot)
}

// createOrder runs the header -> items -> payment sequence, compensating
// earlier writes when a later step fails.
func (s *OrderService) createOrder(ctx context.Context, input *SaveOrderInput, lines []finance.Line, snapshot finance.Snapshot) (uuid.UUID, error) {
	order := &entity.Order{
		PrescriptionID: input.PrescriptionID,
		OrderNo:        input.OrderNo,
		BillNo:         input.BillNo,
		OrderDate:      input.OrderDate,
		DeliveryDate:   input.DeliveryDate,
		Status:         input.Status,
		Remarks:        input.Remarks,
		BookedBy:       input.BookedBy,
	}

	stage := stagePending

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The second terminal in a save race lands here.
			return uuid.Nil, apperror.NewDuplicateOrderError(input.OrderNo)
		}
		return uuid.Nil, err
	}
	stage = stageHeaderWritten

	items := buildItems(order.ID, input.Items, lines)
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return uuid.Nil, s.compensate(ctx, order.ID, stage, "items", err)
	}
	stage = stageItemsWritten

	payment := buildPayment(order.ID, snapshot)
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return uuid.Nil, s.compensate(ctx, order.ID, stage, "payment", err)
	}

	return order.ID, nil
}

// compensate unwinds the writes committed before the failing step. A
// failed compensation is surfaced distinctly so an operator can tell
// "order never existed" apart from "order exists as an orphaned partial
// write".
func (s *OrderService) compensate(ctx context.Context, orderID uuid.UUID, stage writeStage, step string, cause error) error {
	var compErr error

	if stage >= stageItemsWritten {
		compErr = s.itemRepo.DeleteByOrderID(ctx, orderID)
	}
	if compErr == nil && stage >= stageHeaderWritten {
		compErr = s.orderRepo.Delete(ctx, orderID)
	}

	pwErr := &apperror.PartialWriteError{Step: step, Err: cause, CompensationErr: compErr}
	if pwErr.Orphaned() {
		log.Printf("ERROR: order %s left as orphaned partial write: %v", orderID, pwErr)
	} else {
		log.Printf("order save rolled back at %s step: %v", step, cause)
	}
	return pwErr
}

// updateOrder updates the header in place, replaces the item list
// wholesale and upserts the payment row using raw fields only. The
// pre-edit header and item rows are captured up front so a failing later
// step can put them back; only a failed restore leaves the order
// half-updated, and that surfaces as an orphaned partial write.
func (s *OrderService) updateOrder(ctx context.Context, order *entity.Order, input *SaveOrderInput, lines []finance.Line, snapshot finance.Snapshot) error {
	prev := *order
	prevItems, err := s.itemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}

	order.PrescriptionID = input.PrescriptionID
	order.OrderNo = input.OrderNo
	order.BillNo = input.BillNo
	order.OrderDate = input.OrderDate
	order.DeliveryDate = input.DeliveryDate
	order.Status = input.Status
	order.Remarks = input.Remarks
	order.BookedBy = input.BookedBy

	if err := s.orderRepo.Update(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.NewDuplicateOrderError(input.OrderNo)
		}
		return err
	}

	// The line list is a value object: no diffing, delete-all then
	// insert-all.
	if err := s.itemRepo.DeleteByOrderID(ctx, order.ID); err != nil {
		// Delete is a single statement; the old rows are still in place.
		return s.revertUpdate(ctx, &prev, nil, false, "items", err)
	}
	if err := s.itemRepo.CreateBatch(ctx, buildItems(order.ID, input.Items, lines)); err != nil {
		return s.revertUpdate(ctx, &prev, prevItems, true, "items", err)
	}

	payment, err := s.paymentRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return s.revertUpdate(ctx, &prev, prevItems, true, "payment", err)
	}
	if payment == nil {
		if err := s.paymentRepo.Create(ctx, buildPayment(order.ID, snapshot)); err != nil {
			return s.revertUpdate(ctx, &prev, prevItems, true, "payment", err)
		}
		return nil
	}

	applySnapshot(payment, snapshot)
	if err := s.paymentRepo.UpdateRaw(ctx, payment); err != nil {
		return s.revertUpdate(ctx, &prev, prevItems, true, "payment", err)
	}
	return nil
}

// revertUpdate restores the pre-edit header and, when the item rows were
// already replaced, the pre-edit item list. A failed restore leaves the
// order half-updated, which is the same orphaned condition a failed
// create-path compensation produces.
func (s *OrderService) revertUpdate(ctx context.Context, prev *entity.Order, prevItems []entity.OrderItem, itemsDirty bool, step string, cause error) error {
	var compErr error

	if itemsDirty {
		compErr = s.itemRepo.DeleteByOrderID(ctx, prev.ID)
		if compErr == nil && len(prevItems) > 0 {
			compErr = s.itemRepo.CreateBatch(ctx, prevItems)
		}
	}
	if compErr == nil {
		compErr = s.orderRepo.Update(ctx, prev)
	}

	pwErr := &apperror.PartialWriteError{Step: step, Err: cause, CompensationErr: compErr}
	if pwErr.Orphaned() {
		log.Printf("ERROR: order %s left half-updated: %v", prev.ID, pwErr)
	} else {
		log.Printf("order update rolled back at %s step: %v", step, cause)
	}
	return pwErr
}

// GetOrder retrieves an order with its items and payment. The payment
// totals are reported exactly as stored; nothing is recomputed on load.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, finance.Snapshot, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, finance.Snapshot{}, err
	}
	if order == nil {
		return nil, finance.Snapshot{}, apperror.NewNotFoundError("Order")
	}

	var snapshot finance.Snapshot
	if p := order.Payment; p != nil {
		snapshot = finance.FromStore(
			p.PaymentEstimate, p.TaxAmount, p.DiscountAmount, p.FinalAmount,
			p.AdvanceCash, p.AdvanceCardUpi, p.AdvanceOther, p.ScheduleAmount,
			p.TotalAdvance, p.Balance,
		)
	}
	return order, snapshot, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrderStatus updates the status of an order
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if !status.IsValid() {
		return apperror.NewBadRequestError("Invalid order status")
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

// RemoveItemResult reports the outcome of an item removal. History
// recording is best-effort; its failure never blocks the removal.
type RemoveItemResult struct {
	History RecordResult `json:"history"`
}

// RemoveItem deletes one line from an order, rebalances the payment
// record and records a snapshot in the customer's deletion history.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*RemoveItemResult, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	var removed *entity.OrderItem
	remaining := make([]entity.OrderItem, 0, len(order.Items))
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			removed = &order.Items[i]
			continue
		}
		remaining = append(remaining, order.Items[i])
	}
	if removed == nil {
		return nil, apperror.NewNotFoundError("Order item")
	}

	prescription, err := s.prescriptionRepo.GetByID(ctx, order.PrescriptionID)
	if err != nil {
		return nil, err
	}

	// Item lists are replaced wholesale, deletions included.
	if err := s.itemRepo.DeleteByOrderID(ctx, orderID); err != nil {
		return nil, err
	}
	for i := range remaining {
		remaining[i].ID = uuid.Nil
		remaining[i].Seq = i + 1
	}
	if err := s.itemRepo.CreateBatch(ctx, remaining); err != nil {
		return nil, &apperror.PartialWriteError{Step: "items", Err: err}
	}

	// Rebalance the payment from the surviving lines, keeping the raw
	// advances as they stand.
	if payment, err := s.paymentRepo.GetByOrderID(ctx, orderID); err == nil && payment != nil {
		snapshot := finance.Reconcile(itemLines(remaining), finance.Advances{
			Cash:     payment.AdvanceCash,
			CardUpi:  payment.AdvanceCardUpi,
			Other:    payment.AdvanceOther,
			Schedule: payment.ScheduleAmount,
		})
		applySnapshot(payment, snapshot)
		if err := s.paymentRepo.UpdateRaw(ctx, payment); err != nil {
			return nil, &apperror.PartialWriteError{Step: "payment", Err: err}
		}
	} else if err != nil {
		return nil, err
	}

	result := &RemoveItemResult{}
	key := CustomerKey{}
	snapshot := entity.DeletedItem{
		ItemID:         removed.ID,
		Name:           removed.Name,
		Code:           removed.Code,
		ItemType:       removed.ItemType,
		Rate:           removed.Rate,
		Qty:            removed.Qty,
		TaxPercent:     removed.TaxPercent,
		DiscountAmount: removed.DiscountAmount,
		Amount:         removed.Amount,
		OrderNo:        order.OrderNo,
		DeletedAt:      time.Now(),
	}
	if prescription != nil {
		key = CustomerKey{
			MobileNo: prescription.MobileNo,
			Name:     prescription.CustomerName,
			Address:  prescription.Address,
		}
		snapshot.PrescriptionNo = prescription.PrescriptionNo
		snapshot.ReferenceNo = prescription.ReferenceNo
	}

	record, err := s.historyService.RecordDeletion(ctx, key, snapshot)
	if err != nil {
		// Deletion already happened; history is best-effort.
		log.Printf("history recording failed for order %s item %s: %v", orderID, itemID, err)
	}
	result.History = record
	return result, nil
}

func validateSaveOrder(input *SaveOrderInput) error {
	var fieldErrors []apperror.FieldError
	if input.OrderNo == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "order_no", Message: "order number is required"})
	}
	if input.PrescriptionID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "prescription_id", Message: "prescription is required"})
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for i, item := range input.Items {
		if item.Name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "item name is required"})
		}
		if item.Qty <= 0 {
			input.Items[i].Qty = 1
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// reconcileInput derives the financial lines and the canonical snapshot
// for a save request. An order-level applied discount is distributed
// pro-rata when no per-item discounts were given.
func reconcileInput(input *SaveOrderInput) ([]finance.Line, finance.Snapshot) {
	lines := make([]finance.Line, len(input.Items))
	hasItemDiscount := false
	for i, item := range input.Items {
		lines[i] = finance.Line{
			Rate:            item.Rate,
			Qty:             item.Qty,
			TaxPercent:      item.TaxPercent,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
		}
		if item.DiscountAmount > 0 || item.DiscountPercent > 0 {
			hasItemDiscount = true
		}
	}

	if !hasItemDiscount && input.Payment.AppliedDiscount > 0 {
		lines = finance.DistributeDiscount(lines, input.Payment.AppliedDiscount)
	} else {
		for i := range lines {
			if lines[i].DiscountAmount == 0 && lines[i].DiscountPercent > 0 {
				lines[i] = finance.SyncDiscountFromPercent(lines[i])
			}
		}
	}

	snapshot := finance.Reconcile(lines, finance.Advances{
		Cash:     input.Payment.AdvanceCash,
		CardUpi:  input.Payment.AdvanceCardUpi,
		Other:    input.Payment.AdvanceOther,
		Schedule: input.Payment.ScheduleAmount,
	})
	return lines, snapshot
}

func buildItems(orderID uuid.UUID, inputs []OrderItemInput, lines []finance.Line) []entity.OrderItem {
	items := make([]entity.OrderItem, len(inputs))
	for i, input := range inputs {
		items[i] = entity.OrderItem{
			OrderID:         orderID,
			Seq:             i + 1,
			ItemType:        input.ItemType,
			Code:            input.Code,
			Name:            input.Name,
			Rate:            lines[i].Rate,
			Qty:             lines[i].Qty,
			TaxPercent:      lines[i].TaxPercent,
			DiscountPercent: lines[i].DiscountPercent,
			DiscountAmount:  lines[i].DiscountAmount,
			Amount:          lines[i].Amount(),
		}
	}
	return items
}

func buildPayment(orderID uuid.UUID, snapshot finance.Snapshot) *entity.OrderPayment {
	payment := &entity.OrderPayment{OrderID: orderID}
	applySnapshot(payment, snapshot)
	return payment
}

// applySnapshot copies the raw fields only; total_advance and balance are
// store-generated.
func applySnapshot(payment *entity.OrderPayment, snapshot finance.Snapshot) {
	payment.PaymentEstimate = snapshot.PaymentEstimate
	payment.TaxAmount = snapshot.TaxAmount
	payment.DiscountAmount = snapshot.DiscountAmount
	payment.FinalAmount = snapshot.FinalAmount
	payment.AdvanceCash = snapshot.AdvanceCash
	payment.AdvanceCardUpi = snapshot.AdvanceCardUpi
	payment.AdvanceOther = snapshot.AdvanceOther
	payment.ScheduleAmount = snapshot.ScheduleAmount
}

func itemLines(items []entity.OrderItem) []finance.Line {
	lines := make([]finance.Line, len(items))
	for i, item := range items {
		lines[i] = finance.Line{
			Rate:            item.Rate,
			Qty:             item.Qty,
			TaxPercent:      item.TaxPercent,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
		}
	}
	return lines
}
