package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"easyshop/internal/models/db_models"
	"easyshop/internal/models/request_models"
	"easyshop/internal/models/response_models"
	"easyshop/internal/repositories"
	"easyshop/pkg/onepipe"
	"easyshop/pkg/utils"
)

type OrderServiceConfig struct {
	// DegradedMode lets order creation commit with a locally synthesized
	// mandate record when the provider call fails. This is an explicit,
	// operator-controlled escape hatch; the default is to roll back.
	DegradedMode    bool
	MaxInstallments int
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *request_models.CreateOrderRequest) (*response_models.CreateOrderResponse, error)
	GetOrder(ctx context.Context, userID, role, orderID string) (*response_models.OrderDetailResponse, error)
	ListOrders(ctx context.Context, userID string) ([]response_models.OrderSummary, error)
	// OpenMandate runs the provider call and persists the Mandate row inside
	// the caller's transaction. The webhook reconciler reuses it when failing
	// over to a backup account.
	OpenMandate(ctx context.Context, tx *gorm.DB, order *db_models.Order, customer *db_models.Customer, email string, account *db_models.CustomerAccount, installments int, perInstallmentMinor int64) (*db_models.Mandate, error)
}

type orderService struct {
	db           *gorm.DB
	provider     onepipe.Client
	customerRepo repositories.CustomerRepository
	userRepo     repositories.UserRepository
	accountRepo  repositories.CustomerAccountRepository
	cfg          OrderServiceConfig
}

func NewOrderService(
	db *gorm.DB,
	provider onepipe.Client,
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
	accountRepo repositories.CustomerAccountRepository,
	cfg OrderServiceConfig,
) OrderService {
	if cfg.MaxInstallments == 0 {
		cfg.MaxInstallments = 12
	}
	return &orderService{
		db:           db,
		provider:     provider,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		cfg:          cfg,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req *request_models.CreateOrderRequest) (*response_models.CreateOrderResponse, error) {

	customer, err := s.customerRepo.FindByUserId(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if customer == nil {
		return nil, utils.ErrCustomerNotFound
	}

	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	email := ""
	if user != nil {
		email = user.Email
	}

	installments := req.Installments
	if installments <= 0 {
		installments = 1
	}
	isRecurring := installments > 1

	if isRecurring && installments > s.cfg.MaxInstallments {
		return nil, utils.ErrInvalidInstallments
	}

	// Installment plans debit a verified account owned by this customer.
	var account *db_models.CustomerAccount
	if isRecurring {
		if req.AccountID == "" {
			return nil, utils.ErrAccountRequired
		}
		account, err = s.accountRepo.FindByIdAndCustomer(ctx, req.AccountID, customer.ID.String())
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if account == nil {
			return nil, utils.ErrAccountNotFound
		}
		if !account.Verified {
			return nil, utils.ErrAccountNotVerified
		}
	}

	var resp *response_models.CreateOrderResponse

	// Stock decrement, order insert and mandate insert commit or roll back
	// as one unit.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var totalMinor int64
		items := make([]db_models.OrderItem, 0, len(req.Items))
		var vendorID uuid.UUID

		for i, line := range req.Items {
			var product db_models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.ErrProductNotFound
				}
				return err
			}

			if product.StockQuantity < line.Quantity {
				return fmt.Errorf("%w: %s", utils.ErrInsufficientStock, product.Name)
			}

			subtotal := product.PriceMinor * int64(line.Quantity)
			totalMinor += subtotal
			items = append(items, db_models.OrderItem{
				ProductID:     product.ID,
				Name:          product.Name,
				PriceMinor:    product.PriceMinor,
				Quantity:      line.Quantity,
				SubtotalMinor: subtotal,
			})

			product.StockQuantity -= line.Quantity
			if product.StockQuantity == 0 {
				product.Status = db_models.ProductOutOfStock
			}
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			// Single vendor per order: the first line decides.
			if i == 0 {
				vendorID = product.VendorID
			}
		}

		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return err
		}

		order := &db_models.Order{
			CustomerID:      customer.ID,
			VendorID:        vendorID,
			TotalAmount:     totalMinor,
			Status:          db_models.OrderPending,
			OrderItems:      itemsJSON,
			ShippingAddress: req.ShippingAddress,
		}

		var perMinor int64
		if isRecurring {
			perMinor = utils.SplitInstallments(totalMinor, installments)
			order.Installments = &installments
			order.AmountPerInstallment = &perMinor
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		var mandate *db_models.Mandate
		if isRecurring {
			mandate, err = s.OpenMandate(ctx, tx, order, customer, email, account, installments, perMinor)
			if err != nil {
				if !s.cfg.DegradedMode {
					return err
				}
				log.Printf("Degraded mode: synthesizing local mandate for order %s after provider failure: %v", order.ID, err)
				mandate, err = s.insertMandate(tx, order, account, installments, perMinor, &onepipe.MandateHandle{
					ExternalID: "LOCAL_" + order.ID.String(),
				})
				if err != nil {
					return err
				}
			}

			order.CurrentMandateID = &mandate.ID
			if err := order.Transition(db_models.OrderAuthorized); err != nil {
				return err
			}
			if err := tx.Save(order).Error; err != nil {
				return err
			}
		} else {
			// Single payment: one invoice, no mandate row, order stays pending
			// until the payment webhook lands.
			_, err := s.provider.OpenMandateOrInvoice(ctx, onepipe.OpenMandateParams{
				CustomerRef:         customer.ID.String(),
				CustomerName:        customer.FullName(),
				CustomerEmail:       email,
				TotalMinor:          totalMinor,
				PerInstallmentMinor: totalMinor,
				Installments:        1,
				OrderID:             order.ID.String(),
				SinglePayment:       true,
			})
			if err != nil {
				if !s.cfg.DegradedMode {
					return s.providerError(err)
				}
				log.Printf("Degraded mode: order %s committed without provider invoice: %v", order.ID, err)
			}
		}

		resp = buildCreateOrderResponse(order, mandate, account, items)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// OpenMandate is the single mandate-opening step shared by order creation and
// webhook failover.
func (s *orderService) OpenMandate(ctx context.Context, tx *gorm.DB, order *db_models.Order, customer *db_models.Customer, email string, account *db_models.CustomerAccount, installments int, perInstallmentMinor int64) (*db_models.Mandate, error) {

	handle, err := s.provider.OpenMandateOrInvoice(ctx, onepipe.OpenMandateParams{
		CustomerRef:         customer.ID.String(),
		CustomerName:        customer.FullName(),
		CustomerEmail:       email,
		AccountNumber:       account.AccountNumber,
		BankCode:            account.BankCode,
		TotalMinor:          order.TotalAmount,
		PerInstallmentMinor: perInstallmentMinor,
		Installments:        installments,
		OrderID:             order.ID.String(),
	})
	if err != nil {
		return nil, s.providerError(err)
	}

	return s.insertMandate(tx, order, account, installments, perInstallmentMinor, handle)
}

func (s *orderService) insertMandate(tx *gorm.DB, order *db_models.Order, account *db_models.CustomerAccount, installments int, perInstallmentMinor int64, handle *onepipe.MandateHandle) (*db_models.Mandate, error) {
	now := time.Now()

	mandate := &db_models.Mandate{
		OrderID:              order.ID,
		CustomerAccountID:    account.ID,
		OnepipeMandateID:     handle.ExternalID,
		VirtualAccount:       handle.VirtualAccount,
		AmountPerInstallment: perInstallmentMinor,
		TotalInstallments:    installments,
		StartDate:            now.Unix(),
		EndDate:              now.AddDate(0, installments, 0).Unix(),
		Status:               db_models.MandatePendingAuth,
	}

	if err := tx.Create(mandate).Error; err != nil {
		return nil, err
	}
	return mandate, nil
}

func (s *orderService) providerError(err error) error {
	if errors.Is(err, onepipe.ErrUnknownOutcome) {
		// The mandate may exist on the provider side. Operators must reconcile
		// through QueryMandateStatus before re-submitting the order.
		log.Printf("Provider outcome unknown, reconcile before retrying: %v", err)
	}
	return fmt.Errorf("%w: %v", utils.ErrProviderFailure, err)
}

func (s *orderService) GetOrder(ctx context.Context, userID, role, orderID string) (*response_models.OrderDetailResponse, error) {
	var order db_models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, utils.ErrDatabaseError
	}

	switch role {
	case string(db_models.RoleCustomer):
		customer, err := s.customerRepo.FindByUserId(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if customer == nil || order.CustomerID != customer.ID {
			return nil, utils.ErrForbidden
		}
	case string(db_models.RoleVendor):
		vendor, err := s.customerRepo.FindVendorByUserId(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if vendor == nil || order.VendorID != vendor.ID {
			return nil, utils.ErrForbidden
		}
	}

	var mandate *db_models.Mandate
	if order.CurrentMandateID != nil {
		var m db_models.Mandate
		if err := s.db.WithContext(ctx).First(&m, "id = ?", *order.CurrentMandateID).Error; err == nil {
			mandate = &m
		}
	}

	return &response_models.OrderDetailResponse{
		Order:   orderSummary(&order, true),
		Mandate: mandateSummary(mandate),
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string) ([]response_models.OrderSummary, error) {
	customer, err := s.customerRepo.FindByUserId(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if customer == nil {
		return nil, utils.ErrCustomerNotFound
	}

	var orders []db_models.Order
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, utils.ErrDatabaseError
	}

	return lo.Map(orders, func(o db_models.Order, _ int) response_models.OrderSummary {
		return orderSummary(&o, false)
	}), nil
}

func orderSummary(order *db_models.Order, withAddress bool) response_models.OrderSummary {
	var items []db_models.OrderItem
	_ = json.Unmarshal(order.OrderItems, &items)

	summary := response_models.OrderSummary{
		ID:               order.ID,
		TotalAmount:      utils.ToMajor(order.TotalAmount),
		Installments:     order.Installments,
		InstallmentsPaid: order.InstallmentsPaid,
		AmountPaid:       utils.ToMajor(order.AmountPaid),
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
		Items: lo.Map(items, func(it db_models.OrderItem, _ int) response_models.OrderItemResponse {
			return response_models.OrderItemResponse{
				ProductID: it.ProductID,
				Name:      it.Name,
				Price:     utils.ToMajor(it.PriceMinor),
				Quantity:  it.Quantity,
				Subtotal:  utils.ToMajor(it.SubtotalMinor),
			}
		}),
	}
	if order.AmountPerInstallment != nil {
		per := utils.ToMajor(*order.AmountPerInstallment)
		summary.AmountPerInstallment = &per
	}
	if withAddress {
		summary.ShippingAddress = order.ShippingAddress
	}
	return summary
}

func mandateSummary(mandate *db_models.Mandate) *response_models.MandateSummary {
	if mandate == nil {
		return nil
	}
	return &response_models.MandateSummary{
		ID:                   mandate.ID,
		VirtualAccount:       mandate.VirtualAccount,
		AmountPerInstallment: utils.ToMajor(mandate.AmountPerInstallment),
		TotalInstallments:    mandate.TotalInstallments,
		InstallmentsPaid:     mandate.InstallmentsPaid,
		Status:               string(mandate.Status),
		StartDate:            mandate.StartDate,
		EndDate:              mandate.EndDate,
	}
}

func buildCreateOrderResponse(order *db_models.Order, mandate *db_models.Mandate, account *db_models.CustomerAccount, items []db_models.OrderItem) *response_models.CreateOrderResponse {
	resp := &response_models.CreateOrderResponse{
		Order:   orderSummary(order, true),
		Mandate: mandateSummary(mandate),
	}

	if mandate != nil && account != nil {
		resp.PaymentInstructions = &response_models.PaymentInstructions{
			Message:        "Transfer the first installment to the virtual account below",
			VirtualAccount: mandate.VirtualAccount,
			Amount:         utils.ToMajor(mandate.AmountPerInstallment),
			BankName:       account.BankName,
		}
	}
	return resp
}
