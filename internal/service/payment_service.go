package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"bandoxanh-be/internal/config"
	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
	"bandoxanh-be/pkg/events"
	pktNats "bandoxanh-be/pkg/nats"
)

const defaultProPlanPrice = 49000 // VND

type IPaymentService interface {
	ListPlans() []*dto.PlanResponse
	CreateUpgrade(ctx context.Context, userId uuid.UUID) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	quota          config.QuotaConfig
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, quota config.QuotaConfig) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		quota:          quota,
	}
}

// ListPlans returns the public plan catalog. Prices are in VND.
func (s *paymentService) ListPlans() []*dto.PlanResponse {
	return []*dto.PlanResponse{
		{
			Code:         string(entity.UserPlanFree),
			Name:         "BandoXanh Free",
			Price:        0,
			Currency:     "VND",
			DailyAiLimit: s.quota.FreeDailyLimit,
			Features: []string{
				"Bản đồ tái chế",
				"Cộng đồng xanh",
				"Nhận diện rác bằng AI",
			},
		},
		{
			Code:         string(entity.UserPlanPro),
			Name:         "BandoXanh Pro",
			Price:        proPlanPrice(),
			Currency:     "VND",
			DailyAiLimit: s.quota.ProDailyLimit,
			Features: []string{
				"Tất cả tính năng Free",
				"Phân tích AI không giới hạn",
				"Huy hiệu Pro",
			},
		},
	}
}

func proPlanPrice() int64 {
	if raw := os.Getenv("PRO_PLAN_PRICE"); raw != "" {
		if price, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return price
		}
	}
	return defaultProPlanPrice
}

// CreateUpgrade opens a Midtrans Snap transaction for the Pro plan. The
// upgrade Id doubles as the Midtrans order id.
func (s *paymentService) CreateUpgrade(ctx context.Context, userId uuid.UUID) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if user.Plan == entity.UserPlanPro {
		return nil, fiber.NewError(fiber.StatusConflict, "already on the Pro plan")
	}

	price := proPlanPrice()
	upgrade := &entity.ProUpgrade{
		Id:        uuid.New(),
		UserId:    userId,
		Amount:    float64(price),
		Status:    entity.UpgradeStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UpgradeRepository().Create(ctx, upgrade); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// External call after commit so a Midtrans failure leaves a pending
	// order instead of a dangling payment.
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	clientURL := os.Getenv("CLIENT_URL")
	finishRedirectURL := fmt.Sprintf("%s/upgrade?payment=success", clientURL)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  upgrade.Id.String(),
			GrossAmt: price,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    "pro-plan",
				Price: price,
				Qty:   1,
				Name:  "BandoXanh Pro",
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		OrderId:     upgrade.Id,
		RedirectURL: snapResp.RedirectURL,
		Token:       snapResp.Token,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	fmt.Printf("\n[WEBHOOK] ========== Processing Notification ==========\n")
	fmt.Printf("[WEBHOOK] OrderId: %s | Status: %s\n", req.OrderId, req.TransactionStatus)

	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		fmt.Println("[WEBHOOK ERROR] MIDTRANS_SERVER_KEY not configured")
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))

	if req.SignatureKey != expectedSignature {
		fmt.Printf("[WEBHOOK ERROR] Signature mismatch for OrderId=%s\n", req.OrderId)
		return fmt.Errorf("invalid signature")
	}
	fmt.Printf("[WEBHOOK] Signature validated successfully\n")

	upgradeId, err := uuid.Parse(req.OrderId)
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Invalid order_id format: %s\n", req.OrderId)
		return fmt.Errorf("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to begin transaction: %v\n", err)
		return err
	}
	defer uow.Rollback()

	upgrade, err := uow.UpgradeRepository().FindOne(ctx, specification.ByID{ID: upgradeId})
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Database error finding upgrade: %v\n", err)
		return err
	}
	if upgrade == nil {
		fmt.Printf("[WEBHOOK ERROR] Upgrade order not found: %s\n", req.OrderId)
		return fmt.Errorf("upgrade order not found")
	}

	var newStatus entity.UpgradeStatus
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.UpgradeStatusPaid
		fmt.Printf("[WEBHOOK] Payment SUCCESS - will activate Pro plan\n")
	case "deny", "cancel", "expire":
		newStatus = entity.UpgradeStatusFailed
		fmt.Printf("[WEBHOOK] Payment FAILED - will mark order failed\n")
	case "pending":
		fmt.Printf("[WEBHOOK] Payment PENDING - no action needed\n")
		return nil
	default:
		fmt.Printf("[WEBHOOK] Unknown status '%s' - no action taken\n", req.TransactionStatus)
		return nil
	}

	// Midtrans retries notifications; replays of a settled order are no-ops.
	if upgrade.Status == newStatus {
		fmt.Printf("[WEBHOOK] Status already up-to-date, skipping update\n")
		return nil
	}

	fmt.Printf("[WEBHOOK] State transition: %s -> %s\n", upgrade.Status, newStatus)

	if err := uow.UpgradeRepository().UpdateStatus(ctx, upgrade.Id, string(newStatus)); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to update upgrade: %v\n", err)
		return err
	}

	if newStatus == entity.UpgradeStatusPaid {
		if err := uow.UserRepository().UpdatePlan(ctx, upgrade.UserId, string(entity.UserPlanPro)); err != nil {
			fmt.Printf("[WEBHOOK ERROR] Failed to update user plan: %v\n", err)
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to commit transaction: %v\n", err)
		return err
	}

	if newStatus == entity.UpgradeStatusPaid && s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewProUpgraded(upgrade.UserId, upgrade.Id)); err != nil {
			fmt.Printf("[WARN] Failed to publish PRO_UPGRADED event: %v\n", err)
		}
	}

	fmt.Printf("[WEBHOOK] Successfully processed order %s\n", upgradeId)
	fmt.Printf("[WEBHOOK] ===========================================\n\n")
	return nil
}
