package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
	"charity-pay.backend/internal/domain/gateway"
	"charity-pay.backend/internal/domain/repositories"
	"charity-pay.backend/pkg/logger"
)

// WebhookUsecase reconciles provider-reported merchant statuses into the
// local approval state machine.
type WebhookUsecase struct {
	orgRepo repositories.OrganizationRepository
	uow     repositories.UnitOfWork
}

// NewWebhookUsecase creates a new webhook usecase
func NewWebhookUsecase(orgRepo repositories.OrganizationRepository, uow repositories.UnitOfWork) *WebhookUsecase {
	return &WebhookUsecase{orgRepo: orgRepo, uow: uow}
}

// ProcessGatewayEvent applies a normalized webhook event.
func (u *WebhookUsecase) ProcessGatewayEvent(ctx context.Context, event *gateway.WebhookEvent) error {
	return u.ReconcileStatus(ctx, event.RemoteMerchantID, event.Status, event.Reason)
}

// ReconcileStatus maps the provider's status vocabulary onto a local
// transition. The organization row is locked for the duration of the
// transaction so concurrent deliveries for the same merchant are serialized.
// An unknown merchant id or an unknown status string is logged and ignored;
// re-delivery of a status the organization already reached is a no-op.
func (u *WebhookUsecase) ReconcileStatus(ctx context.Context, remoteMerchantID, status, reason string) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		org, err := u.orgRepo.GetByRemoteMerchantID(lockCtx, remoteMerchantID)
		if errors.Is(err, domainerrors.ErrNotFound) {
			// Callbacks may race with local deletions or belong to a
			// stale merchant id; not an error.
			logger.Warn(ctx, "Webhook for unknown merchant ignored",
				zap.String("remote_merchant_id", remoteMerchantID),
				zap.String("status", status),
			)
			return nil
		}
		if err != nil {
			return err
		}

		target, note, ok := u.mapStatus(ctx, org, status, reason)
		if !ok {
			return nil
		}
		if org.ApprovalState == target {
			// Already satisfied: idempotent re-delivery, distinct from
			// an illegal transition.
			logger.Info(ctx, "Webhook status already applied",
				zap.String("remote_merchant_id", remoteMerchantID),
				zap.String("status", status),
			)
			return nil
		}
		if !org.ApprovalState.CanTransitionTo(target) {
			logger.Info(ctx, "Webhook status not applicable in current state",
				zap.String("remote_merchant_id", remoteMerchantID),
				zap.String("status", status),
				zap.String("current_state", string(org.ApprovalState)),
			)
			return nil
		}

		if err := org.TransitionTo(target, note); err != nil {
			return err
		}
		if err := u.orgRepo.Update(lockCtx, org); err != nil {
			return err
		}

		logger.Info(ctx, "Merchant status reconciled",
			zap.String("remote_merchant_id", remoteMerchantID),
			zap.String("status", status),
			zap.String("new_state", string(target)),
		)
		return nil
	})
}

// mapStatus translates the provider vocabulary into a target state. The
// third return is false when the status carries no applicable transition,
// including statuses this system has never seen; those degrade to a logged
// no-op rather than a failure, since the external vocabulary may grow.
func (u *WebhookUsecase) mapStatus(ctx context.Context, org *entities.Organization, status, reason string) (entities.ApprovalState, string, bool) {
	note := "provider reported " + strings.ToLower(status)
	if reason != "" {
		note += ": " + reason
	}

	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "APPROVED":
		if org.ApprovalState != entities.ApprovalStateKycSubmitted &&
			org.ApprovalState != entities.ApprovalStateMerchantApproved &&
			org.ApprovalState != entities.ApprovalStateActive {
			return "", "", false
		}
		return entities.ApprovalStateMerchantApproved, note, true
	case "ACTIVE", "ACTIVATED":
		return entities.ApprovalStateActive, note, true
	case "REJECTED", "DECLINED":
		return entities.ApprovalStateRejected, note, true
	case "PENDING", "UNDER_REVIEW":
		if org.ApprovalState != entities.ApprovalStateMerchantApproved {
			return "", "", false
		}
		return entities.ApprovalStateKycSubmitted, note, true
	case "SUSPENDED":
		return entities.ApprovalStateSuspended, note, true
	default:
		logger.Warn(ctx, "Unknown gateway status ignored",
			zap.String("status", status),
			zap.String("remote_merchant_id", org.RemoteMerchantID.String),
		)
		return "", "", false
	}
}
