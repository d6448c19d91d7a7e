package usecase

import (
	"context"
	"time"

	"cafepos/internal/domain/model"
	repo "cafepos/internal/repository"
	"cafepos/internal/validator"

	"go.uber.org/zap"
)

type ListAuditLogsInput struct {
	ActorUserID  string
	Action       string
	ResourceType string
	ResourceID   string
	From         string // YYYY-MM-DD（その日を含む）
	To           string // YYYY-MM-DD（その日を含む）
	Limit        int
	Offset       int
}

// AuditUsecase は管理者向けの監査ログ参照。
type AuditUsecase struct {
	logs repo.AuditLogRepository
	loc  *time.Location
	log  *zap.Logger
}

func NewAuditUsecase(logs repo.AuditLogRepository, loc *time.Location, log *zap.Logger) *AuditUsecase {
	return &AuditUsecase{logs: logs, loc: loc, log: log}
}

func (u *AuditUsecase) List(ctx context.Context, actor Actor, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if err := actor.Require(model.CapManageCatalog); err != nil {
		return nil, err
	}

	f := repo.AuditLogFilter{Limit: in.Limit, Offset: in.Offset}
	fields := validator.Fields{}

	if in.ActorUserID != "" {
		if validator.IsUUID(in.ActorUserID) {
			f.ActorUserID = &in.ActorUserID
		} else {
			fields["actor_user_id"] = "must be a uuid"
		}
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		switch a {
		case model.AuditActionCreate, model.AuditActionUpdate, model.AuditActionDelete:
			f.Action = &a
		default:
			fields["action"] = "must be CREATE, UPDATE or DELETE"
		}
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		switch rt {
		case model.AuditResourceCategory, model.AuditResourceMenuItem, model.AuditResourceUser:
			f.ResourceType = &rt
		default:
			fields["resource_type"] = "unknown resource type"
		}
	}
	if in.ResourceID != "" {
		f.ResourceID = &in.ResourceID
	}
	if err := fieldsError(fields); err != nil {
		return nil, err
	}

	from, to, err := parseDayRange(u.loc, in.From, in.To)
	if err != nil {
		return nil, err
	}
	f.CreatedFrom, f.CreatedTo = from, to

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		u.log.Error("failed to list audit logs", zap.Error(err))
		return nil, errDB
	}
	return logs, nil
}
