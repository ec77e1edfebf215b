package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

// QR scans and access logs are append-only children of a school; they
// are created here and destroyed only by the parent's Delete.

func (s *Service) AddQRScan(ctx context.Context, schoolID, staffName, notes string) (model.QRScan, error) {
	school, err := s.GetByID(ctx, schoolID)
	if err != nil {
		return model.QRScan{}, err
	}
	if staffName == "" {
		return model.QRScan{}, model.ErrValidation
	}

	scan := model.QRScan{
		ID:        uuid.NewString(),
		SchoolID:  school.ID,
		LoomaID:   school.LoomaID,
		Timestamp: model.At(s.now()),
		StaffName: staffName,
		Notes:     notes,
	}
	if err := s.store.QRScans.Insert(ctx, scan); err != nil {
		return model.QRScan{}, storeErr(err)
	}
	return scan, nil
}

func (s *Service) QRScans(ctx context.Context, schoolID string) ([]model.QRScan, error) {
	scans, err := s.store.QRScans.FindSorted(ctx, store.Filter{Eq: map[string]string{"schoolId": schoolID}}, "timestamp", 0)
	if err != nil {
		return nil, storeErr(err)
	}
	return scans, nil
}

func (s *Service) RecentQRScans(ctx context.Context, limit int64) ([]model.QRScan, error) {
	if limit <= 0 {
		limit = 50
	}
	scans, err := s.store.QRScans.FindSorted(ctx, store.Filter{}, "timestamp", limit)
	if err != nil {
		return nil, storeErr(err)
	}
	return scans, nil
}

func (s *Service) AddAccessLog(ctx context.Context, schoolID, userID, userName, action, details string) (model.AccessLog, error) {
	school, err := s.GetByID(ctx, schoolID)
	if err != nil {
		return model.AccessLog{}, err
	}
	if action == "" {
		return model.AccessLog{}, model.ErrValidation
	}

	entry := model.AccessLog{
		ID:        uuid.NewString(),
		SchoolID:  school.ID,
		UserID:    userID,
		Timestamp: model.At(s.now()),
		User:      userName,
		Action:    action,
		Details:   details,
	}
	if err := s.store.AccessLogs.Insert(ctx, entry); err != nil {
		return model.AccessLog{}, storeErr(err)
	}
	return entry, nil
}

func (s *Service) AccessLogs(ctx context.Context, schoolID string) ([]model.AccessLog, error) {
	logs, err := s.store.AccessLogs.FindSorted(ctx, store.Filter{Eq: map[string]string{"schoolId": schoolID}}, "timestamp", 0)
	if err != nil {
		return nil, storeErr(err)
	}
	return logs, nil
}

func (s *Service) RecentAccessLogs(ctx context.Context, limit int64) ([]model.AccessLog, error) {
	if limit <= 0 {
		limit = 100
	}
	logs, err := s.store.AccessLogs.FindSorted(ctx, store.Filter{}, "timestamp", limit)
	if err != nil {
		return nil, storeErr(err)
	}
	return logs, nil
}
