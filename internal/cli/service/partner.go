package service

import (
	"context"
	"fmt"
	"strings"

	"PartnerApp/internal/cli/model"
)

const (
	pathProfile     = "/partner/profile"
	pathStatus      = "/partner/status"
	pathLocation    = "/partner/location"
	pathDocuments   = "/partner/documents"
	pathBankDetails = "/partner/bank-details"
	pathTraining    = "/partner/training/complete"
)

// PartnerService — профиль партнёра и шаги онбординга.
type PartnerService interface {
	Profile(ctx context.Context) (*model.Partner, error)
	UpdateStatus(ctx context.Context, online bool) (*model.Partner, error)
	UpdateLocation(ctx context.Context, lat, lng float64) error
	SubmitDocuments(ctx context.Context, docs []model.Document) (*model.Partner, error)
	SubmitBankDetails(ctx context.Context, bd model.BankDetails) (*model.Partner, error)
	CompleteTraining(ctx context.Context, moduleID string) (*model.Partner, error)
}

type PartnerServiceRemote struct {
	client Client
}

func NewPartnerService(c Client) PartnerService {
	return &PartnerServiceRemote{client: c}
}

func (s *PartnerServiceRemote) Profile(ctx context.Context) (*model.Partner, error) {
	var p model.Partner
	if err := s.client.Get(ctx, pathProfile, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PartnerServiceRemote) UpdateStatus(ctx context.Context, online bool) (*model.Partner, error) {
	var p model.Partner
	if err := s.client.Put(ctx, pathStatus, model.StatusRequest{IsOnline: online}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PartnerServiceRemote) UpdateLocation(ctx context.Context, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	return s.client.Put(ctx, pathLocation, model.LocationRequest{Latitude: lat, Longitude: lng}, nil)
}

func (s *PartnerServiceRemote) SubmitDocuments(ctx context.Context, docs []model.Document) (*model.Partner, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: at least one document is required", ErrValidation)
	}
	for _, d := range docs {
		if strings.TrimSpace(d.Type) == "" || strings.TrimSpace(d.Number) == "" {
			return nil, fmt.Errorf("%w: document type and number are required", ErrValidation)
		}
	}
	var p model.Partner
	if err := s.client.Post(ctx, pathDocuments, model.DocumentsRequest{Documents: docs}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PartnerServiceRemote) SubmitBankDetails(ctx context.Context, bd model.BankDetails) (*model.Partner, error) {
	if bd.AccountHolder == "" || bd.AccountNumber == "" || bd.IFSC == "" {
		return nil, fmt.Errorf("%w: account holder, number and IFSC are required", ErrValidation)
	}
	var p model.Partner
	if err := s.client.Post(ctx, pathBankDetails, bd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PartnerServiceRemote) CompleteTraining(ctx context.Context, moduleID string) (*model.Partner, error) {
	if strings.TrimSpace(moduleID) == "" {
		return nil, fmt.Errorf("%w: module id is required", ErrValidation)
	}
	var p model.Partner
	if err := s.client.Post(ctx, pathTraining, model.TrainingRequest{ModuleID: moduleID}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
