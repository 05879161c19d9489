package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"PartnerApp/internal/model"
	"PartnerApp/internal/repo"

	"gorm.io/gorm"
)

const documentSubmitted = "submitted"

var (
	ifscRe    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountRe = regexp.MustCompile(`^[0-9]{6,18}$`)
)

// PartnerService — профиль, статус и онбординг партнёра.
//
// Онбординг идёт строго по шагам: документы, реквизиты, обучение.
// Выйти на линию можно только после завершения всех шагов.
type PartnerService struct {
	partners repo.PartnerRepository
}

func NewPartnerService(partners repo.PartnerRepository) *PartnerService {
	return &PartnerService{partners: partners}
}

func (s *PartnerService) Profile(ctx context.Context, partnerID string) (*model.Partner, error) {
	p, err := s.partners.GetByID(ctx, partnerID)
	return p, notFound(err)
}

func (s *PartnerService) UpdateStatus(ctx context.Context, partnerID string, online bool) (*model.Partner, error) {
	if online {
		p, err := s.partners.GetByID(ctx, partnerID)
		if err != nil {
			return nil, notFound(err)
		}
		if p.OnboardingStatus != model.OnboardingActive {
			return nil, ErrNotActive
		}
	}
	p, err := s.partners.Update(ctx, partnerID, map[string]any{"is_online": online})
	return p, notFound(err)
}

func (s *PartnerService) UpdateLocation(ctx context.Context, partnerID string, lat, lng float64) (*model.Partner, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	p, err := s.partners.Update(ctx, partnerID, map[string]any{"latitude": lat, "longitude": lng})
	return p, notFound(err)
}

// SubmitDocuments заменяет документы партнёра. На шаге документов переводит
// онбординг к реквизитам.
func (s *PartnerService) SubmitDocuments(ctx context.Context, partnerID string, docs []model.Document) (*model.Partner, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: at least one document is required", ErrValidation)
	}
	for i := range docs {
		docs[i].Type = strings.TrimSpace(docs[i].Type)
		docs[i].Number = strings.TrimSpace(docs[i].Number)
		if docs[i].Type == "" || docs[i].Number == "" {
			return nil, fmt.Errorf("%w: document type and number are required", ErrValidation)
		}
		docs[i].Status = documentSubmitted
	}

	cur, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, notFound(err)
	}
	updates := map[string]any{}
	if cur.OnboardingStatus == model.OnboardingDocuments {
		updates["onboarding_status"] = model.OnboardingBank
	}
	p, err := s.partners.SaveDocuments(ctx, partnerID, docs, updates)
	return p, notFound(err)
}

func (s *PartnerService) SubmitBankDetails(ctx context.Context, partnerID string, acc model.BankAccount) (*model.Partner, error) {
	acc.AccountHolder = strings.TrimSpace(acc.AccountHolder)
	acc.IFSC = strings.ToUpper(strings.TrimSpace(acc.IFSC))
	acc.AccountNumber = strings.TrimSpace(acc.AccountNumber)
	switch {
	case acc.AccountHolder == "":
		return nil, fmt.Errorf("%w: account holder is required", ErrValidation)
	case !accountRe.MatchString(acc.AccountNumber):
		return nil, fmt.Errorf("%w: invalid account number", ErrValidation)
	case !ifscRe.MatchString(acc.IFSC):
		return nil, fmt.Errorf("%w: invalid IFSC", ErrValidation)
	}

	cur, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, notFound(err)
	}
	if cur.OnboardingStatus == model.OnboardingDocuments {
		return nil, fmt.Errorf("%w: submit documents first", ErrValidation)
	}
	updates := map[string]any{}
	if cur.OnboardingStatus == model.OnboardingBank {
		updates["onboarding_status"] = model.OnboardingTraining
	}
	acc.PartnerID = partnerID
	p, err := s.partners.SaveBankAccount(ctx, &acc, updates)
	return p, notFound(err)
}

func (s *PartnerService) CompleteTraining(ctx context.Context, partnerID, moduleID string) (*model.Partner, error) {
	if strings.TrimSpace(moduleID) == "" {
		return nil, fmt.Errorf("%w: moduleId is required", ErrValidation)
	}
	cur, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, notFound(err)
	}
	switch cur.OnboardingStatus {
	case model.OnboardingDocuments, model.OnboardingBank:
		return nil, fmt.Errorf("%w: complete documents and bank details first", ErrValidation)
	}
	updates := map[string]any{"training_completed": true}
	if cur.OnboardingStatus == model.OnboardingTraining {
		updates["onboarding_status"] = model.OnboardingActive
	}
	p, err := s.partners.Update(ctx, partnerID, updates)
	return p, notFound(err)
}

// notFound переводит отсутствие записи в ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
