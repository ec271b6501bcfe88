package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cheff-guio/internal/encryption"
	app_errors "cheff-guio/internal/errors"
	"cheff-guio/internal/models"
	"cheff-guio/internal/store"
	"cheff-guio/internal/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TotalOnboardingSteps is the number of steps in the configuration workflow:
// restaurant info, areas, menu, whatsapp, completion.
const TotalOnboardingSteps = 5

const sessionKeyPrefix = "onboarding:session:"

// RestaurantInfoDraft holds the step 1 draft fields.
type RestaurantInfoDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	LogoURL     string `json:"logo_url"`
}

// RestaurantInfoPatch carries a partial update to the restaurant info draft.
// Only non-nil fields are applied.
type RestaurantInfoPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	LogoURL     *string `json:"logo_url"`
}

// AreaDraft is one element of the step 2 area list.
type AreaDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxCapacity int    `json:"max_capacity"`
	MaxTables   int    `json:"max_tables"`
	IsActive    bool   `json:"is_active"`
	Order       int    `json:"order"`
}

// MenuCategoryDraft is one element of the step 3 category list.
type MenuCategoryDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// MenuItemDraft is one element of the step 3 item list. CategoryIndex refers to
// the position of the owning category in the draft category list.
type MenuItemDraft struct {
	CategoryIndex int    `json:"category_index"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"price_cents"`
	PhotoURL      string `json:"photo_url"`
}

// WhatsappDraft holds the step 4 draft fields.
type WhatsappDraft struct {
	PhoneNumber  string `json:"phone_number"`
	BusinessName string `json:"business_name"`
	AccessToken  string `json:"access_token"`
}

// WhatsappPatch carries a partial update to the whatsapp draft.
type WhatsappPatch struct {
	PhoneNumber  *string `json:"phone_number"`
	BusinessName *string `json:"business_name"`
	AccessToken  *string `json:"access_token"`
}

// OnboardingDraft is the per-step mutable data owned by a session until persisted.
type OnboardingDraft struct {
	RestaurantInfo RestaurantInfoDraft `json:"restaurant_info"`
	Areas          []AreaDraft         `json:"areas"`
	MenuCategories []MenuCategoryDraft `json:"menu_categories"`
	MenuItems      []MenuItemDraft     `json:"menu_items"`
	Whatsapp       WhatsappDraft       `json:"whatsapp"`
	MenuPhotos     []string            `json:"menu_photos"`
}

// StepDraftPatch is the write shape accepted by SetStepDraft. Scalar
// substructures merge field-wise; list substructures replace wholesale.
type StepDraftPatch struct {
	RestaurantInfo *RestaurantInfoPatch `json:"restaurant_info"`
	Areas          *[]AreaDraft         `json:"areas"`
	MenuCategories *[]MenuCategoryDraft `json:"menu_categories"`
	MenuItems      *[]MenuItemDraft     `json:"menu_items"`
	Whatsapp       *WhatsappPatch       `json:"whatsapp"`
	MenuPhotos     *[]string            `json:"menu_photos"`
}

// OnboardingSession is the explicit draft-holding workflow state. It lives in
// the key-value store under a TTL and is disposed on completion. RestaurantID
// stays nil until the first checkpoint creates the restaurant row.
type OnboardingSession struct {
	ID           string          `json:"id"`
	RestaurantID *uint           `json:"restaurant_id"`
	CurrentStep  int             `json:"current_step"`
	TotalSteps   int             `json:"total_steps"`
	Completed    bool            `json:"completed"`
	Draft        OnboardingDraft `json:"draft"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OnboardingService drives the guided configuration workflow: a linear wizard
// whose forward transitions are gated per step and checkpointed to the database.
type OnboardingService struct {
	db            *gorm.DB
	store         store.Store
	encryptionSvc encryption.Service
	sessionTTL    time.Duration
	dbTimeout     time.Duration
}

// NewOnboardingService constructs an OnboardingService.
func NewOnboardingService(db *gorm.DB, s store.Store, encryptionSvc encryption.Service, configManager types.ConfigManager) *OnboardingService {
	onboardingCfg := configManager.GetOnboardingConfig()
	serverCfg := configManager.GetEffectiveServerConfig()
	return &OnboardingService{
		db:            db,
		store:         s,
		encryptionSvc: encryptionSvc,
		sessionTTL:    time.Duration(onboardingCfg.SessionTTLHours) * time.Hour,
		dbTimeout:     time.Duration(serverCfg.DBCallTimeout) * time.Second,
	}
}

func (s *OnboardingService) dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.dbTimeout)
}

// StartSession creates a fresh session. When restaurantID is given the session
// resumes that restaurant's configuration: the saved step and row data are
// loaded back into the draft.
func (s *OnboardingService) StartSession(restaurantID *uint) (*OnboardingSession, error) {
	now := time.Now()
	session := &OnboardingSession{
		ID:          uuid.NewString(),
		CurrentStep: 1,
		TotalSteps:  TotalOnboardingSteps,
		Draft:       OnboardingDraft{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if restaurantID != nil {
		if err := s.loadRestaurantIntoSession(session, *restaurantID); err != nil {
			return nil, err
		}
	}

	if err := s.persistSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// loadRestaurantIntoSession rebuilds the draft from persisted rows so a
// returning user resumes where they left off.
func (s *OnboardingService) loadRestaurantIntoSession(session *OnboardingSession, restaurantID uint) error {
	ctx, cancel := s.dbContext()
	defer cancel()

	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, restaurantID).Error; err != nil {
		return NewI18nError(app_errors.ParseDBError(err), "restaurant.not_found", nil)
	}

	session.RestaurantID = &restaurant.ID
	session.CurrentStep = clampStep(restaurant.OnboardingStep)
	session.Draft.RestaurantInfo = RestaurantInfoDraft{
		Name:        restaurant.Name,
		Description: restaurant.Description,
		Address:     restaurant.Address,
		Phone:       restaurant.Phone,
		LogoURL:     restaurant.LogoURL,
	}

	var areas []models.RestaurantArea
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("display_order asc").Find(&areas).Error; err != nil {
		return NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}
	for _, area := range areas {
		session.Draft.Areas = append(session.Draft.Areas, AreaDraft{
			Name:        area.Name,
			Description: area.Description,
			MaxCapacity: area.MaxCapacity,
			MaxTables:   area.MaxTables,
			IsActive:    area.IsActive,
			Order:       area.DisplayOrder,
		})
	}

	var categories []models.MenuCategory
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("display_order asc").Find(&categories).Error; err != nil {
		return NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}
	categoryIndexByID := make(map[uint]int, len(categories))
	for i, category := range categories {
		categoryIndexByID[category.ID] = i
		session.Draft.MenuCategories = append(session.Draft.MenuCategories, MenuCategoryDraft{
			Name:        category.Name,
			Description: category.Description,
			Order:       category.DisplayOrder,
		})
	}

	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("id asc").Find(&items).Error; err != nil {
		return NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}
	for _, item := range items {
		idx, ok := categoryIndexByID[item.CategoryID]
		if !ok {
			continue
		}
		session.Draft.MenuItems = append(session.Draft.MenuItems, MenuItemDraft{
			CategoryIndex: idx,
			Name:          item.Name,
			Description:   item.Description,
			PriceCents:    item.PriceCents,
			PhotoURL:      item.PhotoURL,
		})
	}

	var integration models.WhatsappIntegration
	err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&integration).Error
	if err == nil {
		token := integration.AccessToken
		if token != "" {
			if decrypted, decErr := s.encryptionSvc.Decrypt(token); decErr == nil {
				token = decrypted
			} else {
				logrus.WithError(decErr).Warn("Failed to decrypt whatsapp access token, leaving draft token empty")
				token = ""
			}
		}
		session.Draft.Whatsapp = WhatsappDraft{
			PhoneNumber:  integration.PhoneNumber,
			BusinessName: integration.BusinessName,
			AccessToken:  token,
		}
	} else if !isNotFound(err) {
		return NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}

	return nil
}

// GetSession loads a session from the store.
func (s *OnboardingService) GetSession(sessionID string) (*OnboardingSession, error) {
	if sessionID == "" {
		return nil, NewI18nError(app_errors.NewValidationError("session id is required"), "validation.invalid_session_id", nil)
	}

	raw, err := s.store.Get(sessionKeyPrefix + sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NewI18nError(app_errors.NewNotFoundError("onboarding session not found"), "onboarding.session_not_found", nil)
		}
		return nil, NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to load onboarding session"), "error", nil)
	}

	var session OnboardingSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "corrupt onboarding session"), "error", nil)
	}
	return &session, nil
}

// SetStepDraft merges partial data into the draft for the given step's
// substructure. No validation happens at write time; gating is CanProceed's job.
func (s *OnboardingService) SetStepDraft(sessionID string, step int, patch StepDraftPatch) (*OnboardingSession, error) {
	if step < 1 || step > TotalOnboardingSteps {
		return nil, NewI18nError(app_errors.NewValidationError(fmt.Sprintf("step must be between 1 and %d", TotalOnboardingSteps)), "validation.invalid_step", nil)
	}

	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	applyPatch(&session.Draft, patch)
	session.UpdatedAt = time.Now()

	if err := s.persistSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// applyPatch merges non-nil patch fields into the draft. List substructures
// replace wholesale; area order is reassigned densely to match list position.
func applyPatch(draft *OnboardingDraft, patch StepDraftPatch) {
	if patch.RestaurantInfo != nil {
		p := patch.RestaurantInfo
		if p.Name != nil {
			draft.RestaurantInfo.Name = *p.Name
		}
		if p.Description != nil {
			draft.RestaurantInfo.Description = *p.Description
		}
		if p.Address != nil {
			draft.RestaurantInfo.Address = *p.Address
		}
		if p.Phone != nil {
			draft.RestaurantInfo.Phone = *p.Phone
		}
		if p.LogoURL != nil {
			draft.RestaurantInfo.LogoURL = *p.LogoURL
		}
	}
	if patch.Areas != nil {
		draft.Areas = *patch.Areas
		for i := range draft.Areas {
			draft.Areas[i].Order = i
		}
	}
	if patch.MenuCategories != nil {
		draft.MenuCategories = *patch.MenuCategories
		for i := range draft.MenuCategories {
			draft.MenuCategories[i].Order = i
		}
	}
	if patch.MenuItems != nil {
		draft.MenuItems = *patch.MenuItems
	}
	if patch.Whatsapp != nil {
		p := patch.Whatsapp
		if p.PhoneNumber != nil {
			draft.Whatsapp.PhoneNumber = *p.PhoneNumber
		}
		if p.BusinessName != nil {
			draft.Whatsapp.BusinessName = *p.BusinessName
		}
		if p.AccessToken != nil {
			draft.Whatsapp.AccessToken = *p.AccessToken
		}
	}
	if patch.MenuPhotos != nil {
		draft.MenuPhotos = *patch.MenuPhotos
	}
}

// CanProceed reports whether the given step's completeness gate passes.
func (s *OnboardingService) CanProceed(session *OnboardingSession, step int) bool {
	switch step {
	case 1:
		info := session.Draft.RestaurantInfo
		return strings.TrimSpace(info.Name) != "" &&
			strings.TrimSpace(info.Address) != "" &&
			strings.TrimSpace(info.Phone) != ""
	case 2:
		return len(session.Draft.Areas) > 0
	case 3:
		return len(session.Draft.MenuCategories) > 0
	case 4:
		return strings.TrimSpace(session.Draft.Whatsapp.PhoneNumber) != ""
	case 5:
		return true
	}
	return false
}

// NextStep checkpoints the draft and advances one step. On the last step it
// records completion and disposes the session. A failed checkpoint leaves
// CurrentStep unchanged so the operation is retryable.
func (s *OnboardingService) NextStep(sessionID string) (*OnboardingSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if !s.CanProceed(session, session.CurrentStep) {
		return nil, NewI18nError(app_errors.NewValidationError("current step is incomplete"), "onboarding.step_blocked", nil)
	}

	if session.CurrentStep >= session.TotalSteps {
		if err := s.saveProgress(session, session.CurrentStep, true); err != nil {
			return nil, err
		}
		session.Completed = true
		if err := s.store.Delete(sessionKeyPrefix + session.ID); err != nil {
			logrus.WithError(err).Warn("Failed to dispose completed onboarding session")
		}
		return session, nil
	}

	// The checkpoint records the step being entered so a resumed session
	// lands there, not on the step just left.
	if err := s.saveProgress(session, session.CurrentStep+1, false); err != nil {
		return nil, err
	}

	session.CurrentStep++
	session.UpdatedAt = time.Now()
	if err := s.persistSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// PreviousStep moves one step back. No persistence, no validation: a user may
// always retreat. From step 1 it is a no-op.
func (s *OnboardingService) PreviousStep(sessionID string) (*OnboardingSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.CurrentStep > 1 {
		session.CurrentStep--
		session.UpdatedAt = time.Now()
		if err := s.persistSession(session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// GoToStep jumps directly to a step. Navigation is intentionally permissive:
// intervening steps need not be complete, only the bounds are enforced.
func (s *OnboardingService) GoToStep(sessionID string, step int) (*OnboardingSession, error) {
	if step < 1 || step > TotalOnboardingSteps {
		return nil, NewI18nError(app_errors.NewInvalidTransitionError(fmt.Sprintf("step must be between 1 and %d", TotalOnboardingSteps)), "validation.invalid_step", nil)
	}

	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.CurrentStep = step
	session.UpdatedAt = time.Now()
	if err := s.persistSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveProgress checkpoints the current draft without advancing the step.
func (s *OnboardingService) SaveProgress(sessionID string) (*OnboardingSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.saveProgress(session, session.CurrentStep, false); err != nil {
		return nil, err
	}

	session.UpdatedAt = time.Now()
	if err := s.persistSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResetOnboarding clears all draft state and returns to step 1. The session id
// is kept so the client handle stays valid.
func (s *OnboardingService) ResetOnboarding(sessionID string) (*OnboardingSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.Draft = OnboardingDraft{}
	session.CurrentStep = 1
	session.Completed = false
	session.UpdatedAt = time.Now()

	if err := s.persistSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// saveProgress upserts the restaurant row and replaces its child rows from the
// draft in one transaction. Creates the restaurant on first save and assigns
// session.RestaurantID. The given step is recorded as the resume point; when
// complete is true the completion flag is recorded too.
func (s *OnboardingService) saveProgress(session *OnboardingSession, step int, complete bool) error {
	ctx, cancel := s.dbContext()
	defer cancel()

	accessToken := session.Draft.Whatsapp.AccessToken
	if accessToken != "" {
		encrypted, err := s.encryptionSvc.Encrypt(accessToken)
		if err != nil {
			return NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to encrypt access token"), "error", nil)
		}
		accessToken = encrypted
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurant := models.Restaurant{
			Name:           session.Draft.RestaurantInfo.Name,
			Description:    session.Draft.RestaurantInfo.Description,
			Address:        session.Draft.RestaurantInfo.Address,
			Phone:          session.Draft.RestaurantInfo.Phone,
			LogoURL:        session.Draft.RestaurantInfo.LogoURL,
			OnboardingStep: step,
		}
		if complete {
			restaurant.OnboardingCompleted = true
		}

		if session.RestaurantID == nil {
			if err := tx.Create(&restaurant).Error; err != nil {
				return err
			}
			session.RestaurantID = &restaurant.ID
		} else {
			restaurant.ID = *session.RestaurantID
			updates := map[string]any{
				"name":            restaurant.Name,
				"description":     restaurant.Description,
				"address":         restaurant.Address,
				"phone":           restaurant.Phone,
				"logo_url":        restaurant.LogoURL,
				"onboarding_step": restaurant.OnboardingStep,
			}
			if complete {
				updates["onboarding_completed"] = true
			}
			result := tx.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		restaurantID := *session.RestaurantID

		// Child rows are replaced wholesale; the draft is the source of truth.
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.RestaurantArea{}).Error; err != nil {
			return err
		}

		for i, area := range session.Draft.Areas {
			row := models.RestaurantArea{
				RestaurantID: restaurantID,
				Name:         area.Name,
				Description:  area.Description,
				MaxCapacity:  area.MaxCapacity,
				MaxTables:    area.MaxTables,
				IsActive:     area.IsActive,
				DisplayOrder: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		categoryIDs := make([]uint, len(session.Draft.MenuCategories))
		for i, category := range session.Draft.MenuCategories {
			row := models.MenuCategory{
				RestaurantID: restaurantID,
				Name:         category.Name,
				Description:  category.Description,
				DisplayOrder: i,
				IsActive:     true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			categoryIDs[i] = row.ID
		}

		for _, item := range session.Draft.MenuItems {
			if item.CategoryIndex < 0 || item.CategoryIndex >= len(categoryIDs) {
				continue
			}
			row := models.MenuItem{
				RestaurantID: restaurantID,
				CategoryID:   categoryIDs[item.CategoryIndex],
				Name:         item.Name,
				Description:  item.Description,
				PriceCents:   item.PriceCents,
				PhotoURL:     item.PhotoURL,
				IsActive:     true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if session.Draft.Whatsapp.PhoneNumber != "" {
			if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.WhatsappIntegration{}).Error; err != nil {
				return err
			}
			integration := models.WhatsappIntegration{
				RestaurantID: restaurantID,
				PhoneNumber:  session.Draft.Whatsapp.PhoneNumber,
				BusinessName: session.Draft.Whatsapp.BusinessName,
				AccessToken:  accessToken,
			}
			if err := tx.Create(&integration).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("session_id", session.ID).Error("Onboarding checkpoint failed")
		return NewI18nError(app_errors.ParseDBError(err), "error", nil)
	}
	return nil
}

// persistSession serializes the session into the store under its TTL.
func (s *OnboardingService) persistSession(session *OnboardingSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to serialize onboarding session"), "error", nil)
	}
	if err := s.store.Set(sessionKeyPrefix+session.ID, raw, s.sessionTTL); err != nil {
		return NewI18nError(app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to persist onboarding session"), "error", nil)
	}
	return nil
}

func clampStep(step int) int {
	if step < 1 {
		return 1
	}
	if step > TotalOnboardingSteps {
		return TotalOnboardingSteps
	}
	return step
}

func isNotFound(err error) bool {
	parsed := app_errors.ParseDBError(err)
	return parsed != nil && parsed.Code == app_errors.ErrResourceNotFound.Code
}
