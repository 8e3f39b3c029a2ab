package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skander-fourati/zawali/internal/models"
)

// --- Reference entity handlers ---

// referenceRequest is the shared write payload for categories, accounts, and trips.
type referenceRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (req *referenceRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if len(req.Name) > 128 {
		return "name must be 128 characters or fewer"
	}
	return ""
}

// --- Categories ---

func (s *Server) handleCategoriesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleCategoryList(w, r)
	case http.MethodPost:
		s.handleCategoryCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) routeCategories(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/categories/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "category id is required in path")
		return
	}
	switch r.Method {
	case http.MethodPut:
		s.handleCategoryUpdate(w, r, id)
	case http.MethodDelete:
		s.handleCategoryDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	categories, err := s.app.Storage.CategoryStore().List(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list categories")
		WriteError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req referenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	now := time.Now()
	category := &models.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.app.Storage.CategoryStore().Create(r.Context(), category); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create category")
		WriteError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	WriteJSON(w, http.StatusCreated, category)
}

// lookupCategory finds a category by id in the user's list.
func (s *Server) lookupCategory(r *http.Request, userID, id string) (*models.Category, error) {
	categories, err := s.app.Storage.CategoryStore().List(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *Server) handleCategoryUpdate(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req referenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	category, err := s.lookupCategory(r, userID, id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	if category == nil {
		WriteError(w, http.StatusNotFound, "category not found")
		return
	}
	if models.ProtectedCategories[category.Name] && req.Name != category.Name {
		WriteError(w, http.StatusForbidden, fmt.Sprintf("category '%s' cannot be renamed", category.Name))
		return
	}

	category.Name = req.Name
	category.Color = req.Color
	category.UpdatedAt = time.Now()

	if err := s.app.Storage.CategoryStore().Update(r.Context(), category); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to update category")
		WriteError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	WriteJSON(w, http.StatusOK, category)
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	category, err := s.lookupCategory(r, userID, id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	if category == nil {
		WriteError(w, http.StatusNotFound, "category not found")
		return
	}
	if models.ProtectedCategories[category.Name] {
		WriteError(w, http.StatusForbidden, fmt.Sprintf("category '%s' cannot be deleted", category.Name))
		return
	}

	if err := s.app.Storage.CategoryStore().Delete(r.Context(), userID, id); err != nil {
		WriteError(w, http.StatusNotFound, "category not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted", "id": id})
}

// --- Accounts ---

func (s *Server) handleAccountsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAccountList(w, r)
	case http.MethodPost:
		s.handleAccountCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) routeAccounts(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "account id is required in path")
		return
	}
	switch r.Method {
	case http.MethodPut:
		s.handleAccountUpdate(w, r, id)
	case http.MethodDelete:
		s.handleAccountDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	accounts, err := s.app.Storage.AccountStore().List(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list accounts")
		WriteError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

func (s *Server) handleAccountCreate(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req referenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	now := time.Now()
	account := &models.Account{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.app.Storage.AccountStore().Create(r.Context(), account); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create account")
		WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	WriteJSON(w, http.StatusCreated, account)
}

func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req referenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	account := &models.Account{
		ID:        id,
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		UpdatedAt: time.Now(),
	}

	if err := s.app.Storage.AccountStore().Update(r.Context(), account); err != nil {
		WriteError(w, http.StatusNotFound, "account not found")
		return
	}

	WriteJSON(w, http.StatusOK, account)
}

func (s *Server) handleAccountDelete(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := s.app.Storage.AccountStore().Delete(r.Context(), userID, id); err != nil {
		WriteError(w, http.StatusNotFound, "account not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted", "id": id})
}

// --- Trips ---

func (s *Server) handleTripsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTripList(w, r)
	case http.MethodPost:
		s.handleTripCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) routeTrips(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/trips/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "trip id is required in path")
		return
	}
	switch r.Method {
	case http.MethodPut:
		s.handleTripUpdate(w, r, id)
	case http.MethodDelete:
		s.handleTripDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleTripList(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	trips, err := s.app.Storage.TripStore().List(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list trips")
		WriteError(w, http.StatusInternalServerError, "failed to list trips")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"trips": trips})
}

func (s *Server) handleTripCreate(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req referenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	now := time.Now()
	trip := &models.Trip{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.app.Storage.TripStore().Create(r.Context(), trip); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create trip")
		WriteError(w, http.StatusInternalServerError, "failed to create trip")
		return
	}

	WriteJSON(w, http.StatusCreated, trip)
}

func (s *Server) handleTripUpdate(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req referenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	trip := &models.Trip{
		ID:        id,
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		UpdatedAt: time.Now(),
	}

	if err := s.app.Storage.TripStore().Update(r.Context(), trip); err != nil {
		WriteError(w, http.StatusNotFound, "trip not found")
		return
	}

	WriteJSON(w, http.StatusOK, trip)
}

func (s *Server) handleTripDelete(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := s.app.Storage.TripStore().Delete(r.Context(), userID, id); err != nil {
		WriteError(w, http.StatusNotFound, "trip not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted", "id": id})
}

// --- Family members ---

func (s *Server) handleFamilyMembersRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleFamilyMemberList(w, r)
	case http.MethodPost:
		s.handleFamilyMemberCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) routeFamilyMembers(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/family-members/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "family member id is required in path")
		return
	}
	switch r.Method {
	case http.MethodPut:
		s.handleFamilyMemberUpdate(w, r, id)
	case http.MethodDelete:
		s.handleFamilyMemberDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

// familyMemberRequest extends the reference payload with settlement status.
type familyMemberRequest struct {
	referenceRequest
	Status models.FamilyMemberStatus `json:"status"`
}

func (req *familyMemberRequest) validateStatus() string {
	if req.Status == "" {
		return ""
	}
	if !models.ValidFamilyMemberStatus(req.Status) {
		return fmt.Sprintf("unknown status '%s'", req.Status)
	}
	return ""
}

func (s *Server) handleFamilyMemberList(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	members, err := s.app.Storage.FamilyMemberStore().List(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list family members")
		WriteError(w, http.StatusInternalServerError, "failed to list family members")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"family_members": members})
}

func (s *Server) handleFamilyMemberCreate(w http.ResponseWriter, r *http.Request) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req familyMemberRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}
	if errMsg := req.validateStatus(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	status := req.Status
	if status == "" {
		status = models.FamilyMemberActive
	}

	now := time.Now()
	member := &models.FamilyMember{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.app.Storage.FamilyMemberStore().Create(r.Context(), member); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create family member")
		WriteError(w, http.StatusInternalServerError, "failed to create family member")
		return
	}

	WriteJSON(w, http.StatusCreated, member)
}

func (s *Server) handleFamilyMemberUpdate(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	var req familyMemberRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if errMsg := req.validate(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}
	if errMsg := req.validateStatus(); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	status := req.Status
	if status == "" {
		status = models.FamilyMemberActive
	}

	member := &models.FamilyMember{
		ID:        id,
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		Status:    status,
		UpdatedAt: time.Now(),
	}

	if err := s.app.Storage.FamilyMemberStore().Update(r.Context(), member); err != nil {
		WriteError(w, http.StatusNotFound, "family member not found")
		return
	}

	WriteJSON(w, http.StatusOK, member)
}

func (s *Server) handleFamilyMemberDelete(w http.ResponseWriter, r *http.Request, id string) {
	userID := RequireUser(w, r)
	if userID == "" {
		return
	}

	if err := s.app.Storage.FamilyMemberStore().Delete(r.Context(), userID, id); err != nil {
		WriteError(w, http.StatusNotFound, "family member not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted", "id": id})
}
