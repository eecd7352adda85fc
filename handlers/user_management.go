package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/models"
)

// GetAllUsers lists users for the admin dashboard and the authorizer picker
// GET /api/v1/users
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	page := 1
	limit := 50

	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		limit = l
	}
	offset := (page - 1) * limit

	query := config.DB.Where("is_active = ?", true)
	if role := r.URL.Query().Get("role"); role != "" {
		// JSONB containment on the roles array
		query = query.Where("roles @> ?", `["`+role+`"]`)
	}

	var users []models.User
	if err := query.Limit(limit).Offset(offset).Order("name ASC").Find(&users).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var total int64
	if err := config.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		http.Error(w, "DB count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]userPayload, len(users))
	for i, u := range users {
		out[i] = userPayload{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Roles:      u.Roles,
			Department: u.Department,
			Position:   u.Position,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"users": out,
		"total": total,
		"page":  page,
	})
}

type userUpdateReq struct {
	Name              *string   `json:"name,omitempty"`
	Email             *string   `json:"email,omitempty"`
	Password          *string   `json:"password,omitempty"`
	Roles             *[]string `json:"roles,omitempty"`
	Department        *string   `json:"department,omitempty"`
	Position          *string   `json:"position,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	IsActive          *bool     `json:"is_active,omitempty"`
}

func applyUserUpdates(u *models.User, req userUpdateReq) error {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = strings.ToLower(*req.Email)
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
	}
	if req.Roles != nil {
		u.Roles = *req.Roles
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.Position != nil {
		u.Position = *req.Position
	}
	if req.ProfilePictureURL != nil {
		u.ProfilePictureURL = *req.ProfilePictureURL
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	return nil
}

// UpdateUser lets an admin edit any user record
// PUT /api/v1/admin/users/{id}
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	var req userUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := applyUserUpdates(&user, req); err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	if err := config.DB.Save(&user).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userPayload{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Roles:      user.Roles,
		Department: user.Department,
		Position:   user.Position,
	})
}

// GetProfile returns the caller's own profile
// GET /api/v1/profile
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":                  user.ID,
		"name":                user.Name,
		"email":               user.Email,
		"roles":               user.Roles,
		"department":          user.Department,
		"position":            user.Position,
		"profile_picture_url": user.ProfilePictureURL,
	})
}

// UpdateProfile lets users edit their own name, picture and password.
// Roles, department and email stay admin-managed.
// PUT /api/v1/profile
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req userUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	selfEdit := userUpdateReq{
		Name:              req.Name,
		Password:          req.Password,
		ProfilePictureURL: req.ProfilePictureURL,
	}
	if err := applyUserUpdates(user, selfEdit); err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	if err := config.DB.Save(user).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
