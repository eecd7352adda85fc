package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/models"
)

// GetBranding returns the org-wide branding settings
// GET /api/v1/settings/branding
func GetBranding(w http.ResponseWriter, r *http.Request) {
	var branding models.BrandingSettings
	if err := config.DB.First(&branding).Error; err != nil {
		http.Error(w, "branding not configured", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(branding)
}

type brandingUpdateReq struct {
	LogoURL             *string `json:"logo_url,omitempty"`
	CopyrightText       *string `json:"copyright_text,omitempty"`
	ShowDemoCredentials *bool   `json:"show_demo_credentials,omitempty"`
}

// UpdateBranding updates logo, copyright text and the demo credential toggle
// PUT /api/v1/admin/settings/branding
func UpdateBranding(w http.ResponseWriter, r *http.Request) {
	var branding models.BrandingSettings
	if err := config.DB.First(&branding).Error; err != nil {
		http.Error(w, "branding not configured", http.StatusNotFound)
		return
	}

	var req brandingUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if req.LogoURL != nil {
		branding.LogoURL = *req.LogoURL
	}
	if req.CopyrightText != nil {
		branding.CopyrightText = *req.CopyrightText
	}
	if req.ShowDemoCredentials != nil {
		branding.ShowDemoCredentials = *req.ShowDemoCredentials
	}

	if err := config.DB.Save(&branding).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(branding)
}

// GetSystemLists returns every admin-managed dropdown list
// GET /api/v1/settings/lists
func GetSystemLists(w http.ResponseWriter, r *http.Request) {
	var lists []models.SystemList
	if err := config.DB.Order("name ASC").Find(&lists).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make(map[string][]string, len(lists))
	for _, list := range lists {
		out[list.Name] = list.Values
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GetSystemList returns one named dropdown list
// GET /api/v1/settings/lists/{name}
func GetSystemList(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var list models.SystemList
	if err := config.DB.Where("name = ?", name).First(&list).Error; err != nil {
		http.Error(w, "unknown list", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

type listUpdateReq struct {
	Values []string `json:"values"`
}

// UpdateSystemList replaces the values of one named list
// PUT /api/v1/admin/settings/lists/{name}
func UpdateSystemList(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var list models.SystemList
	if err := config.DB.Where("name = ?", name).First(&list).Error; err != nil {
		http.Error(w, "unknown list", http.StatusNotFound)
		return
	}

	var req listUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	list.Values = req.Values
	if err := config.DB.Save(&list).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
