// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/middleware"
	"p9e.in/sendreq/models"
)

type registerReq struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Roles      []string `json:"roles"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Roles) == 0 {
		req.Roles = []string{models.RoleStaff}
	}
	// hash pw
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}
	u := models.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Roles:        req.Roles,
		Department:   req.Department,
		Position:     req.Position,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "email already taken", http.StatusConflict)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}
type userPayload struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Roles      []string  `json:"roles"`
	Department string    `json:"department"`
	Position   string    `json:"position,omitempty"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	// Email matching is case-insensitive
	var u models.User
	if err := config.DB.Where("LOWER(email) = ?", strings.ToLower(req.Email)).First(&u).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !u.IsActive {
		http.Error(w, "account disabled", http.StatusForbidden)
		return
	}
	token, err := middleware.GenerateToken(u.ID.String(), u.Name, u.Email, u.Roles)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}
	out := loginResp{
		Token: token,
		User: userPayload{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Roles:      u.Roles,
			Department: u.Department,
			Position:   u.Position,
		},
	}
	json.NewEncoder(w).Encode(out)
}

func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	// 1) Extract token
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		http.Error(w, "Missing Bearer token", http.StatusUnauthorized)
		return
	}
	tokenString := strings.TrimPrefix(auth, "Bearer ")

	// 2) Parse & validate
	secret := []byte(os.Getenv("JWT_SECRET"))
	token, err := jwt.ParseWithClaims(tokenString, &middleware.Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	claims := token.Claims.(*middleware.Claims)

	// 3) Fetch user record
	var user models.User
	if err := config.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	resp := userPayload{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Roles:      user.Roles,
		Department: user.Department,
		Position:   user.Position,
	}
	json.NewEncoder(w).Encode(resp)
}
