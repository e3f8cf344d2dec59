package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dias221467/Meal_Planner/internal/config"
	jwtutil "github.com/Dias221467/Meal_Planner/pkg/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// deviceTokenTTL is how long a paired device stays authorized before it has
// to pair again.
const deviceTokenTTL = 90 * 24 * time.Hour

type DeviceHandler struct {
	Config *config.Config
}

func NewDeviceHandler(cfg *config.Config) *DeviceHandler {
	return &DeviceHandler{Config: cfg}
}

// PairDeviceHandler exchanges the pairing code for a device token. The code
// is checked against a bcrypt hash from the configuration.
func (h *DeviceHandler) PairDeviceHandler(w http.ResponseWriter, r *http.Request) {
	if h.Config.PairingCodeHash == "" {
		http.Error(w, "Pairing is not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Code       string `json:"code"`
		DeviceName string `json:"deviceName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := bcrypt.CompareHashAndPassword([]byte(h.Config.PairingCodeHash), []byte(req.Code)); err != nil {
		http.Error(w, "Invalid pairing code", http.StatusUnauthorized)
		return
	}

	deviceID := uuid.NewString()
	token, err := jwtutil.GenerateToken(deviceID, req.DeviceName, h.Config.JWTSecret, deviceTokenTTL)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	logrus.WithFields(logrus.Fields{
		"deviceId":   deviceID,
		"deviceName": req.DeviceName,
	}).Info("Device paired")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":    token,
		"deviceId": deviceID,
	})
}
