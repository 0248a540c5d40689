package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/services"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	const op = "ProfileHandler.Get"

	var req models.UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, keyMessage, op, "Username is required.", err)
		return
	}
	setUsername(c, req.Username)

	p, err := h.svc.GetProfile(c.Request.Context(), req.Username)
	if err != nil {
		writeError(c, keyMessage, err, "Failed to get profile.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

var imageFields = map[string]services.ImageKind{
	"profileImage": services.ImageProfile,
	"bannerImage":  services.ImageBanner,
}

// Update takes multipart fields username and profileData (a JSON object
// string) plus optional profileImage and bannerImage files.
func (h *ProfileHandler) Update(c *gin.Context) {
	const op = "ProfileHandler.Update"

	username := c.PostForm("username")
	if strings.TrimSpace(username) == "" {
		badRequest(c, keyMessage, op, "Username is required.", nil)
		return
	}
	setUsername(c, username)

	var update models.ProfileUpdate
	if raw := strings.TrimSpace(c.PostForm("profileData")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &update); err != nil {
			badRequest(c, keyMessage, op, "Invalid profile data.", err)
			return
		}
	}

	var images []services.ImageUpload
	for field, kind := range imageFields {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		img, closer, err := openImage(fh, kind)
		if err != nil {
			badRequest(c, keyMessage, op, "Failed to read uploaded image.", err)
			return
		}
		defer closer.Close()
		images = append(images, img)
	}

	if err := h.svc.UpdateProfile(c.Request.Context(), username, update, images...); err != nil {
		writeError(c, keyMessage, err, "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Profile updated successfully."})
}

func openImage(fh *multipart.FileHeader, kind services.ImageKind) (services.ImageUpload, io.Closer, error) {
	ct, r, closer, err := sniffedFile(fh)
	if err != nil {
		return services.ImageUpload{}, nil, err
	}
	return services.ImageUpload{
		Kind:        kind,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
		Body:        r,
	}, closer, nil
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	const op = "ProfileHandler.Delete"

	var req models.UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, keyMessage, op, "Username is required.", err)
		return
	}
	setUsername(c, req.Username)

	if err := h.svc.DeleteAccount(c.Request.Context(), req.Username); err != nil {
		writeError(c, keyMessage, err, "Failed to delete account.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Account deleted successfully."})
}
