// File: handlers/doctor.go
package handlers

import (
	"context"
	"net/http"

	"femicare/middleware"
	"femicare/models"
	"femicare/services/doctor"
	"femicare/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler serves professional-profile endpoints and the public doctor
// directory.
type DoctorHandler struct {
	DoctorService doctor.Service
	Storage       storage.StorageService
}

// MyProfileHandler handles GET /doctors/me.
func (h *DoctorHandler) MyProfileHandler(c *gin.Context) {
	doctorID := middleware.CallerID(c)
	profile, err := h.DoctorService.GetProfile(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler handles PUT /doctors/me.
func (h *DoctorHandler) UpdateProfileHandler(c *gin.Context) {
	doctorID := middleware.CallerID(c)
	var upd models.DoctorProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	profile, err := h.DoctorService.UpdateProfile(c.Request.Context(), doctorID, upd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadCertificateHandler handles POST /doctors/me/certificate. The file
// lands in Cloudinary and its URL is attached to the profile.
func (h *DoctorHandler) UploadCertificateHandler(c *gin.Context) {
	h.upload(c, "femicare/certificates", h.DoctorService.AttachCertificate)
}

// UploadPhotoHandler handles POST /doctors/me/photo.
func (h *DoctorHandler) UploadPhotoHandler(c *gin.Context) {
	h.upload(c, "femicare/photos", h.DoctorService.AttachPhoto)
}

func (h *DoctorHandler) upload(c *gin.Context, folder string, attach func(ctx context.Context, doctorID, url string) error) {
	logger := getLogger(c)
	doctorID := middleware.CallerID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file upload is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read the uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadFile(c.Request.Context(), file, folder)
	if err != nil {
		logger.Error("upload failed", zap.String("doctorId", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed, please try again"})
		return
	}
	if err := attach(c.Request.Context(), doctorID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save the uploaded file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ListDoctorsHandler handles GET /doctors: the public directory of verified
// doctors patients can book.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	listings, err := h.DoctorService.ListBookable(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": listings})
}
