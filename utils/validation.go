package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"storefront-admin/variantform"

	"github.com/go-playground/validator/v10"
)

// AllowedImageContentTypes lists the image types the storefront accepts for
// banners, variant images and article thumbnails.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MaxUploadSize is the maximum allowed file size for uploads (5MB).
const MaxUploadSize = 5 << 20 // 5MB

// ValidateFileUpload checks the declared content type and size of an upload.
func ValidateFileUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return errors.New("no file uploaded")
	}
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of 5MB", fh.Size)
	}

	contentType := fh.Header.Get("Content-Type")
	if !AllowedImageContentTypes[contentType] {
		return fmt.Errorf("invalid file type '%s'; allowed types: image/jpeg, image/png, image/webp, image/gif", contentType)
	}

	return nil
}

// SanitizeValidationError turns a binding error into a message that is safe to
// show in the dashboard. Go struct names never leak.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request body"
	}

	var messages []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be %s or greater", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}

	return strings.Join(messages, "; ")
}

// ReadUpload validates an uploaded image and reads it into memory so it can
// be previewed and later forwarded to the storefront API.
func ReadUpload(fh *multipart.FileHeader) (variantform.File, error) {
	if err := ValidateFileUpload(fh); err != nil {
		return variantform.File{}, err
	}

	file, err := fh.Open()
	if err != nil {
		return variantform.File{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return variantform.File{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return variantform.File{}, fmt.Errorf("file size exceeds maximum allowed size of 5MB")
	}

	return variantform.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
