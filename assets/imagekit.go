// Package assets talks to the external image asset host. The service
// only needs two narrow operations: upload a file, delete it by id.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sweetshop/config"
)

// MaxImageSize caps uploads at 5 MiB.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func AllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

type UploadResult struct {
	URL    string
	FileID string
}

type Store interface {
	Upload(ctx context.Context, fileName string, data []byte) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}

// ImageKit implements Store against the ImageKit REST API.
type ImageKit struct {
	privateKey string
	uploadURL  string
	apiURL     string
	client     *http.Client
	log        *zap.Logger
}

func NewImageKit(cfg config.ImageKitConfig, log *zap.Logger) *ImageKit {
	return &ImageKit{
		privateKey: cfg.PrivateKey,
		uploadURL:  cfg.UploadURL,
		apiURL:     cfg.APIURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

type uploadResponse struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

// Upload sends the file as a multipart request. The stored name gets
// a uuid suffix so repeated uploads for the same sweet never collide.
func (ik *ImageKit) Upload(ctx context.Context, fileName string, data []byte) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err = part.Write(data); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"fileName":          fmt.Sprintf("%s_%s", uuid.NewString(), fileName),
		"folder":            "/sweets/",
		"useUniqueFileName": "true",
	}
	for k, v := range fields {
		if err = writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ik.uploadURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(ik.privateKey, "")

	res, err := ik.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("asset upload failed: status %d: %s", res.StatusCode, payload)
	}

	var parsed uploadResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ik.log.Info("uploaded image asset", zap.String("file_id", parsed.FileID))
	return &UploadResult{URL: parsed.URL, FileID: parsed.FileID}, nil
}

func (ik *ImageKit) Delete(ctx context.Context, fileID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/%s", ik.apiURL, fileID), nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(ik.privateKey, "")

	res, err := ik.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return fmt.Errorf("asset delete failed: status %d", res.StatusCode)
	}
	return nil
}
