package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/linesmerrill/avenue-police-api/config"
)

const uploadFolder = "arrest-photos"

// Upload signs direct browser uploads of mugshots to Cloudinary
type Upload struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
}

// UploadSignature is everything the client needs to post the file itself
type UploadSignature struct {
	Timestamp    string `json:"timestamp"`
	Signature    string `json:"signature"`
	APIKey       string `json:"apiKey"`
	CloudName    string `json:"cloudName"`
	UploadPreset string `json:"uploadPreset,omitempty"`
	Folder       string `json:"folder"`
}

// GenerateSignatureHandler generates a signature for Cloudinary uploads
func (u Upload) GenerateSignatureHandler(w http.ResponseWriter, r *http.Request) {
	if u.APISecret == "" || u.CloudName == "" {
		config.ErrorStatus("uploads are not configured", http.StatusServiceUnavailable, w, errors.New("missing cloudinary credentials"))
		return
	}

	sig, err := u.sign(time.Now())
	if err != nil {
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

func (u Upload) sign(now time.Time) (UploadSignature, error) {
	timestamp := strconv.FormatInt(now.Unix(), 10)
	params := url.Values{}
	params.Set("timestamp", timestamp)
	params.Set("folder", uploadFolder)
	if u.UploadPreset != "" {
		params.Set("upload_preset", u.UploadPreset)
	}

	signature, err := api.SignParameters(params, u.APISecret)
	if err != nil {
		return UploadSignature{}, err
	}
	return UploadSignature{
		Timestamp:    timestamp,
		Signature:    signature,
		APIKey:       u.APIKey,
		CloudName:    u.CloudName,
		UploadPreset: u.UploadPreset,
		Folder:       uploadFolder,
	}, nil
}
