package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"go.uber.org/zap"
)

type ResumeFile struct {
	Filename string
	Content  []byte
}

type CRMServiceInterface interface {
	DownloadResume(ctx context.Context, fileID string) (*ResumeFile, error)
}

// CRMService reads files from the upstream CRM. Record sync itself
// happens out of process; this client only fetches resume attachments
// for outreach emails and skill extraction.
type CRMService struct {
	client *resty.Client
	log    *zap.Logger
}

func NewCRMService(log *zap.Logger) *CRMService {
	cfg := config.LoadCRMConfig()
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIToken).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &CRMService{client: client, log: log}
}

func (s *CRMService) DownloadResume(ctx context.Context, fileID string) (*ResumeFile, error) {
	if fileID == "" {
		return nil, fmt.Errorf("file id is empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		Get("/files/" + fileID)
	if err != nil {
		return nil, fmt.Errorf("download resume %s: %w", fileID, err)
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("download resume %s: status %d", fileID, resp.StatusCode())
	}

	filename := resp.Header().Get("X-File-Name")
	if filename == "" {
		filename = fileID + ".pdf"
	}
	s.log.Debug("downloaded resume", zap.String("file_id", fileID), zap.Int("bytes", len(resp.Body())))
	return &ResumeFile{Filename: filename, Content: resp.Body()}, nil
}
