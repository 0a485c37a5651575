package application

import (
	"context"
	"fmt"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

// ResolveDownload exchanges a download token for a short-lived signed asset
// URL. The count increment happens inside a single conditional update, so
// concurrent requests for the last remaining slot cannot both win.
func (s *Service) ResolveDownload(ctx context.Context, req DownloadRequest) (DownloadResponse, error) {
	if !domain.ValidDownloadToken(req.DownloadToken) {
		return DownloadResponse{}, fmt.Errorf("%w: malformed download token", domain.ErrInvalidInput)
	}

	now := s.nowFn()
	link, err := s.downloads.ConsumeByToken(ctx, req.DownloadToken, now)
	if err != nil {
		return DownloadResponse{}, err
	}

	signedURL, err := s.urlSigner.SignedURL(s.cfg.ProductAsset, now.Add(s.cfg.SignedURLTTL))
	if err != nil {
		return DownloadResponse{}, fmt.Errorf("sign download url: %w", err)
	}

	return DownloadResponse{
		Success:            true,
		DownloadURL:        signedURL,
		RemainingDownloads: link.Remaining(),
		ExpiresAt:          link.ExpiresAt,
	}, nil
}
