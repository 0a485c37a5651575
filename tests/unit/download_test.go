package unit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

func TestResolveDownloadIssuesSignedURL(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	link := seedDeliveredOrder(t, f, 5, time.Now().UTC().Add(7*24*time.Hour))

	res, err := f.service.ResolveDownload(ctx, application.DownloadRequest{DownloadToken: link.Token})
	if err != nil {
		t.Fatalf("resolve download failed: %v", err)
	}
	if !res.Success || !strings.Contains(res.DownloadURL, "/assets/luxe-masterclass.zip") {
		t.Fatalf("expected signed asset url, got %+v", res)
	}
	if res.RemainingDownloads != 4 {
		t.Fatalf("expected 4 remaining after first issue, got %d", res.RemainingDownloads)
	}
	if f.orders.linkByToken(link.Token).LastAccessed.IsZero() {
		t.Fatalf("expected consumption to stamp last access time")
	}
}

func TestResolveDownloadRejectsMalformedToken(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	for _, token := range []string{"", "short", strings.Repeat("G", 64), strings.Repeat("ab", 33)} {
		if _, err := f.service.ResolveDownload(ctx, application.DownloadRequest{DownloadToken: token}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("token %q: expected invalid input, got %v", token, err)
		}
	}
}

func TestResolveDownloadUnknownToken(t *testing.T) {
	t.Parallel()

	f := newFixture()
	token := strings.Repeat("cd", 32)

	if _, err := f.service.ResolveDownload(context.Background(), application.DownloadRequest{DownloadToken: token}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveDownloadExpiredDoesNotIncrement(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	link := seedDeliveredOrder(t, f, 5, time.Now().UTC().Add(-time.Hour))

	if _, err := f.service.ResolveDownload(ctx, application.DownloadRequest{DownloadToken: link.Token}); !errors.Is(err, domain.ErrDownloadExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}

	stored, err := f.orders.GetByToken(ctx, link.Token)
	if err != nil {
		t.Fatalf("load link failed: %v", err)
	}
	if stored.DownloadCount != 0 {
		t.Fatalf("expired attempt must not consume a download, count=%d", stored.DownloadCount)
	}
}

func TestResolveDownloadExhaustedAfterMax(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	link := seedDeliveredOrder(t, f, 2, time.Now().UTC().Add(time.Hour))

	for i := 0; i < 2; i++ {
		if _, err := f.service.ResolveDownload(ctx, application.DownloadRequest{DownloadToken: link.Token}); err != nil {
			t.Fatalf("download %d failed: %v", i+1, err)
		}
	}
	if _, err := f.service.ResolveDownload(ctx, application.DownloadRequest{DownloadToken: link.Token}); !errors.Is(err, domain.ErrDownloadExhausted) {
		t.Fatalf("expected exhausted error, got %v", err)
	}
}

func TestConcurrentDownloadsNeverExceedMax(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	const maxDownloads = 5
	link := seedDeliveredOrder(t, f, maxDownloads, time.Now().UTC().Add(time.Hour))

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if _, err := f.service.ResolveDownload(ctx, application.DownloadRequest{DownloadToken: link.Token}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != maxDownloads {
		t.Fatalf("expected exactly %d successful downloads, got %d", maxDownloads, succeeded)
	}
	stored, _ := f.orders.GetByToken(ctx, link.Token)
	if stored.DownloadCount != maxDownloads {
		t.Fatalf("expected count %d, got %d", maxDownloads, stored.DownloadCount)
	}
}
