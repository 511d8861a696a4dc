package campus

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// maxImageBytes bounds one embedded image download.
const maxImageBytes = 8 << 20

// fetchImages downloads the content of every image that does not
// already carry any. A failed download is logged and the image left
// empty; one broken image must not fail the whole detail request.
func fetchImages(ctx context.Context, client *UserClient, images []domain.ScImage, imageBase string, logger *slog.Logger) {
	for i := range images {
		image := &images[i]
		if len(image.Content) > 0 {
			continue
		}

		content, err := downloadImage(ctx, client, imageURL(imageBase, image.OldName))
		if err != nil {
			logger.Warn("fetch activity image", "image", image.OldName, "error", err)
			continue
		}
		image.Content = content
	}
}

func downloadImage(ctx context.Context, client *UserClient, url string) ([]byte, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// imageURL resolves an image source path against the campus image
// host. Absolute campus URLs are used as-is.
func imageURL(imageBase, oldName string) string {
	if strings.Contains(oldName, "sc.sit.edu.cn") || strings.Contains(oldName, "job.sit.edu.cn") {
		return oldName
	}
	if strings.HasPrefix(oldName, "http://") || strings.HasPrefix(oldName, "https://") {
		return oldName
	}

	return imageBase + oldName
}
