package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/storage"
)

const (
	OrgIconMaxLength   = 2048
	defaultUploadLimit = 4
)

// ImageProcessor replaces data URIs with hosted URLs. Plain URLs pass through.
type ImageProcessor struct {
	host   storage.ImageHost
	logger *slog.Logger
	limit  int
}

// NewImageProcessor accepts a nil host; data URIs are then dropped.
func NewImageProcessor(host storage.ImageHost, logger *slog.Logger) *ImageProcessor {
	return &ImageProcessor{host: host, logger: logger, limit: defaultUploadLimit}
}

// Resolve returns one entry per input; "" marks a value that was dropped.
func (p *ImageProcessor) Resolve(ctx context.Context, values []string) []string {
	out := make([]string, len(values))

	var g errgroup.Group
	g.SetLimit(p.limit)
	for i, v := range values {
		if !storage.IsDataURI(v) {
			out[i] = v
			continue
		}
		i, v := i, v
		g.Go(func() error {
			out[i] = p.upload(ctx, v)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (p *ImageProcessor) upload(ctx context.Context, value string) string {
	if p.host == nil {
		p.logger.WarnContext(ctx, "Dropping data URI image: no image host configured")
		return ""
	}
	img, err := storage.ParseDataURI(value)
	if err != nil {
		p.logger.WarnContext(ctx, "Dropping undecodable data URI image", slog.Any("error", err))
		return ""
	}
	url, err := p.host.UploadImage(ctx, img)
	if err != nil {
		p.logger.WarnContext(ctx, "Image upload failed", slog.String("content_type", img.ContentType), slog.Any("error", err))
		return ""
	}
	return url
}

// venueImages points at the image-bearing fields of one request; nil means absent.
type venueImages struct {
	images  *[]string
	orgIcon *string
	pricing *models.Pricing
}

// resolveVenueImages uploads every data URI of the request in one batch.
// Failed list entries are removed, a failed org icon becomes nil and a failed
// pricing image leaves empty content.
func (p *ImageProcessor) resolveVenueImages(ctx context.Context, in venueImages) (images []string, orgIcon *string, pricing *models.Pricing) {
	var batch []string
	if in.images != nil {
		batch = append(batch, *in.images...)
	}
	iconAt, pricingAt := -1, -1
	if in.orgIcon != nil && *in.orgIcon != "" {
		iconAt = len(batch)
		batch = append(batch, *in.orgIcon)
	}
	if in.pricing != nil && in.pricing.Type == models.PricingImage && in.pricing.Content != "" {
		pricingAt = len(batch)
		batch = append(batch, in.pricing.Content)
	}

	resolved := p.Resolve(ctx, batch)

	if in.images != nil {
		images = make([]string, 0, len(*in.images))
		for _, u := range resolved[:len(*in.images)] {
			if u != "" {
				images = append(images, u)
			}
		}
	}
	if iconAt >= 0 && resolved[iconAt] != "" {
		icon := resolved[iconAt]
		if len(icon) > OrgIconMaxLength {
			icon = icon[:OrgIconMaxLength]
		}
		orgIcon = &icon
	}
	if in.pricing != nil {
		pr := in.pricing.Normalize()
		if pricingAt >= 0 {
			pr.Content = resolved[pricingAt]
		}
		pricing = &pr
	}
	return images, orgIcon, pricing
}
