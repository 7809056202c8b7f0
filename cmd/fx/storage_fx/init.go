package storage_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"tastepalette/internal/config"
	"tastepalette/internal/services"
)

var Module = fx.Provide(provideImageStore)

// provideImageStore picks where menu photos are kept. "none" keeps nothing.
func provideImageStore(cfg *config.Config) (services.ImageStore, error) {
	switch cfg.ImageStore {
	case "cloudinary":
		return services.NewCloudinaryImageStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is not set")
		}
		client, err := services.NewS3Client(context.Background(), cfg.S3Region)
		if err != nil {
			return nil, err
		}
		return services.NewS3ImageStore(client, cfg.S3Bucket, cfg.S3PublicURL), nil
	case "none", "":
		return services.NewNoopImageStore(), nil
	default:
		return nil, fmt.Errorf("unsupported IMAGE_STORE %q", cfg.ImageStore)
	}
}
