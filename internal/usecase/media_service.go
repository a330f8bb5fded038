package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	domainErrors "github.com/boring-ventures/minka-sub001/internal/domain/errors"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// MaxMediaSize is the largest accepted upload, in bytes
const MaxMediaSize = 10 << 20

var allowedMediaTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// MediaUpload describes a file sent by the organizer
type MediaUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService stores campaign media in object storage
type MediaService struct {
	store      domainRepo.Store
	storage    provider.ObjectStorage
	presignTTL time.Duration
	logger     *zap.Logger
}

// NewMediaService creates a new media service. storage may be nil, in which
// case uploads and listings fail with ErrMediaStorageDisabled.
func NewMediaService(store domainRepo.Store, storage provider.ObjectStorage, presignTTL time.Duration, logger *zap.Logger) *MediaService {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &MediaService{
		store:      store,
		storage:    storage,
		presignTTL: presignTTL,
		logger:     logger,
	}
}

// UploadMedia stores a file for a campaign the actor organizes
func (s *MediaService) UploadMedia(ctx context.Context, actorID, campaignID uuid.UUID, upload MediaUpload) (*dto.MediaResponse, error) {
	if s.storage == nil {
		return nil, apperrors.Internal("media storage is not configured", domainErrors.ErrMediaStorageDisabled)
	}
	ext, ok := allowedMediaTypes[upload.ContentType]
	if !ok {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("unsupported content type %q", upload.ContentType), nil)
	}
	if upload.Size <= 0 || upload.Size > MaxMediaSize {
		return nil, apperrors.InvalidArgument("file must be between 1 byte and 10MB", nil)
	}

	campaign, err := s.store.Campaigns().GetByID(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Internal("failed to load campaign", err)
	}
	if campaign == nil {
		return nil, apperrors.NotFound("campaign not found", domainErrors.ErrCampaignNotFound)
	}
	if !campaign.IsOrganizer(actorID) {
		return nil, apperrors.Forbidden("only the campaign organizer can upload media", domainErrors.ErrNotCampaignOrganizer)
	}

	mediaID := uuid.New()
	key := fmt.Sprintf("campaigns/%s/%s%s", campaignID, mediaID, ext)
	if err := s.storage.Upload(ctx, key, upload.Body, upload.Size, upload.ContentType); err != nil {
		s.logger.Error("Failed to upload campaign media",
			zap.String("campaign_id", campaignID.String()),
			zap.String("object_key", key),
			zap.Error(err))
		return nil, apperrors.Internal("failed to upload media", err)
	}

	count, err := s.store.Media().CountByCampaign(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Internal("failed to count media", err)
	}

	media := &model.CampaignMedia{
		ID:          mediaID,
		CampaignID:  campaignID,
		ObjectKey:   key,
		FileName:    sanitizeFileName(upload.FileName),
		ContentType: upload.ContentType,
		IsPrimary:   count == 0,
		SortOrder:   int(count),
	}
	if err := s.store.Media().Create(ctx, media); err != nil {
		return nil, apperrors.Internal("failed to save media", err)
	}

	url, err := s.storage.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		return nil, apperrors.Internal("failed to sign media url", err)
	}
	return newMediaResponse(media, url), nil
}

// ListMedia returns a campaign's media with temporary download URLs
func (s *MediaService) ListMedia(ctx context.Context, campaignID uuid.UUID) ([]*dto.MediaResponse, error) {
	if s.storage == nil {
		return nil, apperrors.Internal("media storage is not configured", domainErrors.ErrMediaStorageDisabled)
	}

	media, err := s.store.Media().ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Internal("failed to list media", err)
	}

	result := make([]*dto.MediaResponse, 0, len(media))
	for _, m := range media {
		url, err := s.storage.PresignGet(ctx, m.ObjectKey, s.presignTTL)
		if err != nil {
			return nil, apperrors.Internal("failed to sign media url", err)
		}
		result = append(result, newMediaResponse(m, url))
	}
	return result, nil
}

func newMediaResponse(m *model.CampaignMedia, url string) *dto.MediaResponse {
	return &dto.MediaResponse{
		ID:          m.ID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		IsPrimary:   m.IsPrimary,
		SortOrder:   m.SortOrder,
		URL:         url,
		CreatedAt:   m.CreatedAt,
	}
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	if len(name) > 255 {
		name = name[len(name)-255:]
	}
	return name
}
