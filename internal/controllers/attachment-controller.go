package controllers

import (
	"net/http"
	"path/filepath"

	"gearguard/internal/services"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	uploadDir         string
	logger            *zap.Logger
}

func NewAttachmentController(attachmentService services.AttachmentServiceInterface, uploadDir string, logger *zap.Logger) *AttachmentController {
	return &AttachmentController{
		attachmentService: attachmentService,
		uploadDir:         uploadDir,
		logger:            logger,
	}
}

// Upload accepts a multipart form with a "file" field plus entity_type and
// entity_id fields binding the attachment to its owner.
func (c *AttachmentController) Upload(ctx echo.Context) error {
	entityType := ctx.FormValue("entity_type")
	entityID, err := parseIDForm(ctx, "entity_id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("multipart field 'file' is required"), c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	attachment, err := c.attachmentService.Upload(
		ctx.Request().Context(),
		src,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		entityType,
		entityID,
	)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, attachment, "File uploaded", http.StatusCreated)
}

func (c *AttachmentController) GetByEntity(ctx echo.Context) error {
	entityID, err := parseIDParam(ctx, "entityId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	list, err := c.attachmentService.GetByEntity(ctx.Request().Context(), ctx.Param("entityType"), entityID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Attachments", http.StatusOK)
}

func (c *AttachmentController) Download(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	attachment, err := c.attachmentService.FindAttachment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fullPath := filepath.Join(c.uploadDir, filepath.FromSlash(attachment.FilePath))
	return ctx.Attachment(fullPath, attachment.FileName)
}

func (c *AttachmentController) DeleteAttachment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.attachmentService.DeleteAttachment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Attachment deleted", http.StatusOK)
}
