package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petapp4all/petrol-go/internal/api"
)

const presignLifetime = 15 * time.Minute

// ImageStore hands out upload URLs and removes objects when their owning
// record is deleted.
type ImageStore interface {
	PresignUpload(ctx context.Context, contentType string) (UploadTicket, error)
	Delete(ctx context.Context, key string) error
}

// UploadTicket is a presigned PUT the client uses to push an image
// directly to storage.
type UploadTicket struct {
	Key       string `json:"imageId"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

type S3ImageStore struct {
	client     *s3.Client
	presign    *s3.PresignClient
	bucketName string
	baseURL    string
}

// NewS3ImageStore builds a store from the ambient AWS config. baseURL is
// the public prefix objects are served from, typically the bucket's
// website or CDN endpoint.
func NewS3ImageStore(ctx context.Context, bucketName, baseURL string) (*S3ImageStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucketName: bucketName,
		baseURL:    baseURL,
	}, nil
}

func (st *S3ImageStore) PresignUpload(ctx context.Context, contentType string) (UploadTicket, error) {
	key := fmt.Sprintf("images/%s", uuid.NewString())

	req, err := st.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignLifetime))
	if err != nil {
		return UploadTicket{}, fmt.Errorf("presigning upload: %w", err)
	}

	return UploadTicket{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: fmt.Sprintf("%s/%s", st.baseURL, key),
	}, nil
}

func (st *S3ImageStore) Delete(ctx context.Context, key string) error {
	_, err := st.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(st.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	return nil
}

type uploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func (s *Server) presignUpload(c *gin.Context) {
	if s.images == nil {
		api.Error(c, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := s.images.PresignUpload(c.Request.Context(), req.ContentType)
	if err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	c.JSON(http.StatusOK, ticket)
}
