// Package export publishes ranking results to Azure Blob Storage.
package export

//go:generate go tool mockgen -source uploader.go -destination mock_uploader_test.go -package export

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/spboyer/comborank/internal/reporting"
)

// Uploader stores a named blob.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) error
}

// BlobUploader writes blobs into one Azure Storage container.
type BlobUploader struct {
	client    *azblob.Client
	container string
}

// NewBlobUploader creates an uploader authenticated with
// DefaultAzureCredential (environment, managed identity, Azure CLI, ...).
func NewBlobUploader(accountURL, container string) (*BlobUploader, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("creating azure credential: %w", err)
	}
	return NewBlobUploaderWithCredential(accountURL, container, cred)
}

// NewBlobUploaderWithCredential creates an uploader using cred.
func NewBlobUploaderWithCredential(accountURL, container string, cred azcore.TokenCredential) (*BlobUploader, error) {
	if accountURL == "" || container == "" {
		return nil, fmt.Errorf("upload requires both account_url and container")
	}
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client for %s: %w", accountURL, err)
	}
	return &BlobUploader{client: client, container: container}, nil
}

// Upload implements Uploader.
func (u *BlobUploader) Upload(ctx context.Context, name string, data []byte) error {
	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(contentType(name)),
		},
	}
	if _, err := u.client.UploadBuffer(ctx, u.container, name, data, opts); err != nil {
		return fmt.Errorf("uploading %s to container %s: %w", name, u.container, err)
	}
	slog.Debug("Uploaded blob", "container", u.container, "name", name, "bytes", len(data))
	return nil
}

func contentType(name string) string {
	ext := path.Ext(name)
	for _, f := range reporting.Formats {
		if "."+f.Extension() == ext {
			return f.ContentType()
		}
	}
	return "application/octet-stream"
}
