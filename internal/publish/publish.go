// Package publish uploads an artifacts root to Azure Blob Storage.
package publish

//go:generate go tool mockgen -source publish.go -destination publish_mock.go -package publish

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// BlobClient is the subset of *azblob.Client used for uploads.
type BlobClient interface {
	UploadFile(ctx context.Context, containerName string, blobName string, file *os.File, o *azblob.UploadFileOptions) (azblob.UploadFileResponse, error)
}

// NewClient connects to accountURL (https://<account>.blob.core.windows.net/).
// A nil cred uses the default Azure credential chain.
func NewClient(accountURL string, cred azcore.TokenCredential) (*azblob.Client, error) {
	if cred == nil {
		c, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("creating azure credential: %w", err)
		}
		cred = c
	}
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client for %s: %w", accountURL, err)
	}
	return client, nil
}

// Uploader copies local files into one container.
type Uploader struct {
	client    BlobClient
	container string
}

// NewUploader returns an Uploader for container.
func NewUploader(client BlobClient, container string) *Uploader {
	return &Uploader{client: client, container: container}
}

var contentTypes = map[string]string{
	".json": "application/json",
	".zip":  "application/zip",
	".webm": "video/webm",
	".mp4":  "video/mp4",
	".png":  "image/png",
	".xml":  "application/xml",
}

// BlobName joins prefix and the slash-separated relative path.
func BlobName(prefix, rel string) string {
	rel = filepath.ToSlash(rel)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

// UploadDir uploads every regular file under root and returns the blob names
// in lexical path order. The first failure stops the upload.
func (u *Uploader) UploadDir(ctx context.Context, root, prefix string) ([]string, error) {
	var uploaded []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := BlobName(prefix, rel)
		if err := u.uploadFile(ctx, p, name); err != nil {
			return err
		}
		uploaded = append(uploaded, name)
		return nil
	})
	if err != nil {
		return uploaded, err
	}
	return uploaded, nil
}

func (u *Uploader) uploadFile(ctx context.Context, localPath, name string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	var opts azblob.UploadFileOptions
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(localPath))]; ok {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &ct}
	}

	slog.Debug("uploading artifact", "container", u.container, "blob", name)
	if _, err := u.client.UploadFile(ctx, u.container, name, f, &opts); err != nil {
		return fmt.Errorf("uploading %s to %s/%s: %w", localPath, u.container, name, err)
	}
	return nil
}
