package enum

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// AzureConfig configures enumeration of an Azure Blob Storage container.
type AzureConfig struct {
	ConnectionString string
	Container        string
	Prefix           string // only blobs whose name starts with Prefix
	Config
}

// azureBlobs is the part of *azblob.Client the enumerator uses.
type azureBlobs interface {
	NewListBlobsFlatPager(containerName string, o *azblob.ListBlobsFlatOptions) *runtime.Pager[azblob.ListBlobsFlatResponse]
	DownloadStream(ctx context.Context, containerName string, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

// AzureEnumerator enumerates HTML blobs of one container.
type AzureEnumerator struct {
	client azureBlobs
	config AzureConfig
}

// NewAzureEnumerator connects with a storage account connection string.
func NewAzureEnumerator(cfg AzureConfig) (*AzureEnumerator, error) {
	if cfg.Container == "" {
		return nil, fmt.Errorf("azure container is required")
	}
	if cfg.ConnectionString == "" {
		return nil, fmt.Errorf("azure connection string is required")
	}
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("creating azure blob client: %w", err)
	}
	return &AzureEnumerator{client: client, config: cfg}, nil
}

// Enumerate lists the container page by page and downloads HTML blobs.
func (e *AzureEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	log := e.config.logger()

	opts := &azblob.ListBlobsFlatOptions{}
	if e.config.Prefix != "" {
		opts.Prefix = &e.config.Prefix
	}
	pager := e.client.NewListBlobsFlatPager(e.config.Container, opts)

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("listing container %s: %w", e.config.Container, err)
		}
		if page.Segment == nil {
			continue
		}

		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			name := *item.Name
			if item.Properties != nil && item.Properties.ContentLength != nil && e.config.tooLarge(*item.Properties.ContentLength) {
				continue
			}
			if !HasHTMLExtension(name) && !e.config.SniffContent {
				continue
			}

			content, err := e.download(ctx, name)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn("skipping unreadable blob", "container", e.config.Container, "blob", name, "error", err)
				continue
			}
			if !e.config.IsHTML(name, content) {
				continue
			}

			prov := types.RemoteProvenance{
				Provider:   "azure",
				Container:  e.config.Container,
				ObjectPath: name,
			}
			if item.Properties != nil && item.Properties.ETag != nil {
				prov.Revision = string(*item.Properties.ETag)
			}
			if err := callback(content, types.ComputeBlobID(content), prov); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *AzureEnumerator) download(ctx context.Context, name string) ([]byte, error) {
	resp, err := e.client.DownloadStream(ctx, e.config.Container, name, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
