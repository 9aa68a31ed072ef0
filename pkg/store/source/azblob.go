package source

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

type AzureConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Container  string `mapstructure:"container"`
	Prefix     string `mapstructure:"prefix"`
	Anonymous  bool   `mapstructure:"anonymous"` // public container, no credentials
}

// BlobDownloader is the subset of the blob client used to read artifacts.
type BlobDownloader interface {
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

type blobSource struct {
	client    BlobDownloader
	container string
	prefix    string
}

// NewAzureBlob serves artifacts stored in a blob container. Credentials come
// from the Azure CLI login unless the container is anonymous.
func NewAzureBlob(cfg AzureConfig) (Source, error) {
	if cfg.ServiceURL == "" || cfg.Container == "" {
		return nil, fmt.Errorf("azblob source requires a service url and a container")
	}

	var (
		client *azblob.Client
		err    error
	)
	if cfg.Anonymous {
		client, err = azblob.NewClientWithNoCredential(cfg.ServiceURL, nil)
	} else {
		cred, credErr := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
		if credErr != nil {
			return nil, fmt.Errorf("failed to create Azure CLI credential: %w", credErr)
		}
		client, err = azblob.NewClient(cfg.ServiceURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}
	return NewAzureBlobWithClient(client, cfg.Container, cfg.Prefix), nil
}

func NewAzureBlobWithClient(client BlobDownloader, container, prefix string) Source {
	return &blobSource{
		client:    client,
		container: container,
		prefix:    strings.Trim(prefix, "/"),
	}
}

func (s *blobSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	name := path.Join(s.prefix, strings.TrimPrefix(p, "/"))

	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("azblob %s/%s: %w", s.container, name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download azblob %s/%s: %w", s.container, name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read azblob %s/%s: %w", s.container, name, err)
	}
	return data, nil
}
