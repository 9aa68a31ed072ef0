package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	DefaultRegion = "eu-west-1" // used when the AWS profile has no region
)

type S3Config struct {
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// ObjectGetter is the subset of the S3 client used to read artifacts.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	client ObjectGetter
	bucket string
	prefix string
}

// LoadAWSConfig resolves credentials from the shared config profile.
func LoadAWSConfig(ctx context.Context, cfg S3Config) (awssdk.Config, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(region)}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return awsCfg, nil
}

// NewS3 serves artifacts stored under bucket/prefix.
func NewS3(ctx context.Context, cfg S3Config) (Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 source requires a bucket")
	}
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewS3WithClient(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

func NewS3WithClient(client ObjectGetter, bucket, prefix string) Source {
	return &s3Source{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *s3Source) Fetch(ctx context.Context, p string) ([]byte, error) {
	key := path.Join(s.prefix, strings.TrimPrefix(p, "/"))

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}
