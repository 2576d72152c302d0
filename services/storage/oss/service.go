package ossstore

import (
	"context"
	"io"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core"
)

type service struct {
	bucket *oss.Bucket
}

var _ core.ObjectStore = (*service)(nil)

// NewService connects to the configured OSS bucket.
func NewService(conf *core.Config) (core.ObjectStore, error) {
	client, err := oss.New(conf.OSS.Endpoint, conf.OSS.AccessKeyID, conf.OSS.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "creating OSS client")
	}
	bucket, err := client.Bucket(conf.OSS.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "opening OSS bucket")
	}
	return &service{bucket: bucket}, nil
}

func (svc *service) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	opts := []oss.Option{oss.ObjectACL(oss.ACLPublicRead), oss.WithContext(ctx)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	if err := svc.bucket.PutObject(key, body, opts...); err != nil {
		return "", errors.Wrapf(err, "uploading %q", key)
	}
	return key, nil
}
