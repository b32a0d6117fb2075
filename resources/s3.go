package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

// bucketsPath keeps the trailing slash the service routes the collection on.
const bucketsPath = "/s3/buckets/"

// ######################################################
//
//	S3 BUCKETS
//
// ######################################################

type S3Bucket struct {
	*core.EPResource
}

func (b *S3Bucket) ListWithContext(ctx context.Context) (core.RecordSet, error) {
	return core.Request[core.RecordSet](ctx, b, "listing S3 buckets", http.MethodGet, bucketsPath, nil, nil)
}

func (b *S3Bucket) List() (core.RecordSet, error) {
	return b.ListWithContext(b.Ctx())
}

func (b *S3Bucket) CreateWithContext(ctx context.Context, req BucketRequest) (core.Record, error) {
	if err := core.RequireFields("name", req.Name); err != nil {
		return nil, err
	}
	body, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, b, "creating S3 bucket", http.MethodPost, bucketsPath, nil, body)
}

func (b *S3Bucket) Create(req BucketRequest) (core.Record, error) {
	return b.CreateWithContext(b.Ctx(), req)
}

func (b *S3Bucket) GetWithContext(ctx context.Context, name string) (core.Record, error) {
	path, err := b.Path(name)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, b, "getting S3 bucket info", http.MethodGet, path, nil, nil)
}

func (b *S3Bucket) Get(name string) (core.Record, error) {
	return b.GetWithContext(b.Ctx(), name)
}

func (b *S3Bucket) DeleteWithContext(ctx context.Context, name string) (core.Record, error) {
	path, err := b.Path(name)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, b, "deleting S3 bucket", http.MethodDelete, path, nil, nil)
}

func (b *S3Bucket) Delete(name string) (core.Record, error) {
	return b.DeleteWithContext(b.Ctx(), name)
}

// ######################################################
//
//	S3 OBJECTS
//
// ######################################################

type S3Object struct {
	*core.EPResource
}

type objectListQuery struct {
	Prefix string `url:"prefix,omitempty"`
}

// objectPath builds /s3/objects/{bucket}/{key...}/{suffix...}. Slashes inside
// the key are kept as path separators; every part is escaped on its own.
func (o *S3Object) objectPath(bucket, key string, suffix ...string) (string, error) {
	if err := core.RequireFields("bucket", bucket, "object_key", key); err != nil {
		return "", err
	}
	segments := append([]string{bucket}, strings.Split(strings.TrimPrefix(key, "/"), "/")...)
	return o.Path(append(segments, suffix...)...)
}

// ListWithContext lists objects of a bucket, optionally under prefix.
func (o *S3Object) ListWithContext(ctx context.Context, bucket, prefix string) (core.RecordSet, error) {
	path, err := o.Path(bucket)
	if err != nil {
		return nil, err
	}
	return core.Request[core.RecordSet](ctx, o, "listing S3 objects", http.MethodGet, path, objectListQuery{Prefix: prefix}, nil)
}

func (o *S3Object) List(bucket, prefix string) (core.RecordSet, error) {
	return o.ListWithContext(o.Ctx(), bucket, prefix)
}

// UploadWithContext sends data as a multipart form with the "file" part and the
// "object_key" field. contentType defaults to application/octet-stream.
func (o *S3Object) UploadWithContext(ctx context.Context, bucket, key string, data []byte, contentType string) (core.Record, error) {
	if err := core.RequireFields("bucket", bucket, "object_key", key); err != nil {
		return nil, err
	}
	path, err := o.Path(bucket)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = core.ContentTypeOctetStream
	}
	body := core.Params{
		"file":       core.FileData{Filename: key, Content: data, ContentType: contentType},
		"object_key": key,
	}
	headers := []http.Header{{core.HeaderContentType: []string{core.ContentTypeMultipartForm}}}
	return core.RequestWithHeaders[core.Record](ctx, o, "uploading S3 object", http.MethodPost, path, nil, body, headers)
}

func (o *S3Object) Upload(bucket, key string, data []byte, contentType string) (core.Record, error) {
	return o.UploadWithContext(o.Ctx(), bucket, key, data, contentType)
}

// DownloadWithContext returns the object content as is.
func (o *S3Object) DownloadWithContext(ctx context.Context, bucket, key string) ([]byte, error) {
	path, err := o.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}
	headers := []http.Header{{core.HeaderAccept: []string{"*/*"}}}
	data, _, err := core.RequestRaw(core.WithOperation(ctx, "downloading S3 object"), o, http.MethodGet, path, nil, nil, headers)
	return data, err
}

func (o *S3Object) Download(bucket, key string) ([]byte, error) {
	return o.DownloadWithContext(o.Ctx(), bucket, key)
}

func (o *S3Object) DeleteWithContext(ctx context.Context, bucket, key string) (core.Record, error) {
	path, err := o.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, o, "deleting S3 object", http.MethodDelete, path, nil, nil)
}

func (o *S3Object) Delete(bucket, key string) (core.Record, error) {
	return o.DeleteWithContext(o.Ctx(), bucket, key)
}

func (o *S3Object) MetadataWithContext(ctx context.Context, bucket, key string) (core.Record, error) {
	path, err := o.objectPath(bucket, key, "metadata")
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, o, "getting S3 object metadata", http.MethodGet, path, nil, nil)
}

func (o *S3Object) Metadata(bucket, key string) (core.Record, error) {
	return o.MetadataWithContext(o.Ctx(), bucket, key)
}

func (o *S3Object) presigned(ctx context.Context, operation, suffix, bucket, key string, expiration int) (core.Record, error) {
	if expiration < 0 {
		return nil, &core.ValidationError{Field: "expiration", Message: "must not be negative"}
	}
	path, err := o.objectPath(bucket, key, suffix)
	if err != nil {
		return nil, err
	}
	body := core.Params{}
	if expiration > 0 {
		body["expiration"] = expiration
	}
	return core.Request[core.Record](ctx, o, operation, http.MethodPost, path, nil, body)
}

// PresignedUploadWithContext returns a time-limited upload URL. An expiration of 0
// (seconds) leaves the default to the service.
func (o *S3Object) PresignedUploadWithContext(ctx context.Context, bucket, key string, expiration int) (core.Record, error) {
	return o.presigned(ctx, "generating presigned upload URL", "presigned-upload", bucket, key, expiration)
}

func (o *S3Object) PresignedUpload(bucket, key string, expiration int) (core.Record, error) {
	return o.PresignedUploadWithContext(o.Ctx(), bucket, key, expiration)
}

func (o *S3Object) PresignedDownloadWithContext(ctx context.Context, bucket, key string, expiration int) (core.Record, error) {
	return o.presigned(ctx, "generating presigned download URL", "presigned-download", bucket, key, expiration)
}

func (o *S3Object) PresignedDownload(bucket, key string, expiration int) (core.Record, error) {
	return o.PresignedDownloadWithContext(o.Ctx(), bucket, key, expiration)
}
