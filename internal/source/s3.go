package source

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// S3API is the part of the S3 client used to list and fetch objects.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 is a bucket prefix treated as a folder. Directories are derived from
// the "/" separated object keys.
type S3 struct {
	api    S3API
	bucket string
	prefix string
	root   string
	opts   Options
}

// IsS3 reports whether location is an s3:// URI.
func IsS3(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// ParseS3URI splits s3://bucket/some/prefix into bucket and a prefix that is
// either empty or ends in "/".
func ParseS3URI(uri string) (bucket, prefix string, err error) {
	if !IsS3(uri) {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %s", uri)
	}
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return bucket, prefix, nil
}

func NewS3(api S3API, uri string, opts Options) (*S3, error) {
	bucket, prefix, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	return &S3{api: api, bucket: bucket, prefix: prefix, root: uri, opts: opts}, nil
}

func (s *S3) Root() string { return s.root }

func (s *S3) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	seenDirs := map[string]bool{}

	p := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, s.prefix, err)
		}

		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if key == "" || strings.HasSuffix(key, "/") || excludedPath(key, s.opts.Exclude) {
				continue
			}
			for dir := path.Dir(key); dir != "."; dir = path.Dir(dir) {
				if seenDirs[dir] {
					break
				}
				seenDirs[dir] = true
				entries = append(entries, Entry{Path: dir, IsDir: true})
			}
			entries = append(entries, Entry{Path: key})
		}
	}

	return entries, nil
}

func (s *S3) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + p),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3 object %s: %w", p, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
