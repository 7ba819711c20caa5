package filestore

import (
	"bytes"

	"github.com/Luismorlan/postmux/utils"
	Logger "github.com/Luismorlan/postmux/utils/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

const (
	ProdS3ImageBucket = "postmux-post-image-output"
	CloudFrontPrefix  = "https://d20uffqoe1h0vv.cloudfront.net/"
)

type S3FileStore struct {
	bucket   string
	uploader *s3manager.Uploader
	svc      *s3.S3
}

func NewS3FileStore(bucket string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String("us-west-1"),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(session.Must(sess, err)),
	}, nil
}

// S3 key is the md5 of the content plus the original file extension, so
// re-uploading identical content is a no-op.
func (s *S3FileStore) generateKey(fileName string, data []byte) (string, error) {
	key := utils.BytesToMd5Hash(data)
	if len(key) == 0 {
		return "", errors.New("generate empty s3 key, invalid")
	}
	return key + utils.GetFileExtNameWithDot(fileName), nil
}

func (s *S3FileStore) Store(fileName string, data []byte) (key string, err error) {
	key, err = s.generateKey(fileName, data)
	if err != nil {
		return "", err
	}

	if !s.isKeyExisted(key) {
		// Upload the file to S3.
		_, err = s.uploader.Upload(&s3manager.UploadInput{
			ACL:    aws.String("public-read"),
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			Logger.Log.Warn("fail to upload file to s3, key:", key, "err:", err)
			return "", err
		}
	}
	return key, nil
}

func (s *S3FileStore) isKeyExisted(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return CloudFrontPrefix + key
}

func (s *S3FileStore) CleanUp() {
	// do nothing for s3
}
