// Package publish загружает собранный пакет .imscc в s3-совместимое хранилище (minio)
// и выдает временную ссылку на скачивание.
package publish

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/internal/utils"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

const (
	ContentType = "application/vnd.ims.imscc+zip"
	maxExpiry   = 7 * 24 * time.Hour
)

var ErrInvalidKey = errors.New("invalid object key")

type Config struct {
	Endpoint    string        `validate:"required,url"`
	AccessKeyID string        `validate:"required"`
	SecretKey   string        `validate:"required"`
	Region      string        `validate:"omitempty"`
	Bucket      string        `validate:"required,min=3,max=63"`
	Prefix      string        `validate:"omitempty"`
	CertCA      string        `validate:"omitempty"`
	URLExpiry   time.Duration `validate:"gte=0"`
}

// ConfigFrom параметры публикации из конфигурации сервиса
func ConfigFrom(cfg model.Config) Config {
	return Config{
		Endpoint:    cfg.VfsEndpoint,
		AccessKeyID: cfg.VfsAccessKeyID,
		SecretKey:   cfg.VfsSecretKey,
		Region:      cfg.VfsRegion,
		Bucket:      cfg.VfsBucket,
		Prefix:      cfg.VfsPrefix,
		CertCA:      cfg.VfsCertCA,
		URLExpiry:   cfg.VfsURLExpiry.Value,
	}
}

// Object опубликованный пакет
type Object struct {
	Bucket string
	Key    string
	Size   int64
	URL    string
}

type Publisher struct {
	client *minio.Client
	cfg    Config

	mu          sync.Mutex
	bucketReady bool
}

func New(cfg Config) (*Publisher, error) {
	// схема по-умолчанию, как в конфигурации vfs
	if cfg.Endpoint != "" && !strings.Contains(cfg.Endpoint, "://") {
		scheme := "http://"
		if cfg.CertCA != "" {
			scheme = "https://"
		}
		cfg.Endpoint = scheme + cfg.Endpoint
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid publish config")
	}

	parsed, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "invalid endpoint")
	}

	var transport http.RoundTripper
	if cfg.CertCA != "" {
		rootCAs := x509.NewCertPool()
		if ok := rootCAs.AppendCertsFromPEM([]byte(cfg.CertCA)); !ok {
			return nil, errors.New("failed to append CA cert")
		}
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: rootCAs},
		}
	}

	client, err := minio.New(parsed.Host, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretKey, ""),
		Secure:    parsed.Scheme == "https",
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize minio client")
	}

	return &Publisher{
		client: client,
		cfg:    cfg,
	}, nil
}

// Publish загружает архив под ключом prefix/<имя архива>.
// Бакет создается при первой публикации, если его нет.
func (p *Publisher) Publish(ctx context.Context, archivePath string) (obj Object, err error) {
	key, err := ObjectKey(p.cfg.Prefix, archivePath)
	if err != nil {
		return obj, err
	}
	if err = p.ensureBucket(ctx); err != nil {
		return obj, err
	}

	info, err := p.client.FPutObject(ctx, p.cfg.Bucket, key, archivePath, minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return obj, errors.Wrapf(err, "unable upload %s", key)
	}
	obj = Object{Bucket: p.cfg.Bucket, Key: key, Size: info.Size}

	if p.cfg.URLExpiry == 0 {
		obj.URL = ObjectURL(p.cfg.Endpoint, p.cfg.Bucket, key)
	} else {
		expiry := p.cfg.URLExpiry
		if expiry > maxExpiry {
			expiry = maxExpiry
		}
		u, err := p.client.PresignedGetObject(ctx, p.cfg.Bucket, key, expiry, nil)
		if err != nil {
			return obj, errors.Wrap(err, "failed to presign object")
		}
		obj.URL = u.String()
	}

	logger.Info(ctx, "cartridge published",
		zap.String("bucket", obj.Bucket),
		zap.String("key", obj.Key),
		zap.Int64("size", obj.Size))

	return obj, nil
}

func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bucketReady {
		return nil
	}

	exists, err := p.client.BucketExists(ctx, p.cfg.Bucket)
	if err != nil {
		return errors.Wrapf(err, "unable check bucket %s", p.cfg.Bucket)
	}
	if !exists {
		err = p.client.MakeBucket(ctx, p.cfg.Bucket, minio.MakeBucketOptions{Region: p.cfg.Region})
		if err != nil {
			return errors.Wrapf(err, "failed to create bucket %q", p.cfg.Bucket)
		}
	}
	p.bucketReady = true

	return nil
}

// ObjectKey ключ объекта: prefix/<имя файла архива>
func ObjectKey(prefix, archivePath string) (string, error) {
	name := filepath.Base(archivePath)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", errors.Wrapf(ErrInvalidKey, "archive path %q", archivePath)
	}
	if strings.Contains(prefix, "..") {
		return "", errors.Wrapf(ErrInvalidKey, "prefix %q", prefix)
	}

	return strings.TrimPrefix(path.Join("/", prefix, name), "/"), nil
}

// ObjectURL прямая ссылка на объект (для публичных бакетов, без подписи)
func ObjectURL(endpoint, bucket, key string) string {
	return utils.JoinURLPath(endpoint, bucket, utils.EscapePathPreservingSlashes(key))
}
