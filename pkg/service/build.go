package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/ident"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/manifest"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

const defaultFileBase = "cartridge"

var ErrPublishDisabled = errors.New("publishing is not configured")

// Build собирает пакет во временном каталоге, при необходимости публикует его
// и возвращает содержимое архива. Временный каталог удаляется в любом случае.
func (s *service) Build(ctx context.Context, in model.BuildIn) (out model.BuildOut, err error) {
	defer s.monitoringTimingService("Build", time.Now())
	defer func() { s.monitoringError("Build", err) }()

	opts := append([]cartridge.Option{}, s.opts...)
	if in.Strategy != "" {
		strategy, err := ident.ParseStrategy(in.Strategy)
		if err != nil {
			return out, err
		}
		opts = append(opts, cartridge.WithStrategy(strategy))
	}
	if in.Assessments != nil {
		opts = append(opts, cartridge.WithAssessments(*in.Assessments))
	}

	// значение из запроса переопределяет конфигурацию в обе стороны
	publish := s.cfg.Publish.Value
	if in.Publish != nil {
		publish = *in.Publish
	}
	if publish && s.publisher == nil {
		return out, ErrPublishDisabled
	}

	workdir, err := os.MkdirTemp(s.cfg.WorkDir, "cartridge-")
	if err != nil {
		return out, errors.Wrap(err, "unable create workdir")
	}
	defer func() {
		if e := os.RemoveAll(workdir); e != nil {
			logger.Warn(ctx, "unable remove workdir", zap.String("dir", workdir), zap.Error(e))
		}
	}()

	base := FileBase(in.Course.Title)
	manifestPath := filepath.Join(workdir, base, manifest.FileName)

	res, err := cartridge.New(s.sink, opts...).Generate(ctx, in.Course, manifestPath, true)
	if err != nil {
		return out, err
	}

	out.FileName = base + cartridge.ArchiveExt
	out.Manifest = res.Manifest
	out.Resources = res.Resources

	if publish {
		obj, err := s.publisher.Publish(ctx, res.ArchivePath)
		if err != nil {
			return out, err
		}
		out.ObjectKey = obj.Key
		out.ObjectURL = obj.URL
	}

	out.Archive, err = os.ReadFile(res.ArchivePath)
	if err != nil {
		return out, errors.Wrap(err, "unable read archive")
	}

	return out, nil
}

// FileBase имя файла пакета из названия курса: буквы и цифры в нижнем регистре через "-"
func FileBase(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	res := strings.TrimSuffix(b.String(), "-")
	if res == "" {
		return defaultFileBase
	}

	return res
}
